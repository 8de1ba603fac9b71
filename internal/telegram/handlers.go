package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/weather"
)

// --- Reminders ---

func (r *Router) doSetReminder(chatID int64, args string) {
	tod, err := r.reminders.Set(chatID, args)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeOfDay) {
			r.send(chatID, "Invalid time format! Use HH:MM (24-hour format).")
			return
		}
		r.logger.Error("set reminder failed", "chat_id", chatID, "error", err)
		r.send(chatID, "An error occurred while setting the reminder.")
		return
	}
	r.send(chatID, fmt.Sprintf("Reminder set for %s UTC.", tod))
}

func (r *Router) doStopReminder(chatID int64) {
	if !r.reminders.Stop(chatID) {
		r.send(chatID, noReminderText)
		return
	}
	r.send(chatID, reminderStopped)
}

// --- Weather ---

func (r *Router) doWeatherOnce(ctx context.Context, chatID int64, location string) {
	text, err := r.weather.Lookup(ctx, location)
	if err != nil {
		r.logger.Error("weather lookup failed", "chat_id", chatID, "location", location, "error", err)
		r.send(chatID, "Unable to fetch weather data. Please try again.")
		return
	}
	r.send(chatID, text)
}

func (r *Router) doSetWeatherUpdates(ctx context.Context, userID, chatID int64, args string) {
	sub, err := r.weather.Set(ctx, userID, chatID, args)
	if err != nil {
		if errors.Is(err, weather.ErrBadArgs) || errors.Is(err, domain.ErrInvalidTimeOfDay) {
			r.send(chatID, "Usage: /set_weather_updates LOCATION HH:MM (24-hour, UTC)")
			return
		}
		r.logger.Error("set weather updates failed", "user_id", userID, "error", err)
		r.send(chatID, "An error occurred while setting weather updates.")
		return
	}
	r.send(chatID, fmt.Sprintf("Weather updates set for %s daily at %s (UTC).", sub.Location, sub.At))
}

func (r *Router) doStopWeatherUpdates(ctx context.Context, userID, chatID int64) {
	if !r.weather.Stop(ctx, userID) {
		r.send(chatID, noWeatherText)
		return
	}
	r.send(chatID, weatherStopped)
}

// --- Pomodoro ---

func (r *Router) doStartPomodoro(userID, chatID int64) {
	if err := r.pomodoros.Start(userID, chatID); err != nil {
		if errors.Is(err, domain.ErrSessionExists) {
			r.send(chatID, "You already have a pomodoro session! Use /stop_pomodoro to cancel it.")
			return
		}
		r.logger.Error("start pomodoro failed", "user_id", userID, "error", err)
		r.send(chatID, "An error occurred while starting the pomodoro.")
		return
	}
	r.send(chatID, "Pomodoro started! Focus for 25 minutes.")
}

func (r *Router) doStopPomodoro(userID, chatID int64) {
	if err := r.pomodoros.Stop(userID); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			r.send(chatID, "You don't have any active pomodoro sessions to stop.")
			return
		}
		r.logger.Error("stop pomodoro failed", "user_id", userID, "error", err)
		r.send(chatID, "An error occurred while stopping the pomodoro.")
		return
	}
	r.send(chatID, "Pomodoro session stopped.")
}

// --- Extras ---

func (r *Router) doMotivation(ctx context.Context, chatID int64) {
	text, err := r.quotes.QuoteOfTheDay(ctx)
	if err != nil {
		r.logger.Error("quote lookup failed", "chat_id", chatID, "error", err)
		r.send(chatID, quoteFallbackText)
		return
	}
	r.send(chatID, text)
}

// --- Projects ---

func (r *Router) doAddProject(ctx context.Context, userID, chatID int64, args string) {
	name, description, _ := strings.Cut(args, " ")
	if name == "" {
		r.send(chatID, askProjectToAdd)
		return
	}
	if _, err := r.projects.Create(ctx, userID, name, strings.TrimSpace(description)); err != nil {
		r.logger.Error("add project failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not add the project. Please try again.")
		return
	}
	r.send(chatID, fmt.Sprintf("Project %q added.", name))
}

func (r *Router) doListProjects(ctx context.Context, userID, chatID int64) {
	projects, err := r.projects.ListByUser(ctx, userID)
	if err != nil {
		r.logger.Error("list projects failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not load your projects. Please try again.")
		return
	}
	if len(projects) == 0 {
		r.send(chatID, "You have no projects yet. Use /add_project to create one.")
		return
	}
	var b strings.Builder
	b.WriteString("Your projects:\n")
	for _, p := range projects {
		if p.Description != "" {
			fmt.Fprintf(&b, "• %s — %s\n", p.Name, p.Description)
		} else {
			fmt.Fprintf(&b, "• %s\n", p.Name)
		}
	}
	r.send(chatID, b.String())
}

func (r *Router) doDeleteProject(ctx context.Context, userID, chatID int64, name string) {
	err := r.projects.Delete(ctx, userID, name)
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		r.send(chatID, fmt.Sprintf("No project named %q.", name))
	case err != nil:
		r.logger.Error("delete project failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not delete the project. Please try again.")
	default:
		r.send(chatID, fmt.Sprintf("Project %q deleted.", name))
	}
}

// --- Tasks ---

func (r *Router) doAddTask(ctx context.Context, userID, chatID int64, description string) {
	task, err := r.tasks.Create(ctx, userID, description, nil)
	if err != nil {
		r.logger.Error("add task failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not add the task. Please try again.")
		return
	}
	r.send(chatID, fmt.Sprintf("Task #%d added.", task.ID))
}

func (r *Router) doListTasks(ctx context.Context, userID, chatID int64) {
	tasks, err := r.tasks.ListByUser(ctx, userID)
	if err != nil {
		r.logger.Error("list tasks failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not load your tasks. Please try again.")
		return
	}
	if len(tasks) == 0 {
		r.send(chatID, "You have no tasks yet. Use /add_task to create one.")
		return
	}
	var b strings.Builder
	b.WriteString("Your tasks:\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "#%d [%s] %s\n", t.ID, t.Status, t.Description)
	}
	r.send(chatID, b.String())
}

func (r *Router) doCompleteTask(ctx context.Context, userID, chatID int64, args string) {
	taskID, ok := r.parseTaskID(chatID, args)
	if !ok {
		return
	}
	err := r.tasks.SetStatus(ctx, taskID, userID, domain.TaskCompleted)
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		r.send(chatID, fmt.Sprintf("No task #%d.", taskID))
	case err != nil:
		r.logger.Error("complete task failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not update the task. Please try again.")
	default:
		r.send(chatID, fmt.Sprintf("Task #%d completed. 🎉", taskID))
	}
}

func (r *Router) doUpdateTask(ctx context.Context, userID, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		r.send(chatID, askTaskUpdate)
		return
	}
	taskID, ok := r.parseTaskID(chatID, fields[0])
	if !ok {
		return
	}
	status, ok := parseTaskStatus(strings.Join(fields[1:], " "))
	if !ok {
		r.send(chatID, "Unknown status. Use Pending, In Progress or Completed.")
		return
	}
	err := r.tasks.SetStatus(ctx, taskID, userID, status)
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		r.send(chatID, fmt.Sprintf("No task #%d.", taskID))
	case err != nil:
		r.logger.Error("update task failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not update the task. Please try again.")
	default:
		r.send(chatID, fmt.Sprintf("Task #%d updated to %s.", taskID, status))
	}
}

// parseTaskStatus maps user input onto a task status, tolerating case
// and underscore variants.
func parseTaskStatus(s string) (domain.TaskStatus, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " ")) {
	case "pending":
		return domain.TaskPending, true
	case "in progress":
		return domain.TaskInProgress, true
	case "completed", "done":
		return domain.TaskCompleted, true
	}
	return "", false
}

func (r *Router) doDeleteTask(ctx context.Context, userID, chatID int64, args string) {
	taskID, ok := r.parseTaskID(chatID, args)
	if !ok {
		return
	}
	err := r.tasks.Delete(ctx, taskID, userID)
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		r.send(chatID, fmt.Sprintf("No task #%d.", taskID))
	case err != nil:
		r.logger.Error("delete task failed", "user_id", userID, "error", err)
		r.send(chatID, "Could not delete the task. Please try again.")
	default:
		r.send(chatID, fmt.Sprintf("Task #%d deleted.", taskID))
	}
}

func (r *Router) parseTaskID(chatID int64, args string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil || id <= 0 {
		r.send(chatID, "Send a numeric task ID (see /tasks).")
		return 0, false
	}
	return id, true
}
