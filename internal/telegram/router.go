package telegram

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aibekm/codeassist-bot/internal/metrics"
	"github.com/aibekm/codeassist-bot/internal/pomodoro"
	"github.com/aibekm/codeassist-bot/internal/quote"
	"github.com/aibekm/codeassist-bot/internal/reminder"
	"github.com/aibekm/codeassist-bot/internal/repository"
	"github.com/aibekm/codeassist-bot/internal/weather"
)

// Pending-input states for conversational flows started from the menu.
const (
	pendingReminderTime  = "await_reminder_time"
	pendingWeatherArgs   = "await_weather_args"
	pendingWeatherOnce   = "await_weather_location"
	pendingAddProject    = "await_project_add"
	pendingDeleteProject = "await_project_delete"
	pendingAddTask       = "await_task_add"
	pendingCompleteTask  = "await_task_complete"
	pendingUpdateTask    = "await_task_update"
	pendingDeleteTask    = "await_task_delete"
)

// ChatSender is the outbound surface the router needs; *Sender
// satisfies it.
type ChatSender interface {
	Send(chatID int64, text string) error
	SendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID string)
}

// Router maps Telegram updates 1:1 onto manager operations. It holds
// only transient per-chat pending state; everything durable lives in
// the managers and repositories.
type Router struct {
	sender ChatSender
	logger *slog.Logger

	reminders *reminder.Manager
	weather   *weather.Manager
	pomodoros *pomodoro.Manager
	quotes    *quote.Client

	users    repository.UserRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository

	mu      sync.Mutex
	pending map[int64]string // chatID -> awaited input
}

func NewRouter(
	sender ChatSender,
	logger *slog.Logger,
	reminders *reminder.Manager,
	weatherMgr *weather.Manager,
	pomodoros *pomodoro.Manager,
	quotes *quote.Client,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
) *Router {
	return &Router{
		sender:    sender,
		logger:    logger.With("component", "router"),
		reminders: reminders,
		weather:   weatherMgr,
		pomodoros: pomodoros,
		quotes:    quotes,
		users:     users,
		projects:  projects,
		tasks:     tasks,
		pending:   make(map[int64]string),
	}
}

func (r *Router) setPending(chatID int64, state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[chatID] = state
}

func (r *Router) takePending(chatID int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.pending[chatID]
	delete(r.pending, chatID)
	return state
}

// HandleUpdate routes one update. It never returns an error: every
// failure becomes a chat message or a log line.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		metrics.UpdatesTotal.WithLabelValues("message").Inc()
		r.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		metrics.UpdatesTotal.WithLabelValues("callback").Inc()
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	r.ensureUser(ctx, msg.From)

	cmd, args := splitCommand(text)
	switch cmd {
	case "/start":
		r.takePending(chatID)
		r.send(chatID, welcomeText)
		r.sendMenu(chatID)
	case "/menu":
		r.takePending(chatID)
		r.sendMenu(chatID)
	case "/help":
		r.send(chatID, helpText)
	case "/set_reminder":
		if args == "" {
			r.setPending(chatID, pendingReminderTime)
			r.send(chatID, askReminderTime)
			return
		}
		r.doSetReminder(chatID, args)
	case "/stop_reminder":
		r.doStopReminder(chatID)
	case "/weather":
		if args == "" {
			r.setPending(chatID, pendingWeatherOnce)
			r.send(chatID, askLocation)
			return
		}
		r.doWeatherOnce(ctx, chatID, args)
	case "/set_weather_updates":
		if args == "" {
			r.setPending(chatID, pendingWeatherArgs)
			r.send(chatID, askWeatherArgs)
			return
		}
		r.doSetWeatherUpdates(ctx, userID, chatID, args)
	case "/stop_weather_updates":
		r.doStopWeatherUpdates(ctx, userID, chatID)
	case "/start_pomodoro":
		r.doStartPomodoro(userID, chatID)
	case "/stop_pomodoro":
		r.doStopPomodoro(userID, chatID)
	case "/motivation":
		r.doMotivation(ctx, chatID)
	case "/add_project":
		if args == "" {
			r.setPending(chatID, pendingAddProject)
			r.send(chatID, askProjectToAdd)
			return
		}
		r.doAddProject(ctx, userID, chatID, args)
	case "/projects":
		r.doListProjects(ctx, userID, chatID)
	case "/delete_project":
		if args == "" {
			r.setPending(chatID, pendingDeleteProject)
			r.send(chatID, askProjectToDrop)
			return
		}
		r.doDeleteProject(ctx, userID, chatID, args)
	case "/add_task":
		if args == "" {
			r.setPending(chatID, pendingAddTask)
			r.send(chatID, askTaskToAdd)
			return
		}
		r.doAddTask(ctx, userID, chatID, args)
	case "/tasks":
		r.doListTasks(ctx, userID, chatID)
	case "/done":
		r.doCompleteTask(ctx, userID, chatID, args)
	case "/update_task":
		if args == "" {
			r.setPending(chatID, pendingUpdateTask)
			r.send(chatID, askTaskUpdate)
			return
		}
		r.doUpdateTask(ctx, userID, chatID, args)
	case "/delete_task":
		r.doDeleteTask(ctx, userID, chatID, args)
	default:
		r.handleFreeForm(ctx, userID, chatID, text)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	r.sender.AnswerCallback(cb.ID)

	switch cb.Data {
	case "back_to_main":
		r.sendMenu(chatID)
	case "menu_projects":
		r.sendWithMarkup(chatID, "Projects:", projectsMenuKeyboard())
	case "menu_tasks":
		r.sendWithMarkup(chatID, "Tasks:", tasksMenuKeyboard())
	case "menu_reminders":
		r.sendWithMarkup(chatID, "Reminders:", remindersMenuKeyboard())
	case "menu_weather":
		r.sendWithMarkup(chatID, "Weather:", weatherMenuKeyboard())
	case "menu_extras":
		r.sendWithMarkup(chatID, "Extras:", extrasMenuKeyboard())

	case "add_project":
		r.setPending(chatID, pendingAddProject)
		r.send(chatID, askProjectToAdd)
	case "show_projects":
		r.doListProjects(ctx, userID, chatID)
	case "delete_project":
		r.setPending(chatID, pendingDeleteProject)
		r.send(chatID, askProjectToDrop)

	case "add_task":
		r.setPending(chatID, pendingAddTask)
		r.send(chatID, askTaskToAdd)
	case "view_tasks":
		r.doListTasks(ctx, userID, chatID)
	case "complete_task":
		r.setPending(chatID, pendingCompleteTask)
		r.send(chatID, askTaskID)
	case "update_task":
		r.setPending(chatID, pendingUpdateTask)
		r.send(chatID, askTaskUpdate)
	case "drop_task":
		r.setPending(chatID, pendingDeleteTask)
		r.send(chatID, askTaskID)

	case "set_reminder":
		r.setPending(chatID, pendingReminderTime)
		r.send(chatID, askReminderTime)
	case "stop_reminder":
		r.doStopReminder(chatID)

	case "weather_once":
		r.setPending(chatID, pendingWeatherOnce)
		r.send(chatID, askLocation)
	case "weather_updates":
		r.setPending(chatID, pendingWeatherArgs)
		r.send(chatID, askWeatherArgs)
	case "weather_stop":
		r.doStopWeatherUpdates(ctx, userID, chatID)

	case "motivation":
		r.doMotivation(ctx, chatID)
	case "pomodoro_start":
		r.doStartPomodoro(userID, chatID)
	case "pomodoro_stop":
		r.doStopPomodoro(userID, chatID)

	default:
		r.logger.Debug("unknown callback", "data", cb.Data)
	}
}

// handleFreeForm resolves text sent while a conversational flow is
// waiting for input.
func (r *Router) handleFreeForm(ctx context.Context, userID, chatID int64, text string) {
	switch r.takePending(chatID) {
	case pendingReminderTime:
		r.doSetReminder(chatID, text)
	case pendingWeatherArgs:
		r.doSetWeatherUpdates(ctx, userID, chatID, text)
	case pendingWeatherOnce:
		r.doWeatherOnce(ctx, chatID, text)
	case pendingAddProject:
		r.doAddProject(ctx, userID, chatID, text)
	case pendingDeleteProject:
		r.doDeleteProject(ctx, userID, chatID, text)
	case pendingAddTask:
		r.doAddTask(ctx, userID, chatID, text)
	case pendingCompleteTask:
		r.doCompleteTask(ctx, userID, chatID, text)
	case pendingUpdateTask:
		r.doUpdateTask(ctx, userID, chatID, text)
	case pendingDeleteTask:
		r.doDeleteTask(ctx, userID, chatID, text)
	default:
		r.send(chatID, unknownCommandText)
	}
}

func (r *Router) ensureUser(ctx context.Context, from *tgbotapi.User) {
	if from == nil {
		return
	}
	if _, err := r.users.GetOrCreate(ctx, from.ID, from.UserName, from.FirstName, from.LastName); err != nil {
		r.logger.Error("ensure user failed", "user_id", from.ID, "error", err)
	}
}

func (r *Router) send(chatID int64, text string) {
	if err := r.sender.Send(chatID, text); err != nil {
		r.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (r *Router) sendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if err := r.sender.SendWithMarkup(chatID, text, markup); err != nil {
		r.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (r *Router) sendMenu(chatID int64) {
	r.sendWithMarkup(chatID, "Main Menu:", mainMenuKeyboard())
}

// splitCommand splits "/cmd@bot args" into the bare command and the
// remaining argument string.
func splitCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, strings.TrimSpace(args)
}
