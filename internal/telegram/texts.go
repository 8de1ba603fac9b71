package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	welcomeText = "Hi! I'm your coding assistant. I keep track of your projects and tasks, " +
		"nudge you to code every day, push the morning weather and run pomodoro timers.\n\n" +
		"Use /menu to browse or /help for the command list."

	helpText = `Commands:
/menu — interactive menu
/add_project NAME [DESCRIPTION] — add a project
/projects — list your projects
/delete_project NAME — delete a project
/add_task DESCRIPTION — add a task
/tasks — list your tasks
/done TASK_ID — mark a task completed
/update_task TASK_ID STATUS — change a task's status
/delete_task TASK_ID — delete a task
/set_reminder HH:MM — daily coding reminder (UTC)
/stop_reminder — stop the reminder
/weather LOCATION — current weather
/set_weather_updates LOCATION HH:MM — daily weather push (UTC)
/stop_weather_updates — stop weather pushes
/start_pomodoro — 25 min work, 5 min break
/stop_pomodoro — cancel the running session
/motivation — quote of the day`

	askReminderTime  = "Send the reminder time as HH:MM (24-hour, UTC)."
	askWeatherArgs   = "Send: LOCATION HH:MM (24-hour, UTC). Example: Paris 08:00"
	askLocation      = "Send a location. Example: Tokyo"
	askProjectToAdd  = "Send: PROJECT_NAME [DESCRIPTION]"
	askProjectToDrop = "Send the name of the project to delete."
	askTaskToAdd     = "Send the task description."
	askTaskID        = "Send the task ID (see /tasks)."
	askTaskUpdate    = "Send: TASK_ID STATUS (Pending, In Progress or Completed)."

	noReminderText     = "No active reminders to stop."
	reminderStopped    = "Reminder stopped."
	noWeatherText      = "No active weather updates to stop."
	weatherStopped     = "Weather updates stopped."
	quoteFallbackText  = "Sorry, I couldn't fetch a quote right now."
	unknownCommandText = "I didn't get that. Try /menu or /help."
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📁 Projects", "menu_projects"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Tasks", "menu_tasks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Reminders", "menu_reminders"),
			tgbotapi.NewInlineKeyboardButtonData("🌦 Weather", "menu_weather"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Extras", "menu_extras"),
		),
	)
}

func projectsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Project", "add_project"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Show Projects", "show_projects"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete Project", "delete_project"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", "back_to_main"),
		),
	)
}

func tasksMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Task", "add_task"),
			tgbotapi.NewInlineKeyboardButtonData("👀 View Tasks", "view_tasks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Complete Task", "complete_task"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete Task", "drop_task"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Update Status", "update_task"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", "back_to_main"),
		),
	)
}

func remindersMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Set Reminder", "set_reminder"),
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop Reminder", "stop_reminder"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", "back_to_main"),
		),
	)
}

func weatherMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌤 One-time Weather", "weather_once"),
			tgbotapi.NewInlineKeyboardButtonData("📅 Set Weather Updates", "weather_updates"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop Weather Updates", "weather_stop"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", "back_to_main"),
		),
	)
}

func extrasMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Motivation", "motivation"),
			tgbotapi.NewInlineKeyboardButtonData("🍅 Start Pomodoro", "pomodoro_start"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ Stop Pomodoro", "pomodoro_stop"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", "back_to_main"),
		),
	)
}
