package domain

import "errors"

var ErrTaskNotFound = errors.New("task not found")

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

type Task struct {
	ID          int64
	UserID      int64
	Description string
	Status      TaskStatus
	DueDate     *string // free-text, nil means none
}
