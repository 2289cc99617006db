package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// Statuses lists every valid status in display order.
var Statuses = []TaskStatus{StatusTodo, StatusDoing, StatusDone}

// ParseStatus accepts the exact, case-sensitive status names only.
func ParseStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}

type Task struct {
	ID        string
	Title     string
	Status    TaskStatus
	Priority  int
	CreatedAt time.Time
}

// NewTask creates a task stamped with the current time
func NewTask(title string, status TaskStatus, priority int) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return &Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}, nil
}
