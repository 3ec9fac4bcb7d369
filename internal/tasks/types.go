package tasks

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus accepts the canonical names case-insensitively, plus
// "in_progress" and "inprogress" for in-progress.
func ParseTaskStatus(in string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "pending":
		return TaskStatusPending, nil
	case "in-progress", "in_progress", "inprogress":
		return TaskStatusInProgress, nil
	case "completed":
		return TaskStatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, in)
	}
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	return t
}

func (t Task) validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: task id is empty", ErrInvalidSeed)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: task %s has status %q", ErrInvalidSeed, t.ID, t.Status)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("%w: task %s updated_at precedes created_at", ErrInvalidSeed, t.ID)
	}
	return nil
}
