package taskdeck

import (
	"context"
)

type TaskRepo interface {
	InsertTask(context.Context, TaskRecord) (ExistingTaskRecord, error)
	GetByUserID(ctx context.Context, userID int) ([]ExistingTaskRecord, error)
	UpdateTask(ctx context.Context, id int, updated UpdatableFields) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRecord represents the data needed to create a new task
type TaskRecord struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
	Category    string
	UserID      int
}

type UpdatableFields struct {
	Title       string
	Description string
}

// ExistingTaskRecord represents a task that exists in the database
type ExistingTaskRecord struct {
	TaskRecord
	ID int
}
