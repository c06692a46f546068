package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/pmarins/taskdeck"
)

const SelectTasks = "SELECT id, title, description, priority, due_date, category, user_id FROM tasks"

type taskEntity struct {
	ID          int64
	Title       string
	Description sql.NullString
	Priority    sql.NullString
	DueDate     sql.NullString
	Category    sql.NullString
	UserID      int64
}

// taskRepo
type taskRepo struct {
	dbGetter txStdLib.DBGetter
	l        taskdeck.Logger
}

var _ taskdeck.TaskRepo = (*taskRepo)(nil)

func NewTaskRepo(dbGetter txStdLib.DBGetter, logger taskdeck.Logger) taskdeck.TaskRepo {
	return &taskRepo{
		l:        logger,
		dbGetter: dbGetter,
	}
}

func (r *taskRepo) InsertTask(ctx context.Context, task taskdeck.TaskRecord) (taskdeck.ExistingTaskRecord, error) {
	if task.Title == "" {
		return taskdeck.ExistingTaskRecord{}, fmt.Errorf("provide required field 'Title'")
	}
	if task.UserID == 0 {
		return taskdeck.ExistingTaskRecord{}, fmt.Errorf("provide required field 'UserID'")
	}

	db := r.dbGetter(ctx)
	e := mapToTaskEntity(taskdeck.ExistingTaskRecord{TaskRecord: task})

	args := []any{
		e.Title,
		e.Description,
		e.Priority,
		e.DueDate,
		e.Category,
		e.UserID,
	}
	query := "INSERT INTO tasks (title, description, priority, due_date, category, user_id) VALUES " + generateParameters(len(args))
	r.l.Debug("creating task", "query", query, "args", args)
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return taskdeck.ExistingTaskRecord{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return taskdeck.ExistingTaskRecord{}, err
	}

	return taskdeck.ExistingTaskRecord{
		TaskRecord: task,
		ID:         int(insertedID),
	}, nil
}

// GetByUserID returns the user's tasks in insertion order.
func (r *taskRepo) GetByUserID(ctx context.Context, userID int) ([]taskdeck.ExistingTaskRecord, error) {
	if userID == 0 {
		return nil, fmt.Errorf("provide userID")
	}

	db := r.dbGetter(ctx)
	query := fmt.Sprintf("%s WHERE user_id=? ORDER BY id", SelectTasks)
	r.l.Debug("getting tasks", "query", query, "userID", userID)
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return extractTasks(rows)
}

// UpdateTask overwrites title and description. A missing id affects zero
// rows and is not an error.
func (r *taskRepo) UpdateTask(ctx context.Context, id int, updated taskdeck.UpdatableFields) error {
	query := "UPDATE tasks SET title = ?, description = ? WHERE id = ?"
	r.l.Debug("updating task", "query", query, "id", id)
	result, err := r.dbGetter(ctx).ExecContext(ctx, query, updated.Title, updated.Description, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		r.l.Debug("update affected no rows", "id", id)
	}
	return nil
}

// DeleteTask removes the task. A missing id affects zero rows and is not
// an error.
func (r *taskRepo) DeleteTask(ctx context.Context, id int) error {
	query := "DELETE FROM tasks WHERE id = ?"
	r.l.Debug("deleting task", "query", query, "id", id)
	result, err := r.dbGetter(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		r.l.Debug("delete affected no rows", "id", id)
	}
	return nil
}

func extractTasks(rows *sql.Rows) ([]taskdeck.ExistingTaskRecord, error) {
	var tasks []taskdeck.ExistingTaskRecord
	for rows.Next() {
		task, err := extractTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func extractTask(s scannable) (taskdeck.ExistingTaskRecord, error) {
	var e taskEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Description, &e.Priority, &e.DueDate, &e.Category, &e.UserID); err != nil {
		return taskdeck.ExistingTaskRecord{}, err
	}

	return mapToExistingTaskRecord(e), nil
}

func mapToTaskEntity(task taskdeck.ExistingTaskRecord) taskEntity {
	var e taskEntity
	e.ID = int64(task.ID)
	e.Title = task.Title
	e.UserID = int64(task.UserID)

	if task.Description != "" {
		e.Description = sql.NullString{
			Valid:  true,
			String: task.Description,
		}
	}
	if task.Priority != "" {
		e.Priority = sql.NullString{
			Valid:  true,
			String: task.Priority,
		}
	}
	if task.DueDate != "" {
		e.DueDate = sql.NullString{
			Valid:  true,
			String: task.DueDate,
		}
	}
	if task.Category != "" {
		e.Category = sql.NullString{
			Valid:  true,
			String: task.Category,
		}
	}
	return e
}

func mapToExistingTaskRecord(e taskEntity) taskdeck.ExistingTaskRecord {
	return taskdeck.ExistingTaskRecord{
		ID: int(e.ID),
		TaskRecord: taskdeck.TaskRecord{
			Title:       e.Title,
			Description: e.Description.String,
			Priority:    e.Priority.String,
			DueDate:     e.DueDate.String,
			Category:    e.Category.String,
			UserID:      int(e.UserID),
		},
	}
}
