package repository

import (
	"context"
	"database/sql"
	"fmt"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/task/entity"
)

// TaskRepository handles task and task_session database operations
type TaskRepository struct {
	DB database.Database
}

func NewTaskRepository(db database.Database) *TaskRepository {
	return &TaskRepository{DB: db}
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByID(ctx context.Context, taskID int64) (*entity.Task, error)
	ListUserTasks(ctx context.Context, userID int64, status, priority, category string, limit, offset int) ([]entity.UserTask, error)
	Update(ctx context.Context, task *entity.Task) error
	UpdateStatus(ctx context.Context, taskID int64, status entity.TaskStatus) error
	Delete(ctx context.Context, taskID int64) error

	StartSession(ctx context.Context, taskID, userID int64) (*entity.TaskSession, error)
	EndSession(ctx context.Context, sessionID, userID int64) (*entity.TaskSession, error)
	ListSessions(ctx context.Context, taskID int64) ([]entity.TaskSession, error)
}

const taskColumns = `task_id, user_id, title, description, status, priority, category,
	estimated_time, actual_time, due_date, scheduled_date,
	start_time::text AS start_time, end_time::text AS end_time,
	tags, dependencies, created_at, updated_at`

// Create inserts the task, and when it carries a scheduled date also a
// linked calendar entry, in one transaction so the pair cannot diverge.
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("TaskRepository:Create:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (user_id, title, description, status, priority, category,
			estimated_time, due_date, scheduled_date, start_time, end_time, tags, dependencies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::time, $11::time, $12, $13)
		RETURNING ` + taskColumns

	var created entity.Task
	err = tx.GetContext(ctx, &created, query,
		task.UserID, task.Title, task.Description, task.Status, task.Priority, task.Category,
		task.EstimatedTime, task.DueDate, task.ScheduledDate, task.StartTime, task.EndTime,
		task.Tags, task.Dependencies)
	if err != nil {
		logger.Error("TaskRepository:Create", err)
		return nil, err
	}

	if created.ScheduledDate != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO calendar_events (task_id, user_id, start_time, end_time, due_date, scheduled_date, event_desc, event_type)
			VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, 'task')
		`, created.TaskID, created.UserID, created.StartTime, created.EndTime,
			created.DueDate, created.ScheduledDate, created.Title)
		if err != nil {
			logger.Error("TaskRepository:Create:Event", err)
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Error("TaskRepository:Create:Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID int64) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`

	var task entity.Task
	err := r.DB.GetContext(ctx, &task, query, taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TaskRepository:GetByID", err)
		return nil, err
	}

	return &task, nil
}

// ListUserTasks reads through the user_tasks view so each task carries its
// optional calendar event. Filters are appended only when set.
func (r *TaskRepository) ListUserTasks(ctx context.Context, userID int64, status, priority, category string, limit, offset int) ([]entity.UserTask, error) {
	query := `
		SELECT task_id, user_id, title, description, status, priority, category,
		       due_date, event_id, scheduled_time
		FROM user_tasks
		WHERE user_id = $1`
	args := []any{userID}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if priority != "" {
		args = append(args, priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY due_date NULLS LAST, task_id"
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var tasks []entity.UserTask
	err := r.DB.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.UserTask{}, nil
		}
		logger.Error("TaskRepository:ListUserTasks", err)
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, category = $6,
		    estimated_time = $7, actual_time = $8, due_date = $9, scheduled_date = $10,
		    start_time = $11::time, end_time = $12::time, tags = $13, dependencies = $14,
		    updated_at = NOW()
		WHERE task_id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		task.TaskID, task.Title, task.Description, task.Status, task.Priority, task.Category,
		task.EstimatedTime, task.ActualTime, task.DueDate, task.ScheduledDate,
		task.StartTime, task.EndTime, task.Tags, task.Dependencies)
	if err != nil {
		logger.Error("TaskRepository:Update", err)
		return err
	}
	return nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID int64, status entity.TaskStatus) error {
	query := `UPDATE tasks SET status = $2, updated_at = NOW() WHERE task_id = $1`
	if err := r.DB.ExecContext(ctx, query, taskID, status); err != nil {
		logger.Error("TaskRepository:UpdateStatus", err)
		return err
	}
	return nil
}

// Delete removes the task. Sessions cascade away; any calendar event
// pointing at it keeps its row with task_id set to NULL.
func (r *TaskRepository) Delete(ctx context.Context, taskID int64) error {
	query := `DELETE FROM tasks WHERE task_id = $1`
	if err := r.DB.ExecContext(ctx, query, taskID); err != nil {
		logger.Error("TaskRepository:Delete", err)
		return err
	}
	return nil
}

// ===================== Sessions =====================

func (r *TaskRepository) StartSession(ctx context.Context, taskID, userID int64) (*entity.TaskSession, error) {
	query := `
		INSERT INTO task_sessions (task_id, user_id, started_at)
		VALUES ($1, $2, NOW())
		RETURNING session_id, task_id, user_id, started_at, ended_at, duration_minutes, created_at
	`

	var session entity.TaskSession
	err := r.DB.GetContext(ctx, &session, query, taskID, userID)
	if err != nil {
		logger.Error("TaskRepository:StartSession", err)
		return nil, err
	}

	return &session, nil
}

func (r *TaskRepository) EndSession(ctx context.Context, sessionID, userID int64) (*entity.TaskSession, error) {
	query := `
		UPDATE task_sessions
		SET ended_at = NOW(),
		    duration_minutes = GREATEST(1, ROUND(EXTRACT(EPOCH FROM (NOW() - started_at)) / 60))
		WHERE session_id = $1 AND user_id = $2 AND ended_at IS NULL
		RETURNING session_id, task_id, user_id, started_at, ended_at, duration_minutes, created_at
	`

	var session entity.TaskSession
	err := r.DB.GetContext(ctx, &session, query, sessionID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TaskRepository:EndSession", err)
		return nil, err
	}

	return &session, nil
}

func (r *TaskRepository) ListSessions(ctx context.Context, taskID int64) ([]entity.TaskSession, error) {
	query := `
		SELECT session_id, task_id, user_id, started_at, ended_at, duration_minutes, created_at
		FROM task_sessions
		WHERE task_id = $1
		ORDER BY started_at DESC
	`

	var sessions []entity.TaskSession
	err := r.DB.SelectContext(ctx, &sessions, query, taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.TaskSession{}, nil
		}
		logger.Error("TaskRepository:ListSessions", err)
		return nil, err
	}

	return sessions, nil
}
