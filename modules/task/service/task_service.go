package service

import (
	"context"
	"strings"
	"time"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/params"
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/entity"
	"agenda-api/modules/task/repository"
)

type TaskService struct {
	repo repository.TaskRepositoryInterface
}

func NewTaskService(repo repository.TaskRepositoryInterface) *TaskService {
	return &TaskService{repo: repo}
}

func parseDate(s *string) (*time.Time, *errors.AppError) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}
	return &d, nil
}

func parseClock(s *string) (*string, *errors.AppError) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, *s); err == nil {
			v := t.Format("15:04:05")
			return &v, nil
		}
	}
	return nil, errors.NewAppError(errors.ErrInvalidInput, "time must be HH:MM", nil)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create validates the enumerated domains before the write; the store's
// check constraints are the final authority either way.
func (s *TaskService) Create(ctx context.Context, userID int64, req *dto.CreateTaskRequest) (*entity.Task, *errors.AppError) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}

	status := entity.TaskStatus(req.Status)
	if req.Status == "" {
		status = entity.TaskStatusTodo
	}
	if !status.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "status must be one of todo, in-progress, done, blocked", nil)
	}

	priority := entity.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = entity.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "priority must be one of low, medium, high, urgent", nil)
	}

	dueDate, appErr := parseDate(req.DueDate)
	if appErr != nil {
		return nil, appErr
	}
	scheduledDate, appErr := parseDate(req.ScheduledDate)
	if appErr != nil {
		return nil, appErr
	}
	startTime, appErr := parseClock(req.StartTime)
	if appErr != nil {
		return nil, appErr
	}
	endTime, appErr := parseClock(req.EndTime)
	if appErr != nil {
		return nil, appErr
	}

	task := &entity.Task{
		UserID:        userID,
		Title:         req.Title,
		Description:   optional(req.Description),
		Status:        status,
		Priority:      priority,
		Category:      optional(req.Category),
		EstimatedTime: req.EstimatedTime,
		DueDate:       dueDate,
		ScheduledDate: scheduledDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Tags:          optional(req.Tags),
		Dependencies:  optional(req.Dependencies),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to create task")
	}

	logger.Info("TaskService:Create:Success", "task_id", created.TaskID, "user_id", userID)
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*entity.Task, *errors.AppError) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get task")
	}
	if task == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "task not found", nil)
	}
	if task.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "task belongs to another user", nil)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID int64, filter *dto.ListTasksFilter, qp *params.QueryParams) ([]dto.UserTaskResponse, *errors.AppError) {
	if filter.Status != "" && !entity.TaskStatus(filter.Status).IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "unknown status filter", nil)
	}
	if filter.Priority != "" && !entity.TaskPriority(filter.Priority).IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "unknown priority filter", nil)
	}

	tasks, err := s.repo.ListUserTasks(ctx, userID, filter.Status, filter.Priority, filter.Category, qp.PageSize, qp.Offset())
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to list tasks")
	}

	result := make([]dto.UserTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, dto.UserTaskResponse{
			TaskID:        t.TaskID,
			UserID:        t.UserID,
			Title:         t.Title,
			Description:   t.Description,
			Status:        t.Status,
			Priority:      t.Priority,
			Category:      t.Category,
			DueDate:       t.DueDate,
			EventID:       t.EventID,
			ScheduledTime: t.ScheduledTime,
		})
	}
	return result, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req *dto.UpdateTaskRequest) (*entity.Task, *errors.AppError) {
	task, appErr := s.Get(ctx, userID, taskID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "title cannot be empty", nil)
		}
		task.Title = title
	}
	if req.Status != nil {
		status := entity.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "status must be one of todo, in-progress, done, blocked", nil)
		}
		task.Status = status
	}
	if req.Priority != nil {
		priority := entity.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "priority must be one of low, medium, high, urgent", nil)
		}
		task.Priority = priority
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Category != nil {
		task.Category = req.Category
	}
	if req.EstimatedTime != nil {
		task.EstimatedTime = req.EstimatedTime
	}
	if req.ActualTime != nil {
		task.ActualTime = req.ActualTime
	}
	if req.DueDate != nil {
		d, appErr := parseDate(req.DueDate)
		if appErr != nil {
			return nil, appErr
		}
		task.DueDate = d
	}
	if req.ScheduledDate != nil {
		d, appErr := parseDate(req.ScheduledDate)
		if appErr != nil {
			return nil, appErr
		}
		task.ScheduledDate = d
	}
	if req.StartTime != nil {
		t, appErr := parseClock(req.StartTime)
		if appErr != nil {
			return nil, appErr
		}
		task.StartTime = t
	}
	if req.EndTime != nil {
		t, appErr := parseClock(req.EndTime)
		if appErr != nil {
			return nil, appErr
		}
		task.EndTime = t
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.Dependencies != nil {
		task.Dependencies = req.Dependencies
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, errors.FromPostgres(err, "failed to update task")
	}
	return task, nil
}

func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) *errors.AppError {
	if _, appErr := s.Get(ctx, userID, taskID); appErr != nil {
		return appErr
	}
	if err := s.repo.UpdateStatus(ctx, taskID, entity.TaskStatusDone); err != nil {
		return errors.FromPostgres(err, "failed to complete task")
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) *errors.AppError {
	if _, appErr := s.Get(ctx, userID, taskID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return errors.FromPostgres(err, "failed to delete task")
	}
	logger.Info("TaskService:Delete:Success", "task_id", taskID, "user_id", userID)
	return nil
}

func (s *TaskService) StartSession(ctx context.Context, userID, taskID int64) (*entity.TaskSession, *errors.AppError) {
	if _, appErr := s.Get(ctx, userID, taskID); appErr != nil {
		return nil, appErr
	}

	session, err := s.repo.StartSession(ctx, taskID, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to start session")
	}
	return session, nil
}

func (s *TaskService) EndSession(ctx context.Context, userID, sessionID int64) (*entity.TaskSession, *errors.AppError) {
	session, err := s.repo.EndSession(ctx, sessionID, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to end session")
	}
	if session == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "open session not found", nil)
	}
	return session, nil
}

func (s *TaskService) ListSessions(ctx context.Context, userID, taskID int64) ([]entity.TaskSession, *errors.AppError) {
	if _, appErr := s.Get(ctx, userID, taskID); appErr != nil {
		return nil, appErr
	}

	sessions, err := s.repo.ListSessions(ctx, taskID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to list sessions")
	}
	return sessions, nil
}
