package service

import (
	"context"
	"testing"

	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaskRepo struct {
	tasks      map[int64]*entity.Task
	created    *entity.Task
	err        error
	sessions   map[int64]*entity.TaskSession
	listLimit  int
	listOffset int
}

func (s *stubTaskRepo) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := *task
	created.TaskID = 1
	s.created = &created
	return &created, nil
}

func (s *stubTaskRepo) GetByID(ctx context.Context, taskID int64) (*entity.Task, error) {
	return s.tasks[taskID], nil
}

func (s *stubTaskRepo) ListUserTasks(ctx context.Context, userID int64, status, priority, category string, limit, offset int) ([]entity.UserTask, error) {
	s.listLimit = limit
	s.listOffset = offset
	return nil, s.err
}

func (s *stubTaskRepo) Update(ctx context.Context, task *entity.Task) error { return s.err }
func (s *stubTaskRepo) UpdateStatus(ctx context.Context, taskID int64, status entity.TaskStatus) error {
	if t, ok := s.tasks[taskID]; ok {
		t.Status = status
	}
	return s.err
}
func (s *stubTaskRepo) Delete(ctx context.Context, taskID int64) error { return s.err }

func (s *stubTaskRepo) StartSession(ctx context.Context, taskID, userID int64) (*entity.TaskSession, error) {
	return &entity.TaskSession{SessionID: 1, TaskID: taskID, UserID: userID}, s.err
}

func (s *stubTaskRepo) EndSession(ctx context.Context, sessionID, userID int64) (*entity.TaskSession, error) {
	return s.sessions[sessionID], s.err
}

func (s *stubTaskRepo) ListSessions(ctx context.Context, taskID int64) ([]entity.TaskSession, error) {
	return nil, s.err
}

func TestCreateTaskDefaults(t *testing.T) {
	repo := &stubTaskRepo{}
	svc := NewTaskService(repo)

	created, appErr := svc.Create(context.Background(), 1, &dto.CreateTaskRequest{Title: "write report"})
	require.Nil(t, appErr)
	assert.Equal(t, entity.TaskStatusTodo, created.Status)
	assert.Equal(t, entity.TaskPriorityMedium, created.Priority)
	assert.Equal(t, int64(1), created.UserID)
}

func TestCreateTaskInvalidDomain(t *testing.T) {
	svc := NewTaskService(&stubTaskRepo{})

	_, appErr := svc.Create(context.Background(), 1, &dto.CreateTaskRequest{Title: "x", Status: "completed"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)

	_, appErr = svc.Create(context.Background(), 1, &dto.CreateTaskRequest{Title: "x", Priority: "critical"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestCreateTaskCheckViolationFromStore(t *testing.T) {
	// The store's check constraint is the final authority even if the
	// application-side validation were bypassed.
	svc := NewTaskService(&stubTaskRepo{err: &pq.Error{Code: "23514", Constraint: "tasks_status_check"}})

	_, appErr := svc.Create(context.Background(), 1, &dto.CreateTaskRequest{Title: "x"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestCreateTaskParsesDatesAndTimes(t *testing.T) {
	repo := &stubTaskRepo{}
	svc := NewTaskService(repo)

	due := "2026-09-15"
	start := "09:30"
	created, appErr := svc.Create(context.Background(), 1, &dto.CreateTaskRequest{
		Title:     "standup",
		DueDate:   &due,
		StartTime: &start,
	})
	require.Nil(t, appErr)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-09-15", created.DueDate.Format("2006-01-02"))
	require.NotNil(t, created.StartTime)
	assert.Equal(t, "09:30:00", *created.StartTime)

	bad := "15/09/2026"
	_, appErr = svc.Create(context.Background(), 1, &dto.CreateTaskRequest{Title: "x", DueDate: &bad})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetTaskOwnership(t *testing.T) {
	task := &entity.Task{TaskID: 7, UserID: 1, Title: "mine", Status: entity.TaskStatusTodo}
	svc := NewTaskService(&stubTaskRepo{tasks: map[int64]*entity.Task{7: task}})

	got, appErr := svc.Get(context.Background(), 1, 7)
	require.Nil(t, appErr)
	assert.Equal(t, "mine", got.Title)

	_, appErr = svc.Get(context.Background(), 2, 7)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.Get(context.Background(), 1, 99)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCompleteTask(t *testing.T) {
	task := &entity.Task{TaskID: 7, UserID: 1, Status: entity.TaskStatusInProgress}
	repo := &stubTaskRepo{tasks: map[int64]*entity.Task{7: task}}
	svc := NewTaskService(repo)

	require.Nil(t, svc.Complete(context.Background(), 1, 7))
	assert.Equal(t, entity.TaskStatusDone, task.Status)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	svc := NewTaskService(&stubTaskRepo{})

	_, appErr := svc.List(context.Background(), 1, &dto.ListTasksFilter{Status: "archived"}, &params.QueryParams{PageNumber: 1, PageSize: 20})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestListPassesPagination(t *testing.T) {
	repo := &stubTaskRepo{}
	svc := NewTaskService(repo)

	_, appErr := svc.List(context.Background(), 1, &dto.ListTasksFilter{}, &params.QueryParams{PageNumber: 2, PageSize: 50})
	require.Nil(t, appErr)
	assert.Equal(t, 50, repo.listLimit)
	assert.Equal(t, 50, repo.listOffset)
}

func TestEndSessionNotFound(t *testing.T) {
	svc := NewTaskService(&stubTaskRepo{sessions: map[int64]*entity.TaskSession{}})

	_, appErr := svc.EndSession(context.Background(), 1, 42)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
