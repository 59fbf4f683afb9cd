package service

import (
	"context"
	"testing"

	"agenda-api/core/errors"
	"agenda-api/core/worker"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalendarRepo struct {
	events  map[int64]*entity.CalendarEvent
	created *entity.CalendarEvent
	synced  map[int64]string
	err     error
}

func (s *stubCalendarRepo) Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := *event
	created.EventID = 1
	s.created = &created
	return &created, nil
}

func (s *stubCalendarRepo) GetByID(ctx context.Context, eventID int64) (*entity.CalendarEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events[eventID], nil
}

func (s *stubCalendarRepo) ListByUser(ctx context.Context, userID int64, from, to, eventType string) ([]entity.CalendarEvent, error) {
	return nil, s.err
}

func (s *stubCalendarRepo) Update(ctx context.Context, event *entity.CalendarEvent) error {
	return s.err
}
func (s *stubCalendarRepo) Delete(ctx context.Context, eventID int64) error { return s.err }

func (s *stubCalendarRepo) UpcomingMeetings(ctx context.Context, userID int64) ([]entity.UpcomingMeeting, error) {
	return nil, s.err
}

func (s *stubCalendarRepo) MarkSynced(ctx context.Context, eventID int64, googleEventRef string) error {
	if s.synced == nil {
		s.synced = map[int64]string{}
	}
	s.synced[eventID] = googleEventRef
	return s.err
}

func TestCreateEventDefaultsToTaskType(t *testing.T) {
	repo := &stubCalendarRepo{}
	svc := NewCalendarService(repo, nil)

	created, appErr := svc.Create(context.Background(), 1, &dto.CreateEventRequest{})
	require.Nil(t, appErr)
	assert.Equal(t, entity.EventTypeTask, created.EventType)
	assert.Equal(t, int64(1), created.UserID)
}

func TestCreateEventInvalidType(t *testing.T) {
	svc := NewCalendarService(&stubCalendarRepo{}, nil)

	_, appErr := svc.Create(context.Background(), 1, &dto.CreateEventRequest{EventType: "appointment"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestCreateEventParsesClockAndDate(t *testing.T) {
	repo := &stubCalendarRepo{}
	svc := NewCalendarService(repo, nil)

	start := "14:00"
	scheduled := "2026-10-01"
	created, appErr := svc.Create(context.Background(), 1, &dto.CreateEventRequest{
		EventType:     "meeting",
		StartTime:     &start,
		ScheduledDate: &scheduled,
	})
	require.Nil(t, appErr)
	require.NotNil(t, created.StartTime)
	assert.Equal(t, "14:00:00", *created.StartTime)
	require.NotNil(t, created.ScheduledDate)
	assert.Equal(t, "2026-10-01", created.ScheduledDate.Format("2006-01-02"))

	bad := "2pm"
	_, appErr = svc.Create(context.Background(), 1, &dto.CreateEventRequest{StartTime: &bad})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateEventDanglingTask(t *testing.T) {
	svc := NewCalendarService(&stubCalendarRepo{err: &pq.Error{Code: "23503", Constraint: "calendar_events_task_id_fkey"}}, nil)

	taskID := int64(999)
	_, appErr := svc.Create(context.Background(), 1, &dto.CreateEventRequest{TaskID: &taskID})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidReference, appErr.Code)
}

func TestGetEventOwnership(t *testing.T) {
	event := &entity.CalendarEvent{EventID: 5, UserID: 1, EventType: entity.EventTypeMeeting}
	svc := NewCalendarService(&stubCalendarRepo{events: map[int64]*entity.CalendarEvent{5: event}}, nil)

	got, appErr := svc.Get(context.Background(), 1, 5)
	require.Nil(t, appErr)
	assert.Equal(t, int64(5), got.EventID)

	_, appErr = svc.Get(context.Background(), 2, 5)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.Get(context.Background(), 1, 404)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestListEventsRejectsUnknownTypeFilter(t *testing.T) {
	svc := NewCalendarService(&stubCalendarRepo{}, nil)

	_, appErr := svc.List(context.Background(), 1, &dto.ListEventsFilter{EventType: "standup"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestUpdateEventAppliesPartialFields(t *testing.T) {
	event := &entity.CalendarEvent{EventID: 3, UserID: 1, EventType: entity.EventTypeTask}
	repo := &stubCalendarRepo{events: map[int64]*entity.CalendarEvent{3: event}}
	svc := NewCalendarService(repo, nil)

	newType := "meeting"
	end := "15:30"
	updated, appErr := svc.Update(context.Background(), 1, 3, &dto.UpdateEventRequest{
		EventType: &newType,
		EndTime:   &end,
	})
	require.Nil(t, appErr)
	assert.Equal(t, entity.EventTypeMeeting, updated.EventType)
	require.NotNil(t, updated.EndTime)
	assert.Equal(t, "15:30:00", *updated.EndTime)

	badType := "reminder"
	_, appErr = svc.Update(context.Background(), 1, 3, &dto.UpdateEventRequest{EventType: &badType})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)
}

func TestHandleSyncStampsEvent(t *testing.T) {
	event := &entity.CalendarEvent{EventID: 9, UserID: 1, EventType: entity.EventTypeMeeting}
	repo := &stubCalendarRepo{events: map[int64]*entity.CalendarEvent{9: event}}
	svc := NewCalendarService(repo, nil)

	err := svc.HandleSync(context.Background(), worker.CalendarSyncPayload{EventID: 9, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "agenda-9", repo.synced[9])
}

func TestHandleSyncSkipsAlreadySynced(t *testing.T) {
	event := &entity.CalendarEvent{EventID: 9, UserID: 1, IsCalendarSynced: true}
	repo := &stubCalendarRepo{events: map[int64]*entity.CalendarEvent{9: event}}
	svc := NewCalendarService(repo, nil)

	err := svc.HandleSync(context.Background(), worker.CalendarSyncPayload{EventID: 9, UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, repo.synced)
}

func TestHandleSyncToleratesDeletedEvent(t *testing.T) {
	repo := &stubCalendarRepo{}
	svc := NewCalendarService(repo, nil)

	err := svc.HandleSync(context.Background(), worker.CalendarSyncPayload{EventID: 42, UserID: 1})
	require.NoError(t, err)
}
