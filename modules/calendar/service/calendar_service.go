package service

import (
	"context"
	"fmt"
	"time"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/worker"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/entity"
	"agenda-api/modules/calendar/repository"
)

type CalendarService struct {
	repo   repository.CalendarRepositoryInterface
	worker *worker.Client
}

func NewCalendarService(repo repository.CalendarRepositoryInterface, workerClient *worker.Client) *CalendarService {
	return &CalendarService{repo: repo, worker: workerClient}
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

func (s *CalendarService) Create(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*entity.CalendarEvent, *errors.AppError) {
	eventType := entity.EventType(req.EventType)
	if req.EventType == "" {
		eventType = entity.EventTypeTask
	}
	if !eventType.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "event_type must be one of task, meeting, event", nil)
	}

	startTime, appErr := parseClock(req.StartTime)
	if appErr != nil {
		return nil, appErr
	}
	endTime, appErr := parseClock(req.EndTime)
	if appErr != nil {
		return nil, appErr
	}
	dueDate, appErr := parseDate(req.DueDate)
	if appErr != nil {
		return nil, appErr
	}
	scheduledDate, appErr := parseDate(req.ScheduledDate)
	if appErr != nil {
		return nil, appErr
	}

	event := &entity.CalendarEvent{
		TaskID:        req.TaskID,
		UserID:        userID,
		StartTime:     startTime,
		EndTime:       endTime,
		DueDate:       dueDate,
		ScheduledDate: scheduledDate,
		EventType:     eventType,
	}
	if req.EventDesc != "" {
		event.EventDesc = &req.EventDesc
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		// A dangling task_id surfaces as a foreign key violation here.
		return nil, errors.FromPostgres(err, "failed to create calendar event")
	}

	logger.Info("CalendarService:Create:Success", "event_id", created.EventID, "user_id", userID, "event_type", created.EventType)
	return created, nil
}

func (s *CalendarService) Get(ctx context.Context, userID, eventID int64) (*entity.CalendarEvent, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get calendar event")
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}
	if event.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}
	return event, nil
}

func (s *CalendarService) List(ctx context.Context, userID int64, filter *dto.ListEventsFilter) ([]entity.CalendarEvent, *errors.AppError) {
	if filter.EventType != "" && !entity.EventType(filter.EventType).IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "unknown event_type filter", nil)
	}

	events, err := s.repo.ListByUser(ctx, userID, filter.From, filter.To, filter.EventType)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to list calendar events")
	}
	return events, nil
}

func (s *CalendarService) Update(ctx context.Context, userID, eventID int64, req *dto.UpdateEventRequest) (*entity.CalendarEvent, *errors.AppError) {
	event, appErr := s.Get(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}

	if req.TaskID != nil {
		event.TaskID = req.TaskID
	}
	if req.EventType != nil {
		eventType := entity.EventType(*req.EventType)
		if !eventType.IsValid() {
			return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "event_type must be one of task, meeting, event", nil)
		}
		event.EventType = eventType
	}
	if req.StartTime != nil {
		t, appErr := parseClock(req.StartTime)
		if appErr != nil {
			return nil, appErr
		}
		event.StartTime = t
	}
	if req.EndTime != nil {
		t, appErr := parseClock(req.EndTime)
		if appErr != nil {
			return nil, appErr
		}
		event.EndTime = t
	}
	if req.DueDate != nil {
		d, appErr := parseDate(req.DueDate)
		if appErr != nil {
			return nil, appErr
		}
		event.DueDate = d
	}
	if req.ScheduledDate != nil {
		d, appErr := parseDate(req.ScheduledDate)
		if appErr != nil {
			return nil, appErr
		}
		event.ScheduledDate = d
	}
	if req.EventDesc != nil {
		event.EventDesc = req.EventDesc
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, errors.FromPostgres(err, "failed to update calendar event")
	}
	return event, nil
}

func (s *CalendarService) Delete(ctx context.Context, userID, eventID int64) *errors.AppError {
	if _, appErr := s.Get(ctx, userID, eventID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return errors.FromPostgres(err, "failed to delete calendar event")
	}
	logger.Info("CalendarService:Delete:Success", "event_id", eventID, "user_id", userID)
	return nil
}

func (s *CalendarService) UpcomingMeetings(ctx context.Context, userID int64) ([]entity.UpcomingMeeting, *errors.AppError) {
	meetings, err := s.repo.UpcomingMeetings(ctx, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get upcoming meetings")
	}
	return meetings, nil
}

// RequestSync enqueues a background job to push the event to the
// external calendar. The event row is only stamped when the job runs.
func (s *CalendarService) RequestSync(ctx context.Context, userID, eventID int64) *errors.AppError {
	if _, appErr := s.Get(ctx, userID, eventID); appErr != nil {
		return appErr
	}

	if s.worker == nil {
		return errors.NewAppError(errors.ErrInternalServer, "background worker not configured", nil)
	}

	err := s.worker.EnqueueCalendarSync(ctx, worker.CalendarSyncPayload{EventID: eventID, UserID: userID})
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to enqueue calendar sync", err)
	}
	return nil
}

// HandleSync is the worker-side handler. It stamps the event with a
// provider reference; pushing to the real external calendar belongs to
// the integration layer outside this store.
func (s *CalendarService) HandleSync(ctx context.Context, payload worker.CalendarSyncPayload) error {
	event, err := s.repo.GetByID(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("calendar sync %d: %w", payload.EventID, err)
	}
	if event == nil {
		logger.Warn("CalendarService:HandleSync:EventGone", "event_id", payload.EventID)
		return nil
	}
	if event.IsCalendarSynced {
		return nil
	}

	ref := fmt.Sprintf("agenda-%d", event.EventID)
	if err := s.repo.MarkSynced(ctx, event.EventID, ref); err != nil {
		return fmt.Errorf("calendar sync %d: %w", payload.EventID, err)
	}

	logger.Info("CalendarService:HandleSync:Success", "event_id", event.EventID, "ref", ref)
	return nil
}
