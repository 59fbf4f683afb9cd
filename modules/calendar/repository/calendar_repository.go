package repository

import (
	"context"
	"database/sql"
	"fmt"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/calendar/entity"
)

// CalendarRepository handles calendar_events database operations
type CalendarRepository struct {
	DB database.Database
}

func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

type CalendarRepositoryInterface interface {
	Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error)
	GetByID(ctx context.Context, eventID int64) (*entity.CalendarEvent, error)
	ListByUser(ctx context.Context, userID int64, from, to, eventType string) ([]entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) error
	Delete(ctx context.Context, eventID int64) error
	UpcomingMeetings(ctx context.Context, userID int64) ([]entity.UpcomingMeeting, error)
	MarkSynced(ctx context.Context, eventID int64, googleEventRef string) error
}

const eventColumns = `event_id, task_id, user_id,
	start_time::text AS start_time, end_time::text AS end_time,
	due_date, scheduled_date, event_desc, event_type, google_event_ref,
	COALESCE(is_calendar_synced, FALSE) AS is_calendar_synced, created_at`

func (r *CalendarRepository) Create(ctx context.Context, event *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	query := `
		INSERT INTO calendar_events (task_id, user_id, start_time, end_time, due_date, scheduled_date, event_desc, event_type)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var created entity.CalendarEvent
	err := r.DB.GetContext(ctx, &created, query,
		event.TaskID, event.UserID, event.StartTime, event.EndTime,
		event.DueDate, event.ScheduledDate, event.EventDesc, event.EventType)
	if err != nil {
		logger.Error("CalendarRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *CalendarRepository) GetByID(ctx context.Context, eventID int64) (*entity.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE event_id = $1`

	var event entity.CalendarEvent
	err := r.DB.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *CalendarRepository) ListByUser(ctx context.Context, userID int64, from, to, eventType string) ([]entity.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE user_id = $1`
	args := []any{userID}

	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND scheduled_date >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND scheduled_date <= $%d", len(args))
	}
	if eventType != "" {
		args = append(args, eventType)
		query += fmt.Sprintf(" AND event_type = $%d", len(args))
	}
	query += " ORDER BY scheduled_date NULLS LAST, start_time"

	var events []entity.CalendarEvent
	err := r.DB.SelectContext(ctx, &events, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.CalendarEvent{}, nil
		}
		logger.Error("CalendarRepository:ListByUser", err)
		return nil, err
	}

	return events, nil
}

func (r *CalendarRepository) Update(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events
		SET task_id = $2, start_time = $3::time, end_time = $4::time,
		    due_date = $5, scheduled_date = $6, event_desc = $7, event_type = $8
		WHERE event_id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		event.EventID, event.TaskID, event.StartTime, event.EndTime,
		event.DueDate, event.ScheduledDate, event.EventDesc, event.EventType)
	if err != nil {
		logger.Error("CalendarRepository:Update", err)
		return err
	}
	return nil
}

// Delete removes the event; its meeting link and collaborator rows
// cascade away with it.
func (r *CalendarRepository) Delete(ctx context.Context, eventID int64) error {
	query := `DELETE FROM calendar_events WHERE event_id = $1`
	if err := r.DB.ExecContext(ctx, query, eventID); err != nil {
		logger.Error("CalendarRepository:Delete", err)
		return err
	}
	return nil
}

// UpcomingMeetings reads the upcoming_meetings view, restricted to
// meetings the user organizes or participates in.
func (r *CalendarRepository) UpcomingMeetings(ctx context.Context, userID int64) ([]entity.UpcomingMeeting, error) {
	query := `
		SELECT um.event_id, um.organizer_id, um.organizer_username,
		       um.start_time::text AS start_time, um.end_time::text AS end_time,
		       um.scheduled_date, um.event_desc, um.event_type,
		       um.meeting_url, um.platform, um.collaborator_count
		FROM upcoming_meetings um
		WHERE um.organizer_id = $1
		   OR EXISTS (
			SELECT 1 FROM event_collaborators ec
			WHERE ec.event_id = um.event_id AND ec.user_id = $1
		   )
	`

	var meetings []entity.UpcomingMeeting
	err := r.DB.SelectContext(ctx, &meetings, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.UpcomingMeeting{}, nil
		}
		logger.Error("CalendarRepository:UpcomingMeetings", err)
		return nil, err
	}

	return meetings, nil
}

func (r *CalendarRepository) MarkSynced(ctx context.Context, eventID int64, googleEventRef string) error {
	query := `UPDATE calendar_events SET is_calendar_synced = TRUE, google_event_ref = $2 WHERE event_id = $1`
	if err := r.DB.ExecContext(ctx, query, eventID, googleEventRef); err != nil {
		logger.Error("CalendarRepository:MarkSynced", err)
		return err
	}
	return nil
}
