package entity

import "time"

// EventType is the closed event kind domain, mirrored by the check
// constraint on calendar_events.event_type.
type EventType string

const (
	EventTypeTask    EventType = "task"
	EventTypeMeeting EventType = "meeting"
	EventTypeEvent   EventType = "event"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeTask, EventTypeMeeting, EventTypeEvent:
		return true
	}
	return false
}

// CalendarEvent is a scheduled slot owned by one user, optionally
// linked to a task. Deleting the task keeps the event and clears
// task_id; deleting the owner removes the event.
type CalendarEvent struct {
	EventID          int64      `db:"event_id" json:"event_id"`
	TaskID           *int64     `db:"task_id" json:"task_id,omitempty"`
	UserID           int64      `db:"user_id" json:"user_id"`
	StartTime        *string    `db:"start_time" json:"start_time,omitempty"` // HH:MM:SS
	EndTime          *string    `db:"end_time" json:"end_time,omitempty"`
	DueDate          *time.Time `db:"due_date" json:"due_date,omitempty"`
	ScheduledDate    *time.Time `db:"scheduled_date" json:"scheduled_date,omitempty"`
	EventDesc        *string    `db:"event_desc" json:"event_desc,omitempty"`
	EventType        EventType  `db:"event_type" json:"event_type"`
	GoogleEventRef   *string    `db:"google_event_ref" json:"google_event_ref,omitempty"`
	IsCalendarSynced bool       `db:"is_calendar_synced" json:"is_calendar_synced"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// UpcomingMeeting is one row of the upcoming_meetings view.
type UpcomingMeeting struct {
	EventID           int64      `db:"event_id" json:"event_id"`
	OrganizerID       int64      `db:"organizer_id" json:"organizer_id"`
	OrganizerUsername string     `db:"organizer_username" json:"organizer_username"`
	StartTime         *string    `db:"start_time" json:"start_time,omitempty"`
	EndTime           *string    `db:"end_time" json:"end_time,omitempty"`
	ScheduledDate     *time.Time `db:"scheduled_date" json:"scheduled_date,omitempty"`
	EventDesc         *string    `db:"event_desc" json:"event_desc,omitempty"`
	EventType         EventType  `db:"event_type" json:"event_type"`
	MeetingURL        *string    `db:"meeting_url" json:"meeting_url,omitempty"`
	Platform          *string    `db:"platform" json:"platform,omitempty"`
	CollaboratorCount int        `db:"collaborator_count" json:"collaborator_count"`
}
