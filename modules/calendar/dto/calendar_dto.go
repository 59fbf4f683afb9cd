package dto

type CreateEventRequest struct {
	TaskID        *int64  `json:"task_id"`
	StartTime     *string `json:"start_time"` // HH:MM
	EndTime       *string `json:"end_time"`
	DueDate       *string `json:"due_date"`       // YYYY-MM-DD
	ScheduledDate *string `json:"scheduled_date"` // YYYY-MM-DD
	EventDesc     string  `json:"event_desc"`
	EventType     string  `json:"event_type"`
}

type UpdateEventRequest struct {
	TaskID        *int64  `json:"task_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	DueDate       *string `json:"due_date"`
	ScheduledDate *string `json:"scheduled_date"`
	EventDesc     *string `json:"event_desc"`
	EventType     *string `json:"event_type"`
}

type ListEventsFilter struct {
	From      string `query:"from"` // YYYY-MM-DD
	To        string `query:"to"`
	EventType string `query:"event_type"`
}
