package dto

import (
	"time"

	"agenda-api/modules/task/entity"
)

type CreateTaskRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	Category      string  `json:"category"`
	EstimatedTime *int    `json:"estimated_time"`
	DueDate       *string `json:"due_date"`       // YYYY-MM-DD
	ScheduledDate *string `json:"scheduled_date"` // YYYY-MM-DD
	StartTime     *string `json:"start_time"`     // HH:MM
	EndTime       *string `json:"end_time"`       // HH:MM
	Tags          string  `json:"tags"`
	Dependencies  string  `json:"dependencies"`
}

type UpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	Category      *string `json:"category"`
	EstimatedTime *int    `json:"estimated_time"`
	ActualTime    *int    `json:"actual_time"`
	DueDate       *string `json:"due_date"`
	ScheduledDate *string `json:"scheduled_date"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	Tags          *string `json:"tags"`
	Dependencies  *string `json:"dependencies"`
}

type ListTasksFilter struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Category string `query:"category"`
	DueFrom  string `query:"due_from"`
	DueTo    string `query:"due_to"`
}

type UserTaskResponse struct {
	TaskID        int64               `json:"task_id"`
	UserID        int64               `json:"user_id"`
	Title         string              `json:"title"`
	Description   *string             `json:"description,omitempty"`
	Status        entity.TaskStatus   `json:"status"`
	Priority      entity.TaskPriority `json:"priority"`
	Category      *string             `json:"category,omitempty"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	EventID       *int64              `json:"event_id,omitempty"`
	ScheduledTime *time.Time          `json:"scheduled_time,omitempty"`
}

type StartSessionRequest struct {
	TaskID int64 `json:"task_id" validate:"required"`
}

type EndSessionRequest struct {
	SessionID int64 `json:"session_id" validate:"required"`
}
