package entity

import "time"

// TaskStatus is the closed status domain, mirrored by the check
// constraint on tasks.status.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

// TaskPriority is the closed priority domain.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user. Deleting the user
// deletes the task; deleting the task clears any calendar event link.
type Task struct {
	TaskID        int64        `db:"task_id" json:"task_id"`
	UserID        int64        `db:"user_id" json:"user_id"`
	Title         string       `db:"title" json:"title"`
	Description   *string      `db:"description" json:"description,omitempty"`
	Status        TaskStatus   `db:"status" json:"status"`
	Priority      TaskPriority `db:"priority" json:"priority"`
	Category      *string      `db:"category" json:"category,omitempty"`
	EstimatedTime *int         `db:"estimated_time" json:"estimated_time,omitempty"`
	ActualTime    *int         `db:"actual_time" json:"actual_time,omitempty"`
	DueDate       *time.Time   `db:"due_date" json:"due_date,omitempty"`
	ScheduledDate *time.Time   `db:"scheduled_date" json:"scheduled_date,omitempty"`
	StartTime     *string      `db:"start_time" json:"start_time,omitempty"` // HH:MM:SS
	EndTime       *string      `db:"end_time" json:"end_time,omitempty"`
	Tags          *string      `db:"tags" json:"tags,omitempty"`
	Dependencies  *string      `db:"dependencies" json:"dependencies,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// TaskSession is one logged work interval for a task.
type TaskSession struct {
	SessionID       int64      `db:"session_id" json:"session_id"`
	TaskID          int64      `db:"task_id" json:"task_id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// UserTask is one row of the user_tasks view: a task joined to its
// optional calendar event.
type UserTask struct {
	TaskID        int64        `db:"task_id" json:"task_id"`
	UserID        int64        `db:"user_id" json:"user_id"`
	Title         string       `db:"title" json:"title"`
	Description   *string      `db:"description" json:"description,omitempty"`
	Status        TaskStatus   `db:"status" json:"status"`
	Priority      TaskPriority `db:"priority" json:"priority"`
	Category      *string      `db:"category" json:"category,omitempty"`
	DueDate       *time.Time   `db:"due_date" json:"due_date,omitempty"`
	EventID       *int64       `db:"event_id" json:"event_id,omitempty"`
	ScheduledTime *time.Time   `db:"scheduled_time" json:"scheduled_time,omitempty"`
}
