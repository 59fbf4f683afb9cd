package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusDomain(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked} {
		assert.True(t, s.IsValid(), string(s))
	}
	for _, s := range []TaskStatus{"", "completed", "TODO", "in_progress"} {
		assert.False(t, s.IsValid(), string(s))
	}
}

func TestTaskPriorityDomain(t *testing.T) {
	for _, p := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent} {
		assert.True(t, p.IsValid(), string(p))
	}
	for _, p := range []TaskPriority{"", "critical", "High"} {
		assert.False(t, p.IsValid(), string(p))
	}
}
