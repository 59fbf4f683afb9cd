package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestFromPostgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique violation", &pq.Error{Code: "23505", Constraint: "users_email_key"}, ErrAlreadyExists},
		{"foreign key violation", &pq.Error{Code: "23503", Constraint: "tasks_user_id_fkey"}, ErrInvalidReference},
		{"check violation", &pq.Error{Code: "23514", Constraint: "tasks_status_check"}, ErrInvalidDomainValue},
		{"not null violation", &pq.Error{Code: "23502", Column: "title"}, ErrMissingField},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped pq error", fmt.Errorf("insert task: %w", &pq.Error{Code: "23505"}), ErrAlreadyExists},
		{"unknown", fmt.Errorf("connection reset"), ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromPostgres(tt.err, "boom")
			assert.Equal(t, tt.want, appErr.Code)
			assert.Equal(t, "boom", appErr.Message)
		})
	}
}

func TestFromPostgresNil(t *testing.T) {
	assert.Nil(t, FromPostgres(nil, "ignored"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("nope")))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	appErr := NewAppError(ErrInvalidInput, "bad field", cause)
	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "INVALID_INPUT")
	assert.Contains(t, appErr.Error(), "root cause")
}
