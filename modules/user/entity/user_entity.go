package entity

import (
	"agenda-api/core/entity"

	"github.com/lib/pq"
)

// User is an identity record. Disabling happens through is_active; rows
// are only removed by an explicit delete, which cascades to everything
// the user owns.
type User struct {
	entity.BaseEntity
	Username        string        `db:"username" json:"username"`
	Email           string        `db:"email" json:"email"`
	PasswordHash    string        `db:"password_hash" json:"-"`
	FullName        *string       `db:"full_name" json:"full_name,omitempty"`
	Phone           *string       `db:"phone" json:"phone,omitempty"`
	IsAdmin         bool          `db:"is_admin" json:"is_admin"`
	IsActive        bool          `db:"is_active" json:"is_active"`
	CollaboratorIDs pq.Int64Array `db:"collaborator_ids" json:"collaborator_ids"`
}
