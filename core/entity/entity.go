package entity

import "time"

// BaseEntity holds the columns shared by every table: a serial integer
// surrogate key generated by the store (callers never choose ids) and the
// creation timestamp.
type BaseEntity struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
