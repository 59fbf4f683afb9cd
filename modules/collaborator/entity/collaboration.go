package entity

import "time"

// RequestStatus is the closed request lifecycle domain, mirrored by the
// check constraint on collaboration_requests.status.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	}
	return false
}

// CollaborationRequest is one directed invitation between two users.
// At most one request exists per (sender, receiver) pair; a rejected
// request can be re-sent, which flips it back to pending.
type CollaborationRequest struct {
	RequestID  int64         `db:"request_id" json:"request_id"`
	SenderID   int64         `db:"sender_id" json:"sender_id"`
	ReceiverID int64         `db:"receiver_id" json:"receiver_id"`
	Status     RequestStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// PendingRequest is an incoming request joined to the sender's identity.
type PendingRequest struct {
	RequestID      int64     `db:"request_id" json:"request_id"`
	SenderID       int64     `db:"sender_id" json:"sender_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username"`
	SenderEmail    string    `db:"sender_email" json:"sender_email"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// EventCollaborator is one user's membership on a calendar event.
type EventCollaborator struct {
	CollabID int64     `db:"collab_id" json:"collab_id"`
	EventID  int64     `db:"event_id" json:"event_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Status   string    `db:"status" json:"status"`
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}

// EventParticipant is an event membership joined to the user's identity.
type EventParticipant struct {
	CollabID int64     `db:"collab_id" json:"collab_id"`
	EventID  int64     `db:"event_id" json:"event_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`
	Status   string    `db:"status" json:"status"`
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}
