package repository

import (
	"context"
	"database/sql"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/collaborator/entity"
)

// CollaboratorRepository handles collaboration_requests, the users
// collaborator_ids array, and event_collaborators.
type CollaboratorRepository struct {
	DB database.Database
}

func NewCollaboratorRepository(db database.Database) *CollaboratorRepository {
	return &CollaboratorRepository{DB: db}
}

type CollaboratorRepositoryInterface interface {
	SendRequest(ctx context.Context, senderID, receiverID int64) (*entity.CollaborationRequest, error)
	ListPendingIncoming(ctx context.Context, receiverID int64) ([]entity.PendingRequest, error)
	Accept(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error)
	Reject(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error)
	RemoveCollaborator(ctx context.Context, userID, otherID int64) error
	IsCollaborator(ctx context.Context, userID, otherID int64) (bool, error)
	AddToEvent(ctx context.Context, eventID, userID int64) (*entity.EventCollaborator, error)
	RemoveFromEvent(ctx context.Context, eventID, userID int64) error
	ListEventParticipants(ctx context.Context, eventID int64) ([]entity.EventParticipant, error)
}

const requestColumns = `request_id, sender_id, receiver_id, status, created_at`

// SendRequest creates a pending request for the pair, or flips a
// previously rejected one back to pending. A pair that is already
// pending or accepted matches no row, surfacing as sql.ErrNoRows.
func (r *CollaboratorRepository) SendRequest(ctx context.Context, senderID, receiverID int64) (*entity.CollaborationRequest, error) {
	query := `
		INSERT INTO collaboration_requests (sender_id, receiver_id)
		VALUES ($1, $2)
		ON CONFLICT (sender_id, receiver_id) DO UPDATE
		SET status = 'pending', created_at = NOW()
		WHERE collaboration_requests.status = 'rejected'
		RETURNING ` + requestColumns

	var request entity.CollaborationRequest
	err := r.DB.GetContext(ctx, &request, query, senderID, receiverID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error("CollaboratorRepository:SendRequest", err)
		}
		return nil, err
	}

	return &request, nil
}

func (r *CollaboratorRepository) ListPendingIncoming(ctx context.Context, receiverID int64) ([]entity.PendingRequest, error) {
	query := `
		SELECT cr.request_id, cr.sender_id,
		       u.username AS sender_username, u.email AS sender_email,
		       cr.created_at
		FROM collaboration_requests cr
		JOIN users u ON cr.sender_id = u.id
		WHERE cr.receiver_id = $1 AND cr.status = 'pending'
		ORDER BY cr.created_at DESC
	`

	var requests []entity.PendingRequest
	err := r.DB.SelectContext(ctx, &requests, query, receiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.PendingRequest{}, nil
		}
		logger.Error("CollaboratorRepository:ListPendingIncoming", err)
		return nil, err
	}

	return requests, nil
}

// Accept marks the request accepted and records each user in the
// other's collaborator_ids array, all inside one transaction. Only the
// receiver of a pending request can accept it.
func (r *CollaboratorRepository) Accept(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("CollaboratorRepository:Accept:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	var request entity.CollaborationRequest
	err = tx.GetContext(ctx, &request, `
		UPDATE collaboration_requests
		SET status = 'accepted'
		WHERE request_id = $1 AND receiver_id = $2 AND status = 'pending'
		RETURNING `+requestColumns, requestID, receiverID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error("CollaboratorRepository:Accept:Update", err)
		}
		return nil, err
	}

	appendQuery := `
		UPDATE users
		SET collaborator_ids = array_append(collaborator_ids, $2)
		WHERE id = $1 AND NOT (collaborator_ids @> ARRAY[$2::integer])
	`
	if _, err = tx.ExecContext(ctx, appendQuery, request.SenderID, request.ReceiverID); err != nil {
		logger.Error("CollaboratorRepository:Accept:AppendSender", err)
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, appendQuery, request.ReceiverID, request.SenderID); err != nil {
		logger.Error("CollaboratorRepository:Accept:AppendReceiver", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("CollaboratorRepository:Accept:Commit", err)
		return nil, err
	}

	return &request, nil
}

func (r *CollaboratorRepository) Reject(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error) {
	query := `
		UPDATE collaboration_requests
		SET status = 'rejected'
		WHERE request_id = $1 AND receiver_id = $2 AND status = 'pending'
		RETURNING ` + requestColumns

	var request entity.CollaborationRequest
	err := r.DB.GetContext(ctx, &request, query, requestID, receiverID)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error("CollaboratorRepository:Reject", err)
		}
		return nil, err
	}

	return &request, nil
}

// RemoveCollaborator severs the pair symmetrically and discards any
// request history between them.
func (r *CollaboratorRepository) RemoveCollaborator(ctx context.Context, userID, otherID int64) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("CollaboratorRepository:RemoveCollaborator:Begin", err)
		return err
	}
	defer tx.Rollback()

	removeQuery := `UPDATE users SET collaborator_ids = array_remove(collaborator_ids, $2) WHERE id = $1`
	if _, err = tx.ExecContext(ctx, removeQuery, userID, otherID); err != nil {
		logger.Error("CollaboratorRepository:RemoveCollaborator:Self", err)
		return err
	}
	if _, err = tx.ExecContext(ctx, removeQuery, otherID, userID); err != nil {
		logger.Error("CollaboratorRepository:RemoveCollaborator:Other", err)
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM collaboration_requests
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
	`, userID, otherID)
	if err != nil {
		logger.Error("CollaboratorRepository:RemoveCollaborator:Requests", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("CollaboratorRepository:RemoveCollaborator:Commit", err)
		return err
	}

	return nil
}

func (r *CollaboratorRepository) IsCollaborator(ctx context.Context, userID, otherID int64) (bool, error) {
	query := `SELECT COALESCE(collaborator_ids @> ARRAY[$2::integer], FALSE) FROM users WHERE id = $1`

	var contains bool
	err := r.DB.GetContext(ctx, &contains, query, userID, otherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("CollaboratorRepository:IsCollaborator", err)
		return false, err
	}

	return contains, nil
}

func (r *CollaboratorRepository) AddToEvent(ctx context.Context, eventID, userID int64) (*entity.EventCollaborator, error) {
	query := `
		INSERT INTO event_collaborators (event_id, user_id)
		VALUES ($1, $2)
		RETURNING collab_id, event_id, user_id, status, added_at
	`

	var collab entity.EventCollaborator
	err := r.DB.GetContext(ctx, &collab, query, eventID, userID)
	if err != nil {
		logger.Error("CollaboratorRepository:AddToEvent", err)
		return nil, err
	}

	return &collab, nil
}

func (r *CollaboratorRepository) RemoveFromEvent(ctx context.Context, eventID, userID int64) error {
	query := `DELETE FROM event_collaborators WHERE event_id = $1 AND user_id = $2`
	if err := r.DB.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("CollaboratorRepository:RemoveFromEvent", err)
		return err
	}
	return nil
}

func (r *CollaboratorRepository) ListEventParticipants(ctx context.Context, eventID int64) ([]entity.EventParticipant, error) {
	query := `
		SELECT ec.collab_id, ec.event_id, ec.user_id, u.username, u.email, ec.status, ec.added_at
		FROM event_collaborators ec
		JOIN users u ON ec.user_id = u.id
		WHERE ec.event_id = $1
		ORDER BY ec.added_at
	`

	var participants []entity.EventParticipant
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.EventParticipant{}, nil
		}
		logger.Error("CollaboratorRepository:ListEventParticipants", err)
		return nil, err
	}

	return participants, nil
}
