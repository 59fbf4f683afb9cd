package service

import (
	"context"
	"database/sql"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	calendarrepo "agenda-api/modules/calendar/repository"
	"agenda-api/modules/collaborator/entity"
	"agenda-api/modules/collaborator/repository"
)

type CollaboratorService struct {
	repo     repository.CollaboratorRepositoryInterface
	calendar calendarrepo.CalendarRepositoryInterface
}

func NewCollaboratorService(repo repository.CollaboratorRepositoryInterface, calendar calendarrepo.CalendarRepositoryInterface) *CollaboratorService {
	return &CollaboratorService{repo: repo, calendar: calendar}
}

// SendRequest invites another user to collaborate. A rejected request
// between the pair is revived as pending; a pending or accepted one is
// reported as a duplicate.
func (s *CollaboratorService) SendRequest(ctx context.Context, senderID, receiverID int64) (*entity.CollaborationRequest, *errors.AppError) {
	if senderID == receiverID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot send a collaboration request to yourself", nil)
	}

	request, err := s.repo.SendRequest(ctx, senderID, receiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "a request between these users already exists", nil)
		}
		return nil, errors.FromPostgres(err, "failed to send collaboration request")
	}

	logger.Info("CollaboratorService:SendRequest:Success", "request_id", request.RequestID, "sender_id", senderID, "receiver_id", receiverID)
	return request, nil
}

func (s *CollaboratorService) ListPending(ctx context.Context, receiverID int64) ([]entity.PendingRequest, *errors.AppError) {
	requests, err := s.repo.ListPendingIncoming(ctx, receiverID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to list pending requests")
	}
	return requests, nil
}

// Accept confirms an incoming request. Both users gain each other as
// collaborators atomically.
func (s *CollaboratorService) Accept(ctx context.Context, receiverID, requestID int64) (*entity.CollaborationRequest, *errors.AppError) {
	request, err := s.repo.Accept(ctx, requestID, receiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewAppError(errors.ErrNotFound, "no pending request to accept", nil)
		}
		return nil, errors.FromPostgres(err, "failed to accept collaboration request")
	}

	logger.Info("CollaboratorService:Accept:Success", "request_id", requestID, "sender_id", request.SenderID, "receiver_id", request.ReceiverID)
	return request, nil
}

func (s *CollaboratorService) Reject(ctx context.Context, receiverID, requestID int64) (*entity.CollaborationRequest, *errors.AppError) {
	request, err := s.repo.Reject(ctx, requestID, receiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewAppError(errors.ErrNotFound, "no pending request to reject", nil)
		}
		return nil, errors.FromPostgres(err, "failed to reject collaboration request")
	}
	return request, nil
}

// Remove severs the collaboration both ways and clears the request
// history so either user can invite again later.
func (s *CollaboratorService) Remove(ctx context.Context, userID, otherID int64) *errors.AppError {
	if userID == otherID {
		return errors.NewAppError(errors.ErrInvalidInput, "cannot remove yourself", nil)
	}
	if err := s.repo.RemoveCollaborator(ctx, userID, otherID); err != nil {
		return errors.FromPostgres(err, "failed to remove collaborator")
	}
	logger.Info("CollaboratorService:Remove:Success", "user_id", userID, "other_id", otherID)
	return nil
}

// AddToEvent invites an accepted collaborator onto one of the caller's
// events.
func (s *CollaboratorService) AddToEvent(ctx context.Context, ownerID, eventID, userID int64) (*entity.EventCollaborator, *errors.AppError) {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to look up event")
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}
	if event.UserID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}

	ok, err := s.repo.IsCollaborator(ctx, ownerID, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to check collaborator status")
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidReference, "user is not one of your collaborators", nil)
	}

	collab, err := s.repo.AddToEvent(ctx, eventID, userID)
	if err != nil {
		// Re-inviting someone already on the event is a normal outcome,
		// not a server fault.
		if errors.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "user is already on this event", nil)
		}
		return nil, errors.FromPostgres(err, "failed to add event collaborator")
	}

	logger.Info("CollaboratorService:AddToEvent:Success", "event_id", eventID, "user_id", userID)
	return collab, nil
}

func (s *CollaboratorService) RemoveFromEvent(ctx context.Context, ownerID, eventID, userID int64) *errors.AppError {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return errors.FromPostgres(err, "failed to look up event")
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}
	if event.UserID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}

	if err := s.repo.RemoveFromEvent(ctx, eventID, userID); err != nil {
		return errors.FromPostgres(err, "failed to remove event collaborator")
	}
	return nil
}

// ListEventParticipants is open to the organizer and to anyone already
// on the event.
func (s *CollaboratorService) ListEventParticipants(ctx context.Context, callerID, eventID int64) ([]entity.EventParticipant, *errors.AppError) {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to look up event")
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}

	participants, err := s.repo.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to list event participants")
	}

	if event.UserID != callerID {
		member := false
		for _, p := range participants {
			if p.UserID == callerID {
				member = true
				break
			}
		}
		if !member {
			return nil, errors.NewAppError(errors.ErrForbidden, "not a participant of this event", nil)
		}
	}

	return participants, nil
}
