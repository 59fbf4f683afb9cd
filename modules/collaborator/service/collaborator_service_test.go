package service

import (
	"context"
	"database/sql"
	"testing"

	"agenda-api/core/errors"
	calendarentity "agenda-api/modules/calendar/entity"
	"agenda-api/modules/collaborator/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollabRepo struct {
	request        *entity.CollaborationRequest
	sendErr        error
	acceptErr      error
	addErr         error
	isCollaborator bool
	added          *entity.EventCollaborator
	participants   []entity.EventParticipant
}

func (s *stubCollabRepo) SendRequest(ctx context.Context, senderID, receiverID int64) (*entity.CollaborationRequest, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &entity.CollaborationRequest{RequestID: 1, SenderID: senderID, ReceiverID: receiverID, Status: entity.RequestStatusPending}, nil
}

func (s *stubCollabRepo) ListPendingIncoming(ctx context.Context, receiverID int64) ([]entity.PendingRequest, error) {
	return nil, nil
}

func (s *stubCollabRepo) Accept(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.request, nil
}

func (s *stubCollabRepo) Reject(ctx context.Context, requestID, receiverID int64) (*entity.CollaborationRequest, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.request, nil
}

func (s *stubCollabRepo) RemoveCollaborator(ctx context.Context, userID, otherID int64) error {
	return nil
}

func (s *stubCollabRepo) IsCollaborator(ctx context.Context, userID, otherID int64) (bool, error) {
	return s.isCollaborator, nil
}

func (s *stubCollabRepo) AddToEvent(ctx context.Context, eventID, userID int64) (*entity.EventCollaborator, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.added = &entity.EventCollaborator{CollabID: 1, EventID: eventID, UserID: userID, Status: "pending"}
	return s.added, nil
}

func (s *stubCollabRepo) RemoveFromEvent(ctx context.Context, eventID, userID int64) error {
	return nil
}

func (s *stubCollabRepo) ListEventParticipants(ctx context.Context, eventID int64) ([]entity.EventParticipant, error) {
	return s.participants, nil
}

type stubEventLookup struct {
	events map[int64]*calendarentity.CalendarEvent
}

func (s *stubEventLookup) Create(ctx context.Context, event *calendarentity.CalendarEvent) (*calendarentity.CalendarEvent, error) {
	return nil, nil
}

func (s *stubEventLookup) GetByID(ctx context.Context, eventID int64) (*calendarentity.CalendarEvent, error) {
	return s.events[eventID], nil
}

func (s *stubEventLookup) ListByUser(ctx context.Context, userID int64, from, to, eventType string) ([]calendarentity.CalendarEvent, error) {
	return nil, nil
}

func (s *stubEventLookup) Update(ctx context.Context, event *calendarentity.CalendarEvent) error {
	return nil
}
func (s *stubEventLookup) Delete(ctx context.Context, eventID int64) error { return nil }

func (s *stubEventLookup) UpcomingMeetings(ctx context.Context, userID int64) ([]calendarentity.UpcomingMeeting, error) {
	return nil, nil
}

func (s *stubEventLookup) MarkSynced(ctx context.Context, eventID int64, googleEventRef string) error {
	return nil
}

func ownedEvent(ownerID int64) *stubEventLookup {
	return &stubEventLookup{events: map[int64]*calendarentity.CalendarEvent{
		5: {EventID: 5, UserID: ownerID, EventType: calendarentity.EventTypeMeeting},
	}}
}

func TestSendRequestToSelf(t *testing.T) {
	svc := NewCollaboratorService(&stubCollabRepo{}, ownedEvent(1))

	_, appErr := svc.SendRequest(context.Background(), 1, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestSendRequestDuplicatePair(t *testing.T) {
	// The upsert matches no row when the pair is already pending or
	// accepted, which comes back as sql.ErrNoRows.
	svc := NewCollaboratorService(&stubCollabRepo{sendErr: sql.ErrNoRows}, ownedEvent(1))

	_, appErr := svc.SendRequest(context.Background(), 1, 2)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestSendRequestSuccess(t *testing.T) {
	svc := NewCollaboratorService(&stubCollabRepo{}, ownedEvent(1))

	request, appErr := svc.SendRequest(context.Background(), 1, 2)
	require.Nil(t, appErr)
	assert.Equal(t, entity.RequestStatusPending, request.Status)
}

func TestAcceptMissingRequest(t *testing.T) {
	svc := NewCollaboratorService(&stubCollabRepo{acceptErr: sql.ErrNoRows}, ownedEvent(1))

	_, appErr := svc.Accept(context.Background(), 2, 9)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAddToEventRequiresOwnership(t *testing.T) {
	svc := NewCollaboratorService(&stubCollabRepo{isCollaborator: true}, ownedEvent(1))

	_, appErr := svc.AddToEvent(context.Background(), 2, 5, 3)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestAddToEventRequiresCollaboration(t *testing.T) {
	svc := NewCollaboratorService(&stubCollabRepo{isCollaborator: false}, ownedEvent(1))

	_, appErr := svc.AddToEvent(context.Background(), 1, 5, 3)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidReference, appErr.Code)
}

func TestAddToEventSuccess(t *testing.T) {
	repo := &stubCollabRepo{isCollaborator: true}
	svc := NewCollaboratorService(repo, ownedEvent(1))

	collab, appErr := svc.AddToEvent(context.Background(), 1, 5, 3)
	require.Nil(t, appErr)
	assert.Equal(t, int64(3), collab.UserID)
}

func TestAddToEventDuplicate(t *testing.T) {
	repo := &stubCollabRepo{isCollaborator: true, addErr: &pq.Error{Code: "23505", Constraint: "event_collaborators_event_id_user_id_key"}}
	svc := NewCollaboratorService(repo, ownedEvent(1))

	_, appErr := svc.AddToEvent(context.Background(), 1, 5, 3)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	assert.Equal(t, "user is already on this event", appErr.Message)
}

func TestListParticipantsMembership(t *testing.T) {
	repo := &stubCollabRepo{participants: []entity.EventParticipant{{UserID: 3, Username: "casey"}}}
	svc := NewCollaboratorService(repo, ownedEvent(1))

	// organizer
	participants, appErr := svc.ListEventParticipants(context.Background(), 1, 5)
	require.Nil(t, appErr)
	assert.Len(t, participants, 1)

	// participant
	_, appErr = svc.ListEventParticipants(context.Background(), 3, 5)
	require.Nil(t, appErr)

	// outsider
	_, appErr = svc.ListEventParticipants(context.Background(), 4, 5)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}
