package service

import (
	"context"
	"regexp"
	"testing"

	"agenda-api/core/errors"
	calendarentity "agenda-api/modules/calendar/entity"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLinkRepo struct {
	saved *entity.MeetingLink
	link  *entity.MeetingLink
	err   error
}

func (s *stubLinkRepo) Upsert(ctx context.Context, link *entity.MeetingLink) (*entity.MeetingLink, error) {
	if s.err != nil {
		return nil, s.err
	}
	saved := *link
	saved.LinkID = 1
	s.saved = &saved
	return &saved, nil
}

func (s *stubLinkRepo) GetByEventID(ctx context.Context, eventID int64) (*entity.MeetingLink, error) {
	return s.link, s.err
}

func (s *stubLinkRepo) DeleteByEventID(ctx context.Context, eventID int64) error { return s.err }

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

func meetingEvent(desc string) map[int64]*calendarentity.CalendarEvent {
	e := &calendarentity.CalendarEvent{EventID: 5, UserID: 1, EventType: calendarentity.EventTypeMeeting, IsCalendarSynced: true}
	if desc != "" {
		e.EventDesc = &desc
	}
	return map[int64]*calendarentity.CalendarEvent{5: e}
}

func TestAttachLinkExpandsGoogleMeetCode(t *testing.T) {
	repo := &stubLinkRepo{}
	svc := NewMeetingService(repo, &stubEventLookup{events: meetingEvent("")})

	link, appErr := svc.AttachLink(context.Background(), 1, 5, &dto.AttachLinkRequest{Platform: "google_meet", MeetingCode: "abc-defg-hij"})
	require.Nil(t, appErr)
	assert.Equal(t, entity.PlatformGoogleMeet, link.Platform)
	require.NotNil(t, link.MeetingURL)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", *link.MeetingURL)
}

func TestAttachLinkDefaultsToCustom(t *testing.T) {
	repo := &stubLinkRepo{}
	svc := NewMeetingService(repo, &stubEventLookup{events: meetingEvent("")})

	link, appErr := svc.AttachLink(context.Background(), 1, 5, &dto.AttachLinkRequest{MeetingURL: "https://rooms.example.com/standup"})
	require.Nil(t, appErr)
	assert.Equal(t, entity.PlatformCustom, link.Platform)
	assert.Nil(t, link.MeetingCode)
}

func TestAttachLinkValidation(t *testing.T) {
	svc := NewMeetingService(&stubLinkRepo{}, &stubEventLookup{events: meetingEvent("")})

	_, appErr := svc.AttachLink(context.Background(), 1, 5, &dto.AttachLinkRequest{Platform: "skype"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidDomainValue, appErr.Code)

	_, appErr = svc.AttachLink(context.Background(), 1, 5, &dto.AttachLinkRequest{Platform: "zoom"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestAttachLinkOwnership(t *testing.T) {
	svc := NewMeetingService(&stubLinkRepo{}, &stubEventLookup{events: meetingEvent("")})

	_, appErr := svc.AttachLink(context.Background(), 2, 5, &dto.AttachLinkRequest{MeetingCode: "x"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.AttachLink(context.Background(), 1, 404, &dto.AttachLinkRequest{MeetingCode: "x"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestGenerateLinkShapes(t *testing.T) {
	repo := &stubLinkRepo{}
	svc := NewMeetingService(repo, &stubEventLookup{events: meetingEvent("Sprint Planning!")})

	link, appErr := svc.GenerateLink(context.Background(), 1, 5, &dto.GenerateLinkRequest{})
	require.Nil(t, appErr)
	require.NotNil(t, link.MeetingCode)
	assert.Regexp(t, regexp.MustCompile(`^[a-z]{3}-[a-z]{4}-[a-z]{3}$`), *link.MeetingCode)
	assert.Equal(t, "https://meet.google.com/"+*link.MeetingCode, *link.MeetingURL)

	link, appErr = svc.GenerateLink(context.Background(), 1, 5, &dto.GenerateLinkRequest{Platform: "zoom"})
	require.Nil(t, appErr)
	assert.Regexp(t, regexp.MustCompile(`^\d{10}$`), *link.MeetingCode)
	assert.Equal(t, "https://zoom.us/j/"+*link.MeetingCode, *link.MeetingURL)

	link, appErr = svc.GenerateLink(context.Background(), 1, 5, &dto.GenerateLinkRequest{Platform: "custom"})
	require.Nil(t, appErr)
	assert.Regexp(t, regexp.MustCompile(`^sprint-planning-[0-9a-z]{6}$`), *link.MeetingCode)
}

func TestGenerateLinkRequiresSyncedEventForGoogleMeet(t *testing.T) {
	events := meetingEvent("")
	events[5].IsCalendarSynced = false
	svc := NewMeetingService(&stubLinkRepo{}, &stubEventLookup{events: events})

	_, appErr := svc.GenerateLink(context.Background(), 1, 5, &dto.GenerateLinkRequest{Platform: "google_meet"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	// Other platforms do not depend on the Google calendar.
	link, appErr := svc.GenerateLink(context.Background(), 1, 5, &dto.GenerateLinkRequest{Platform: "zoom"})
	require.Nil(t, appErr)
	assert.Equal(t, entity.PlatformZoom, link.Platform)
}

func TestGetLinkNotFound(t *testing.T) {
	svc := NewMeetingService(&stubLinkRepo{}, &stubEventLookup{events: meetingEvent("")})

	_, appErr := svc.GetLink(context.Background(), 1, 5)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
