package service

import (
	"context"
	"fmt"
	"strings"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"
	calendarrepo "agenda-api/modules/calendar/repository"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"
	"agenda-api/modules/meeting/repository"

	"github.com/gosimple/slug"
)

const meetCodeAlphabet = "abcdefghijklmnopqrstuvwxyz"

type MeetingService struct {
	repo     repository.MeetingRepositoryInterface
	calendar calendarrepo.CalendarRepositoryInterface
}

func NewMeetingService(repo repository.MeetingRepositoryInterface, calendar calendarrepo.CalendarRepositoryInterface) *MeetingService {
	return &MeetingService{repo: repo, calendar: calendar}
}

// ownEvent verifies the event exists and belongs to the user before the
// link is touched.
func (s *MeetingService) ownEvent(ctx context.Context, userID, eventID int64) *errors.AppError {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return errors.FromPostgres(err, "failed to look up event")
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}
	if event.UserID != userID {
		return errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}
	return nil
}

// AttachLink stores a caller-supplied meeting link on the event,
// replacing any existing one. An omitted platform is recorded as
// custom; a google_meet code without a URL is expanded to the
// canonical meet.google.com address.
func (s *MeetingService) AttachLink(ctx context.Context, userID, eventID int64, req *dto.AttachLinkRequest) (*entity.MeetingLink, *errors.AppError) {
	if appErr := s.ownEvent(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}

	platform := entity.Platform(req.Platform)
	if req.Platform == "" {
		platform = entity.PlatformCustom
	}
	if !platform.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "platform must be one of google_meet, zoom, teams, custom", nil)
	}

	code := strings.TrimSpace(req.MeetingCode)
	url := strings.TrimSpace(req.MeetingURL)
	if platform == entity.PlatformGoogleMeet && url == "" && code != "" {
		url = "https://meet.google.com/" + code
	}
	if code == "" && url == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "meeting_code or meeting_url is required", nil)
	}

	link := &entity.MeetingLink{EventID: eventID, Platform: platform}
	if code != "" {
		link.MeetingCode = &code
	}
	if url != "" {
		link.MeetingURL = &url
	}

	saved, err := s.repo.Upsert(ctx, link)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to attach meeting link")
	}

	logger.Info("MeetingService:AttachLink:Success", "event_id", eventID, "platform", platform)
	return saved, nil
}

// GenerateLink mints a fresh meeting link for the event on the chosen
// platform and stores it, replacing any existing link.
func (s *MeetingService) GenerateLink(ctx context.Context, userID, eventID int64, req *dto.GenerateLinkRequest) (*entity.MeetingLink, *errors.AppError) {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to look up event")
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar event not found", nil)
	}
	if event.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}

	platform := entity.Platform(req.Platform)
	if req.Platform == "" {
		platform = entity.PlatformGoogleMeet
	}
	if !platform.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidDomainValue, "platform must be one of google_meet, zoom, teams, custom", nil)
	}
	// A meet.google.com room only exists for events pushed to the
	// Google calendar, so minting one for an unsynced event would
	// produce a dead link.
	if platform == entity.PlatformGoogleMeet && !event.IsCalendarSynced {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event must be calendar-synced before generating a google_meet link", nil)
	}

	desc := ""
	if event.EventDesc != nil {
		desc = *event.EventDesc
	}
	code, url, genErr := mintLink(platform, desc)
	if genErr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate meeting code", genErr)
	}

	link := &entity.MeetingLink{
		EventID:     eventID,
		Platform:    platform,
		MeetingCode: &code,
		MeetingURL:  &url,
	}

	saved, upsertErr := s.repo.Upsert(ctx, link)
	if upsertErr != nil {
		return nil, errors.FromPostgres(upsertErr, "failed to store meeting link")
	}

	logger.Info("MeetingService:GenerateLink:Success", "event_id", eventID, "platform", platform, "code", code)
	return saved, nil
}

func (s *MeetingService) GetLink(ctx context.Context, userID, eventID int64) (*entity.MeetingLink, *errors.AppError) {
	if appErr := s.ownEvent(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}

	link, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get meeting link")
	}
	if link == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no meeting link for this event", nil)
	}
	return link, nil
}

func (s *MeetingService) RemoveLink(ctx context.Context, userID, eventID int64) *errors.AppError {
	if appErr := s.ownEvent(ctx, userID, eventID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteByEventID(ctx, eventID); err != nil {
		return errors.FromPostgres(err, "failed to remove meeting link")
	}
	return nil
}

// mintLink produces a platform-shaped code and join URL. The custom
// platform folds the event description into the room slug.
func mintLink(platform entity.Platform, eventDesc string) (code string, url string, err error) {
	switch platform {
	case entity.PlatformGoogleMeet:
		a, err := utils.GenerateCode(meetCodeAlphabet, 3)
		if err != nil {
			return "", "", err
		}
		b, err := utils.GenerateCode(meetCodeAlphabet, 4)
		if err != nil {
			return "", "", err
		}
		c, err := utils.GenerateCode(meetCodeAlphabet, 3)
		if err != nil {
			return "", "", err
		}
		code = fmt.Sprintf("%s-%s-%s", a, b, c)
		return code, "https://meet.google.com/" + code, nil

	case entity.PlatformZoom:
		code, err = utils.GenerateCode("0123456789", 10)
		if err != nil {
			return "", "", err
		}
		return code, "https://zoom.us/j/" + code, nil

	case entity.PlatformTeams:
		code, err = utils.GenerateCode("0123456789abcdefghijklmnopqrstuvwxyz", 12)
		if err != nil {
			return "", "", err
		}
		return code, "https://teams.microsoft.com/l/meetup-join/" + code, nil

	default:
		suffix, err := utils.GenerateCode("0123456789abcdefghijklmnopqrstuvwxyz", 6)
		if err != nil {
			return "", "", err
		}
		room := slug.Make(eventDesc)
		if room == "" {
			room = "meeting"
		}
		code = room + "-" + suffix
		return code, "https://meet.example.com/" + code, nil
	}
}
