package entity

import "time"

// Platform is the closed meeting platform domain, mirrored by the
// check constraint on meeting_links.platform.
type Platform string

const (
	PlatformGoogleMeet Platform = "google_meet"
	PlatformZoom       Platform = "zoom"
	PlatformTeams      Platform = "teams"
	PlatformCustom     Platform = "custom"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformGoogleMeet, PlatformZoom, PlatformTeams, PlatformCustom:
		return true
	}
	return false
}

// MeetingLink is the single join link attached to a calendar event.
// At most one link exists per event; attaching again replaces it.
type MeetingLink struct {
	LinkID      int64     `db:"link_id" json:"link_id"`
	EventID     int64     `db:"event_id" json:"event_id"`
	Platform    Platform  `db:"platform" json:"platform"`
	MeetingCode *string   `db:"meeting_code" json:"meeting_code,omitempty"`
	MeetingURL  *string   `db:"meeting_url" json:"meeting_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
