package repository

import (
	"context"
	"database/sql"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/meeting/entity"
)

// MeetingRepository handles meeting_links database operations
type MeetingRepository struct {
	DB database.Database
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

type MeetingRepositoryInterface interface {
	Upsert(ctx context.Context, link *entity.MeetingLink) (*entity.MeetingLink, error)
	GetByEventID(ctx context.Context, eventID int64) (*entity.MeetingLink, error)
	DeleteByEventID(ctx context.Context, eventID int64) error
}

const linkColumns = `link_id, event_id, platform, meeting_code, meeting_url, created_at`

// Upsert attaches the link to the event, replacing any previous one.
// The UNIQUE(event_id) constraint makes the replace atomic.
func (r *MeetingRepository) Upsert(ctx context.Context, link *entity.MeetingLink) (*entity.MeetingLink, error) {
	query := `
		INSERT INTO meeting_links (event_id, platform, meeting_code, meeting_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO UPDATE
		SET platform = EXCLUDED.platform,
		    meeting_code = EXCLUDED.meeting_code,
		    meeting_url = EXCLUDED.meeting_url
		RETURNING ` + linkColumns

	var saved entity.MeetingLink
	err := r.DB.GetContext(ctx, &saved, query,
		link.EventID, link.Platform, link.MeetingCode, link.MeetingURL)
	if err != nil {
		logger.Error("MeetingRepository:Upsert", err)
		return nil, err
	}

	return &saved, nil
}

func (r *MeetingRepository) GetByEventID(ctx context.Context, eventID int64) (*entity.MeetingLink, error) {
	query := `SELECT ` + linkColumns + ` FROM meeting_links WHERE event_id = $1`

	var link entity.MeetingLink
	err := r.DB.GetContext(ctx, &link, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByEventID", err)
		return nil, err
	}

	return &link, nil
}

func (r *MeetingRepository) DeleteByEventID(ctx context.Context, eventID int64) error {
	query := `DELETE FROM meeting_links WHERE event_id = $1`
	if err := r.DB.ExecContext(ctx, query, eventID); err != nil {
		logger.Error("MeetingRepository:DeleteByEventID", err)
		return err
	}
	return nil
}
