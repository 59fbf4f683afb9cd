package entity

import (
	"time"

	"github.com/lib/pq"
)

// GoogleAccount stores one user's Google OAuth grant. The refresh token
// is only sent by Google on the first consent, so updates must keep the
// stored one when the new grant omits it.
type GoogleAccount struct {
	ID           int64          `db:"id" json:"id"`
	UserID       int64          `db:"user_id" json:"user_id"`
	AccessToken  string         `db:"access_token" json:"-"`
	RefreshToken *string        `db:"refresh_token" json:"-"`
	TokenExpiry  *time.Time     `db:"token_expiry" json:"token_expiry,omitempty"`
	TokenURI     *string        `db:"token_uri" json:"-"`
	ClientID     *string        `db:"client_id" json:"-"`
	ClientSecret *string        `db:"client_secret" json:"-"`
	Scopes       pq.StringArray `db:"scopes" json:"scopes,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// GitHubAccount stores one user's GitHub OAuth grant.
type GitHubAccount struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	AccessToken    string    `db:"access_token" json:"-"`
	TokenType      *string   `db:"token_type" json:"-"`
	Scopes         *string   `db:"scopes" json:"scopes,omitempty"`
	GitHubUsername *string   `db:"github_username" json:"github_username,omitempty"`
	GitHubUserID   *int64    `db:"github_user_id" json:"github_user_id,omitempty"`
	ConnectedAt    time.Time `db:"connected_at" json:"connected_at"`
}
