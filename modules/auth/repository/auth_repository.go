package repository

import (
	"context"
	"database/sql"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth/entity"
)

// AuthRepository handles the OAuth account tables.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	UpsertGoogleAccount(ctx context.Context, account *entity.GoogleAccount) (*entity.GoogleAccount, error)
	GetGoogleAccount(ctx context.Context, userID int64) (*entity.GoogleAccount, error)
	DeleteGoogleAccount(ctx context.Context, userID int64) error
	UpsertGitHubAccount(ctx context.Context, account *entity.GitHubAccount) (*entity.GitHubAccount, error)
	GetGitHubAccount(ctx context.Context, userID int64) (*entity.GitHubAccount, error)
	DeleteGitHubAccount(ctx context.Context, userID int64) error
}

const googleColumns = `id, user_id, access_token, refresh_token, token_expiry, token_uri, client_id, client_secret, scopes, created_at`

// UpsertGoogleAccount stores the grant, keeping the previously stored
// refresh token when the new grant carries none. Google only issues a
// refresh token on the first consent.
func (r *AuthRepository) UpsertGoogleAccount(ctx context.Context, account *entity.GoogleAccount) (*entity.GoogleAccount, error) {
	query := `
		INSERT INTO user_google_accounts (user_id, access_token, refresh_token, token_expiry, token_uri, client_id, client_secret, scopes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = COALESCE(EXCLUDED.refresh_token, user_google_accounts.refresh_token),
		    token_expiry = EXCLUDED.token_expiry,
		    token_uri = EXCLUDED.token_uri,
		    client_id = EXCLUDED.client_id,
		    client_secret = EXCLUDED.client_secret,
		    scopes = EXCLUDED.scopes
		RETURNING ` + googleColumns

	var saved entity.GoogleAccount
	err := r.DB.GetContext(ctx, &saved, query,
		account.UserID, account.AccessToken, account.RefreshToken, account.TokenExpiry,
		account.TokenURI, account.ClientID, account.ClientSecret, account.Scopes)
	if err != nil {
		logger.Error("AuthRepository:UpsertGoogleAccount", err)
		return nil, err
	}

	return &saved, nil
}

func (r *AuthRepository) GetGoogleAccount(ctx context.Context, userID int64) (*entity.GoogleAccount, error) {
	query := `SELECT ` + googleColumns + ` FROM user_google_accounts WHERE user_id = $1`

	var account entity.GoogleAccount
	err := r.DB.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetGoogleAccount", err)
		return nil, err
	}

	return &account, nil
}

func (r *AuthRepository) DeleteGoogleAccount(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_google_accounts WHERE user_id = $1`
	if err := r.DB.ExecContext(ctx, query, userID); err != nil {
		logger.Error("AuthRepository:DeleteGoogleAccount", err)
		return err
	}
	return nil
}

const githubColumns = `id, user_id, access_token, token_type, scopes, github_username, github_user_id, connected_at`

func (r *AuthRepository) UpsertGitHubAccount(ctx context.Context, account *entity.GitHubAccount) (*entity.GitHubAccount, error) {
	query := `
		INSERT INTO user_github_accounts (user_id, access_token, token_type, scopes, github_username, github_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    token_type = EXCLUDED.token_type,
		    scopes = EXCLUDED.scopes,
		    github_username = EXCLUDED.github_username,
		    github_user_id = EXCLUDED.github_user_id,
		    connected_at = NOW()
		RETURNING ` + githubColumns

	var saved entity.GitHubAccount
	err := r.DB.GetContext(ctx, &saved, query,
		account.UserID, account.AccessToken, account.TokenType, account.Scopes,
		account.GitHubUsername, account.GitHubUserID)
	if err != nil {
		logger.Error("AuthRepository:UpsertGitHubAccount", err)
		return nil, err
	}

	return &saved, nil
}

func (r *AuthRepository) GetGitHubAccount(ctx context.Context, userID int64) (*entity.GitHubAccount, error) {
	query := `SELECT ` + githubColumns + ` FROM user_github_accounts WHERE user_id = $1`

	var account entity.GitHubAccount
	err := r.DB.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetGitHubAccount", err)
		return nil, err
	}

	return &account, nil
}

func (r *AuthRepository) DeleteGitHubAccount(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_github_accounts WHERE user_id = $1`
	if err := r.DB.ExecContext(ctx, query, userID); err != nil {
		logger.Error("AuthRepository:DeleteGitHubAccount", err)
		return err
	}
	return nil
}
