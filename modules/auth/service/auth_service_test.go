package service

import (
	"context"
	"testing"
	"time"

	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/entity"
	"agenda-api/core/errors"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	authentity "agenda-api/modules/auth/entity"
	userentity "agenda-api/modules/user/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthRepo struct {
	google *authentity.GoogleAccount
	github *authentity.GitHubAccount
}

func (s *stubAuthRepo) UpsertGoogleAccount(ctx context.Context, account *authentity.GoogleAccount) (*authentity.GoogleAccount, error) {
	s.google = account
	return account, nil
}

func (s *stubAuthRepo) GetGoogleAccount(ctx context.Context, userID int64) (*authentity.GoogleAccount, error) {
	return s.google, nil
}

func (s *stubAuthRepo) DeleteGoogleAccount(ctx context.Context, userID int64) error {
	s.google = nil
	return nil
}

func (s *stubAuthRepo) UpsertGitHubAccount(ctx context.Context, account *authentity.GitHubAccount) (*authentity.GitHubAccount, error) {
	s.github = account
	return account, nil
}

func (s *stubAuthRepo) GetGitHubAccount(ctx context.Context, userID int64) (*authentity.GitHubAccount, error) {
	return s.github, nil
}

func (s *stubAuthRepo) DeleteGitHubAccount(ctx context.Context, userID int64) error {
	s.github = nil
	return nil
}

type stubUserRepo struct {
	byUsername map[string]*userentity.User
	byEmail    map[string]*userentity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *userentity.User) (*userentity.User, error) {
	return user, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*userentity.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*userentity.User, error) {
	return s.byUsername[username], nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*userentity.User, error) {
	return s.byEmail[email], nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error {
	return nil
}
func (s *stubUserRepo) Deactivate(ctx context.Context, id int64) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error     { return nil }

func (s *stubUserRepo) Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]userentity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []int64) ([]userentity.User, error) {
	return nil, nil
}

// stubCache is an in-memory stand-in for the redis-backed cache.
type stubCache struct {
	blacklist map[string]bool
	attempts  map[string]int64
	states    map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{
		blacklist: map[string]bool{},
		attempts:  map[string]int64{},
		states:    map[string]string{},
	}
}

func (s *stubCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	s.blacklist[token] = true
	return nil
}

func (s *stubCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.blacklist[token], nil
}

func (s *stubCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	s.attempts[key]++
	return nil
}

func (s *stubCache) IsLoginBlocked(ctx context.Context, key string) (int64, error) {
	return s.attempts[key], nil
}

func (s *stubCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }

func (s *stubCache) Del(ctx context.Context, key string) error {
	delete(s.attempts, key)
	return nil
}

func (s *stubCache) SetOAuthState(ctx context.Context, state, provider string) error {
	s.states[state] = provider
	return nil
}

func (s *stubCache) ConsumeOAuthState(ctx context.Context, state string) (string, error) {
	provider, ok := s.states[state]
	if !ok {
		return "", assert.AnError
	}
	delete(s.states, state)
	return provider, nil
}

func testUser(t *testing.T) *userentity.User {
	t.Helper()
	hash, err := utils.HashPassword("s3cret!pass")
	require.NoError(t, err)
	u := &userentity.User{
		Username:     "casey",
		Email:        "casey@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	u.BaseEntity = entity.BaseEntity{ID: 1}
	return u
}

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("AGENDA_JWT_SECRET", "unit-test-secret")
	_, err := config.Load()
	require.NoError(t, err)
}

func newLoginService(t *testing.T) (*AuthService, *stubCache) {
	user := testUser(t)
	users := &stubUserRepo{
		byUsername: map[string]*userentity.User{"casey": user},
		byEmail:    map[string]*userentity.User{"casey@example.com": user},
	}
	c := newStubCache()
	return NewAuthService(&stubAuthRepo{}, users, c), c
}

func TestLoginSuccess(t *testing.T) {
	loadTestConfig(t)
	svc, _ := newLoginService(t)

	resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "s3cret!pass"})
	require.Nil(t, appErr)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, tokenErr := utils.ValidateAndParseToken(resp.AccessToken)
	require.Nil(t, tokenErr)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, constants.ScopeTokenAccess, claims.Scope)
}

func TestLoginByEmail(t *testing.T) {
	loadTestConfig(t)
	svc, _ := newLoginService(t)

	resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey@example.com", Password: "s3cret!pass"})
	require.Nil(t, appErr)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPasswordCountsAttempt(t *testing.T) {
	loadTestConfig(t)
	svc, c := newLoginService(t)

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "wrong"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
	assert.Equal(t, int64(1), c.attempts["login:casey"])
}

func TestLoginBlockedAfterTooManyAttempts(t *testing.T) {
	loadTestConfig(t)
	svc, c := newLoginService(t)
	c.attempts["login:casey"] = constants.MaxLoginAttempts

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "s3cret!pass"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTooManyAttempts, appErr.Code)
}

func TestLoginClearsAttemptsOnSuccess(t *testing.T) {
	loadTestConfig(t)
	svc, c := newLoginService(t)
	c.attempts["login:casey"] = 2

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "s3cret!pass"})
	require.Nil(t, appErr)
	assert.Zero(t, c.attempts["login:casey"])
}

func TestRefreshRotatesTokens(t *testing.T) {
	loadTestConfig(t)
	svc, c := newLoginService(t)

	login, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "s3cret!pass"})
	require.Nil(t, appErr)

	refreshed, appErr := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Nil(t, appErr)
	assert.NotEmpty(t, refreshed.AccessToken)

	// the used refresh token is revoked
	assert.True(t, c.blacklist[login.RefreshToken])
	_, appErr = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	loadTestConfig(t)
	svc, _ := newLoginService(t)

	login, appErr := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "casey", Password: "s3cret!pass"})
	require.Nil(t, appErr)

	_, appErr = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestBeginOAuthIssuesBoundState(t *testing.T) {
	loadTestConfig(t)
	svc, c := newLoginService(t)

	resp, appErr := svc.BeginOAuth(context.Background(), 1, ProviderGoogle)
	require.Nil(t, appErr)
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.AuthURL, "state="+resp.State)
	assert.Equal(t, "google:1", c.states[resp.State])

	_, appErr = svc.BeginOAuth(context.Background(), 1, "gitlab")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestConsumeStateIsSingleUse(t *testing.T) {
	loadTestConfig(t)
	svc, _ := newLoginService(t)

	resp, appErr := svc.BeginOAuth(context.Background(), 7, ProviderGitHub)
	require.Nil(t, appErr)

	provider, userID, appErr := svc.consumeState(context.Background(), resp.State)
	require.Nil(t, appErr)
	assert.Equal(t, ProviderGitHub, provider)
	assert.Equal(t, int64(7), userID)

	_, _, appErr = svc.consumeState(context.Background(), resp.State)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestConnectionStatus(t *testing.T) {
	loadTestConfig(t)
	repo := &stubAuthRepo{}
	svc := NewAuthService(repo, &stubUserRepo{}, newStubCache())

	status, appErr := svc.ConnectionStatus(context.Background(), 1)
	require.Nil(t, appErr)
	assert.False(t, status.GoogleConnected)
	assert.False(t, status.GitHubConnected)

	username := "octocat"
	repo.github = &authentity.GitHubAccount{UserID: 1, GitHubUsername: &username}
	status, appErr = svc.ConnectionStatus(context.Background(), 1)
	require.Nil(t, appErr)
	assert.True(t, status.GitHubConnected)
	require.NotNil(t, status.GitHubUsername)
	assert.Equal(t, "octocat", *status.GitHubUsername)
}
