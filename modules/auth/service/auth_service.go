package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
	"agenda-api/modules/auth/repository"
	userentity "agenda-api/modules/user/entity"
	userrepo "agenda-api/modules/user/repository"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
	googleoauth "golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

var googleCalendarScopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

var githubScopes = []string{"read:user", "repo"}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	users userrepo.UserRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, users userrepo.UserRepositoryInterface, c cache.Cache) *AuthService {
	return &AuthService{repo: repo, users: users, cache: c}
}

// Login authenticates by username or email. Failed attempts count
// toward a temporary block so passwords cannot be brute forced.
func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	if requestData.Identifier == "" || requestData.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "identifier and password are required", nil)
	}

	loginKey := fmt.Sprintf("login:%s", requestData.Identifier)

	attempts, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if attempts >= constants.MaxLoginAttempts {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrTooManyAttempts, "too many failed attempts, try again later", nil)
	}

	user, appErr := service.findUser(ctx, requestData.Identifier)
	if appErr != nil {
		return nil, appErr
	}
	if user == nil || !user.IsActive {
		service.recordFailure(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	if !utils.CheckPassword(requestData.Password, user.PasswordHash) {
		service.recordFailure(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	if err := service.cache.Del(ctx, loginKey); err != nil {
		logger.Error("AuthService:Login:ClearAttempts", err)
	}

	logger.Info("AuthService:Login:Success", "user_id", user.ID)
	return &dto.LoginResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (service *AuthService) findUser(ctx context.Context, identifier string) (*userentity.User, *errors.AppError) {
	var (
		user *userentity.User
		err  error
	)
	if utils.IsValidEmail(identifier) {
		user, err = service.users.GetByEmail(ctx, identifier)
	} else {
		user, err = service.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	return user, nil
}

func (service *AuthService) recordFailure(ctx context.Context, loginKey string) {
	if err := service.cache.IncrementLoginAttempt(ctx, loginKey); err != nil {
		logger.Error("AuthService:Login:IncrementLoginAttempt", err)
	}
}

// Refresh rotates a refresh token: the presented one is blacklisted and
// a fresh pair is issued.
func (service *AuthService) Refresh(ctx context.Context, requestData *dto.RefreshTokenRequest) (*dto.LoginResponse, *errors.AppError) {
	claims, appErr := utils.ValidateAndParseToken(requestData.RefreshToken)
	if appErr != nil {
		return nil, appErr
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "not a refresh token", nil)
	}

	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, requestData.RefreshToken)
	if err != nil {
		logger.Error("AuthService:Refresh:IsTokenBlacklisted", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token revoked", nil)
	}

	user, err := service.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user no longer active", nil)
	}

	if err := service.cache.AddToTokenBlacklist(ctx, requestData.RefreshToken); err != nil {
		logger.Error("AuthService:Refresh:Blacklist", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to revoke old token", err)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	return &dto.LoginResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the presented access token, and the refresh token too
// when the client sends it along.
func (service *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) *errors.AppError {
	if err := service.cache.AddToTokenBlacklist(ctx, accessToken); err != nil {
		logger.Error("AuthService:Logout:BlacklistAccess", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	if refreshToken != "" {
		if err := service.cache.AddToTokenBlacklist(ctx, refreshToken); err != nil {
			logger.Error("AuthService:Logout:BlacklistRefresh", err)
			return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
		}
	}
	return nil
}

func googleOAuthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes:       googleCalendarScopes,
		Endpoint:     googleoauth.Endpoint,
	}
}

func githubOAuthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.GitHubAPI.ClientID,
		ClientSecret: cfg.GitHubAPI.ClientSecret,
		RedirectURL:  cfg.GitHubAPI.RedirectURI,
		Scopes:       githubScopes,
		Endpoint:     githuboauth.Endpoint,
	}
}

// BeginOAuth issues a single-use state bound to the user and provider
// and returns the provider's consent URL.
func (service *AuthService) BeginOAuth(ctx context.Context, userID int64, provider string) (*dto.AuthorizeResponse, *errors.AppError) {
	var oauthCfg *oauth2.Config
	var opts []oauth2.AuthCodeOption

	switch provider {
	case ProviderGoogle:
		oauthCfg = googleOAuthConfig()
		// offline + consent so Google returns a refresh token.
		opts = append(opts, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	case ProviderGitHub:
		oauthCfg = githubOAuthConfig()
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown oauth provider", nil)
	}

	state := utils.GenerateRandomString(32)
	if err := service.cache.SetOAuthState(ctx, state, provider+":"+utils.ToString(userID)); err != nil {
		logger.Error("AuthService:BeginOAuth:SetState", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store oauth state", err)
	}

	return &dto.AuthorizeResponse{
		AuthURL: oauthCfg.AuthCodeURL(state, opts...),
		State:   state,
	}, nil
}

// consumeState validates the returned state and yields the provider and
// user it was issued for.
func (service *AuthService) consumeState(ctx context.Context, state string) (string, int64, *errors.AppError) {
	stored, err := service.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		return "", 0, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired oauth state", err)
	}

	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return "", 0, errors.NewAppError(errors.ErrUnauthorized, "malformed oauth state", nil)
	}
	userID, parseErr := utils.ParseID(parts[1])
	if parseErr != nil {
		return "", 0, errors.NewAppError(errors.ErrUnauthorized, "malformed oauth state", parseErr)
	}
	return parts[0], userID, nil
}

// CompleteGoogleOAuth exchanges the code and stores the grant. A grant
// without a refresh token keeps the previously stored one.
func (service *AuthService) CompleteGoogleOAuth(ctx context.Context, state, code string) (*entity.GoogleAccount, *errors.AppError) {
	provider, userID, appErr := service.consumeState(ctx, state)
	if appErr != nil {
		return nil, appErr
	}
	if provider != ProviderGoogle {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "state was issued for another provider", nil)
	}

	oauthCfg := googleOAuthConfig()
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:CompleteGoogleOAuth:Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	account := &entity.GoogleAccount{
		UserID:      userID,
		AccessToken: token.AccessToken,
		Scopes:      googleCalendarScopes,
	}
	if token.RefreshToken != "" {
		account.RefreshToken = &token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		account.TokenExpiry = &expiry
	}
	tokenURI := oauthCfg.Endpoint.TokenURL
	account.TokenURI = &tokenURI
	account.ClientID = &oauthCfg.ClientID
	account.ClientSecret = &oauthCfg.ClientSecret

	saved, err := service.repo.UpsertGoogleAccount(ctx, account)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to store google account")
	}

	logger.Info("AuthService:CompleteGoogleOAuth:Success", "user_id", userID)
	return saved, nil
}

type githubUser struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// CompleteGitHubOAuth exchanges the code, resolves the GitHub identity
// and stores the grant.
func (service *AuthService) CompleteGitHubOAuth(ctx context.Context, state, code string) (*entity.GitHubAccount, *errors.AppError) {
	provider, userID, appErr := service.consumeState(ctx, state)
	if appErr != nil {
		return nil, appErr
	}
	if provider != ProviderGitHub {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "state was issued for another provider", nil)
	}

	oauthCfg := githubOAuthConfig()
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:CompleteGitHubOAuth:Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	ghUser, err := fetchGitHubUser(ctx, oauthCfg, token)
	if err != nil {
		logger.Error("AuthService:CompleteGitHubOAuth:FetchUser", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch github profile", err)
	}

	scopes := strings.Join(githubScopes, ",")
	account := &entity.GitHubAccount{
		UserID:         userID,
		AccessToken:    token.AccessToken,
		Scopes:         &scopes,
		GitHubUsername: &ghUser.Login,
		GitHubUserID:   &ghUser.ID,
	}
	if token.TokenType != "" {
		tokenType := token.TokenType
		account.TokenType = &tokenType
	}

	saved, err := service.repo.UpsertGitHubAccount(ctx, account)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to store github account")
	}

	logger.Info("AuthService:CompleteGitHubOAuth:Success", "user_id", userID, "github_username", ghUser.Login)
	return saved, nil
}

func fetchGitHubUser(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*githubUser, error) {
	client := cfg.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user endpoint returned %d", resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ConnectionStatus reports which external accounts are linked.
func (service *AuthService) ConnectionStatus(ctx context.Context, userID int64) (*dto.ConnectionStatusResponse, *errors.AppError) {
	google, err := service.repo.GetGoogleAccount(ctx, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to check google connection")
	}
	github, err := service.repo.GetGitHubAccount(ctx, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to check github connection")
	}

	status := &dto.ConnectionStatusResponse{
		GoogleConnected: google != nil,
		GitHubConnected: github != nil,
	}
	if github != nil {
		status.GitHubUsername = github.GitHubUsername
	}
	return status, nil
}

// Disconnect drops the stored grant for one provider.
func (service *AuthService) Disconnect(ctx context.Context, userID int64, provider string) *errors.AppError {
	switch provider {
	case ProviderGoogle:
		if err := service.repo.DeleteGoogleAccount(ctx, userID); err != nil {
			return errors.FromPostgres(err, "failed to disconnect google account")
		}
	case ProviderGitHub:
		if err := service.repo.DeleteGitHubAccount(ctx, userID); err != nil {
			return errors.FromPostgres(err, "failed to disconnect github account")
		}
	default:
		return errors.NewAppError(errors.ErrInvalidInput, "unknown oauth provider", nil)
	}

	logger.Info("AuthService:Disconnect:Success", "user_id", userID, "provider", provider)
	return nil
}
