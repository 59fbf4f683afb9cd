package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service *service.AuthService
	controller.BaseController
}

func NewAuthController(service *service.AuthService) *AuthController {
	return &AuthController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Login authenticates with username or email plus password
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Failure 429 {object} errors.AppError
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	req := new(dto.LoginRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Login(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Login successful")
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/refresh [post]
func (c *AuthController) Refresh(ctx echo.Context) error {
	req := new(dto.RefreshTokenRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Refresh(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Token refreshed")
}

// Logout revokes the current tokens
// @Summary Log out
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Optional refresh token to revoke too"
// @Success 200 {object} map[string]string
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	accessToken, appErr := utils.GetTokenFromHeader(ctx.Request().Header.Get("Authorization"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.LogoutRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	if appErr := c.service.Logout(ctx.Request().Context(), accessToken, req.RefreshToken); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Logged out")
}

// ConnectGoogle starts the Google OAuth consent flow
// @Summary Connect a Google account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthorizeResponse
// @Router /private/auth/google/connect [post]
func (c *AuthController) ConnectGoogle(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.BeginOAuth(ctx.Request().Context(), userID, service.ProviderGoogle)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Authorization URL issued")
}

// GoogleCallback completes the Google OAuth flow
// @Summary Google OAuth callback
// @Tags Auth
// @Produce json
// @Param state query string true "State"
// @Param code query string true "Authorization code"
// @Success 200 {object} entity.GoogleAccount
// @Failure 401 {object} errors.AppError
// @Router /public/auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")
	if state == "" || code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "state and code are required", nil)
	}

	result, appErr := c.service.CompleteGoogleOAuth(ctx.Request().Context(), state, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Google account connected")
}

// ConnectGitHub starts the GitHub OAuth consent flow
// @Summary Connect a GitHub account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthorizeResponse
// @Router /private/auth/github/connect [post]
func (c *AuthController) ConnectGitHub(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.BeginOAuth(ctx.Request().Context(), userID, service.ProviderGitHub)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Authorization URL issued")
}

// GitHubCallback completes the GitHub OAuth flow
// @Summary GitHub OAuth callback
// @Tags Auth
// @Produce json
// @Param state query string true "State"
// @Param code query string true "Authorization code"
// @Success 200 {object} entity.GitHubAccount
// @Failure 401 {object} errors.AppError
// @Router /public/auth/github/callback [get]
func (c *AuthController) GitHubCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")
	if state == "" || code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "state and code are required", nil)
	}

	result, appErr := c.service.CompleteGitHubOAuth(ctx.Request().Context(), state, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "GitHub account connected")
}

// ConnectionStatus reports linked external accounts
// @Summary Get connection status
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ConnectionStatusResponse
// @Router /private/auth/connections [get]
func (c *AuthController) ConnectionStatus(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.ConnectionStatus(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Connection status retrieved successfully")
}

// Disconnect unlinks an external account
// @Summary Disconnect a provider
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param provider path string true "Provider (google or github)"
// @Success 200 {object} map[string]string
// @Router /private/auth/connections/{provider} [delete]
func (c *AuthController) Disconnect(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	provider := ctx.Param("provider")
	if appErr := c.service.Disconnect(ctx.Request().Context(), userID, provider); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Provider disconnected")
}
