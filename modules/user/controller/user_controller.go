package controller

import (
	"strings"

	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/params"
	"agenda-api/modules/user/dto"
	"agenda-api/modules/user/service"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	service *service.UserService
	controller.BaseController
}

func NewUserController(service *service.UserService) *UserController {
	return &UserController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Signup registers a new user
// @Summary Register a new user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup payload"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/users/signup [post]
func (c *UserController) Signup(ctx echo.Context) error {
	req := new(dto.SignupRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	var fieldErrs []controller.ValidationError
	if strings.TrimSpace(req.Username) == "" {
		fieldErrs = append(fieldErrs, controller.NewValidationError("username", "username is required"))
	}
	if strings.TrimSpace(req.Email) == "" {
		fieldErrs = append(fieldErrs, controller.NewValidationError("email", "email is required"))
	}
	if req.Password == "" {
		fieldErrs = append(fieldErrs, controller.NewValidationError("password", "password is required"))
	}
	if len(fieldErrs) > 0 {
		return c.BadRequest(errors.ErrMissingField, "Validation failed", fieldErrs)
	}

	result, appErr := c.service.Signup(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "User created successfully")
}

// GetProfile returns the authenticated user's profile
// @Summary Get current user profile
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/users/me [get]
func (c *UserController) GetProfile(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.GetProfile(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile retrieved successfully")
}

// UpdateProfile updates name/phone on the current user
// @Summary Update current user profile
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/users/me [put]
func (c *UserController) UpdateProfile(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.UpdateProfileRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.UpdateProfile(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile updated successfully")
}

// Deactivate soft-disables the current user
// @Summary Deactivate current user
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Router /private/users/me/deactivate [post]
func (c *UserController) Deactivate(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	if appErr := c.service.Deactivate(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Account deactivated")
}

// Delete removes the current user and all owned data
// @Summary Delete current user
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Router /private/users/me [delete]
func (c *UserController) Delete(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	if appErr := c.service.Delete(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Account deleted")
}

// Search finds users by username or email
// @Summary Search users
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} []dto.SearchUserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/users/search [get]
func (c *UserController) Search(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	qp := params.NewQueryParams(ctx)
	if q := ctx.QueryParam("q"); q != "" {
		qp.Search = q
	}

	result, appErr := c.service.Search(ctx.Request().Context(), userID, qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Users retrieved successfully")
}

// GetCollaborators lists the current user's collaborators
// @Summary List collaborators
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.SearchUserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/users/me/collaborators [get]
func (c *UserController) GetCollaborators(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.GetCollaborators(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collaborators retrieved successfully")
}
