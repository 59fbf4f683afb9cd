package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/utils"
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

type MeetingController struct {
	service *service.MeetingService
	controller.BaseController
}

func NewMeetingController(service *service.MeetingService) *MeetingController {
	return &MeetingController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// AttachLink stores a caller-supplied meeting link on an event
// @Summary Attach a meeting link
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.AttachLinkRequest true "Link payload"
// @Success 200 {object} entity.MeetingLink
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/events/{id}/link [put]
func (c *MeetingController) AttachLink(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	req := new(dto.AttachLinkRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.AttachLink(ctx.Request().Context(), userID, eventID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting link attached")
}

// GenerateLink mints a fresh meeting link for an event
// @Summary Generate a meeting link
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.GenerateLinkRequest true "Platform choice"
// @Success 200 {object} entity.MeetingLink
// @Router /private/calendar/events/{id}/link/generate [post]
func (c *MeetingController) GenerateLink(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	req := new(dto.GenerateLinkRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.GenerateLink(ctx.Request().Context(), userID, eventID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting link generated")
}

// GetLink returns the event's meeting link
// @Summary Get the meeting link
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} entity.MeetingLink
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/events/{id}/link [get]
func (c *MeetingController) GetLink(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	result, appErr := c.service.GetLink(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting link retrieved successfully")
}

// RemoveLink deletes the event's meeting link
// @Summary Remove the meeting link
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Router /private/calendar/events/{id}/link [delete]
func (c *MeetingController) RemoveLink(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	if appErr := c.service.RemoveLink(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Meeting link removed")
}
