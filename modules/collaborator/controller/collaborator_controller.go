package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/utils"
	"agenda-api/modules/collaborator/dto"
	"agenda-api/modules/collaborator/service"

	"github.com/labstack/echo/v4"
)

type CollaboratorController struct {
	service *service.CollaboratorService
	controller.BaseController
}

func NewCollaboratorController(service *service.CollaboratorService) *CollaboratorController {
	return &CollaboratorController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// SendRequest invites another user to collaborate
// @Summary Send a collaboration request
// @Tags Collaborator
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendRequestRequest true "Receiver"
// @Success 200 {object} entity.CollaborationRequest
// @Failure 409 {object} errors.AppError
// @Router /private/collaborators/requests [post]
func (c *CollaboratorController) SendRequest(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.SendRequestRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.SendRequest(ctx.Request().Context(), userID, req.ReceiverID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collaboration request sent")
}

// ListPending returns incoming pending requests
// @Summary List pending collaboration requests
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []entity.PendingRequest
// @Router /private/collaborators/requests [get]
func (c *CollaboratorController) ListPending(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.ListPending(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Pending requests retrieved successfully")
}

// Accept confirms an incoming request
// @Summary Accept a collaboration request
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} entity.CollaborationRequest
// @Failure 404 {object} errors.AppError
// @Router /private/collaborators/requests/{id}/accept [post]
func (c *CollaboratorController) Accept(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request id", nil)
	}

	result, appErr := c.service.Accept(ctx.Request().Context(), userID, requestID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collaboration request accepted")
}

// Reject declines an incoming request
// @Summary Reject a collaboration request
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} entity.CollaborationRequest
// @Failure 404 {object} errors.AppError
// @Router /private/collaborators/requests/{id}/reject [post]
func (c *CollaboratorController) Reject(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request id", nil)
	}

	result, appErr := c.service.Reject(ctx.Request().Context(), userID, requestID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collaboration request rejected")
}

// Remove severs a collaboration both ways
// @Summary Remove a collaborator
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Param id path int true "Collaborator user ID"
// @Success 200 {object} map[string]string
// @Router /private/collaborators/{id} [delete]
func (c *CollaboratorController) Remove(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	otherID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}

	if appErr := c.service.Remove(ctx.Request().Context(), userID, otherID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Collaborator removed")
}

// AddToEvent invites a collaborator onto an event
// @Summary Add an event collaborator
// @Tags Collaborator
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.AddEventCollaboratorRequest true "Collaborator"
// @Success 200 {object} entity.EventCollaborator
// @Failure 422 {object} errors.AppError
// @Router /private/calendar/events/{id}/collaborators [post]
func (c *CollaboratorController) AddToEvent(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	req := new(dto.AddEventCollaboratorRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.AddToEvent(ctx.Request().Context(), userID, eventID, req.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event collaborator added")
}

// RemoveFromEvent takes a collaborator off an event
// @Summary Remove an event collaborator
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /private/calendar/events/{id}/collaborators/{userId} [delete]
func (c *CollaboratorController) RemoveFromEvent(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	targetID, err := utils.ParseID(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}

	if appErr := c.service.RemoveFromEvent(ctx.Request().Context(), userID, eventID, targetID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event collaborator removed")
}

// ListEventParticipants returns everyone on an event
// @Summary List event participants
// @Tags Collaborator
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} []entity.EventParticipant
// @Router /private/calendar/events/{id}/collaborators [get]
func (c *CollaboratorController) ListEventParticipants(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	result, appErr := c.service.ListEventParticipants(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participants retrieved successfully")
}
