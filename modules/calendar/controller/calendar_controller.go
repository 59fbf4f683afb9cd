package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/utils"
	"agenda-api/modules/calendar/dto"
	"agenda-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service *service.CalendarService
	controller.BaseController
}

func NewCalendarController(service *service.CalendarService) *CalendarController {
	return &CalendarController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Create adds a calendar event
// @Summary Create a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event payload"
// @Success 200 {object} entity.CalendarEvent
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/events [post]
func (c *CalendarController) Create(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Create(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// Get returns one calendar event
// @Summary Get a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} entity.CalendarEvent
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/events/{id} [get]
func (c *CalendarController) Get(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	result, appErr := c.service.Get(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event retrieved successfully")
}

// List returns the user's calendar events
// @Summary List calendar events
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param from query string false "Earliest scheduled date (YYYY-MM-DD)"
// @Param to query string false "Latest scheduled date (YYYY-MM-DD)"
// @Param event_type query string false "Event type filter"
// @Success 200 {object} []entity.CalendarEvent
// @Router /private/calendar/events [get]
func (c *CalendarController) List(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	filter := new(dto.ListEventsFilter)
	if err := ctx.Bind(filter); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters", nil)
	}

	result, appErr := c.service.List(ctx.Request().Context(), userID, filter)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}

// Update modifies a calendar event
// @Summary Update a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} entity.CalendarEvent
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/events/{id} [put]
func (c *CalendarController) Update(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	req := new(dto.UpdateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Update(ctx.Request().Context(), userID, eventID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// Delete removes a calendar event
// @Summary Delete a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Router /private/calendar/events/{id} [delete]
func (c *CalendarController) Delete(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	if appErr := c.service.Delete(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// UpcomingMeetings returns future meetings the user organizes or attends
// @Summary List upcoming meetings
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []entity.UpcomingMeeting
// @Router /private/calendar/meetings/upcoming [get]
func (c *CalendarController) UpcomingMeetings(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.UpcomingMeetings(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Upcoming meetings retrieved successfully")
}

// RequestSync queues a push of the event to the external calendar
// @Summary Sync an event to the external calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Router /private/calendar/events/{id}/sync [post]
func (c *CalendarController) RequestSync(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	if appErr := c.service.RequestSync(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Sync scheduled")
}
