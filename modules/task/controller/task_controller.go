package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/params"
	"agenda-api/core/utils"
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/service"

	"github.com/labstack/echo/v4"
)

type TaskController struct {
	service *service.TaskService
	controller.BaseController
}

func NewTaskController(service *service.TaskService) *TaskController {
	return &TaskController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Create adds a task
// @Summary Create a task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task payload"
// @Success 200 {object} entity.Task
// @Failure 400 {object} errors.AppError
// @Router /private/tasks [post]
func (c *TaskController) Create(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.CreateTaskRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Create(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task created successfully")
}

// Get returns one task
// @Summary Get a task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entity.Task
// @Failure 404 {object} errors.AppError
// @Router /private/tasks/{id} [get]
func (c *TaskController) Get(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	result, appErr := c.service.Get(ctx.Request().Context(), userID, taskID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task retrieved successfully")
}

// List returns the user's tasks with their optional calendar events
// @Summary List tasks
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} []dto.UserTaskResponse
// @Router /private/tasks [get]
func (c *TaskController) List(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	filter := new(dto.ListTasksFilter)
	if err := ctx.Bind(filter); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters", nil)
	}

	result, appErr := c.service.List(ctx.Request().Context(), userID, filter, params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Tasks retrieved successfully")
}

// Update modifies a task
// @Summary Update a task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} entity.Task
// @Failure 404 {object} errors.AppError
// @Router /private/tasks/{id} [put]
func (c *TaskController) Update(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	req := new(dto.UpdateTaskRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.Update(ctx.Request().Context(), userID, taskID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task updated successfully")
}

// Complete marks a task done
// @Summary Complete a task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Router /private/tasks/{id}/complete [post]
func (c *TaskController) Complete(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	if appErr := c.service.Complete(ctx.Request().Context(), userID, taskID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Task completed")
}

// Delete removes a task
// @Summary Delete a task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Router /private/tasks/{id} [delete]
func (c *TaskController) Delete(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	if appErr := c.service.Delete(ctx.Request().Context(), userID, taskID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Task deleted")
}

// StartSession logs the start of a work interval
// @Summary Start a work session
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entity.TaskSession
// @Router /private/tasks/{id}/sessions [post]
func (c *TaskController) StartSession(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	result, appErr := c.service.StartSession(ctx.Request().Context(), userID, taskID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Session started")
}

// EndSession closes an open work interval
// @Summary End a work session
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param sessionId path int true "Session ID"
// @Success 200 {object} entity.TaskSession
// @Router /private/tasks/sessions/{sessionId}/end [post]
func (c *TaskController) EndSession(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	sessionID, err := utils.ParseID(ctx.Param("sessionId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid session id", nil)
	}

	result, appErr := c.service.EndSession(ctx.Request().Context(), userID, sessionID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Session ended")
}

// ListSessions returns the logged intervals for a task
// @Summary List work sessions
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} []entity.TaskSession
// @Router /private/tasks/{id}/sessions [get]
func (c *TaskController) ListSessions(ctx echo.Context) error {
	userID, appErr := middleware.UserID(ctx)
	if appErr != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	taskID, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	result, appErr := c.service.ListSessions(ctx.Request().Context(), userID, taskID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Sessions retrieved successfully")
}
