package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/task/controller"

	"github.com/labstack/echo/v4"
)

type TaskRouter struct {
	TaskController *controller.TaskController
}

func NewTaskRouter(taskController *controller.TaskController) *TaskRouter {
	return &TaskRouter{TaskController: taskController}
}

func (r *TaskRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	tasks := v1.Group("/private/tasks", mw.AuthMiddleware())

	tasks.POST("", r.TaskController.Create)
	tasks.GET("", r.TaskController.List)
	tasks.GET("/:id", r.TaskController.Get)
	tasks.PUT("/:id", r.TaskController.Update)
	tasks.DELETE("/:id", r.TaskController.Delete)
	tasks.POST("/:id/complete", r.TaskController.Complete)

	tasks.POST("/:id/sessions", r.TaskController.StartSession)
	tasks.GET("/:id/sessions", r.TaskController.ListSessions)
	tasks.POST("/sessions/:sessionId/end", r.TaskController.EndSession)
}
