package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/collaborator/controller"

	"github.com/labstack/echo/v4"
)

type CollaboratorRouter struct {
	CollaboratorController *controller.CollaboratorController
}

func NewCollaboratorRouter(collaboratorController *controller.CollaboratorController) *CollaboratorRouter {
	return &CollaboratorRouter{CollaboratorController: collaboratorController}
}

func (r *CollaboratorRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	collaborators := v1.Group("/private/collaborators", mw.AuthMiddleware())
	collaborators.POST("/requests", r.CollaboratorController.SendRequest)
	collaborators.GET("/requests", r.CollaboratorController.ListPending)
	collaborators.POST("/requests/:id/accept", r.CollaboratorController.Accept)
	collaborators.POST("/requests/:id/reject", r.CollaboratorController.Reject)
	collaborators.DELETE("/:id", r.CollaboratorController.Remove)

	events := v1.Group("/private/calendar/events/:id/collaborators", mw.AuthMiddleware())
	events.POST("", r.CollaboratorController.AddToEvent)
	events.GET("", r.CollaboratorController.ListEventParticipants)
	events.DELETE("/:userId", r.CollaboratorController.RemoveFromEvent)
}
