package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{MeetingController: meetingController}
}

func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	links := v1.Group("/private/calendar/events/:id/link", mw.AuthMiddleware())

	links.PUT("", r.MeetingController.AttachLink)
	links.GET("", r.MeetingController.GetLink)
	links.DELETE("", r.MeetingController.RemoveLink)
	links.POST("/generate", r.MeetingController.GenerateLink)
}
