package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{CalendarController: calendarController}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	calendar := v1.Group("/private/calendar", mw.AuthMiddleware())

	calendar.POST("/events", r.CalendarController.Create)
	calendar.GET("/events", r.CalendarController.List)
	calendar.GET("/events/:id", r.CalendarController.Get)
	calendar.PUT("/events/:id", r.CalendarController.Update)
	calendar.DELETE("/events/:id", r.CalendarController.Delete)
	calendar.POST("/events/:id/sync", r.CalendarController.RequestSync)

	calendar.GET("/meetings/upcoming", r.CalendarController.UpcomingMeetings)
}
