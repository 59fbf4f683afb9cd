package meeting

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	calendarrepo "agenda-api/modules/calendar/repository"
	"agenda-api/modules/meeting/controller"
	"agenda-api/modules/meeting/repository"
	"agenda-api/modules/meeting/router"
	"agenda-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting link module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.MeetingService {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, calendarrepo.NewCalendarRepository(db))
	ctrl := controller.NewMeetingController(svc)

	router.NewMeetingRouter(ctrl).Setup(e, mw)

	return svc
}
