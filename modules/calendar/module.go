package calendar

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/core/worker"
	"agenda-api/modules/calendar/controller"
	"agenda-api/modules/calendar/repository"
	"agenda-api/modules/calendar/router"
	"agenda-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes. The
// returned service also serves as the worker-side sync handler.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, workerClient *worker.Client) *service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo, workerClient)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Setup(e, mw)

	return svc
}
