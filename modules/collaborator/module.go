package collaborator

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	calendarrepo "agenda-api/modules/calendar/repository"
	"agenda-api/modules/collaborator/controller"
	"agenda-api/modules/collaborator/repository"
	"agenda-api/modules/collaborator/router"
	"agenda-api/modules/collaborator/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the collaborator module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.CollaboratorService {
	repo := repository.NewCollaboratorRepository(db)
	svc := service.NewCollaboratorService(repo, calendarrepo.NewCalendarRepository(db))
	ctrl := controller.NewCollaboratorController(svc)

	router.NewCollaboratorRouter(ctrl).Setup(e, mw)

	return svc
}
