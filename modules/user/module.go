package user

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/user/controller"
	"agenda-api/modules/user/repository"
	"agenda-api/modules/user/router"
	"agenda-api/modules/user/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the user module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.UserService {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo)
	ctrl := controller.NewUserController(svc)

	router.NewUserRouter(ctrl).Setup(e, mw)

	return svc
}
