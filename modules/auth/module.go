package auth

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"
	"agenda-api/modules/auth/repository"
	"agenda-api/modules/auth/router"
	"agenda-api/modules/auth/service"
	userrepo "agenda-api/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.Cache) *service.AuthService {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, userrepo.NewUserRepository(db), c)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Setup(e, mw)

	return svc
}
