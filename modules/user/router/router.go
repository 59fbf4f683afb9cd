package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/user/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	UserController *controller.UserController
}

func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{UserController: userController}
}

func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public/users")
	public.POST("/signup", r.UserController.Signup)

	private := v1.Group("/private/users", mw.AuthMiddleware())
	private.GET("/me", r.UserController.GetProfile)
	private.PUT("/me", r.UserController.UpdateProfile)
	private.DELETE("/me", r.UserController.Delete)
	private.POST("/me/deactivate", r.UserController.Deactivate)
	private.GET("/me/collaborators", r.UserController.GetCollaborators)
	private.GET("/search", r.UserController.Search)
}
