package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public/auth")
	public.POST("/login", r.AuthController.Login)
	public.POST("/refresh", r.AuthController.Refresh)
	public.GET("/google/callback", r.AuthController.GoogleCallback)
	public.GET("/github/callback", r.AuthController.GitHubCallback)

	private := v1.Group("/private/auth", mw.AuthMiddleware())
	private.POST("/logout", r.AuthController.Logout)
	private.POST("/google/connect", r.AuthController.ConnectGoogle)
	private.POST("/github/connect", r.AuthController.ConnectGitHub)
	private.GET("/connections", r.AuthController.ConnectionStatus)
	private.DELETE("/connections/:provider", r.AuthController.Disconnect)
}
