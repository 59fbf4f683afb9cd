package task

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/task/controller"
	"agenda-api/modules/task/repository"
	"agenda-api/modules/task/router"
	"agenda-api/modules/task/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the task module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.TaskService {
	repo := repository.NewTaskRepository(db)
	svc := service.NewTaskService(repo)
	ctrl := controller.NewTaskController(svc)

	router.NewTaskRouter(ctrl).Setup(e, mw)

	return svc
}
