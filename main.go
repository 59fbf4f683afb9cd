package main

import (
	"agenda-api/core/logger"
	"agenda-api/core/server"
)

// @title Agenda API
// @version 1.0
// @description Backend for a personal agenda: tasks, calendar events, meetings and collaboration.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
