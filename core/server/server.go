package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/middleware"
	"agenda-api/core/worker"
	"agenda-api/modules/auth"
	"agenda-api/modules/calendar"
	"agenda-api/modules/collaborator"
	"agenda-api/modules/meeting"
	"agenda-api/modules/task"
	"agenda-api/modules/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires every layer together and blocks until shutdown: config,
// database (with migrations), cache, background worker, then the HTTP
// modules.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelMigrate()
	if err := db.Migrate(migrateCtx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return err
	}

	workerClient := worker.NewClient(cfg.Redis)
	defer workerClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := middleware.NewMiddleware(c)
	e.Use(mw.RequestTimeout())

	user.Init(e, db, mw)
	task.Init(e, db, mw)
	calendarSvc := calendar.Init(e, db, mw, workerClient)
	meeting.Init(e, db, mw)
	collaborator.Init(e, db, mw)
	auth.Init(e, db, mw, c)

	workerServer := worker.NewServer(cfg.Redis, cfg.Worker)
	workerServer.RegisterCalendarSync(calendarSvc.HandleSync)
	if err := workerServer.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Shutdown:Begin")

	workerServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("Server:Shutdown:Complete")
	return nil
}
