package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/logger"

	"github.com/hibiken/asynq"
)

// CalendarSyncPayload identifies the event a sync job should push to the
// external calendar.
type CalendarSyncPayload struct {
	EventID int64 `json:"event_id"`
	UserID  int64 `json:"user_id"`
}

// Client enqueues background jobs.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) EnqueueCalendarSync(ctx context.Context, payload CalendarSyncPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal calendar sync payload: %w", err)
	}

	task := asynq.NewTask(constants.TaskTypeCalendarSync, data)
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(constants.QueueDefault), asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("failed to enqueue calendar sync: %w", err)
	}

	logger.Info("Worker:EnqueueCalendarSync", "task_id", info.ID, "event_id", payload.EventID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// CalendarSyncHandler performs one sync job.
type CalendarSyncHandler func(ctx context.Context, payload CalendarSyncPayload) error

// Server consumes background jobs.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(redisCfg config.RedisConfig, workerCfg config.WorkerConfig) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: workerCfg.Concurrency,
			Queues:      map[string]int{constants.QueueDefault: 1},
		},
	)

	return &Server{
		server: srv,
		mux:    asynq.NewServeMux(),
	}
}

func (s *Server) RegisterCalendarSync(handler CalendarSyncHandler) {
	s.mux.HandleFunc(constants.TaskTypeCalendarSync, func(ctx context.Context, t *asynq.Task) error {
		var payload CalendarSyncPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal calendar sync payload: %w", err)
		}
		return handler(ctx, payload)
	})
}

// Start runs the worker loop in a goroutine.
func (s *Server) Start() error {
	return s.server.Start(s.mux)
}

func (s *Server) Shutdown() {
	s.server.Shutdown()
}
