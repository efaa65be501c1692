package scheduler

import (
	"context"
	"fmt"

	"course_portal_backend/platform/config"
	"course_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// GroupNotifier delivers a new-lead broadcast.
type GroupNotifier interface {
	NotifyGroups(ctx context.Context, payload NotifyGroupsPayload) error
}

// Worker processes queued tasks.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	notifier GroupNotifier
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier GroupNotifier, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server:   server,
		mux:      asynq.NewServeMux(),
		notifier: notifier,
		log:      log,
	}
	w.mux.HandleFunc(TaskNotifyGroups, w.handleNotifyGroups)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleNotifyGroups(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseNotifyGroupsPayload(task)
	if err != nil {
		return fmt.Errorf("parse notify payload: %w: %w", err, asynq.SkipRetry)
	}
	if w.notifier == nil {
		return nil
	}
	return w.notifier.NotifyGroups(ctx, payload)
}
