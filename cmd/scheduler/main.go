package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"course_portal_backend/internal/notification"
	"course_portal_backend/internal/scheduler"
	"course_portal_backend/platform/config"
	"course_portal_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broadcaster, err := notification.NewBroadcaster(cfg, log)
	if err != nil {
		log.Error("failed to initialize telegram broadcaster", "error", err)
		panic("failed to initialize telegram broadcaster: " + err.Error())
	}

	var notifier scheduler.GroupNotifier
	if broadcaster != nil {
		notifier = broadcaster
	} else {
		log.Warn("telegram not configured; lead broadcasts will be dropped")
	}

	worker, err := scheduler.NewWorker(cfg, notifier, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
