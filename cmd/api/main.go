package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_portal_backend/internal/adapters"
	"course_portal_backend/internal/courses"
	"course_portal_backend/internal/events"
	apphttp "course_portal_backend/internal/http"
	"course_portal_backend/internal/http/router"
	"course_portal_backend/internal/leads"
	"course_portal_backend/internal/notification"
	"course_portal_backend/internal/scheduler"
	"course_portal_backend/internal/statuses"
	"course_portal_backend/internal/users"
	"course_portal_backend/platform/config"
	"course_portal_backend/platform/db"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var schemaVersion uint
	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		v, err := db.RunMigrations(ctx, cfg)
		if errors.Is(err, db.ErrDirtySchema) {
			return permanent{err}
		}
		if err != nil {
			return err
		}
		schemaVersion = v
		return nil
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete", "version", schemaVersion)

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	notifyQueue, closeQueue := initNotifyQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// Shared validator instance for dependency injection
	val := validator.New(cfg.GetPhoneDefaultRegion())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	var enqueuer notification.Enqueuer
	if notifyQueue != nil {
		enqueuer = notifyQueue
	}
	notification.New(enqueuer, log).RegisterHandlers(eventBus)

	statusesModule := statuses.NewModule(pool, eventBus, val, cfg, log)
	if err := withRetry(ctx, log, "status board bootstrap", 3, time.Second, func() error {
		return statusesModule.Bootstrap(ctx)
	}); err != nil {
		log.Error("failed to bootstrap status board", "error", err)
		panic("failed to bootstrap status board: " + err.Error())
	}

	coursesModule := courses.NewModule(pool)
	usersModule := users.NewModule(pool)

	// Anti-Corruption Layer: leads only depends on its own ports
	leadsModule := leads.NewModule(pool, leads.Dependencies{
		Courses:  adapters.NewCourseReaderAdapter(coursesModule.Repository()),
		Users:    adapters.NewUserDirectoryAdapter(usersModule.Repository()),
		Intake:   adapters.NewIntakeTxAdapter(pool),
		Statuses: adapters.NewStatusReaderAdapter(statusesModule.Service()),
	}, eventBus, val, cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			statusesModule,
			leadsModule,
			coursesModule,
			usersModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initNotifyQueue(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead broadcasts disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

// permanent marks an error that withRetry must not retry.
type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			var p permanent
			if errors.As(err, &p) {
				return fmt.Errorf("%s: %w", name, p.err)
			}
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
