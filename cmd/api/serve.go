package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"urlaubsverwaltung/docs"
	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/event"
	handlers "urlaubsverwaltung/internal/http/handler"
	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/metrics"
	"urlaubsverwaltung/internal/otel"
	"urlaubsverwaltung/internal/scheduler"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.log

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	if err := a.migrate(ctx); err != nil {
		return err
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, a.cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	events, closeEvents, err := a.publisher()
	if err != nil {
		return err
	}
	defer closeEvents()

	blacklist, err := a.blacklist(ctx)
	if err != nil {
		return err
	}

	deps := a.services(objStore, m.Publisher(events))
	tokens, err := auth.NewJWTService(a.cfg.JWT)
	if err != nil {
		return fmt.Errorf("init tokens: %w", err)
	}
	deps.Tokens = tokens
	deps.Blacklist = blacklist
	deps.Auth = service.NewAuthService(a.persons(), tokens, blacklist, log)

	if a.cfg.Scheduler.Enabled {
		sched := scheduler.New(a.cfg.Location(), log, m)
		for _, job := range scheduler.Jobs(a.cfg.Scheduler, deps.Applications, deps.SickNotes, deps.Accounts, a.cfg.Location()) {
			if err := sched.Add(job); err != nil {
				return err
			}
		}
		sched.Start(ctx)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Warn("scheduler stop", zap.Error(err))
			}
		}()
	}

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             12 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID(log))
	// JSON access log for every request
	app.Use(middleware.AccessLog(log))
	app.Use(prom.Handler())

	handlers.RegisterRoutes(app, deps)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("env", a.cfg.Env))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// publisher returns the NATS publisher when enabled, otherwise events are
// only logged.
func (a *app) publisher() (event.Publisher, func(), error) {
	if !a.cfg.NATS.Enabled {
		return event.NewLogPublisher(a.log), func() {}, nil
	}

	conn, err := event.Connect(a.cfg.NATS.URL, a.log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats: %w", err)
	}
	return event.NewNATSPublisher(conn, a.cfg.NATS.SubjectPrefix, a.log), func() {
		if err := conn.Drain(); err != nil {
			a.log.Warn("nats drain", zap.Error(err))
		}
	}, nil
}

// blacklist returns the Redis token blacklist when enabled, otherwise an
// in-memory one that is lost on restart.
func (a *app) blacklist(ctx context.Context) (auth.TokenBlacklist, error) {
	if !a.cfg.Redis.Enabled {
		return auth.NewInMemoryTokenBlacklist(), nil
	}

	client, err := auth.NewRedisClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return auth.NewRedisTokenBlacklist(client), nil
}
