package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/careerredefine/admissions-service/internal/api/http"
	"github.com/careerredefine/admissions-service/internal/api/http/handlers"
	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/config"
	"github.com/careerredefine/admissions-service/internal/events"
	"github.com/careerredefine/admissions-service/internal/mail"
	"github.com/careerredefine/admissions-service/internal/observability"
	"github.com/careerredefine/admissions-service/internal/persistence"
	"github.com/careerredefine/admissions-service/internal/repository"
	"github.com/careerredefine/admissions-service/internal/service"
	"github.com/careerredefine/admissions-service/internal/validation"
	"github.com/careerredefine/admissions-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		registrationRepo repository.RegistrationRepository
		staffRepo        repository.StaffRepository
		sessionRepo      repository.SessionRepository
		limiter          httptransport.Limiter
	)
	if pg.Enabled() {
		registrationRepo = repository.NewRegistrationRepository(pg.PoolHandle())
		staffRepo = repository.NewStaffRepository(pg.PoolHandle())
	} else {
		registrationRepo = repository.NewMemoryRegistrationRepository()
		staffRepo = repository.NewMemoryStaffRepository()
	}
	if redis.Reachable() {
		sessionRepo = repository.NewRedisSessionRepository(redis.Client)
		limiter = httptransport.NewRedisLimiter(redis.Client)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
		limiter = httptransport.NewMemoryLimiter()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.NewActivityWorker(logger, metrics).Start(dispatcher)
	validator := validation.New()

	mailer := mail.FromConfig(cfg.Notification)
	if mailer == nil {
		logger.Warn("no mail transport configured; interview emails run in simulation mode")
	}
	notifier, err := service.NewNotificationService(cfg.Notification, registrationRepo, mailer, logger)
	if err != nil {
		logger.Fatal("failed to init notifier", zap.Error(err))
	}

	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		RegistrationRepo: registrationRepo,
		Notifier:         notifier,
		Dispatcher:       dispatcher,
		Validator:        validator,
		Metrics:          metrics,
		Logger:           logger,
		Location:         cfg.Notification.Location(),
	})
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		StaffRepo:   staffRepo,
		SessionRepo: sessionRepo,
		Validator:   validator,
		Logger:      logger,
	})
	if _, err := authService.SeedAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	checks := []handlers.DependencyCheck{{Name: "postgres"}, {Name: "redis"}}
	if pg.Enabled() {
		checks[0].Pinger = pg
	}
	if redis.Reachable() {
		checks[1].Pinger = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks...),
		Registrations:   handlers.NewRegistrationsHandler(registrationService),
		Admin:           handlers.NewAdminRegistrationsHandler(registrationService),
		Calendar:        handlers.NewCalendarHandler(registrationService),
		Auth:            handlers.NewAuthHandler(authService),
		AuthMiddleware:  auth.NewAuthMiddleware(authService),
		SubmissionLimit: httptransport.SubmissionRateLimit(limiter, cfg.RateLimit.SubmissionsPerWindow, cfg.RateLimit.Window()),
		Metrics:         metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
