package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/quality-service/internal/api/http"
	"github.com/spec-kit/quality-service/internal/api/http/handlers"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/client"
	"github.com/spec-kit/quality-service/internal/config"
	"github.com/spec-kit/quality-service/internal/events"
	"github.com/spec-kit/quality-service/internal/observability"
	"github.com/spec-kit/quality-service/internal/persistence"
	"github.com/spec-kit/quality-service/internal/repository"
	"github.com/spec-kit/quality-service/internal/service"
	"github.com/spec-kit/quality-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	sheetRepo := repository.NewQualitySheetRepository(pool)
	trackingRepo := repository.NewTrackingSheetRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	nomenclatureRepo := repository.NewNomenclatureRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	sheetService := service.NewQualitySheetService(sheetRepo, trackingRepo, dispatcher)
	trackingService := service.NewTrackingSheetService(trackingRepo, sheetRepo, dispatcher)
	projectService := service.NewProjectService(projectRepo, taskRepo, dispatcher)
	nomenclatureService := service.NewNomenclatureService(nomenclatureRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	dashboardService := service.NewDashboardService(cfg.Analytics, service.DashboardDependencies{
		SheetRepo:    sheetRepo,
		TrackingRepo: trackingRepo,
		ProjectRepo:  projectRepo,
		TaskRepo:     taskRepo,
		Cache:        redis,
	}, logger)

	legacyClient, err := client.New(cfg.Legacy.BaseURL, logger)
	if err != nil {
		logger.Fatal("failed to build legacy client", zap.Error(err))
	}
	importService := service.NewImportService(legacyClient, sheetRepo, trackingRepo, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		QualitySheets:  handlers.NewQualitySheetsHandler(sheetService),
		TrackingSheets: handlers.NewTrackingSheetsHandler(trackingService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Nomenclatures:  handlers.NewNomenclaturesHandler(nomenclatureService),
		Users:          handlers.NewUsersHandler(userService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Import:         handlers.NewImportHandler(importService),
		AuthMiddleware: authMiddleware,
		Dispatcher:     dispatcher,
	})

	refresher := worker.NewRefresher(worker.ReloadFunc(func(ctx context.Context) error {
		_, err := dashboardService.Refresh(ctx)
		return err
	}), cfg.Analytics.RefreshInterval(), logger)
	refresher.Start()
	defer refresher.Stop()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	logger.Info("shutdown signal received", zap.String("signal", received.String()))
}
