package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/nextgenrdp/platform/internal/api/http"
	"github.com/nextgenrdp/platform/internal/api/http/handlers"
	"github.com/nextgenrdp/platform/internal/auth"
	"github.com/nextgenrdp/platform/internal/config"
	"github.com/nextgenrdp/platform/internal/events"
	"github.com/nextgenrdp/platform/internal/observability"
	"github.com/nextgenrdp/platform/internal/persistence"
	"github.com/nextgenrdp/platform/internal/pricing"
	"github.com/nextgenrdp/platform/internal/repository"
	"github.com/nextgenrdp/platform/internal/service"
	"github.com/nextgenrdp/platform/internal/worker"
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

	promoCodes := pricing.DefaultPromoCodes()
	if len(cfg.Promo.Entries) > 0 {
		extra, err := pricing.ParsePromoEntries(cfg.Promo.Entries)
		if err != nil {
			logger.Fatal("failed to parse promo codes", zap.Error(err))
		}
		promoCodes = append(promoCodes, extra...)
	}
	promoTable, err := pricing.NewPromoTable(promoCodes)
	if err != nil {
		logger.Fatal("failed to build promo table", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	catalogService := service.NewCatalogService(planRepo, redis, logger)
	orderService := service.NewOrderService(orderRepo, planRepo, promoTable, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	classifier := auth.NewRouteClassifier(cfg.Routes.AdminPrefixes, cfg.Routes.UserPrefixes, cfg.Routes.PublicPrefixes)
	gate := auth.NewGate(authService.TokenManager(), classifier, logger, cfg.Auth.CookieSecure)
	adminVerifier := auth.NewAdminVerifier(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(gate.Handle)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure)
	plansHandler := handlers.NewPlansHandler(catalogService, promoTable)
	ordersHandler := handlers.NewOrdersHandler(orderService)
	adminHandler := handlers.NewAdminHandler(adminVerifier, catalogService, orderService, userRepo)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: healthHandler,
		Auth:   authHandler,
		Plans:  plansHandler,
		Orders: ordersHandler,
		Admin:  adminHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
