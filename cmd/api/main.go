package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/weddingelite/backend/api/routes"
	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/internal/guests"
	"github.com/weddingelite/backend/internal/notifications"
	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/internal/vendors"
	"github.com/weddingelite/backend/internal/weddings"
	"github.com/weddingelite/backend/pkg/config"
	"github.com/weddingelite/backend/pkg/db"
	"github.com/weddingelite/backend/pkg/logger"
	"github.com/weddingelite/backend/pkg/metrics"
	"github.com/weddingelite/backend/pkg/migrate"
	"github.com/weddingelite/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var publisher relay.Publisher = relay.Nop{}
	if cfg.Relay.Enabled {
		publisher = relay.NewRedisPublisher(redisClient, logg, cfg.Relay)
	}

	weddingsRepo := weddings.NewRepository(dbClient.DB())
	budgetRepo := budget.NewRepository(dbClient.DB())
	vendorsRepo := vendors.NewRepository(dbClient.DB())
	tasksRepo := tasks.NewRepository(dbClient.DB())
	guestsRepo := guests.NewRepository(dbClient.DB())
	notifRepo := notifications.NewRepository(dbClient.DB())

	weddingsService, err := weddings.NewService(weddings.Deps{
		Client:     dbClient,
		Repo:       weddingsRepo,
		BudgetRepo: budgetRepo,
		TasksRepo:  tasksRepo,
		NotifRepo:  notifRepo,
		Defaults:   cfg.Planner,
		Publisher:  publisher,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create weddings service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	budgetService, err := budget.NewService(budgetRepo, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create budget service", err)
		os.Exit(1)
	}

	vendorsService, err := vendors.NewService(dbClient, vendorsRepo, budgetRepo, notifRepo, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}

	tasksService, err := tasks.NewService(tasksRepo, notificationsService, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create tasks service", err)
		os.Exit(1)
	}

	guestsService, err := guests.NewService(guestsRepo, publisher)
	if err != nil {
		logg.Error(context.Background(), "failed to create guests service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Metrics:       metrics.NewHTTPMetrics(),
			DB:            dbClient,
			Redis:         redisClient,
			Weddings:      weddingsService,
			Budget:        budgetService,
			Vendors:       vendorsService,
			Tasks:         tasksService,
			Guests:        guestsService,
			Notifications: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
