package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/auth"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/bucketlist"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/config"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/db"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/event"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/health"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/httputil"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/item"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/kafka"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/logger"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/messaging"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/metrics"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/middleware"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/user"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	producer event.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database,
		(*user.User)(nil),
		(*bucketlist.BucketList)(nil),
		(*item.Item)(nil),
	); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	app.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondWithErrors(w, http.StatusNotFound, []string{"route not found"})
	})

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Activity event producer: Kafka when brokers are configured, else NATS,
	// else events are skipped entirely
	events := app.newEventService(slogLogger)

	// Auth setup
	userRepo := user.NewRepository(database)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, slogLogger, m, events)
	authHandler.RegisterRoutes(app.router)

	// Bucketlist and item stores
	listRepo := bucketlist.NewRepository(database)
	listService := bucketlist.NewService(listRepo)
	listHandler := bucketlist.NewHandler(listService, slogLogger, m, events)

	itemRepo := item.NewRepository(database)
	itemService := item.NewService(itemRepo, listRepo)
	itemHandler := item.NewHandler(itemService, slogLogger, m, events)

	// Versioned, auth-guarded resource routes
	app.router.Group(func(r chi.Router) {
		r.Use(middleware.APIVersion(1))
		r.Use(auth.Middleware(tokens, userRepo, slogLogger))
		listHandler.RegisterRoutes(r)
		itemHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) newEventService(slogLogger *slog.Logger) *event.Service {
	var producer event.Producer
	var err error

	switch {
	case len(a.config.Kafka.Brokers) > 0:
		producer, err = kafka.NewProducer(a.config.Kafka.Brokers, a.config.Kafka.Topic, slogLogger)
	case a.config.NATS.URL != "":
		producer, err = messaging.NewProducer(a.config.NATS.URL, a.config.NATS.Subject, slogLogger)
	default:
		slogLogger.Info("no event broker configured, activity events disabled")
		return nil
	}

	if err != nil {
		slogLogger.Warn("failed to initialize event producer", "error", err)
		return nil
	}

	a.producer = producer
	return event.NewService(producer, slogLogger)
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close event producer", "error", err)
		}
	}
	return a.server.Shutdown(ctx)
}
