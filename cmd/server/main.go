package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"booking-service/internal/app"
	"booking-service/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL required")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	store := &app.PGStore{DB: pool}

	// Google clients are built once here and injected; when credentials are
	// absent the integrations stay nil and the booking flow degrades.
	var cal app.CalendarAPI
	var mailer app.Notifier
	if cfg.GoogleConfigured() {
		gcal, err := app.NewGoogleCalendar(ctx, cfg)
		if err != nil {
			logger.Warn("google calendar disabled", zap.Error(err))
		} else {
			cal = gcal
		}
		gm, err := app.NewGmailNotifier(ctx, cfg)
		if err != nil {
			logger.Warn("gmail notifications disabled", zap.Error(err))
		} else {
			mailer = gm
		}
	} else {
		logger.Warn("google credentials not configured, calendar and mail integrations disabled")
	}

	application := app.New(cfg, logger, store, cal, mailer)
	router := app.NewRouter(application)

	logger.Info("starting http server", zap.String("port", cfg.AppPort))
	if err := server.Run(router, ":"+cfg.AppPort); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
