package main // Entry point package

import (
	"context"

	"github.com/labstack/echo/v4"            // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's stock middleware
	"github.com/rs/zerolog/log"

	"boxoffice/internal/config"     // environment config loader
	"boxoffice/internal/database"   // MySQL pool, schema and seat seeding
	"boxoffice/internal/failure"    // error envelope rendering
	"boxoffice/internal/handler"    // HTTP handlers
	"boxoffice/internal/logger"     // zerolog setup
	"boxoffice/internal/middleware" // session auth, rate limit, stats cache
	"boxoffice/internal/queue"      // ticket spool consumer
	"boxoffice/internal/repository" // data access
	"boxoffice/internal/router"     // route registration
)

func main() {
	cfg := config.Load()       // load environment config, .env folded in
	logger.Init(cfg.LogLevel)  // switch to structured logging early

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Schema and the seat inventory are idempotent, so every start
	// converges the database instead of assuming a migration ran.
	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	if err := database.SeedSeats(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seat seeding failed")
	}

	rdb := config.NewRedisClient() // nil when Redis is down; limiter and cache switch off

	bookings := repository.NewBookingRepo(db)
	selections := repository.NewSelectionRepo(db)
	seats := repository.NewSeatRepo(db)
	bms := repository.NewBmsRepo(db)
	settings := repository.NewSettingsRepo(db)

	sessionH := handler.NewSessionHandler(cfg)
	seatH := handler.NewSeatHandler(cfg, seats, bookings, bms, selections)
	bookingH := handler.NewBookingHandler(cfg, bookings, selections, bms, settings)
	bmsH := handler.NewBmsHandler(bms)
	settingsH := handler.NewSettingsHandler(settings)
	ticketH := handler.NewTicketHandler(bookings, settings)
	healthH := handler.NewHealthHandler(db, cfg)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = failure.EchoHandler // every error leaves as the JSON envelope
	e.Use(echomw.RequestID())                // requestId echoed in error envelopes
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLog())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	statsCache := middleware.NewStatsCache(config.LoadStatsCacheConfig(), rdb)

	router.RegisterPublic(e, healthH, sessionH, seatH, bookingH, bmsH, settingsH, ticketH, statsCache)
	router.RegisterTerminal(e, cfg.JWTSecret, sessionH, bookingH, seatH)
	router.RegisterAdmin(e, cfg.JWTSecret, seatH, bookingH, bmsH, settingsH)

	// The spool consumer runs inside this process; it reconnects on its
	// own, so a broker outage never takes the sales API down with it.
	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartTicketConsumer(cfg.AMQPURL, cfg.TicketQueue, cfg.SpoolDir); err != nil {
				log.Error().Err(err).Msg("ticket consumer stopped")
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("box office server listening")
	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal().Err(err).Msg("server stopped")
	}
}
