package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"help-app-api/auth"
	"help-app-api/bookings"
	"help-app-api/catalog"
	"help-app-api/config"
	"help-app-api/handlers"
	"help-app-api/logging"
	"help-app-api/middleware"
	"help-app-api/reviews"
	"help-app-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init("help-app-api", cfg.Environment)

	if os.Getenv("GIN_MODE") == "" && cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	log.Info().Msg("database connected and migrated")

	issuer := auth.NewIssuer(db, []byte(cfg.JWTSecret),
		auth.WithTTL(cfg.TokenTTL),
		auth.WithHashCost(cfg.BcryptCost),
	)
	h := handlers.New(issuer, catalog.New(db), bookings.NewLifecycle(db), reviews.NewLedger(db))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS())
	routes.SetupRoutes(r, h, issuer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TokenSweepInterval > 0 {
		go issuer.RunSweeper(ctx, cfg.TokenSweepInterval)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
