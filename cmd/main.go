// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meetgrid/server/internal/auth"
	"github.com/meetgrid/server/internal/config"
	"github.com/meetgrid/server/internal/database"
	"github.com/meetgrid/server/internal/handler"
	"github.com/meetgrid/server/internal/repository"
	"github.com/meetgrid/server/internal/service"
	"github.com/meetgrid/server/internal/token"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		// Logger config may itself be broken, so construct a bare one.
		fallback := config.NewLogger(config.Config{})
		fallback.Fatal().Err(err).Msg("load config")
	}
	logger := config.NewLogger(cfg)

	// ── 1. Database: migrate, then connect the pool ──────────────────────
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}
	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	tokens, err := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL())
	if err != nil {
		logger.Fatal().Err(err).Msg("init token service")
	}
	guard := auth.NewGuard(tokens)

	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	catRepo := repository.NewCategoryRepository(pool)

	authSvc := service.NewAuthService(userRepo, tokens, logger)
	eventSvc := service.NewEventService(eventRepo, logger)
	regSvc := service.NewRegistrationService(eventRepo, regRepo, logger)
	catSvc := service.NewCategoryService(catRepo, logger)

	router := handler.NewRouter(handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, guard),
		Events:        handler.NewEventHandler(eventSvc, guard),
		Registrations: handler.NewRegistrationHandler(regSvc, guard),
		Categories:    handler.NewCategoryHandler(catSvc, guard),
		Guard:         guard,
		Metrics:       handler.NewMetrics(),
		Logger:        logger,
	})

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
