package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/friendr/quiz-session/internal/client"
	"github.com/friendr/quiz-session/internal/config"
	"github.com/friendr/quiz-session/internal/events"
	"github.com/friendr/quiz-session/internal/handlers"
	"github.com/friendr/quiz-session/internal/middleware"
	"github.com/friendr/quiz-session/internal/services"
	"github.com/friendr/quiz-session/internal/utils"
	"github.com/friendr/quiz-session/internal/validator"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("quizd: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	slogger := logger.Slog()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, dropping events")
		eventPublisher = events.NewNoopEventPublisher()
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	var matchClient services.MatchClient
	if cfg.SimulateSubmissions {
		logger.Info("Using simulated matching backend", "delay", cfg.SimulatedDelay.String())
		matchClient = client.NewSimulatedMatchClient(cfg.SimulatedDelay, slogger)
	} else {
		logger.Info("Using matching backend", "url", cfg.MatchBackendURL)
		matchClient = client.NewHTTPMatchClient(client.HTTPClientConfig{
			BaseURL: cfg.MatchBackendURL,
			Timeout: cfg.SubmitTimeout,
			Logger:  slogger,
		})
	}

	sessions := services.NewSessionManager(
		matchClient,
		validator.New(),
		slogger,
		cfg.Events.NotifierFactory(eventPublisher, slogger),
		cfg.SessionTTL,
	)
	defer sessions.Stop()

	submitLimiter := middleware.NewIPRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitBurst, 5*time.Minute)
	defer submitLimiter.Stop()

	router := handlers.NewHandlerManager(sessions, cfg.SubmitTimeout, logger).NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitLimiter:  submitLimiter,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Quiz session service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down quiz session service")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.LogError(err, "Quiz session service stopped with error")
		return err
	}
	return nil
}
