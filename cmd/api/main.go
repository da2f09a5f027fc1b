package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sitecraft/sitecraft-go/internal/config"
	"github.com/sitecraft/sitecraft-go/internal/crypto"
	"github.com/sitecraft/sitecraft-go/internal/handler"
	"github.com/sitecraft/sitecraft-go/internal/llm"
	"github.com/sitecraft/sitecraft-go/internal/middleware"
	"github.com/sitecraft/sitecraft-go/internal/repository"
	"github.com/sitecraft/sitecraft-go/internal/service"
	"github.com/sitecraft/sitecraft-go/internal/view"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(db, cfg.DatabaseDriver); err != nil {
		return err
	}

	views, err := view.New()
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	siteRepo := repository.NewSiteRepository(db)

	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := crypto.NewPasswordHasher(crypto.DefaultHashParams())

	completer := llm.NewClient(llm.Config{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.OpenAIModel,
		MaxTokens:  cfg.OpenAIMaxTokens,
		Timeout:    cfg.OpenAITimeout,
		MaxRetries: cfg.OpenAIMaxRetries,
	})
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, generation requests will fail")
	}

	authService := service.NewAuthService(userRepo, hasher, tokens)
	genService := service.NewGeneratorService(completer, siteRepo)
	siteService := service.NewSiteService(siteRepo)

	router := handler.NewRouter(handler.Routes{
		Logger:      logger,
		Tokens:      tokens,
		Home:        handler.NewHomeHandler(views),
		Auth:        handler.NewAuthHandler(authService),
		Generator:   handler.NewGeneratorHandler(genService),
		Sites:       handler.NewSiteHandler(siteService, views),
		AuthLimiter: middleware.RateLimit(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
