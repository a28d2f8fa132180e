package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GroceryWise/internal/auth"
	"GroceryWise/internal/config"
	"GroceryWise/internal/handlers"
	"GroceryWise/internal/middleware"
	"GroceryWise/internal/repo"
	"GroceryWise/internal/service"
	"GroceryWise/internal/telemetry"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap: json для продакшена, консольный для разработки
	logger, err := newLogger(cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "grocerywise", cfg.OTelEndpoint)
	if err != nil {
		sugar.Warnw("tracing disabled", "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	if cfg.AuthSecret == "dev-secret-key" {
		sugar.Warn("SECRET_KEY is not set, using the development secret")
	}

	tokens := auth.NewTokenService(cfg.AuthSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	userService := service.NewUserService(repo.NewUserRepository(gormDB), auth.NewHasher(cfg.BcryptCost))
	groceryService := service.NewGroceryService(repo.NewGroceryRepository(gormDB), sugar)

	h := handlers.NewHandler(userService, groceryService, tokens, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", srv.Addr,
		"api_prefix", cfg.APIPrefix,
		"token_ttl_minutes", cfg.TokenTTLMinutes,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			sugar.Errorw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		sugar.Warnw("tracing shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(format string) (*zap.Logger, error) {
	if format == "json" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
