package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/auth"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/config"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/handler"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/metrics"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/service"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage/sqlite"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/pkg/logging"
)

func main() {
	logging.Setup()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	listSvc := service.NewListService(store)
	claimSvc := service.NewClaimService(store)
	groupSvc := service.NewGroupService(store, listSvc, claimSvc)
	membershipSvc := service.NewMembershipService(store)
	accountSvc := service.NewAccountService(store, claimSvc)

	h := handler.New(
		authenticator,
		tokens,
		accountSvc,
		listSvc,
		groupSvc,
		membershipSvc,
		claimSvc,
		metrics.New(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
