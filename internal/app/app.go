package app

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

	"go-calc-api/internal/auth"
	"go-calc-api/internal/config"
	"go-calc-api/internal/database"
	"go-calc-api/internal/handler"
	"go-calc-api/internal/middleware"
	"go-calc-api/internal/repository"
	"go-calc-api/internal/router"
	"go-calc-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	calculationRepo := repository.NewCalculationRepository(db.Pool)
	slog.Info("database ready")

	// The blacklist client connects lazily on first use and is shared for
	// the process lifetime.
	blacklist := auth.NewRedisBlacklist(cfg.RedisURL)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, blacklist)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authService := service.NewAuthService(userRepo, hasher, tokenService)
	calculationService := service.NewCalculationService(calculationRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, authService.Resolver())
	authHandler := handler.NewAuthHandler(authService)
	calculationHandler := handler.NewCalculationHandler(calculationService)

	appRouter := router.New(cfg, db, authMiddleware, authHandler, calculationHandler)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
			func() {
				if err := blacklist.Close(); err != nil {
					slog.Warn("failed to close revocation store client", "error", err)
				}
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
