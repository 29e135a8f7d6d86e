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

	"go-auth-gateway/internal/config"
	"go-auth-gateway/internal/database"
	"go-auth-gateway/internal/handler"
	"go-auth-gateway/internal/middleware"
	"go-auth-gateway/internal/model"
	"go-auth-gateway/internal/repository"
	"go-auth-gateway/internal/router"
	"go-auth-gateway/internal/service"
)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	users, cleanup, err := openUserStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	handlerChain, err := newHandler(cfg, users)
	if err != nil {
		cleanup()
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handlerChain,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		cleanupFuncs: []func(){cleanup},
	}, nil
}

// newHandler wires the services over an already opened store.
func newHandler(cfg *config.Config, users userStore) (http.Handler, error) {
	tokenService, err := service.NewTokenService(cfg.SecretKey, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(users, hasher, tokenService, cfg.StoreTimeout, cfg.HashTimeout)
	sessions := handler.NewSessionCookies(cfg.CookieSecure)

	return router.New(cfg, middleware.NewAuthMiddleware(tokenService), router.Handlers{
		Auth:    handler.NewAuthHandler(authService, sessions),
		Profile: handler.NewProfileHandler(),
	}), nil
}

func openUserStore(ctx context.Context, cfg *config.Config) (userStore, func(), error) {
	scheme, err := cfg.StoreScheme()
	if err != nil {
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch scheme {
	case "postgres":
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(connectCtx, cfg.StoreURI, database.PoolOptions{
			MaxConns:          cfg.DBMaxConns,
			MinConns:          cfg.DBMinConns,
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(connectCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		return repository.NewUserRepository(db.Pool), db.Close, nil

	case "mongodb":
		slog.Info("connecting to MongoDB")
		db, err := database.NewMongo(connectCtx, cfg.StoreURI, cfg.StoreName, cfg.DBMaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closeMongo := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				slog.Warn("mongodb disconnect failed", "error", err)
			}
		}
		if err := db.EnsureIndexes(connectCtx); err != nil {
			closeMongo()
			return nil, nil, fmt.Errorf("failed to ensure database indexes: %w", err)
		}
		return repository.NewMongoUserRepository(db.Users()), closeMongo, nil

	default:
		slog.Warn("using in-memory credential store; accounts are lost on restart")
		return repository.NewMemoryUserRepository(), func() {}, nil
	}
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		a.cleanup()
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
