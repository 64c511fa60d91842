package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelhub/cmd"
	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/redis/statuscache"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/config"
	"parcelhub/internal/pkg/logger"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := cmd.LoadConfig(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err = logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err = run(cfg, logger.Get()); err != nil {
		logger.Get().Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(cfg.Database.DSN())
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	cache, closeCache, err := openStatusCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	app, err := cmd.NewCompositionRoot(*cfg, gormDB, cache, log)
	if err != nil {
		return err
	}
	if err = seedStatuses(ctx, app); err != nil {
		return err
	}

	router, err := httpadapter.NewRouter(app.CreateHTTPServer(), httpadapter.RouterConfig{
		Authenticator: httpadapter.NewAuthenticator(cfg.JWTSecret),
		Logger:        log,
		LogLevel:      cfg.LogLevel,
	})
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		log.Info("http server starting", zap.String("addr", addr))
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}

// openStatusCache connects to Redis when REDIS_URL is set. Without it statuses are read
// from the database every time.
func openStatusCache(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (ports.StatusCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("status cache disabled")
		return nil, func() {}, nil
	}

	cache, err := statuscache.New(cfg.RedisURL, cfg.StatusCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	if err = cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return cache, func() {
		if err := cache.Close(); err != nil {
			log.Warn("close status cache", zap.Error(err))
		}
	}, nil
}

func seedStatuses(ctx context.Context, app cmd.CompositionRoot) error {
	command, err := commands.NewSeedPackageStatusesCommand(nil)
	if err != nil {
		return err
	}
	handler := app.CreateSeedPackageStatusesCommandHandler()
	_, err = handler.Handle(ctx, command)
	return err
}
