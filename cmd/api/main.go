package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"handmade-shop/internal/config"
	"handmade-shop/internal/database"
	"handmade-shop/internal/domain"
	"handmade-shop/internal/logger"
	"handmade-shop/internal/repository"
	"handmade-shop/internal/server"
	"handmade-shop/internal/source"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// newSource builds the configured record source. The returned db is nil
// unless the postgres source is selected.
func newSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (source.Source, *sql.DB, error) {
	switch cfg.Source.Kind {
	case config.SourceRemote:
		client := &http.Client{Timeout: cfg.Source.Timeout}
		return source.NewRemoteSource(cfg.Source.BaseURL, client, log), nil, nil

	case config.SourcePostgres:
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Database health check", zap.Any("health", database.Health(ctx, db)))

		if err := database.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, nil, err
		}
		if version, err := database.MigrationVersion(db); err == nil {
			log.Info("Catalog schema ready", zap.Int64("version", version))
		}
		return repository.NewCatalogSource(db), db, nil

	default:
		return source.NewStaticSource(), nil, nil
	}
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting storefront catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("source", cfg.Source.Kind),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize record source
	src, db, err := newSource(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize record source", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = newRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	}

	// Load the first snapshot. An unavailable source is not fatal: view
	// endpoints answer 503 until a later refresh succeeds.
	loader := source.NewLoader(src, log)
	if _, err := loader.Refresh(ctx); err != nil {
		if errors.Is(err, domain.ErrConfig) {
			log.Fatal("Catalog precondition failed", zap.Error(err))
		}
		log.Warn("Initial catalog load failed", zap.Error(err))
	}
	go loader.Run(ctx, cfg.Source.RefreshInterval)

	// Create server
	srv, err := server.NewServer(cfg, log, loader, db, redisClient)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	cancel()
	log.Info("Graceful shutdown complete")
}
