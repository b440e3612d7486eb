package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"handmade-shop/internal/catalog"
	"handmade-shop/internal/config"
	"handmade-shop/internal/database"
	custommiddleware "handmade-shop/internal/middleware"
	"handmade-shop/internal/repository"
	"handmade-shop/internal/service"
	"handmade-shop/internal/source"
	"handmade-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires handlers over the snapshot loader. db and redisClient are
// optional; without Redis carts are kept in memory and rate limiting is off.
func NewServer(cfg *config.Config, logger *zap.Logger, loader *source.Loader, db *sql.DB, redisClient *redis.Client) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))
	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	router.NotFound(custommiddleware.NotFound)
	router.MethodNotAllowed(custommiddleware.NotFound)

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{"status": "ok"}

		snap, ok := loader.Current()
		health["catalog_loaded"] = ok
		if ok {
			health["catalog_generation"] = snap.Generation
		}
		if db != nil {
			health["database"] = database.Health(r.Context(), db)
		}

		custommiddleware.RespondWithJSON(w, http.StatusOK, health)
	})

	// Initialize repositories
	var cartRepo repository.CartRepository
	if redisClient != nil {
		cartRepo = repository.NewRedisCartRepository(redisClient, cfg.Cart.TTL)
	} else {
		cartRepo = repository.NewMemoryCartRepository()
	}

	// Initialize services
	catalogService, err := service.NewCatalogService(loader, catalog.DefaultAssets(cfg.Assets.BaseURL), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	cartService := service.NewCartService(catalogService, cartRepo, logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
