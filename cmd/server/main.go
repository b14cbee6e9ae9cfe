package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/playforge/miniapp-api/internal/config"
	"github.com/playforge/miniapp-api/internal/database"
	"github.com/playforge/miniapp-api/internal/handler"
	"github.com/playforge/miniapp-api/internal/middleware"
	"github.com/playforge/miniapp-api/internal/repository"
	"github.com/playforge/miniapp-api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database connection
	db, err := database.Connect(ctx, database.Config{
		URL:             cfg.Database.URL,
		PoolSize:        cfg.Database.PoolSize,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database", slog.Int("pool_size", cfg.Database.PoolSize))

	// Initialize Redis connection
	redisClient, err := database.NewRedisClient(database.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		slog.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	slog.Info("connected to redis", slog.String("addr", cfg.Redis.Addr()))

	// Initialize repositories
	playerRepo := repository.NewPlayerRepository(db)

	// Initialize services
	playerService := service.NewPlayerService(playerRepo)

	// Initialize handlers
	playerHandler := handler.NewPlayerHandler(playerService, cfg.Server.TracebackEnabled)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Create router and register routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Check)

	// Player endpoints. Mutating routes pass through the launch-payload gate.
	gate := middleware.InitData(cfg.Bot.Token)
	mux.Handle("POST /api/v1/players", gate(http.HandlerFunc(playerHandler.CreateOrGet)))
	mux.HandleFunc("GET /api/v1/players/{playerIds}", playerHandler.Get)
	mux.HandleFunc("GET /api/v1/players/username/{username}", playerHandler.Search)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery(cfg.Server.TracebackEnabled),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
