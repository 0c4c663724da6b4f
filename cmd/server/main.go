// PCNova support-assistant server.
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/chaiwat/pcnova/internal/api"
	"github.com/chaiwat/pcnova/internal/assist"
	"github.com/chaiwat/pcnova/internal/config"
	"github.com/chaiwat/pcnova/internal/gateway"
	"github.com/chaiwat/pcnova/internal/identity"
	"github.com/chaiwat/pcnova/internal/middleware"
	"github.com/chaiwat/pcnova/internal/store"
	"github.com/chaiwat/pcnova/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	if cfg.SeedDemo {
		if err := store.SeedDemoData(context.Background(), repo); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("Demo data ready", "session_token", store.DemoSessionToken)
	}

	// Language-model completer. Without credentials the service still runs;
	// model calls fail and the assistant replies with its generic failure
	// message, so the widget is never stuck.
	var completer gateway.Completer
	if cfg.GeminiAPIKey != "" {
		completer, err = gateway.NewGeminiCompleter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		slog.Info("Gemini client ready", "model", cfg.GeminiModel)
	} else {
		completer = gateway.NewDisabledCompleter()
		slog.Warn("GEMINI_API_KEY not set, assistant model calls disabled")
	}
	gw := gateway.NewService(completer, logger)

	convLog, err := assist.NewConversationLogger(assist.ConversationLogConfig{
		Enabled:       cfg.ConversationLog.Enabled,
		Dir:           cfg.ConversationLog.Dir,
		GlobalEnabled: cfg.ConversationLog.GlobalEnabled,
		GlobalPath:    cfg.ConversationLog.GlobalPath,
		QueueSize:     cfg.ConversationLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize conversation logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := convLog.Close(); closeErr != nil {
			slog.Error("Failed to close conversation logger", "error", closeErr)
		}
	}()

	// Initialize handlers.
	limiter := api.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow)
	chatHandler := api.NewChatHandler(gw, limiter)
	ordersHandler := api.NewOrdersHandler(repo)
	healthHandler := api.NewHealthHandler(repo)
	wsHandler := assist.NewWSHandler(gw, repo, convLog, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(repo))

	healthHandler.RegisterHealth(r)
	chatHandler.RegisterRoutes(r)
	ordersHandler.RegisterRoutes(r)

	// WebSocket endpoint hosting the conversation session controller.
	r.Get("/ws/assist", wsHandler.ServeHTTP)

	// Serve embedded widget frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // model calls and WebSocket sessions outlive fixed write deadlines
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
