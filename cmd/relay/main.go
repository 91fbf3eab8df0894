// Package main is the entry point for the transcript relay server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/internal/config"
	"github.com/anchor-corps/chat-relay/internal/downstream"
	"github.com/anchor-corps/chat-relay/internal/handler"
	natsclient "github.com/anchor-corps/chat-relay/internal/nats"
	"github.com/anchor-corps/chat-relay/pkg/logger"
	"github.com/anchor-corps/chat-relay/pkg/tracing"
)

func main() {
	// Load configuration
	_ = godotenv.Load()
	cfg := config.LoadRelay()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting relay server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "chat-relay", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Select the downstream forwarder
	var fwd downstream.Forwarder
	switch cfg.DownstreamMode {
	case "webhook":
		if cfg.WebhookURL == "" {
			log.Error("DOWNSTREAM_MODE=webhook requires CRM_WEBHOOK_URL")
			os.Exit(1)
		}
		fwd = downstream.NewWebhook(cfg.WebhookURL, cfg.WebhookAPIKey, nil)
	case "nats":
		nc, err := natsclient.Connect(natsclient.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer nc.Close()
		fwd = downstream.NewNATS(nc, cfg.NATSSubject, cfg.NATSLeadSubject)
	default:
		fwd = downstream.NewLog(log)
	}
	log.Info("downstream forwarder selected", zap.String("mode", cfg.DownstreamMode))

	// Initialize handlers and router
	forwardHandler := handler.NewForwardHandler(cfg.ForwardToken, fwd, log)
	healthHandler := handler.NewHealthHandler(fwd)
	router := handler.NewRouter(forwardHandler, healthHandler, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
