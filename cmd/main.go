/*
Package main is the entry point for the account service.

It is responsible for loading configuration, initializing the global logging
system, connecting to PostgreSQL and the avatar object storage, starting the
email notifier, setting up the HTTP server, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountd/internal/app/account"
	"accountd/internal/app/account/postgres"
	"accountd/internal/app/db"
	"accountd/internal/app/mailer"
	"accountd/internal/app/storage"
	"accountd/internal/app/token"
	"accountd/internal/configs"
	"accountd/internal/handler"
	"accountd/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and run migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	accounts := account.NewStore(postgres.New(pool))
	tokens := token.NewService(cfg.JWTSecret, accounts)

	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize avatar storage")
	}

	var sender mailer.Sender = mailer.LogSender{}
	if cfg.SendGridAPIKey != "" {
		sender = mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFrom)
	}
	notifier := mailer.NewNotifier(sender, 64)

	deps := &handler.AppDeps{
		Config:   cfg,
		Accounts: accounts,
		Tokens:   tokens,
		Storage:  storageService,
		Notifier: notifier,
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Account service starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	// Drain queued notification emails before exiting.
	notifier.Shutdown(shutdownCtx)

	logx.Info("Server gracefully stopped.")
}
