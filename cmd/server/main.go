/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Earnwise earnings engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (override env config)
  2. Open SQLite gateway
  3. Start the earnings engine (load state, start the tick)
  4. Schedule the daily month-rollover cron job
  5. Start HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: earnwise.db, env DB_PATH)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections (30s drain)
  2. Stop the cron scheduler
  3. Close the engine (stops the tick, flushes the pending save)
  4. Close the analytics sink, then the database

SEE ALSO:
  - api/server.go: router configuration
  - earnings/engine.go: engine lifecycle
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/earnwise/earnings-engine/api"
	"github.com/earnwise/earnings-engine/config"
	"github.com/earnwise/earnings-engine/earnings"
	"github.com/earnwise/earnings-engine/notify"
	"github.com/earnwise/earnings-engine/store/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.New()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (\":memory:\" for in-memory)")
	flag.Parse()

	gateway, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer gateway.Close()

	analytics := notify.NewAsyncAnalytics(logger, nil)
	defer analytics.Close()

	engine := earnings.New(gateway, earnings.Options{
		TickInterval:     cfg.TickInterval,
		CacheTTL:         cfg.CacheTTL,
		SaveDebounce:     cfg.SaveDebounce,
		OnTrackTolerance: cfg.OnTrackTolerance,
		Logger:           logger,
		Notifier:         notify.NewLogNotifier(logger),
		Analytics:        analytics,
	})
	if err := engine.Start(context.Background()); err != nil {
		logger.Fatalf("Failed to start engine: %v", err)
	}
	defer engine.Close()

	// The engine also checks rollover opportunistically on every mutation;
	// the cron job covers idle periods across a month boundary.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", engine.CheckMonthRollover); err != nil {
		logger.Fatalf("Failed to schedule rollover job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(engine, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", *port),
		Handler: api.NewRouter(handler),
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
}
