package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"livechat/internal"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps every defer on the exit path, main only reports.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Runtime & HTTP surface
	app := internal.NewApp(log, config, db, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised workers
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		app.Run(ctx)
	}()

	// 6. HTTP server
	address := net.JoinHostPort(config.Host, fmt.Sprint(config.Port))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		app.Stop()
		<-workersDone
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	server := &http.Server{Handler: app.Handler, ReadHeaderTimeout: 5 * time.Second}
	server.RegisterOnShutdown(app.Transport.CloseAll)

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case serveErr = <-errChan:
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	app.Stop()
	<-workersDone
	log.Info("Program stopped cleanly")

	return serveErr
}
