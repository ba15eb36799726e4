// FILE: cmd/chess-server/main.go

// Package main implements the chess rules server: a REST and websocket API
// over in-memory games with an optional SQLite audit log.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessrules/cmd/chess-server/cli"
	"chessrules/internal/server/http"
	"chessrules/internal/server/processor"
	"chessrules/internal/server/service"
	"chessrules/internal/server/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "CLI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, console logs)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		corsOrigins = flag.String("cors-origins", "*", "Comma separated list of allowed CORS origins")
		rateLimit   = flag.Int("rate-limit", 0, "Requests per second per client (0 for default)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one server instance (requires -pid)")
	)
	flag.Parse()

	setupLogging(*dev)

	if *pidLock && *pidPath == "" {
		log.Fatal().Msg("-pid-lock requires -pid")
	}
	if *pidPath != "" {
		pf, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up PID file")
		}
		defer pf.Release()
		log.Info().Str("path", *pidPath).Bool("locked", *pidLock).Msg("PID file written")
	}

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Info().Str("path", *storagePath).Msg("initializing persistent storage")
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
		if err := store.InitDB(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize schema")
		}
	} else {
		log.Info().Msg("persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service owns storage from here on and closes it on shutdown
	svc := service.New(store)

	// 3. Processor
	proc := processor.New(svc)

	// 4. Fiber app
	app := http.NewFiberApp(proc, svc, http.Config{
		DevMode:     *dev,
		CORSOrigins: *corsOrigins,
		RateLimit:   *rateLimit,
	})

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Info().
			Str("addr", "http://"+apiAddr).
			Str("games", fmt.Sprintf("http://%s/api/v1/games", apiAddr)).
			Str("health", fmt.Sprintf("http://%s/health", apiAddr)).
			Bool("dev", *dev).
			Bool("storage", store != nil).
			Msg("chess API server starting")

		if err := app.Listen(apiAddr); err != nil {
			log.Error().Err(err).Msg("API server listen error")
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Release long-poll and websocket waiters before draining connections
	if err := svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("service shutdown error")
	}

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// setupLogging configures the global logger: human readable in dev mode,
// JSON otherwise
func setupLogging(dev bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if dev {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
