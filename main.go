package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ionutT77/PourPal/internal/api"
	"github.com/ionutT77/PourPal/internal/config"
	"github.com/ionutT77/PourPal/internal/observability"
	"github.com/ionutT77/PourPal/internal/session"
	"github.com/ionutT77/PourPal/internal/telemetry"
	"github.com/ionutT77/PourPal/internal/ui"
)

func main() {
	cfg := config.Load()

	// Log lines and the TUI cannot share a terminal; route logs to a file
	// next to the session record.
	if logFile, err := os.OpenFile(cfg.SessionFile+".log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	store := session.NewStore(session.NewFileStorage(cfg.SessionFile))
	if err := store.Initialize(); err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	store.OnChange(func(authenticated bool) {
		log.Printf("session state changed: authenticated=%v", authenticated)
	})

	client, err := api.New(cfg.APIBaseURL, api.WithRateLimit(cfg.RequestsPerSecond))
	if err != nil {
		log.Fatalf("failed to build api client: %v", err)
	}

	shutdownTracing, err := telemetry.InitTracing(context.Background(), cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	debug := observability.StartDebugServer(cfg.DebugAddr)

	app := ui.New(cfg, client, store)
	runErr := app.Run()

	if debug != nil {
		if err := debug.Close(); err != nil {
			log.Printf("debug server shutdown: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("trace exporter shutdown: %v", err)
	}

	if runErr != nil {
		log.Fatalf("ui error: %v", runErr)
	}
}
