// Package main is the entry point for DungeonCrawl.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/session"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONCRAWL_API_KEY and DUNGEONCRAWL_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	rules, err := gamedata.LoadRules()
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	cfg, err := session.ConfigFromEnv(session.DefaultConfig())
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	g, err := game.New(ctx, cfg, rules)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}

	err = g.Run(ctx)
	g.Close()
	if err != nil {
		return fmt.Errorf("game error: %w", err)
	}

	s := g.Session()
	log.Printf("Session %s ended after %d turns (%s)", s.ID(), s.Turn(), s.State())
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here from the raw key
	apiKey := os.Getenv("HONEYCOMB_DUNGEONCRAWL_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONCRAWL_DATASET")
	if dataset == "" {
		dataset = "dungeoncrawl"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
