// Stage 2 only: extract the {date, food} record from a stored menu PDF
// and store it as JSON. Skips the provider call entirely when the record
// is already stored (override with FORCE_PARSE=1).
//
// Usage: go run ./cmd/parse
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sfusd-lunch-menu/internal/config"
	"sfusd-lunch-menu/internal/extract"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/pipeline"
	"sfusd-lunch-menu/internal/store"
)

func main() {
	// PDF extraction through a vision model can be slow.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := config.Load()

	month, year, err := menu.Target(cfg.TargetMonth, cfg.TargetYear, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	extractor, err := extract.ForProvider(cfg.Parser, cfg.OpenAIKey, cfg.GoogleAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := openStore(ctx, cfg)

	p := &pipeline.Parser{
		Store:     st,
		Extractor: extractor,
		Force:     cfg.ForceParse,
	}

	status, name, err := p.Run(ctx, month, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s\n", status, st.Location(name))
}

func openStore(ctx context.Context, cfg config.Config) store.Store {
	if cfg.GCSBucket != "" {
		gcs, err := store.NewGCS(ctx, cfg.GCSBucket)
		if err != nil {
			log.Fatalf("Failed to initialize GCS store: %v", err)
		}
		return gcs
	}
	local, err := store.NewLocal(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize local store: %v", err)
	}
	return local
}
