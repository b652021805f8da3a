// Renders a stored month record to an iCalendar file, for calendar apps
// that subscribe to a feed instead of going through Home Assistant.
//
// Usage: go run ./cmd/export-ics
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sfusd-lunch-menu/internal/config"
	"sfusd-lunch-menu/internal/ical"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/pipeline"
	"sfusd-lunch-menu/internal/store"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.Load()

	month, year, err := menu.Target(cfg.TargetMonth, cfg.TargetYear, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := openStore(ctx, cfg)

	rec, err := pipeline.LoadRecord(st, month, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cal, err := ical.Build(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := menu.ICSName(menu.KeyFor(month))
	if err := st.Set(name, []byte(cal.Serialize())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d events to %s\n", len(rec.Days), st.Location(name))
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
