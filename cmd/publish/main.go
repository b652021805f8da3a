// Stage 3 only: mirror a stored month record onto the Home Assistant
// calendar, one Lunch event per school day. Days that already carry a
// Lunch event are skipped, so re-running never duplicates. Months the
// ledger records as published are skipped whole (override with
// FORCE_PUBLISH=1).
//
// Usage: go run ./cmd/publish
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sfusd-lunch-menu/internal/config"
	"sfusd-lunch-menu/internal/homeassistant"
	"sfusd-lunch-menu/internal/ledger"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/pipeline"
	"sfusd-lunch-menu/internal/store"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load()

	month, year, err := menu.Target(cfg.TargetMonth, cfg.TargetYear, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := openStore(ctx, cfg)
	led := openLedger(ctx, cfg)

	pub := &pipeline.Publisher{
		Client: homeassistant.NewClient(cfg.HomeAssistantURL, cfg.HomeAssistantToken),
		Ledger: led,
		Entity: cfg.CalendarEntity,
		AllDay: cfg.AllDayEvents,
		Force:  cfg.ForcePublish,
	}

	monthKey := menu.KeyFor(month)
	if !pub.Force && pub.AlreadyPublished(ctx, monthKey) {
		fmt.Printf("%s %d already published, nothing to do\n", month, year)
		return
	}

	rec, err := pipeline.LoadRecord(st, month, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	counts, err := pub.Run(ctx, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d events added, %d skipped, %d failed\n",
		counts.Created, counts.Skipped, counts.Failed)
	if counts.Failed > 0 {
		os.Exit(1)
	}
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

func openLedger(ctx context.Context, cfg config.Config) ledger.Ledger {
	if cfg.GCPProject != "" {
		fsLedger, err := ledger.NewFirestore(ctx, cfg.GCPProject, cfg.LedgerCollection)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore ledger: %v", err)
		}
		return fsLedger
	}
	localLedger, err := ledger.NewLocal(filepath.Join(cfg.DataDir, "ledger"))
	if err != nil {
		log.Fatalf("Failed to initialize local ledger: %v", err)
	}
	return localLedger
}
