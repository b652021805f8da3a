// Runs the full pipeline for one month: download the lunch menu PDF,
// extract the per-day record, publish calendar events to Home Assistant.
// Every stage is idempotent, so running this daily is safe.
//
// Usage: go run ./cmd/lunchmenu (configuration via environment or a .env file)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sfusd-lunch-menu/internal/config"
	"sfusd-lunch-menu/internal/extract"
	"sfusd-lunch-menu/internal/fetch"
	"sfusd-lunch-menu/internal/homeassistant"
	"sfusd-lunch-menu/internal/ledger"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/pipeline"
	"sfusd-lunch-menu/internal/store"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	month, year, err := menu.Target(cfg.TargetMonth, cfg.TargetYear, time.Now())
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	log.Printf("Target month: %s %d", month, year)

	// Artifact store: GCS when a bucket is configured, local disk otherwise
	var st store.Store
	if cfg.GCSBucket != "" {
		gcs, err := store.NewGCS(ctx, cfg.GCSBucket)
		if err != nil {
			log.Fatalf("Failed to initialize GCS store: %v", err)
		}
		defer gcs.Close()
		st = gcs
		log.Printf("Store: GCS bucket %s", cfg.GCSBucket)
	} else {
		local, err := store.NewLocal(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize local store: %v", err)
		}
		st = local
		log.Printf("Store: local directory %s", cfg.DataDir)
	}

	// Publish ledger: Firestore when a project is configured, local otherwise
	var led ledger.Ledger
	if cfg.GCPProject != "" {
		fsLedger, err := ledger.NewFirestore(ctx, cfg.GCPProject, cfg.LedgerCollection)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore ledger: %v", err)
		}
		defer fsLedger.Close()
		led = fsLedger
		log.Printf("Ledger: Firestore project %s, collection %s", cfg.GCPProject, cfg.LedgerCollection)
	} else {
		localLedger, err := ledger.NewLocal(filepath.Join(cfg.DataDir, "ledger"))
		if err != nil {
			log.Fatalf("Failed to initialize local ledger: %v", err)
		}
		led = localLedger
	}

	extractor, err := extract.ForProvider(cfg.Parser, cfg.OpenAIKey, cfg.GoogleAPIKey)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	log.Printf("Parser: %s", extractor.Name())

	// The menus page needs a real browser when the district renders its
	// links client side; the PDF itself never does.
	var pageFetcher fetch.Fetcher = fetch.NewHTTP()
	if cfg.RenderJS {
		pageFetcher = fetch.NewRendered(cfg.ChromePath)
	}

	p := &pipeline.Pipeline{
		Downloader: &pipeline.Downloader{
			PageFetcher: pageFetcher,
			DocFetcher:  fetch.NewHTTP(),
			Store:       st,
			MenuURL:     cfg.MenuURL,
			LinkLabel:   cfg.LinkLabel,
			Force:       cfg.ForceDownload,
		},
		Parser: &pipeline.Parser{
			Store:     st,
			Extractor: extractor,
			Force:     cfg.ForceParse,
		},
		Publisher: &pipeline.Publisher{
			Client: homeassistant.NewClient(cfg.HomeAssistantURL, cfg.HomeAssistantToken),
			Ledger: led,
			Entity: cfg.CalendarEntity,
			AllDay: cfg.AllDayEvents,
			Force:  cfg.ForcePublish,
		},
		Store: st,
		Month: month,
		Year:  year,
	}

	res := p.Run(ctx)
	if res.Err != nil {
		log.Printf("ERROR: %s stage failed: %v", res.Stage, res.Err)
	}
	log.Printf("Run complete: download %s, parse %s, publish %s",
		res.Download, res.Parse, res.Publish)

	switch res.Outcome() {
	case pipeline.Failed:
		os.Exit(1)
	case pipeline.CompletedNoop:
		fmt.Printf("Nothing to do for %s %d, all stages up to date\n", month, year)
	default:
		fmt.Printf("Pipeline completed for %s %d: %d events added, %d skipped, %d failed\n",
			month, year, res.Counts.Created, res.Counts.Skipped, res.Counts.Failed)
	}
}
