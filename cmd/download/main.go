// Stage 1 only: fetch the district menus page, resolve the month's menu
// link and store the PDF. Skips the network entirely when the PDF is
// already stored (override with FORCE_DOWNLOAD=1).
//
// Usage: go run ./cmd/download
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sfusd-lunch-menu/internal/config"
	"sfusd-lunch-menu/internal/fetch"
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

	var pageFetcher fetch.Fetcher = fetch.NewHTTP()
	if cfg.RenderJS {
		pageFetcher = fetch.NewRendered(cfg.ChromePath)
	}

	d := &pipeline.Downloader{
		PageFetcher: pageFetcher,
		DocFetcher:  fetch.NewHTTP(),
		Store:       st,
		MenuURL:     cfg.MenuURL,
		LinkLabel:   cfg.LinkLabel,
		Force:       cfg.ForceDownload,
	}

	status, name, err := d.Run(ctx, month, year)
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
