package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sfusd-lunch-menu/internal/fetch"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/resolver"
	"sfusd-lunch-menu/internal/store"
)

// Download failure kinds, distinguishable with errors.Is. Resolution
// failures additionally carry the resolver's own sentinel.
var (
	ErrFetchFailed      = errors.New("fetch failed")
	ErrResolutionFailed = errors.New("menu link resolution failed")
)

// Downloader fetches the menus page, resolves the target month's menu
// link and stores the PDF under its month key.
type Downloader struct {
	PageFetcher fetch.Fetcher // menus page; may render JavaScript
	DocFetcher  fetch.Fetcher // menu documents; always plain HTTP
	Store       store.Store
	MenuURL     string
	LinkLabel   string
	Force       bool
}

// Run downloads the month's menu PDF unless it is already stored. It
// returns the stage status and the stored artifact's name.
func (d *Downloader) Run(ctx context.Context, month time.Month, year int) (StageStatus, string, error) {
	name := menu.PDFName(menu.KeyFor(month))
	if !d.Force && d.Store.Exists(name) {
		log.Printf("Download: %s already present, skipping", d.Store.Location(name))
		return StatusSkipped, name, nil
	}

	log.Printf("Download: fetching menus page %s", d.MenuURL)
	page, err := d.PageFetcher.Fetch(ctx, d.MenuURL)
	if err != nil {
		return StatusFailed, "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return StatusFailed, "", fmt.Errorf("parsing menus page: %w", err)
	}

	base, err := url.Parse(d.MenuURL)
	if err != nil {
		return StatusFailed, "", fmt.Errorf("parsing menu URL: %w", err)
	}

	downloadURL, err := resolver.Resolve(doc, base, month.String(), d.LinkLabel)
	if err != nil {
		return StatusFailed, "", fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}

	log.Printf("Download: fetching menu document %s", downloadURL)
	pdf, err := d.DocFetcher.Fetch(ctx, downloadURL)
	if err != nil {
		return StatusFailed, "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	// A share link can serve an HTML interstitial page instead of the
	// document; never store that under a pdf name.
	if !isPDF(pdf) {
		return StatusFailed, "", fmt.Errorf("%s did not serve a PDF (%d bytes)", downloadURL, len(pdf))
	}

	if err := d.Store.Set(name, pdf); err != nil {
		return StatusFailed, "", fmt.Errorf("storing %s: %w", name, err)
	}

	log.Printf("Download: saved %s (%d bytes)", d.Store.Location(name), len(pdf))
	return StatusDone, name, nil
}

func isPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
