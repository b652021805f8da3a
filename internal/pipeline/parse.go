package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sfusd-lunch-menu/internal/extract"
	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/store"
)

// ErrProviderFailure reports that the extraction provider call itself
// failed; the wrapped cause carries the transport or API detail.
var ErrProviderFailure = errors.New("extraction provider failed")

// ErrEmptyRecord reports that extraction produced no day that survives
// validation, so there is nothing to store or publish.
var ErrEmptyRecord = errors.New("no valid menu entries extracted")

// Parser turns a stored menu PDF into the month's validated record.
type Parser struct {
	Store     store.Store
	Extractor extract.Extractor
	Force     bool
}

// Run extracts the month's record unless it is already stored. It returns
// the stage status and the stored artifact's name.
func (p *Parser) Run(ctx context.Context, month time.Month, year int) (StageStatus, string, error) {
	monthKey := menu.KeyFor(month)
	name := menu.RecordName(monthKey)
	if !p.Force && p.Store.Exists(name) {
		log.Printf("Parse: %s already present, skipping", p.Store.Location(name))
		return StatusSkipped, name, nil
	}

	pdfName := menu.PDFName(monthKey)
	pdf, ok := p.Store.Get(pdfName)
	if !ok {
		return StatusFailed, "", fmt.Errorf("menu document %s not found", p.Store.Location(pdfName))
	}

	log.Printf("Parse: extracting %s with %s", pdfName, p.Extractor.Name())
	days, err := p.Extractor.Extract(ctx, pdf, month, year)
	if err != nil {
		return StatusFailed, "", fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	kept, dropped := menu.Clean(days, month, year)
	for _, day := range dropped {
		log.Printf("WARNING: dropping invalid menu entry %q (%d items)", day.Date, len(day.Food))
	}
	if len(kept) == 0 {
		return StatusFailed, "", fmt.Errorf("%w for %s %d", ErrEmptyRecord, month, year)
	}

	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return StatusFailed, "", fmt.Errorf("encoding record: %w", err)
	}
	if err := p.Store.Set(name, data); err != nil {
		return StatusFailed, "", fmt.Errorf("storing %s: %w", name, err)
	}

	log.Printf("Parse: saved %s (%d days, %d dropped)", p.Store.Location(name), len(kept), len(dropped))
	return StatusDone, name, nil
}

// LoadRecord reads a month's stored record back as a validated Record.
func LoadRecord(s store.Store, month time.Month, year int) (menu.Record, error) {
	name := menu.RecordName(menu.KeyFor(month))
	data, ok := s.Get(name)
	if !ok {
		return menu.Record{}, fmt.Errorf("menu record %s not found", s.Location(name))
	}

	var days []menu.Day
	if err := json.Unmarshal(data, &days); err != nil {
		return menu.Record{}, fmt.Errorf("decoding %s: %w", name, err)
	}

	return menu.Record{Month: month, Year: year, Days: days}, nil
}
