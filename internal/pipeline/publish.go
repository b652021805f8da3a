package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sfusd-lunch-menu/internal/homeassistant"
	"sfusd-lunch-menu/internal/ledger"
	"sfusd-lunch-menu/internal/menu"
)

// Counts summarizes one publish pass over a month's record.
type Counts struct {
	Created int // events created
	Skipped int // events that already existed on the calendar
	Failed  int // events the calendar rejected
}

// Publisher mirrors a month's record onto a Home Assistant calendar, one
// event per school day.
type Publisher struct {
	Client *homeassistant.Client
	Ledger ledger.Ledger
	Entity string
	AllDay bool
	Force  bool
}

// AlreadyPublished reports whether the ledger records a completed publish
// for the month. Ledger trouble reads as "not published": the per-day
// duplicate check below keeps a re-publish harmless.
func (p *Publisher) AlreadyPublished(ctx context.Context, monthKey string) bool {
	entry, err := p.Ledger.Get(ctx, monthKey)
	if err != nil {
		log.Printf("WARNING: ledger lookup for %s failed: %v", monthKey, err)
		return false
	}
	if entry != nil {
		log.Printf("Publish: %s already published on %s (%d created, %d skipped)",
			monthKey, entry.PublishedAt.Format("2006-01-02"), entry.Created, entry.Skipped)
		return true
	}
	return false
}

// Run publishes every day in the record. Days whose lunch event already
// exists are skipped; a day the calendar rejects is counted and the rest
// continue. Only a rejected token aborts the pass. A pass with no failures
// is recorded in the ledger.
func (p *Publisher) Run(ctx context.Context, rec menu.Record) (Counts, error) {
	var counts Counts

	if !p.Client.Configured() {
		return counts, fmt.Errorf("HOMEASSISTANT_URL and HOMEASSISTANT_TOKEN must be set")
	}

	monthKey := menu.KeyFor(rec.Month)
	log.Printf("Publish: adding %d lunch events to %s (if not present)", len(rec.Days), p.Entity)

	for _, day := range rec.Days {
		date, err := menu.ParseDate(day.Date)
		if err != nil {
			log.Printf("WARNING: skipping unparseable date %q: %v", day.Date, err)
			counts.Failed++
			continue
		}

		exists, err := p.lunchEventExists(ctx, date)
		if err != nil {
			if errors.Is(err, homeassistant.ErrUnauthorized) {
				return counts, err
			}
			log.Printf("WARNING: could not list events for %s: %v, proceeding to add", day.Date, err)
		}
		if exists {
			log.Printf("Publish: skipped %s, %q event already exists", day.Date, menu.Summary)
			counts.Skipped++
			continue
		}

		if err := p.createLunchEvent(ctx, date, day); err != nil {
			if errors.Is(err, homeassistant.ErrUnauthorized) {
				return counts, err
			}
			log.Printf("ERROR: failed to add %s: %v", day.Date, err)
			counts.Failed++
			continue
		}

		log.Printf("Publish: added %s (%d food items)", day.Date, len(day.Food))
		counts.Created++
	}

	log.Printf("Publish: %d events added, %d skipped, %d failed", counts.Created, counts.Skipped, counts.Failed)

	if counts.Failed > 0 {
		// Leave the month unrecorded so the next run retries the
		// failed days; the ones that landed will be skipped then.
		log.Printf("Publish: not recording %s in the ledger (%d failures)", monthKey, counts.Failed)
		return counts, nil
	}

	if err := p.Ledger.Put(ctx, monthKey, ledger.Entry{
		Month:       monthKey,
		Year:        rec.Year,
		Created:     counts.Created,
		Skipped:     counts.Skipped,
		PublishedAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("WARNING: recording %s in the ledger failed: %v", monthKey, err)
	}

	return counts, nil
}

// lunchEventExists checks the calendar for a lunch event on this day.
func (p *Publisher) lunchEventExists(ctx context.Context, date time.Time) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	events, err := p.Client.ListEvents(ctx, p.Entity, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}

	for _, ev := range events {
		if ev.Summary == menu.Summary {
			return true, nil
		}
	}
	return false, nil
}

func (p *Publisher) createLunchEvent(ctx context.Context, date time.Time, day menu.Day) error {
	req := homeassistant.CreateRequest{
		EntityID:    p.Entity,
		Summary:     menu.Summary,
		Description: day.Description(),
	}

	if p.AllDay {
		req.AllDay = true
		req.Start = date
		req.End = date.AddDate(0, 0, 1)
	} else {
		// Lunch hour, local time.
		req.Start = time.Date(date.Year(), date.Month(), date.Day(), 11, 0, 0, 0, time.Local)
		req.End = time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.Local)
	}

	return p.Client.CreateEvent(ctx, req)
}
