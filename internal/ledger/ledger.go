// Package ledger keeps a durable record of which months have been
// published to the calendar, so a re-run can skip the calendar service
// without asking it anything.
package ledger

import (
	"context"
	"time"
)

// Entry records one completed publish of a month's menu.
type Entry struct {
	Month       string    `json:"month"` // lowercase month key, e.g. "august"
	Year        int       `json:"year"`
	Created     int       `json:"created"` // events created by that run
	Skipped     int       `json:"skipped"` // events that already existed
	PublishedAt time.Time `json:"published_at"`
}

// Ledger is the interface for publish-record storage.
type Ledger interface {
	// Get returns the entry for a month key, or nil if the month has
	// not been published.
	Get(ctx context.Context, monthKey string) (*Entry, error)

	// Put records a completed publish, replacing any previous entry
	// for the month.
	Put(ctx context.Context, monthKey string, e Entry) error

	// Months returns all recorded entries.
	Months(ctx context.Context) ([]Entry, error)
}
