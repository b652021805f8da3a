// Package pipeline wires the three stages of a month's run: download the
// menu PDF, parse it into a record, publish the record to the calendar.
// Every stage checks for its own completed work first, so re-running the
// pipeline converges instead of repeating side effects.
package pipeline

import (
	"context"
	"time"

	"sfusd-lunch-menu/internal/menu"
	"sfusd-lunch-menu/internal/store"
)

// Result reports what each stage did and how the run ended.
type Result struct {
	Month    time.Month
	Year     int
	Download StageStatus
	Parse    StageStatus
	Publish  StageStatus
	Counts   Counts // publish counters, zero unless publish ran
	Stage    string // name of the failed stage, set when Err != nil
	Err      error
}

// Outcome reduces the per-stage statuses to the run's terminal state.
func (r Result) Outcome() Outcome {
	if r.Err != nil {
		return Failed
	}
	if r.Download == StatusDone || r.Parse == StatusDone || r.Publish == StatusDone {
		return Completed
	}
	return CompletedNoop
}

// Pipeline runs the three stages in order for one target month.
type Pipeline struct {
	Downloader *Downloader
	Parser     *Parser
	Publisher  *Publisher
	Store      store.Store
	Month      time.Month
	Year       int
}

// Run executes download, parse and publish, stopping at the first failed
// stage. Skips cascade: a parse that found its record already stored only
// publishes when the ledger has no entry for the month yet.
func (p *Pipeline) Run(ctx context.Context) Result {
	res := Result{
		Month:    p.Month,
		Year:     p.Year,
		Download: StatusPending,
		Parse:    StatusPending,
		Publish:  StatusPending,
	}

	status, _, err := p.Downloader.Run(ctx, p.Month, p.Year)
	res.Download = status
	if err != nil {
		res.Stage, res.Err = "download", err
		return res
	}

	status, _, err = p.Parser.Run(ctx, p.Month, p.Year)
	res.Parse = status
	if err != nil {
		res.Stage, res.Err = "parse", err
		return res
	}

	// A record surviving from an earlier run usually means that run also
	// published it; the ledger knows. A fresh record always publishes,
	// as does a forced publish.
	if res.Parse == StatusSkipped && !p.Publisher.Force &&
		p.Publisher.AlreadyPublished(ctx, menu.KeyFor(p.Month)) {
		res.Publish = StatusSkipped
		return res
	}

	rec, err := LoadRecord(p.Store, p.Month, p.Year)
	if err != nil {
		res.Publish = StatusFailed
		res.Stage, res.Err = "publish", err
		return res
	}

	counts, err := p.Publisher.Run(ctx, rec)
	res.Counts = counts
	if err != nil {
		res.Publish = StatusFailed
		res.Stage, res.Err = "publish", err
		return res
	}

	res.Publish = StatusDone
	return res
}
