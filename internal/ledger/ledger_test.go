package ledger

import (
	"context"
	"testing"
	"time"
)

func TestLocalLedgerRoundTrip(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	ctx := context.Background()

	got, err := l.Get(ctx, "august")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get returned an entry before any Put: %+v", got)
	}

	want := Entry{
		Month:       "august",
		Year:        2025,
		Created:     20,
		Skipped:     1,
		PublishedAt: time.Date(2025, time.August, 19, 7, 30, 0, 0, time.UTC),
	}
	if err := l.Put(ctx, "august", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err = l.Get(ctx, "august")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil after Put")
	}
	if got.Month != want.Month || got.Year != want.Year || got.Created != want.Created {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
	if !got.PublishedAt.Equal(want.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, want.PublishedAt)
	}
}

func TestLocalLedgerPutReplaces(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	ctx := context.Background()

	if err := l.Put(ctx, "august", Entry{Month: "august", Year: 2024, Created: 5}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := l.Put(ctx, "august", Entry{Month: "august", Year: 2025, Created: 21}); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := l.Get(ctx, "august")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Year != 2025 || got.Created != 21 {
		t.Errorf("entry not replaced: %+v", got)
	}
}

func TestLocalLedgerMonths(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	ctx := context.Background()

	entries, err := l.Months(ctx)
	if err != nil {
		t.Fatalf("Months failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("new ledger holds %d entries, want 0", len(entries))
	}

	l.Put(ctx, "august", Entry{Month: "august", Year: 2025})
	l.Put(ctx, "september", Entry{Month: "september", Year: 2025})

	entries, err = l.Months(ctx)
	if err != nil {
		t.Fatalf("Months failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Months returned %d entries, want 2", len(entries))
	}

	months := map[string]bool{}
	for _, e := range entries {
		months[e.Month] = true
	}
	if !months["august"] || !months["september"] {
		t.Errorf("unexpected months: %+v", entries)
	}
}

func TestEntryMapRoundTrip(t *testing.T) {
	want := Entry{
		Month:       "august",
		Year:        2025,
		Created:     20,
		Skipped:     2,
		PublishedAt: time.Date(2025, time.August, 19, 7, 30, 0, 0, time.UTC),
	}

	m := entryToMap(want)
	// Firestore hands numbers back as int64
	m["year"] = int64(want.Year)
	m["created"] = int64(want.Created)
	m["skipped"] = int64(want.Skipped)

	got := mapToEntry(m)
	if got.Month != want.Month || got.Year != want.Year || got.Created != want.Created || got.Skipped != want.Skipped {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
	if !got.PublishedAt.Equal(want.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, want.PublishedAt)
	}
}
