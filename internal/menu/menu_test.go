package menu

import (
	"testing"
	"time"
)

func TestKeyFor(t *testing.T) {
	if got := KeyFor(time.August); got != "august" {
		t.Errorf("KeyFor(August) = %q, want %q", got, "august")
	}
	if got := KeyFor(time.January); got != "january" {
		t.Errorf("KeyFor(January) = %q, want %q", got, "january")
	}
}

func TestArtifactNames(t *testing.T) {
	if got := PDFName("august"); got != "august.pdf" {
		t.Errorf("PDFName = %q", got)
	}
	if got := RecordName("august"); got != "august.json" {
		t.Errorf("RecordName = %q", got)
	}
	if got := ICSName("august"); got != "august.ics" {
		t.Errorf("ICSName = %q", got)
	}
}

func TestDescription(t *testing.T) {
	d := Day{
		Date: "2025-08-19",
		Food: []string{"Cheese Pizza", "Garden Salad", "Apple Slices"},
	}

	want := "- Cheese Pizza\n- Garden Salad\n- Apple Slices"
	if got := d.Description(); got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}

	single := Day{Date: "2025-08-20", Food: []string{"Bean Burrito"}}
	if got := single.Description(); got != "- Bean Burrito" {
		t.Errorf("Description = %q, want %q", got, "- Bean Burrito")
	}
}

func TestTarget(t *testing.T) {
	now := time.Date(2025, time.August, 19, 12, 0, 0, 0, time.UTC)

	t.Run("default is current month", func(t *testing.T) {
		month, year, err := Target("", 0, now)
		if err != nil {
			t.Fatalf("Target failed: %v", err)
		}
		if month != time.August || year != 2025 {
			t.Errorf("Target = %s %d, want August 2025", month, year)
		}
	})

	t.Run("explicit month keeps current year", func(t *testing.T) {
		month, year, err := Target("September", 0, now)
		if err != nil {
			t.Fatalf("Target failed: %v", err)
		}
		if month != time.September || year != 2025 {
			t.Errorf("Target = %s %d, want September 2025", month, year)
		}
	})

	t.Run("month name is case insensitive", func(t *testing.T) {
		month, _, err := Target("october", 0, now)
		if err != nil {
			t.Fatalf("Target failed: %v", err)
		}
		if month != time.October {
			t.Errorf("Target = %s, want October", month)
		}
	})

	t.Run("explicit year", func(t *testing.T) {
		month, year, err := Target("January", 2026, now)
		if err != nil {
			t.Fatalf("Target failed: %v", err)
		}
		if month != time.January || year != 2026 {
			t.Errorf("Target = %s %d, want January 2026", month, year)
		}
	})

	t.Run("unknown month", func(t *testing.T) {
		if _, _, err := Target("Augustus", 0, now); err == nil {
			t.Error("Target accepted an unknown month name")
		}
	})
}

func TestClean(t *testing.T) {
	days := []Day{
		{Date: "2025-08-20", Food: []string{"Pasta Marinara"}},
		{Date: "2025-08-19", Food: []string{"Cheese Pizza", "Salad"}},
		{Date: "2025-09-02", Food: []string{"Wrong Month Tacos"}},
		{Date: "2024-08-19", Food: []string{"Wrong Year Soup"}},
		{Date: "not-a-date", Food: []string{"Mystery Meat"}},
		{Date: "2025-08-21", Food: nil},
	}

	kept, dropped := Clean(days, time.August, 2025)

	if len(kept) != 2 {
		t.Fatalf("kept %d days, want 2: %+v", len(kept), kept)
	}
	if len(dropped) != 4 {
		t.Errorf("dropped %d days, want 4", len(dropped))
	}

	// Kept days must come back date-ordered
	if kept[0].Date != "2025-08-19" || kept[1].Date != "2025-08-20" {
		t.Errorf("kept days out of order: %q, %q", kept[0].Date, kept[1].Date)
	}
}

func TestCleanAllInvalid(t *testing.T) {
	days := []Day{
		{Date: "2025-07-01", Food: []string{"Last Month"}},
		{Date: "garbled", Food: []string{"Noise"}},
	}

	kept, dropped := Clean(days, time.August, 2025)
	if len(kept) != 0 {
		t.Errorf("kept %d days, want 0", len(kept))
	}
	if len(dropped) != 2 {
		t.Errorf("dropped %d days, want 2", len(dropped))
	}
}
