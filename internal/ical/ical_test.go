package ical

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"sfusd-lunch-menu/internal/menu"
)

func TestBuild(t *testing.T) {
	rec := menu.Record{
		Month: time.August,
		Year:  2025,
		Days: []menu.Day{
			{Date: "2025-08-19", Food: []string{"Cheese Pizza", "Salad"}},
			{Date: "2025-08-20", Food: []string{"Bean Burrito"}},
		},
	}

	cal, err := Build(rec)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out := cal.Serialize()

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("serialized %d events, want 2", got)
	}
	if !strings.Contains(out, "SUMMARY:Lunch") {
		t.Error("missing lunch summary")
	}
	if !strings.Contains(out, "UID:lunch-2025-08-19@sfusd-lunch-menu") {
		t.Error("missing date-derived UID")
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20250819") {
		t.Error("first event is not all-day on 2025-08-19")
	}
	if !strings.Contains(out, "DTEND;VALUE=DATE:20250820") {
		t.Error("first event's all-day end is not the next day")
	}
	if !strings.Contains(out, "- Bean Burrito") {
		t.Error("missing food description")
	}

	// The output must survive a round trip through an ICS parser.
	parsed, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("serialized calendar does not parse: %v", err)
	}
	if got := len(parsed.Events()); got != 2 {
		t.Errorf("parsed %d events, want 2", got)
	}
}

func TestBuildRejectsBadDate(t *testing.T) {
	rec := menu.Record{
		Month: time.August,
		Year:  2025,
		Days:  []menu.Day{{Date: "yesterday", Food: []string{"Soup"}}},
	}

	if _, err := Build(rec); err == nil {
		t.Error("Build accepted an unparseable date")
	}
}
