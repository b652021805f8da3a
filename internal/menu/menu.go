package menu

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Summary is the title shared by every lunch calendar event.
const Summary = "Lunch"

// Day represents one school day's lunch menu
type Day struct {
	Date string   `json:"date"` // YYYY-MM-DD format
	Food []string `json:"food"` // menu items for that day
}

// Record is a validated month of menu days, ordered by date.
type Record struct {
	Month time.Month
	Year  int
	Days  []Day
}

// Description renders the day's food list as dash-prefixed lines for the
// calendar event body.
func (d Day) Description() string {
	var b strings.Builder
	for i, item := range d.Food {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

// KeyFor returns the lowercase English month name that keys every artifact
// for a run (august.pdf, august.json, ...).
func KeyFor(m time.Month) string {
	return strings.ToLower(m.String())
}

// PDFName returns the store name of the month's menu document.
func PDFName(monthKey string) string { return monthKey + ".pdf" }

// RecordName returns the store name of the month's menu record.
func RecordName(monthKey string) string { return monthKey + ".json" }

// ICSName returns the store name of the month's iCalendar export.
func ICSName(monthKey string) string { return monthKey + ".ics" }

// ParseDate parses a calendar date in YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Target resolves the month and year a run operates on. An empty monthName
// selects the current month; a zero year defaults to now's year.
func Target(monthName string, year int, now time.Time) (time.Month, int, error) {
	if year == 0 {
		year = now.Year()
	}
	if monthName == "" {
		return now.Month(), year, nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), monthName) {
			return m, year, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown month %q", monthName)
}

// Clean splits extracted days into those that carry a well-formed date
// inside the target month and at least one food item, and those that do
// not. Kept days come back sorted by date.
func Clean(days []Day, month time.Month, year int) (kept, dropped []Day) {
	for _, d := range days {
		t, err := ParseDate(d.Date)
		if err != nil || t.Month() != month || t.Year() != year || len(d.Food) == 0 {
			dropped = append(dropped, d)
			continue
		}
		kept = append(kept, d)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })
	return kept, dropped
}
