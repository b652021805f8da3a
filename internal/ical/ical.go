// Package ical renders a month's menu record as an iCalendar feed, for
// calendar apps that subscribe to files instead of Home Assistant.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"sfusd-lunch-menu/internal/menu"
)

const productID = "-//sfusd-lunch-menu//EN"

// Build renders one all-day event per school day in the record. Event UIDs
// derive from the date, so re-importing an updated feed replaces events
// instead of duplicating them.
func Build(rec menu.Record) (*ics.Calendar, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	now := time.Now()
	for _, day := range rec.Days {
		date, err := menu.ParseDate(day.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", day.Date, err)
		}

		event := cal.AddEvent(fmt.Sprintf("lunch-%s@sfusd-lunch-menu", day.Date))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetSummary(menu.Summary)
		event.SetDescription(day.Description())
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
	}

	return cal, nil
}
