// Package schedule derives the fixed set of bookable slot identifiers
// for a calendar date. The booking window is 09:00 through 17:00
// inclusive, one slot per hour, which yields nine slots per day.
package schedule

import (
	"fmt"
	"time"
)

const (
	startHour = 9
	endHour   = 17

	// SlotsPerDay is the size of the daily slot set.
	SlotsPerDay = endHour - startHour + 1

	dateLayout = "2006-01-02"
)

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// SlotTimes returns the slot identifiers for date, ordered by hour
// ascending: "{date}T09:00" through "{date}T17:00". The date must be a
// valid YYYY-MM-DD calendar date.
func SlotTimes(date string) ([]string, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	out := make([]string, 0, SlotsPerDay)
	for hour := startHour; hour <= endHour; hour++ {
		out = append(out, fmt.Sprintf("%sT%02d:00", date, hour))
	}
	return out, nil
}
