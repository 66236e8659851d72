// Package phtime converts between Philippine civil time (fixed UTC+8,
// no daylight saving) and absolute UTC instants. It deliberately uses a
// fixed offset instead of a tzdata lookup so behavior can never shift
// underneath stored schedules.
package phtime

import (
	"fmt"
	"time"
)

// Offset is the fixed Philippine civil offset from UTC.
const Offset = 8 * time.Hour

var Location = time.FixedZone("PHT", int(Offset/time.Second))

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	combinedLayout = "2006-01-02T15:04:05-07:00"
)

// Combine parses a local calendar date ("2006-01-02") and clock time
// ("15:04") as Philippine civil time and returns the UTC instant.
func Combine(date, clock string) (time.Time, error) {
	t, err := time.Parse(combinedLayout, fmt.Sprintf("%sT%s:00+08:00", date, clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid publish date/time: %w", err)
	}
	return t.UTC(), nil
}

// Split renders a UTC instant back into the local calendar date and clock
// time pair that Combine would accept.
func Split(t time.Time) (date, clock string) {
	local := t.In(Location)
	return local.Format(DateLayout), local.Format(ClockLayout)
}
