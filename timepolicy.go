package logroll

import (
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// FrequencyKind distinguishes the three frequency shapes a rotation
// schedule can take.
type FrequencyKind int

const (
	// FrequencyNone means no time-based rotation.
	FrequencyNone FrequencyKind = iota
	// FrequencyDaily rotates at local midnight.
	FrequencyDaily
	// FrequencyHourly rotates at the top of the hour.
	FrequencyHourly
	// FrequencyEvery rotates every fixed duration, aligned to an
	// epoch-ms grid (see parseFrequency).
	FrequencyEvery
)

// FrequencySpec describes the current rotation period. Start and Next
// are epoch-ms. The invariant Start <= now < Next holds at construction
// and after every getNext call.
type FrequencySpec struct {
	Kind  FrequencyKind
	Every time.Duration // only meaningful when Kind == FrequencyEvery
	Start int64
	Next  int64
}

// parseFrequency parses a frequency string into a FrequencySpec. input
// may be "daily", "hourly", an integer (milliseconds as a string), or
// "" for disabled. clock supplies "now".
func parseFrequency(input string, clock clockwork.Clock) (*FrequencySpec, error) {
	if input == "" {
		return nil, nil
	}

	now := clock.Now()

	switch input {
	case "daily":
		start := startOfLocalDay(now)
		return &FrequencySpec{
			Kind:  FrequencyDaily,
			Start: start.UnixMilli(),
			Next:  startOfLocalDay(start.AddDate(0, 0, 1)).UnixMilli(),
		}, nil
	case "hourly":
		start := startOfLocalHour(now)
		return &FrequencySpec{
			Kind:  FrequencyHourly,
			Start: start.UnixMilli(),
			Next:  startOfLocalHour(start.Add(time.Hour)).UnixMilli(),
		}, nil
	}

	ms, err := strconv.ParseInt(input, 10, 64)
	if err != nil || ms <= 0 {
		return nil, errors.Errorf("frequency must be \"daily\", \"hourly\", or a positive integer millisecond count, got %q", input)
	}
	every := time.Duration(ms) * time.Millisecond
	nowMs := now.UnixMilli()
	start := (nowMs / ms) * ms
	return &FrequencySpec{
		Kind:  FrequencyEvery,
		Every: every,
		Start: start,
		Next:  start + ms,
	}, nil
}

// getNext recomputes the next boundary from the clock's current time,
// using calendar arithmetic for Daily/Hourly so DST transitions
// (23h/25h local days, non-60-minute hours at a fold) are handled
// correctly. It is always computed relative to "now", not by adding a
// fixed period to the previous Next, so a late-firing timer does not
// compound drift into the following boundary.
func getNext(spec *FrequencySpec, clock clockwork.Clock) int64 {
	now := clock.Now()
	switch spec.Kind {
	case FrequencyDaily:
		return startOfLocalDay(now.AddDate(0, 0, 1)).UnixMilli()
	case FrequencyHourly:
		return startOfLocalHour(now.Add(time.Hour)).UnixMilli()
	case FrequencyEvery:
		ms := int64(spec.Every / time.Millisecond)
		nowMs := now.UnixMilli()
		return (nowMs/ms)*ms + ms
	default:
		return spec.Next
	}
}

// startOfLocalDay returns local midnight of t's calendar day. Using
// time.Date (not a fixed 24h Truncate) is what makes this correct
// across a DST transition: Go normalizes the Y/M/D/h/m/s tuple against
// the location's actual offset rules.
func startOfLocalDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// startOfLocalHour returns the top of t's local hour.
func startOfLocalHour(t time.Time) time.Time {
	loc := t.In(time.Local)
	return time.Date(loc.Year(), loc.Month(), loc.Day(), loc.Hour(), 0, 0, 0, time.Local)
}
