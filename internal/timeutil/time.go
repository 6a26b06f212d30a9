// Package timeutil implements the pure time model the scheduler runs on:
// absolute instants at minute precision, with midnight crossing handled as
// an emergent property of plain instant arithmetic rather than a special
// case.
package timeutil

import (
	"fmt"
	"regexp"
	"time"

	"github.com/oskarlind/dayqueue/internal/clock"
	"github.com/oskarlind/dayqueue/internal/constants"
)

// timeFormatRE matches the HH:MM format tasks use for their start time.
var timeFormatRE = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// ValidTimeFormat reports whether s matches the "HH:MM" rule used by the
// start-time validator.
func ValidTimeFormat(s string) bool {
	return timeFormatRE.MatchString(s)
}

// ToInstant parses "HH:MM" relative to a date anchor (either "today" for
// form entries, or the explicit date embedded in an existing task) and
// returns the absolute local instant, truncated to minute precision.
func ToInstant(hhmm string, date time.Time) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// EndInstant returns start plus durationMin, as an absolute instant. A
// duration that crosses midnight simply lands on the next calendar day;
// there is nothing else to do, because both sides of the arithmetic are
// absolute instants, not times-of-day.
func EndInstant(start time.Time, durationMin int) time.Time {
	return start.Add(time.Duration(durationMin) * time.Minute)
}

// ExtractTime returns the "HH:MM" component of an instant.
func ExtractTime(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ExtractDate returns the "YYYY-MM-DD" component of an instant.
func ExtractDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// MinutesBetween returns the signed number of minutes from a to b.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a).Minutes())
}

// TruncateToMinute drops sub-minute precision, per the data model invariant
// that second/millisecond components are ignored.
func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// RoundedNow rounds c's current wall clock up to the next 5-minute boundary
// and returns it as "HH:MM".
func RoundedNow(c clock.Clock) string {
	return ExtractTime(RoundUpToFiveMinutes(c.Now()))
}

// RoundUpToFiveMinutes rounds t up to the next 5-minute boundary, as an
// instant (same date, adjusted time-of-day).
func RoundUpToFiveMinutes(t time.Time) time.Time {
	t = TruncateToMinute(t)
	rem := t.Minute() % 5
	if rem == 0 {
		return t
	}
	return t.Add(time.Duration(5-rem) * time.Minute)
}
