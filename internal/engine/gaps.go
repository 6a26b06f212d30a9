package engine

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// Gap is a span of the day with no locked task in it.
type Gap struct {
	Start time.Time
	End   time.Time
}

// FindGaps returns every gap between locked tasks on date's calendar day
// that is at least requiredDurationMin long, spanning 00:00 to 23:59. locked
// need not be pre-sorted. Used to populate the "Available time slots"
// section of a locked-conflict diagnostic.
func FindGaps(date time.Time, locked []*models.Task, requiredDurationMin int) []Gap {
	sorted := sortedByStart(locked)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, date.Location())

	var raw []Gap
	cur := dayStart
	for _, l := range sorted {
		if l.StartDateTime.After(cur) {
			raw = append(raw, Gap{Start: cur, End: l.StartDateTime})
		}
		if l.EndDateTime.After(cur) {
			cur = l.EndDateTime
		}
	}
	if dayEnd.After(cur) {
		raw = append(raw, Gap{Start: cur, End: dayEnd})
	}

	var out []Gap
	for _, g := range raw {
		if int(g.End.Sub(g.Start).Minutes()) >= requiredDurationMin {
			out = append(out, g)
		}
	}
	return out
}
