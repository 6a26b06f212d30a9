// Package suggest computes the suggested start time for a new scheduled
// task: gap-fill when possible, otherwise plan ahead.
package suggest

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/timeutil"
)

// StartTime returns the suggested "HH:MM" start for a new task given the
// current instant and the full task collection (sorted_scheduled() order
// not required; this function sorts what it needs).
//
//  1. No incomplete scheduled tasks at all → the rounded current time.
//  2. Some task (completed or incomplete) spans the current instant
//     (start ≤ now < end) → that task's end (the current slot is occupied).
//  3. An incomplete task already ended (end ≤ now) and nothing covers now
//     → the rounded current time (fill the gap).
//  4. Otherwise → the end of the chronologically latest incomplete task.
func StartTime(now time.Time, tasks []*models.Task) string {
	rounded := timeutil.RoundUpToFiveMinutes(now)

	var incomplete []*models.Task
	for _, t := range tasks {
		if t.IsScheduled() && t.Status != models.StatusCompleted {
			incomplete = append(incomplete, t)
		}
	}
	if len(incomplete) == 0 {
		return timeutil.ExtractTime(rounded)
	}

	for _, t := range tasks {
		if !t.IsScheduled() {
			continue
		}
		if !t.StartDateTime.After(now) && now.Before(t.EndDateTime) {
			return timeutil.ExtractTime(t.EndDateTime)
		}
	}

	hasEarlierWork := false
	for _, t := range incomplete {
		if !t.EndDateTime.After(now) {
			hasEarlierWork = true
			break
		}
	}
	if hasEarlierWork {
		return timeutil.ExtractTime(rounded)
	}

	latest := incomplete[0]
	for _, t := range incomplete[1:] {
		if t.EndDateTime.After(latest.EndDateTime) {
			latest = t
		}
	}
	return timeutil.ExtractTime(latest.EndDateTime)
}
