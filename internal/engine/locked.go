package engine

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/logger"
	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/timeutil"
)

// AdjustForLocked returns candidate moved past every locked task it
// overlaps, repeating until stable. Locked tasks are visited in start order
// each pass, so a candidate can hop over several in sequence. Iteration is
// bounded at 2*len(locked); if that bound is exceeded the original candidate
// is returned unchanged and a warning is logged, on the assumption that the
// locked set is pathological (e.g. overlapping locked tasks) rather than
// retryable.
func AdjustForLocked(candidate models.Task, all []*models.Task) models.Task {
	locked := lockedIncomplete(all)
	if len(locked) == 0 {
		return candidate
	}

	cur := candidate
	bound := 2 * len(locked)
	for i := 0; i < bound; i++ {
		moved := false
		for _, l := range locked {
			if TasksOverlap(&cur, l) {
				cur = cur.WithRange(l.EndDateTime, timeutil.EndInstant(l.EndDateTime, cur.DurationMin))
				moved = true
				break
			}
		}
		if !moved {
			return cur
		}
	}

	logger.Warn("adjust for locked exceeded iteration bound, returning original placement",
		"task", candidate.Description, "locked_count", len(locked))
	return candidate
}

// findNextAvailableStart returns the earliest instant at or after start,
// with the given duration, that does not overlap any task in locked.
// Bounded at len(locked)+1 attempts; on exhaustion it degrades gracefully by
// returning the placement at start, ignoring any remaining overlap, and
// logs a warning — the caller's plan validation step will surface any
// resulting conflict to the user rather than the engine silently looping.
func findNextAvailableStart(start time.Time, durationMin int, locked []*models.Task) (time.Time, time.Time) {
	candStart := start
	bound := len(locked) + 1
	for i := 0; i < bound; i++ {
		candEnd := timeutil.EndInstant(candStart, durationMin)
		moved := false
		for _, l := range locked {
			if rangesOverlap(candStart, candEnd, l.StartDateTime, l.EndDateTime) {
				candStart = l.EndDateTime
				moved = true
				break
			}
		}
		if !moved {
			return candStart, candEnd
		}
	}

	logger.Warn("find next available start exceeded iteration bound, returning original push point",
		"locked_count", len(locked))
	return start, timeutil.EndInstant(start, durationMin)
}
