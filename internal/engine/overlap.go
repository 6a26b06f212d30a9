// Package engine implements the deterministic reschedule engine: overlap
// detection, locked-task flow-around, cascading push, plan validation and
// gap-finding. Every function here is pure — it reads task values and
// returns new ones, never mutating a caller's records — except Execute,
// which is the single place the engine writes back into the store's task
// pointers.
package engine

import (
	"sort"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// TasksOverlap reports whether a and b's scheduled ranges intersect, using
// half-open interval semantics: [start, end). Two tasks that merely touch at
// a boundary (A ends exactly when B starts) do not overlap. Unscheduled
// tasks never overlap anything (invariant 5).
func TasksOverlap(a, b *models.Task) bool {
	if !a.IsScheduled() || !b.IsScheduled() {
		return false
	}
	return rangesOverlap(a.StartDateTime, a.EndDateTime, b.StartDateTime, b.EndDateTime)
}

func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckOverlap returns every scheduled, incomplete, non-editing task in
// others that overlaps candidate, ordered ascending by start time. candidate
// itself (matched by ID) is never included in the result.
func CheckOverlap(candidate *models.Task, others []*models.Task) []*models.Task {
	var hits []*models.Task
	for _, o := range others {
		if o.ID == candidate.ID {
			continue
		}
		if !o.IsScheduled() || o.Status == models.StatusCompleted || o.Editing {
			continue
		}
		if TasksOverlap(candidate, o) {
			hits = append(hits, o)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].StartDateTime.Before(hits[j].StartDateTime)
	})
	return hits
}

// overlapsAny reports whether cand overlaps any task in locked.
func overlapsAny(cand *models.Task, locked []*models.Task) bool {
	for _, l := range locked {
		if TasksOverlap(cand, l) {
			return true
		}
	}
	return false
}

func sortedByStart(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDateTime.Before(out[j].StartDateTime)
	})
	return out
}

// lockedIncomplete returns the incomplete, locked, scheduled tasks of all,
// sorted by start time.
func lockedIncomplete(all []*models.Task) []*models.Task {
	var locked []*models.Task
	for _, t := range all {
		if t.IsScheduled() && t.Locked && t.Status != models.StatusCompleted {
			locked = append(locked, t)
		}
	}
	return sortedByStart(locked)
}
