package engine

import (
	"sort"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// ShiftEntry records one candidate task's move from its original range to a
// newly computed one. Task is the real pointer from the caller's
// collection; CalculatePlan never writes through it, only Execute does.
type ShiftEntry struct {
	Task           *models.Task
	OriginalStart  time.Time
	OriginalEnd    time.Time
	NewStart       time.Time
	NewEnd         time.Time
}

// Plan is the pure result of CalculatePlan: what would happen if the
// trigger task were placed or moved, without having happened yet.
type Plan struct {
	Trigger         *models.Task
	EffectiveEnd    time.Time
	Candidates      []*models.Task // shiftable tasks considered, in processing order
	ShiftedTaskPlan []ShiftEntry   // candidates actually moved
	LockedTasks     []*models.Task // locked tasks visible to this calculation
}

// CalculatePlan computes the cascading push that results from trigger
// occupying [trigger.StartDateTime, trigger.EndDateTime). others is every
// other task in the collection (trigger itself excluded by the caller).
//
// Step 1: the effective end of the trigger's footprint is extended to cover
// any locked task it overlaps — a locked task can never be the one that
// moves, so anything downstream must flow around the later of the two ends.
//
// Step 2: shiftable candidates (scheduled, incomplete, unlocked, not mid
// edit, not the trigger) are sorted by start time.
//
// Step 3: each candidate is visited once. If its original start is before
// the current push point, it is shifted to the next locked-free slot at or
// after the push point, and the push point advances to the new end. If it
// isn't shifted but its end extends past the push point, the push point
// advances to its end without recording a shift (it is "absorbed": already
// out of the way, but it still defines where the cascade continues from).
// Otherwise it is left alone.
func CalculatePlan(trigger *models.Task, others []*models.Task) Plan {
	locked := lockedIncomplete(others)

	effectiveEnd := trigger.EndDateTime
	for _, l := range locked {
		if TasksOverlap(trigger, l) && l.EndDateTime.After(effectiveEnd) {
			effectiveEnd = l.EndDateTime
		}
	}

	var candidates []*models.Task
	for _, o := range others {
		if o.ID == trigger.ID || !o.Movable() {
			continue
		}
		// A task entirely before the trigger's footprint and not overlapping
		// it is out of scope for this cascade: only tasks the trigger's
		// range touches, or that start at/after it, are candidates.
		overlapsRange := o.StartDateTime.Before(effectiveEnd) && trigger.StartDateTime.Before(o.EndDateTime)
		if !overlapsRange && o.StartDateTime.Before(trigger.StartDateTime) {
			continue
		}
		candidates = append(candidates, o)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartDateTime.Before(candidates[j].StartDateTime)
	})

	pushPoint := effectiveEnd
	var shifted []ShiftEntry
	for _, cand := range candidates {
		// A candidate needs to move either because the cascade has already
		// pushed the wavefront past its start, or because it independently
		// overlaps a locked task the wavefront hasn't reached yet — without
		// this second check a candidate sitting at or after push_point but
		// still inside a locked task's range would be wrongly "absorbed"
		// instead of flowed around it.
		from := pushPoint
		if cand.StartDateTime.After(from) {
			from = cand.StartDateTime
		}
		switch {
		case cand.StartDateTime.Before(pushPoint) || overlapsAny(cand, locked):
			newStart, newEnd := findNextAvailableStart(from, cand.DurationMin, locked)
			if newStart.Equal(cand.StartDateTime) {
				if cand.EndDateTime.After(pushPoint) {
					pushPoint = cand.EndDateTime
				}
				continue
			}
			shifted = append(shifted, ShiftEntry{
				Task:          cand,
				OriginalStart: cand.StartDateTime,
				OriginalEnd:   cand.EndDateTime,
				NewStart:      newStart,
				NewEnd:        newEnd,
			})
			pushPoint = newEnd
		case cand.EndDateTime.After(pushPoint):
			pushPoint = cand.EndDateTime
		}
	}

	return Plan{
		Trigger:         trigger,
		EffectiveEnd:    effectiveEnd,
		Candidates:      candidates,
		ShiftedTaskPlan: shifted,
		LockedTasks:     locked,
	}
}

// ValidationResult is the outcome of checking a plan against locked tasks
// that were never eligible to move themselves. A plan with any conflict
// cannot be applied as-is; the caller must surface GenerateLockedConflictMessage
// and let the user unlock, delete, or re-time something.
type ValidationResult struct {
	OK        bool
	Conflicts []Conflict
}

// Conflict pairs a shifted candidate's new placement with the locked task it
// would still overlap.
type Conflict struct {
	Shifted ShiftEntry
	Locked  *models.Task
}

// ValidatePlan re-checks every shifted entry's new range against the locked
// set. find_next_available_start already avoids locked tasks it knows
// about, so in the common case this finds nothing; it exists to catch the
// degraded-placement path (iteration bound exceeded) and plans assembled
// by other means. Only plan.LockedTasks, the locked set captured when the
// plan was calculated, is checked.
func ValidatePlan(plan Plan) ValidationResult {
	var conflicts []Conflict
	for _, s := range plan.ShiftedTaskPlan {
		for _, l := range plan.LockedTasks {
			if rangesOverlap(s.NewStart, s.NewEnd, l.StartDateTime, l.EndDateTime) {
				conflicts = append(conflicts, Conflict{Shifted: s, Locked: l})
			}
		}
	}
	return ValidationResult{OK: len(conflicts) == 0, Conflicts: conflicts}
}

// Execute recomputes the plan against all minus trigger and applies
// newStart/newEnd to each shifted task in place. It is the only function in
// this package that mutates a caller-owned Task. Returns the plan that was
// applied, so the caller can report what moved.
func Execute(trigger *models.Task, all []*models.Task) Plan {
	others := make([]*models.Task, 0, len(all))
	for _, t := range all {
		if t.ID != trigger.ID {
			others = append(others, t)
		}
	}

	plan := CalculatePlan(trigger, others)
	for _, s := range plan.ShiftedTaskPlan {
		s.Task.StartDateTime = s.NewStart
		s.Task.EndDateTime = s.NewEnd
		s.Task.DurationMin = int(s.NewEnd.Sub(s.NewStart).Minutes())
	}
	return plan
}
