package taskmachine

import (
	"time"

	"github.com/google/uuid"

	"github.com/oskarlind/dayqueue/internal/clock"
	"github.com/oskarlind/dayqueue/internal/engine"
	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/store"
	"github.com/oskarlind/dayqueue/internal/timeutil"
	"github.com/oskarlind/dayqueue/internal/validation"
)

// Persister is the subset of storage.Provider the task-state machine
// drives directly: a full-collection upsert, called on every mutation that
// touches a persisted field. Transient-flag-only flips never call it.
type Persister interface {
	Save(tasks []*models.Task) error
}

// Machine is the task-state machine: the single caller of Store's mutating
// methods, and the only caller of the reschedule engine's Execute.
type Machine struct {
	Store   *store.Store
	Clock   clock.Clock
	Persist Persister
}

// New returns a Machine wired to the given collaborators.
func New(s *store.Store, c clock.Clock, p Persister) *Machine {
	return &Machine{Store: s, Clock: c, Persist: p}
}

// commit persists newState and, only on success, makes it the store's
// live sequence. On persistence failure the store is left untouched, per
// spec.md §7.
func (m *Machine) commit(newState []*models.Task) error {
	if err := m.Persist.Save(newState); err != nil {
		return err
	}
	m.Store.UpdateState(newState)
	return nil
}

// commitTouch persists the store's current sequence after one or more of
// its Task pointers were mutated in place, and bumps the generation
// counter so sorted views recompute.
func (m *Machine) commitTouch() error {
	if err := m.Persist.Save(m.Store.GetState()); err != nil {
		return err
	}
	m.Store.Touch()
	return nil
}

func excludeID(state []*models.Task, id string) []*models.Task {
	out := make([]*models.Task, 0, len(state))
	for _, t := range state {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func countUnscheduled(state []*models.Task) int {
	n := 0
	for _, t := range state {
		if t.IsUnscheduled() {
			n++
		}
	}
	return n
}

// materialize builds a fresh Task from validated input. anchor supplies the
// calendar day a scheduled start time is relative to; rank is only
// meaningful for the unscheduled variant.
func materialize(in validation.Input, anchor time.Time, rank int) models.Task {
	t := models.Task{
		ID:          uuid.NewString(),
		Description: in.Description,
		Status:      models.StatusIncomplete,
	}

	switch in.Kind {
	case models.KindScheduled:
		t.Kind = models.KindScheduled
		start, _ := timeutil.ToInstant(in.StartTime, anchor) // input already validated
		t.StartDateTime = start
		t.EndDateTime = timeutil.EndInstant(start, in.DurationMin)
		t.DurationMin = in.DurationMin
	default:
		t.Kind = models.KindUnscheduled
		priority := in.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		t.Priority = priority
		t.EstDuration = in.EstDuration
		t.Rank = rank
	}

	return t
}

// findTruncateConflict implements the TRUNCATE_COMPLETED_TASK predicate of
// spec.md §4.5 step 3: candidate overlaps a completed task that started
// strictly before it. If candidate.start <= completed.start this is
// treated as replacement, not mid-insertion, per the §9 open-question
// resolution, and is not reported here.
func findTruncateConflict(candidate models.Task, others []*models.Task) (*models.Task, bool) {
	for _, t := range others {
		if t.ID == candidate.ID || !t.IsScheduled() || t.Status != models.StatusCompleted {
			continue
		}
		if engine.TasksOverlap(&candidate, t) && candidate.StartDateTime.After(t.StartDateTime) {
			return t, true
		}
	}
	return nil, false
}

// addScheduledCandidate runs steps 3-6 of add() (spec.md §4.5) against
// candidate and the rest of the collection. checkTruncate is false when
// re-entering after a truncate confirmation has already cleared that
// check for this candidate. ok is true only when no confirmation or
// failure was raised, meaning the caller should insert candidate as-is.
func (m *Machine) addScheduledCandidate(candidate models.Task, others []*models.Task, checkTruncate bool, index *int) (r Result, ok bool) {
	if checkTruncate {
		if completed, found := findTruncateConflict(candidate, others); found {
			return needsConfirm(ConfirmTruncateCompletedTask, TruncateCompletedPayload{Candidate: candidate, Completed: *completed, Index: index}), false
		}
	}

	adjusted := engine.AdjustForLocked(candidate, others)
	if !adjusted.StartDateTime.Equal(candidate.StartDateTime) {
		return needsConfirm(ConfirmRescheduleNeedsShiftDueToLocked, LockedShiftPayload{Adjusted: adjusted, Index: index}), false
	}

	overlapping := engine.CheckOverlap(&adjusted, others)
	if len(overlapping) == 0 {
		return Result{}, true
	}

	plan := engine.CalculatePlan(&adjusted, others)
	v := engine.ValidatePlan(plan)
	if !v.OK {
		msg := engine.GenerateLockedConflictMessage(adjusted.Description, adjusted.DurationMin, adjusted.StartDateTime, v, plan.LockedTasks)
		return failure(msg), false
	}
	if index != nil {
		return needsConfirm(ConfirmRescheduleUpdate, RescheduleUpdatePayload{Task: adjusted, Index: *index}), false
	}
	return needsConfirm(ConfirmRescheduleOverlapsUnlockedOthers, adjusted), false
}

// Add validates in, materializes it against anchor, and either inserts it
// outright or returns the confirmation the caller must resolve.
func (m *Machine) Add(in validation.Input, anchor time.Time) Result {
	if r := validation.ValidateInput(in); !r.Valid {
		return failure(r.Reason)
	}

	state := m.Store.GetState()
	candidate := materialize(in, anchor, countUnscheduled(state)+1)

	if candidate.IsUnscheduled() {
		return m.insert(candidate, "Task added.")
	}

	if r, ok := m.addScheduledCandidate(candidate, state, true, nil); !ok {
		return r
	}
	return m.insert(candidate, "Task added.")
}

// ConfirmAddAfterLockedShift resumes add() with the already-shifted
// candidate the caller received from a RESCHEDULE_NEEDS_SHIFT_DUE_TO_LOCKED
// result, per the "payload returned to confirm call" contract of §4.5.
func (m *Machine) ConfirmAddAfterLockedShift(adjusted models.Task) Result {
	state := m.Store.GetState()
	if r, ok := m.addScheduledCandidate(adjusted, state, true, nil); !ok {
		return r
	}
	return m.insert(adjusted, "Task added.")
}

// ConfirmTruncateAndAdd truncates the completed task the caller confirmed
// truncating, then resumes add() for candidate against the updated
// collection.
func (m *Machine) ConfirmTruncateAndAdd(candidate models.Task, completed models.Task) Result {
	state := m.Store.GetState()
	var target *models.Task
	for _, t := range state {
		if t.ID == completed.ID {
			target = t
			break
		}
	}
	if target == nil {
		return failure("Task not found")
	}

	*target = target.WithRange(target.StartDateTime, candidate.StartDateTime)
	target.Status = models.StatusCompleted
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}

	others := excludeID(m.Store.GetState(), candidate.ID)
	if r, ok := m.addScheduledCandidate(candidate, others, false, nil); !ok {
		return r
	}
	return m.insert(candidate, "Task added.")
}

// ConfirmAddAndReschedule inserts taskObject and cascades the push through
// every task it now overlaps.
func (m *Machine) ConfirmAddAndReschedule(taskObject models.Task) Result {
	t := taskObject.Clone()
	inserted := &t
	newState := append(m.Store.GetState(), inserted)
	if err := m.commit(newState); err != nil {
		return failure(err.Error())
	}

	engine.Execute(inserted, m.Store.GetState())
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(inserted, "Task added and schedule adjusted.")
}

func (m *Machine) insert(candidate models.Task, message string) Result {
	t := candidate.Clone()
	inserted := &t
	newState := append(m.Store.GetState(), inserted)
	if err := m.commit(newState); err != nil {
		return failure(err.Error())
	}
	return success(inserted, message)
}

// Update mirrors Add, with the task at index masked out of its own overlap
// check.
func (m *Machine) Update(index int, in validation.Input, anchor time.Time) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	if r := validation.ValidateInput(in); !r.Valid {
		return failure(r.Reason)
	}

	existing := state[index]
	candidate := materialize(in, anchor, existing.Rank)
	candidate.ID = existing.ID

	if candidate.IsUnscheduled() {
		return m.replace(index, candidate, "Task updated.")
	}

	others := excludeID(state, existing.ID)
	if r, ok := m.addScheduledCandidate(candidate, others, true, &index); !ok {
		return r
	}
	return m.replace(index, candidate, "Task updated.")
}

// ConfirmUpdateAfterLockedShift resumes update() with the already-shifted
// candidate from a RESCHEDULE_NEEDS_SHIFT_DUE_TO_LOCKED result.
func (m *Machine) ConfirmUpdateAfterLockedShift(index int, adjusted models.Task) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	others := excludeID(state, state[index].ID)
	if r, ok := m.addScheduledCandidate(adjusted, others, true, &index); !ok {
		return r
	}
	return m.replace(index, adjusted, "Task updated.")
}

// ConfirmTruncateAndUpdate truncates the completed task the caller
// confirmed truncating, then resumes update() for candidate at index
// against the updated collection.
func (m *Machine) ConfirmTruncateAndUpdate(index int, candidate models.Task, completed models.Task) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}

	var target *models.Task
	for _, t := range state {
		if t.ID == completed.ID {
			target = t
			break
		}
	}
	if target == nil {
		return failure("Task not found")
	}

	*target = target.WithRange(target.StartDateTime, candidate.StartDateTime)
	target.Status = models.StatusCompleted
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}

	others := excludeID(excludeID(m.Store.GetState(), candidate.ID), state[index].ID)
	if r, ok := m.addScheduledCandidate(candidate, others, false, &index); !ok {
		return r
	}
	return m.replace(index, candidate, "Task updated.")
}

func (m *Machine) replace(index int, candidate models.Task, message string) Result {
	state := m.Store.GetState()
	if index < 0 || index >= len(state) {
		return failure("Invalid task index.")
	}
	target := state[index]
	candidate.ID = target.ID
	*target = candidate.Clone()
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, message)
}

// ConfirmUpdateAndReschedule writes taskObject through to the task at
// index, then cascades the push through every task it now overlaps. The
// store's cached sorted view is invalidated by the same Touch, preserving
// the ordering invariant of spec.md §3 without a separate re-sort step.
func (m *Machine) ConfirmUpdateAndReschedule(index int, taskObject models.Task) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	target := state[index]
	taskObject.ID = target.ID
	*target = taskObject.Clone()
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}

	engine.Execute(target, m.Store.GetState())
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "Task updated and schedule adjusted.")
}
