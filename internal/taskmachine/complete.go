package taskmachine

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/engine"
	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/timeutil"
	"github.com/oskarlind/dayqueue/internal/validation"
)

// Complete marks the task at index completed. currentTime is nil when the
// caller simply wants to commit the task's already-scheduled end time.
// When currentTime falls after the scheduled end, completion is deferred
// to a COMPLETE_LATE confirmation rather than silently truncating or
// extending the task.
func (m *Machine) Complete(index int, currentTime *time.Time) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	target := state[index]
	if !target.IsScheduled() {
		return failure("Task not found")
	}

	if currentTime == nil {
		target.Status = models.StatusCompleted
		if err := m.commitTouch(); err != nil {
			return failure(err.Error())
		}
		return success(target, "Task completed.")
	}

	now := *currentTime
	if now.After(target.EndDateTime) {
		newDuration := timeutil.MinutesBetween(target.StartDateTime, now)
		return needsConfirm(ConfirmCompleteLate, CompleteLatePayload{
			Index:       index,
			OldEnd:      target.EndDateTime,
			NewEnd:      now,
			NewDuration: newDuration,
		})
	}

	if now.After(target.StartDateTime) && now.Before(target.EndDateTime) {
		*target = target.WithRange(target.StartDateTime, now)
	}
	target.Status = models.StatusCompleted
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "Task completed.")
}

// ConfirmCompleteLate commits a late completion: the task's end is
// extended to newEnd, marked completed, and the engine cascades the push
// through every task that now overlaps the extended range.
func (m *Machine) ConfirmCompleteLate(index int, newEnd time.Time, newDuration int) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	target := state[index]
	*target = target.WithRange(target.StartDateTime, newEnd)
	target.Status = models.StatusCompleted
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}

	engine.Execute(target, m.Store.GetState())
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "Task completed late; later tasks adjusted.")
}

// AdjustAndCompletePayload reports whether AdjustAndComplete extended the
// task's original range.
type AdjustAndCompletePayload struct {
	WasExtended bool
	NewDuration int
}

// AdjustAndComplete truncates or extends the task identified by id to
// newEnd, then marks it completed. Fails for unscheduled tasks or when
// newEnd does not leave a positive duration.
func (m *Machine) AdjustAndComplete(id string, newEnd time.Time) Result {
	target, ok := m.Store.Find(id)
	if !ok {
		return failure("Task not found")
	}
	if !target.IsScheduled() {
		return failure("Task not found")
	}
	if !newEnd.After(target.StartDateTime) {
		return failure("Invalid end time.")
	}

	wasExtended := newEnd.After(target.EndDateTime)
	*target = target.WithRange(target.StartDateTime, newEnd)
	target.Status = models.StatusCompleted
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}

	r := success(target, "Task completed.")
	r.Payload = AdjustAndCompletePayload{WasExtended: wasExtended, NewDuration: target.DurationMin}
	return r
}

// TruncateCompleted shortens a completed task's end to newEnd, e.g. to
// open a gap for a retroactive task. Fails when the task is not completed,
// not scheduled, or newEnd would leave a non-positive duration.
func (m *Machine) TruncateCompleted(id string, newEnd time.Time) Result {
	target, ok := m.Store.Find(id)
	if !ok {
		return failure("Task not found")
	}
	if !target.IsScheduled() || target.Status != models.StatusCompleted {
		return failure("Task not found")
	}
	if !newEnd.After(target.StartDateTime) {
		return failure("Invalid end time.")
	}

	*target = target.WithRange(target.StartDateTime, newEnd)
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "Task truncated.")
}
