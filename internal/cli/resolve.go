package cli

import (
	"fmt"

	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/taskmachine"
)

// describeConfirm renders the question a human should answer for each
// confirmation type, per the message contract of spec.md §6.
func describeConfirm(r taskmachine.Result) string {
	switch r.Confirm {
	case taskmachine.ConfirmTruncateCompletedTask:
		p := r.Payload.(taskmachine.TruncateCompletedPayload)
		return fmt.Sprintf("%q is already completed and overlaps the new task. Truncate it?", p.Completed.Description)
	case taskmachine.ConfirmRescheduleNeedsShiftDueToLocked:
		p := r.Payload.(taskmachine.LockedShiftPayload)
		return fmt.Sprintf("A locked task is in the way; shift the new start to %s?", p.Adjusted.StartDateTime.Format("3:04 PM"))
	case taskmachine.ConfirmRescheduleOverlapsUnlockedOthers:
		return "This overlaps other tasks; push them later to make room?"
	case taskmachine.ConfirmRescheduleUpdate:
		return "This change overlaps other tasks; push them later to make room?"
	case taskmachine.ConfirmCompleteLate:
		p := r.Payload.(taskmachine.CompleteLatePayload)
		return fmt.Sprintf("Completing now runs past the scheduled end (%s); extend it to %s?", p.OldEnd.Format("3:04 PM"), p.NewEnd.Format("3:04 PM"))
	case taskmachine.ConfirmDelete:
		return "Delete this task?"
	default:
		return "Proceed?"
	}
}

// Resolve drives a Result through the two-phase confirmation protocol of
// spec.md §4.5: each NeedsConfirm is described to confirmer; a yes calls
// the matching confirm_* method on m, a no reports a cancellation. The
// loop terminates once a Success or Failure is reached; when a confirm_*
// call itself raises a further confirmation (e.g. a locked shift that then
// also overlaps unlocked tasks), that one is prompted for too. ConfirmDelete is not
// handled here: Delete's two calls both carry the task index, which the
// delete command already holds, so it resolves that confirmation itself.
func Resolve(m *taskmachine.Machine, r taskmachine.Result, confirmer Confirmer) taskmachine.Result {
	for r.Kind == taskmachine.KindNeedsConfirm {
		if !confirmer.Ask(describeConfirm(r)) {
			return taskmachine.Result{Kind: taskmachine.KindFailure, Reason: "Cancelled."}
		}

		switch r.Confirm {
		case taskmachine.ConfirmTruncateCompletedTask:
			p := r.Payload.(taskmachine.TruncateCompletedPayload)
			if p.Index != nil {
				r = m.ConfirmTruncateAndUpdate(*p.Index, p.Candidate, p.Completed)
			} else {
				r = m.ConfirmTruncateAndAdd(p.Candidate, p.Completed)
			}
		case taskmachine.ConfirmRescheduleNeedsShiftDueToLocked:
			p := r.Payload.(taskmachine.LockedShiftPayload)
			if p.Index != nil {
				r = m.ConfirmUpdateAfterLockedShift(*p.Index, p.Adjusted)
			} else {
				r = m.ConfirmAddAfterLockedShift(p.Adjusted)
			}
		case taskmachine.ConfirmRescheduleOverlapsUnlockedOthers:
			r = m.ConfirmAddAndReschedule(r.Payload.(models.Task))
		case taskmachine.ConfirmRescheduleUpdate:
			p := r.Payload.(taskmachine.RescheduleUpdatePayload)
			r = m.ConfirmUpdateAndReschedule(p.Index, p.Task)
		case taskmachine.ConfirmCompleteLate:
			p := r.Payload.(taskmachine.CompleteLatePayload)
			r = m.ConfirmCompleteLate(p.Index, p.NewEnd, p.NewDuration)
		default:
			return taskmachine.Result{Kind: taskmachine.KindFailure, Reason: "unknown confirmation type"}
		}
	}
	return r
}
