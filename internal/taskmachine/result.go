// Package taskmachine implements the task-state machine: one operation per
// user-facing verb, each returning a tagged Result, with a two-phase
// confirmation protocol for operations that would otherwise silently
// reschedule or destroy data. Every verb follows the same shape — validate
// input, mutate the store, persist, report — returning an explicit
// Success/Failure/NeedsConfirm value instead of raising an error for a
// condition the caller can resolve interactively.
package taskmachine

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// Kind discriminates the three shapes a Result can take.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
	KindNeedsConfirm
)

// ConfirmType names which Confirm* call a NeedsConfirm result expects in
// response.
type ConfirmType string

const (
	ConfirmRescheduleOverlapsUnlockedOthers ConfirmType = "RESCHEDULE_OVERLAPS_UNLOCKED_OTHERS"
	ConfirmRescheduleNeedsShiftDueToLocked  ConfirmType = "RESCHEDULE_NEEDS_SHIFT_DUE_TO_LOCKED"
	ConfirmRescheduleUpdate                 ConfirmType = "RESCHEDULE_UPDATE"
	ConfirmCompleteLate                     ConfirmType = "COMPLETE_LATE"
	ConfirmTruncateCompletedTask             ConfirmType = "TRUNCATE_COMPLETED_TASK"
	ConfirmDelete                           ConfirmType = "DELETE"
)

// Result is the outcome of every task-machine operation: exactly one of
// Success, Failure, or NeedsConfirm is meaningful, selected by Kind.
type Result struct {
	Kind Kind

	// Success fields.
	Task    *models.Task
	Message string

	// Failure field.
	Reason string

	// NeedsConfirm fields. Payload matches Confirm: one of the *Payload
	// types below, a models.Task for RESCHEDULE_OVERLAPS_UNLOCKED_OTHERS,
	// or nil for DELETE. Some Success results also carry a Payload
	// (AdjustAndCompletePayload, BulkDeleteResult).
	Confirm ConfirmType
	Payload interface{}
}

func success(task *models.Task, message string) Result {
	return Result{Kind: KindSuccess, Task: task, Message: message}
}

func failure(reason string) Result {
	return Result{Kind: KindFailure, Reason: reason}
}

func needsConfirm(t ConfirmType, payload interface{}) Result {
	return Result{Kind: KindNeedsConfirm, Confirm: t, Payload: payload}
}

// TruncateCompletedPayload is handed back to ConfirmTruncateAndAdd or
// ConfirmTruncateAndUpdate. Index is nil for an add-flow confirmation and
// set to the task being edited for an update-flow one.
type TruncateCompletedPayload struct {
	Candidate models.Task
	Completed models.Task
	Index     *int
}

// LockedShiftPayload is handed back to ConfirmAddAfterLockedShift or
// ConfirmUpdateAfterLockedShift. Index is nil for the add flow.
type LockedShiftPayload struct {
	Adjusted models.Task
	Index    *int
}

// RescheduleUpdatePayload is handed back to ConfirmUpdateAndReschedule.
type RescheduleUpdatePayload struct {
	Task  models.Task
	Index int
}

// CompleteLatePayload is handed back to ConfirmCompleteLate.
type CompleteLatePayload struct {
	Index       int
	OldEnd      time.Time
	NewEnd      time.Time
	NewDuration int
}

// BulkDeleteResult is the payload attached to bulk-delete successes.
type BulkDeleteResult struct {
	TasksDeleted int
}
