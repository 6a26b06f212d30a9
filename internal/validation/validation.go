// Package validation implements the pure predicates behind add/update: a
// single-field input rule table plus index bounds checking.
package validation

import (
	"strings"

	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/timeutil"
)

// Result is the outcome of a validation check: Valid, or Valid=false with a
// user-actionable Reason string.
type Result struct {
	Valid  bool
	Reason string
}

func ok() Result { return Result{Valid: true} }

func fail(reason string) Result { return Result{Valid: false, Reason: reason} }

// Input is the raw, not-yet-materialized data behind add/update. Only the
// fields relevant to the task's Kind need be set.
type Input struct {
	Description string
	Kind        models.Kind

	// Scheduled fields.
	DurationMin int
	StartTime   string // "HH:MM"

	// Unscheduled fields.
	Priority    models.Priority
	EstDuration *int
}

// ValidateInput applies the input rule table for add/update.
func ValidateInput(in Input) Result {
	if strings.TrimSpace(in.Description) == "" {
		return fail("Task description is required.")
	}

	switch in.Kind {
	case models.KindScheduled:
		if in.DurationMin < 0 {
			return fail("Duration must be a non-negative number for scheduled tasks.")
		}
		if strings.TrimSpace(in.StartTime) == "" {
			return fail("Start time is required for scheduled tasks.")
		}
		if !timeutil.ValidTimeFormat(in.StartTime) {
			return fail("Invalid start time format. Use HH:MM format.")
		}
	case models.KindUnscheduled:
		switch in.Priority {
		case "", models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			return fail("Invalid priority. Use high, medium, or low.")
		}
		if in.EstDuration != nil && *in.EstDuration < 0 {
			return fail("Estimated duration must be a non-negative number for unscheduled tasks.")
		}
	default:
		return fail("Invalid task type.")
	}

	return ok()
}

// ValidateIndex checks 0 <= i < n.
func ValidateIndex(i, n int) Result {
	if i < 0 || i >= n {
		return fail("Invalid task index.")
	}
	return ok()
}
