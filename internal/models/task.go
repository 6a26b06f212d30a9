package models

import "time"

// Kind discriminates the two task shapes described by the data model: a
// Scheduled task occupies a concrete time range, an Unscheduled task is a
// backlog item with no placement on the day timeline yet.
type Kind string

const (
	KindScheduled   Kind = "scheduled"
	KindUnscheduled Kind = "unscheduled"
)

// Status is shared by both task shapes.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusCompleted  Status = "completed"
)

// Priority is used only by unscheduled tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// weight returns a sort weight for priority, high first.
func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Weight exposes the sort weight used by the unscheduled ordering rule in
// store.SortedUnscheduled (high > medium > low).
func (p Priority) Weight() int { return p.weight() }

// Task is a tagged variant: Kind selects which field group is meaningful.
// Scheduled-only and unscheduled-only fields are simply unused on the other
// variant rather than split into separate types, so the reschedule engine
// and task-state machine can hold a single slice of Task without an
// interface boundary.
type Task struct {
	ID          string
	Description string
	Status      Status
	Kind        Kind

	// Transient UI flags. Never persisted (see storage.Provider); a record
	// loaded from storage always has these cleared.
	Editing          bool
	ConfirmingDelete bool
	IsEditingInline  bool

	// Scheduled fields.
	StartDateTime time.Time
	EndDateTime   time.Time
	DurationMin   int
	Locked        bool

	// Unscheduled fields.
	Priority    Priority
	EstDuration *int // nil means "unset"
	Rank        int  // insertion-order tie-break for drag-reorder
}

// IsScheduled reports whether t is the Scheduled variant.
func (t *Task) IsScheduled() bool { return t.Kind == KindScheduled }

// IsUnscheduled reports whether t is the Unscheduled variant.
func (t *Task) IsUnscheduled() bool { return t.Kind == KindUnscheduled }

// Movable reports whether the reschedule engine may relocate this task:
// scheduled, not completed, not locked, not mid-edit. See GLOSSARY
// "Shiftable".
func (t *Task) Movable() bool {
	return t.IsScheduled() && t.Status != StatusCompleted && !t.Locked && !t.Editing
}

// Clone returns a value copy. EstDuration, the only pointer field, is
// copied as well, so the clone shares no memory with t.
func (t Task) Clone() Task {
	if t.EstDuration != nil {
		d := *t.EstDuration
		t.EstDuration = &d
	}
	return t
}

// WithRange returns a copy of t with its scheduled range replaced,
// recomputing DurationMin from the new bounds. Duration arithmetic never
// special-cases midnight crossing: both instants are absolute, so a task
// that ends the following calendar day behaves the same as one that does
// not.
func (t Task) WithRange(start, end time.Time) Task {
	t.StartDateTime = start
	t.EndDateTime = end
	t.DurationMin = int(end.Sub(start).Minutes())
	return t
}
