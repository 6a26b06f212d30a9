package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// formatClock renders an instant as "3:04 PM" style wall-clock text, the
// format the conflict diagnostic uses.
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// GenerateLockedConflictMessage renders the diagnostic text for a task that
// cannot be placed without conflicting with a locked task: the conflicting
// locked tasks, any available gaps of sufficient size, and a remediation
// list. newTaskDurationMin is the
// duration the new or moved task needs; date anchors the day the gaps are
// computed over (the task's own calendar day).
func GenerateLockedConflictMessage(newTaskDesc string, newTaskDurationMin int, date time.Time, validation ValidationResult, allLocked []*models.Task) string {
	var b strings.Builder

	b.WriteString("Can't fit this task - rescheduling would create conflicts with locked tasks:\n\n")

	conflicting := conflictingLocked(validation)
	for _, l := range conflicting {
		fmt.Fprintf(&b, "  • %s (locked) at %s - %s\n", l.Description, formatClock(l.StartDateTime), formatClock(l.EndDateTime))
	}

	gaps := FindGaps(date, allLocked, newTaskDurationMin)

	b.WriteString("\n")
	if len(gaps) == 0 {
		b.WriteString("No gaps large enough to fit this task.\n")
	} else {
		b.WriteString("Available time slots:\n")
		for _, g := range gaps {
			minutes := int(g.End.Sub(g.Start).Minutes())
			fmt.Fprintf(&b, "  • %s - %s (%d min available)\n", formatClock(g.Start), formatClock(g.End), minutes)
		}
	}

	b.WriteString("\nTo add this task:\n")
	step := 1
	fmt.Fprintf(&b, "  %d. Unlock one of the conflicting tasks, OR\n", step)
	step++
	if len(gaps) > 0 {
		fmt.Fprintf(&b, "  %d. Choose a time in an available slot, OR\n", step)
		step++
	}
	fmt.Fprintf(&b, "  %d. Delete tasks to make space\n", step)

	return b.String()
}

// conflictingLocked returns the distinct locked tasks named in validation's
// conflicts, ordered by start time.
func conflictingLocked(validation ValidationResult) []*models.Task {
	seen := make(map[string]bool)
	var out []*models.Task
	for _, c := range validation.Conflicts {
		if seen[c.Locked.ID] {
			continue
		}
		seen[c.Locked.ID] = true
		out = append(out, c.Locked)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDateTime.Before(out[j].StartDateTime)
	})
	return out
}
