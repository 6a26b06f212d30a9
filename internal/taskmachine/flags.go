package taskmachine

import "github.com/oskarlind/dayqueue/internal/models"

// Edit flips the task at index into edit mode. Transient flags never
// persist.
func (m *Machine) Edit(index int) Result {
	state := m.Store.GetState()
	if index < 0 || index >= len(state) {
		return failure("Invalid task index.")
	}
	target := state[index]
	target.Editing = true
	target.ConfirmingDelete = false
	return success(target, "")
}

// CancelEdit clears edit mode on the task at index.
func (m *Machine) CancelEdit(index int) Result {
	state := m.Store.GetState()
	if index < 0 || index >= len(state) {
		return failure("Invalid task index.")
	}
	target := state[index]
	target.Editing = false
	return success(target, "")
}

// ResetAllConfirmingDeleteFlags clears confirmingDelete on every task.
// Returns whether any flag actually changed, so a caller can skip a
// re-render when nothing did.
func (m *Machine) ResetAllConfirmingDeleteFlags() bool {
	changed := false
	for _, t := range m.Store.GetState() {
		if t.ConfirmingDelete {
			t.ConfirmingDelete = false
			changed = true
		}
	}
	return changed
}

// ResetAllEditingFlags clears editing on every task.
func (m *Machine) ResetAllEditingFlags() bool {
	changed := false
	for _, t := range m.Store.GetState() {
		if t.Editing {
			t.Editing = false
			changed = true
		}
	}
	return changed
}

// ResetAllIsEditingInlineFlags clears isEditingInline on every task.
func (m *Machine) ResetAllIsEditingInlineFlags() bool {
	changed := false
	for _, t := range m.Store.GetState() {
		if t.IsEditingInline {
			t.IsEditingInline = false
			changed = true
		}
	}
	return changed
}

// Unschedule converts a scheduled task to unscheduled, preserving its
// duration as estDuration.
func (m *Machine) Unschedule(id string) Result {
	target, ok := m.Store.Find(id)
	if !ok || !target.IsScheduled() {
		return failure("Task not found")
	}

	dur := target.DurationMin
	rank := 0
	for _, t := range m.Store.GetState() {
		if t.IsUnscheduled() {
			rank++
		}
	}

	*target = models.Task{
		ID:          target.ID,
		Description: target.Description,
		Status:      target.Status,
		Kind:        models.KindUnscheduled,
		Priority:    models.PriorityMedium,
		EstDuration: &dur,
		Rank:        rank + 1,
	}
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "Task unscheduled.")
}

// ToggleLock flips Locked on the scheduled task identified by id.
func (m *Machine) ToggleLock(id string) Result {
	target, ok := m.Store.Find(id)
	if !ok || !target.IsScheduled() {
		return failure("Task not found")
	}
	target.Locked = !target.Locked
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "")
}

// ToggleCompleteUnscheduled flips the completed status of the unscheduled
// task identified by id.
func (m *Machine) ToggleCompleteUnscheduled(id string) Result {
	target, ok := m.Store.Find(id)
	if !ok || !target.IsUnscheduled() {
		return failure("Task not found")
	}
	if target.Status == models.StatusCompleted {
		target.Status = models.StatusIncomplete
	} else {
		target.Status = models.StatusCompleted
	}
	if err := m.commitTouch(); err != nil {
		return failure(err.Error())
	}
	return success(target, "")
}
