package taskmachine

import (
	"fmt"

	"github.com/oskarlind/dayqueue/internal/models"
	"github.com/oskarlind/dayqueue/internal/validation"
)

// Delete flips confirmingDelete on the task at index and returns
// NeedsConfirm on the first call (a transient-flag flip, not persisted);
// the second call, with confirmed=true, removes it for good.
func (m *Machine) Delete(index int, confirmed bool) Result {
	state := m.Store.GetState()
	if r := validation.ValidateIndex(index, len(state)); !r.Valid {
		return failure(r.Reason)
	}
	target := state[index]

	if !confirmed {
		target.ConfirmingDelete = true
		return needsConfirm(ConfirmDelete, nil)
	}

	newState := append(append([]*models.Task{}, state[:index]...), state[index+1:]...)
	if err := m.commit(newState); err != nil {
		return failure(err.Error())
	}
	return success(nil, "Task deleted.")
}

// DeleteAll removes every task.
func (m *Machine) DeleteAll() Result {
	count := len(m.Store.GetState())
	if err := m.commit(nil); err != nil {
		return failure(err.Error())
	}
	return bulkDeleteResult(count)
}

// DeleteAllScheduled removes every scheduled task, leaving unscheduled
// tasks untouched.
func (m *Machine) DeleteAllScheduled() Result {
	state := m.Store.GetState()
	var kept []*models.Task
	deleted := 0
	for _, t := range state {
		if t.IsScheduled() {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	if err := m.commit(kept); err != nil {
		return failure(err.Error())
	}
	return bulkDeleteResult(deleted)
}

// DeleteCompleted removes every completed task, scheduled or unscheduled.
func (m *Machine) DeleteCompleted() Result {
	state := m.Store.GetState()
	var kept []*models.Task
	deleted := 0
	for _, t := range state {
		if t.Status == models.StatusCompleted {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	if err := m.commit(kept); err != nil {
		return failure(err.Error())
	}
	return bulkDeleteResult(deleted)
}

func bulkDeleteResult(count int) Result {
	r := success(nil, fmt.Sprintf("%d task(s) deleted.", count))
	r.Payload = BulkDeleteResult{TasksDeleted: count}
	return r
}
