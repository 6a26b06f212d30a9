package engine

import (
	"testing"

	"github.com/oskarlind/dayqueue/internal/models"
)

func TestAdjustForLocked_NoLockedTasks(t *testing.T) {
	candidate := models.Task{
		ID: "c", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: day(9, 0), EndDateTime: day(10, 0), DurationMin: 60,
	}
	got := AdjustForLocked(candidate, nil)
	if !got.StartDateTime.Equal(candidate.StartDateTime) {
		t.Errorf("with no locked tasks the candidate must not move: got %v", got.StartDateTime)
	}
}

func TestAdjustForLocked_MovesPastOneLockedTask(t *testing.T) {
	candidate := models.Task{
		ID: "c", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: day(9, 0), EndDateTime: day(10, 0), DurationMin: 60,
	}
	locked := mkTask("locked", day(9, 30), 60)
	locked.Locked = true

	got := AdjustForLocked(candidate, []*models.Task{locked})
	if !got.StartDateTime.Equal(locked.EndDateTime) {
		t.Errorf("AdjustForLocked start = %v, want %v (locked task's end)", got.StartDateTime, locked.EndDateTime)
	}
	if got.DurationMin != 60 {
		t.Errorf("AdjustForLocked must preserve duration: got %d, want 60", got.DurationMin)
	}
}

func TestAdjustForLocked_HopsOverMultipleLockedTasksInSequence(t *testing.T) {
	candidate := models.Task{
		ID: "c", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: day(9, 0), EndDateTime: day(9, 30), DurationMin: 30,
	}
	l1 := mkTask("l1", day(9, 0), 30)
	l1.Locked = true
	l2 := mkTask("l2", day(9, 30), 30)
	l2.Locked = true

	got := AdjustForLocked(candidate, []*models.Task{l1, l2})
	if !got.StartDateTime.Equal(l2.EndDateTime) {
		t.Errorf("AdjustForLocked start = %v, want %v (after both locked tasks)", got.StartDateTime, l2.EndDateTime)
	}
}

func TestAdjustForLocked_IgnoresCompletedLockedTasks(t *testing.T) {
	candidate := models.Task{
		ID: "c", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: day(9, 0), EndDateTime: day(10, 0), DurationMin: 60,
	}
	locked := mkTask("locked", day(9, 30), 60)
	locked.Locked = true
	locked.Status = models.StatusCompleted

	got := AdjustForLocked(candidate, []*models.Task{locked})
	if !got.StartDateTime.Equal(candidate.StartDateTime) {
		t.Error("a completed locked task must not affect placement")
	}
}
