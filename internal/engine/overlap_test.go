package engine

import (
	"testing"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

func mkTask(id string, start time.Time, durationMin int) *models.Task {
	return &models.Task{
		ID:            id,
		Description:   id,
		Kind:          models.KindScheduled,
		Status:        models.StatusIncomplete,
		StartDateTime: start,
		EndDateTime:   start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:   durationMin,
	}
}

func day(hour, minute int) time.Time {
	return time.Date(2026, 7, 31, hour, minute, 0, 0, time.UTC)
}

func TestTasksOverlap_HalfOpen(t *testing.T) {
	a := mkTask("a", day(9, 0), 60)
	b := mkTask("b", day(10, 0), 60)
	if TasksOverlap(a, b) {
		t.Error("adjacent tasks (a ends exactly when b starts) must not overlap")
	}

	c := mkTask("c", day(9, 30), 60)
	if !TasksOverlap(a, c) {
		t.Error("overlapping ranges must overlap")
	}
}

func TestTasksOverlap_ZeroDurationNeverOverlaps(t *testing.T) {
	milestone := mkTask("m", day(9, 0), 0)
	other := mkTask("o", day(9, 0), 60)
	if TasksOverlap(milestone, other) {
		t.Error("a zero-duration task must never overlap anything, including itself")
	}
	if TasksOverlap(milestone, milestone) {
		t.Error("tasks_overlap(A, A) must be false when A has zero duration")
	}
}

func TestTasksOverlap_SelfNonZeroDuration(t *testing.T) {
	a := mkTask("a", day(9, 0), 60)
	if !TasksOverlap(a, a) {
		t.Error("tasks_overlap(A, A) must be true for a non-zero-duration task")
	}
}

func TestTasksOverlap_UnscheduledNeverOverlaps(t *testing.T) {
	a := &models.Task{ID: "a", Kind: models.KindUnscheduled}
	b := mkTask("b", day(9, 0), 60)
	if TasksOverlap(a, b) {
		t.Error("unscheduled tasks must never overlap")
	}
}

// S5: midnight crossing.
func TestTasksOverlap_MidnightCrossing(t *testing.T) {
	late := mkTask("late", day(23, 0), 90) // 23:00 - 00:30 next day
	early := &models.Task{
		ID: "early", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: time.Date(2026, 7, 31, 0, 15, 0, 0, time.UTC).Add(24 * time.Hour),
		EndDateTime:   time.Date(2026, 7, 31, 1, 0, 0, 0, time.UTC).Add(24 * time.Hour),
	}
	if !TasksOverlap(late, early) {
		t.Error("a task spanning midnight must overlap a task that starts inside the spanned range")
	}

	evening := mkTask("evening", day(22, 0), 120) // 22:00 - 00:00
	morning := &models.Task{
		ID: "morning", Kind: models.KindScheduled, Status: models.StatusIncomplete,
		StartDateTime: day(0, 0).Add(24 * time.Hour),
		EndDateTime:   day(2, 0).Add(24 * time.Hour),
	}
	if TasksOverlap(evening, morning) {
		t.Error("tasks that merely touch at midnight must not overlap")
	}
}

func TestCheckOverlap_ExcludesSelfCompletedAndEditing(t *testing.T) {
	candidate := mkTask("candidate", day(9, 0), 60)
	completed := mkTask("completed", day(9, 30), 30)
	completed.Status = models.StatusCompleted
	editing := mkTask("editing", day(9, 30), 30)
	editing.Editing = true
	self := mkTask("candidate", day(9, 30), 30)
	real := mkTask("real", day(9, 30), 30)

	hits := CheckOverlap(candidate, []*models.Task{completed, editing, self, real})
	if len(hits) != 1 || hits[0].ID != "real" {
		t.Fatalf("CheckOverlap returned %v, want only [real]", ids(hits))
	}
}

func TestCheckOverlap_OrderedByStart(t *testing.T) {
	candidate := mkTask("candidate", day(9, 0), 180)
	later := mkTask("later", day(11, 0), 30)
	earlier := mkTask("earlier", day(9, 30), 30)

	hits := CheckOverlap(candidate, []*models.Task{later, earlier})
	if len(hits) != 2 || hits[0].ID != "earlier" || hits[1].ID != "later" {
		t.Fatalf("CheckOverlap order = %v, want [earlier later]", ids(hits))
	}
}

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
