package models

import (
	"testing"
	"time"
)

func scheduledTask() Task {
	start := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	return Task{
		ID:            "t1",
		Description:   "write report",
		Status:        StatusIncomplete,
		Kind:          KindScheduled,
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		DurationMin:   60,
	}
}

func TestIsScheduledAndIsUnscheduled(t *testing.T) {
	s := scheduledTask()
	if !s.IsScheduled() {
		t.Error("expected scheduled task to report IsScheduled")
	}
	if s.IsUnscheduled() {
		t.Error("expected scheduled task to not report IsUnscheduled")
	}

	u := Task{Kind: KindUnscheduled}
	if u.IsScheduled() {
		t.Error("expected unscheduled task to not report IsScheduled")
	}
	if !u.IsUnscheduled() {
		t.Error("expected unscheduled task to report IsUnscheduled")
	}
}

func TestMovable(t *testing.T) {
	tests := []struct {
		name string
		mod  func(Task) Task
		want bool
	}{
		{"plain scheduled incomplete", func(t Task) Task { return t }, true},
		{"locked", func(t Task) Task { t.Locked = true; return t }, false},
		{"completed", func(t Task) Task { t.Status = StatusCompleted; return t }, false},
		{"editing", func(t Task) Task { t.Editing = true; return t }, false},
		{"unscheduled", func(t Task) Task { t.Kind = KindUnscheduled; return t }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.mod(scheduledTask())
			if got := task.Movable(); got != tt.want {
				t.Errorf("Movable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsIndependentOfEstDuration(t *testing.T) {
	d := 45
	orig := Task{Kind: KindUnscheduled, EstDuration: &d}
	clone := orig.Clone()

	*clone.EstDuration = 90
	if *orig.EstDuration != 45 {
		t.Errorf("mutating clone.EstDuration affected original: got %d, want 45", *orig.EstDuration)
	}
}

func TestCloneNilEstDuration(t *testing.T) {
	orig := Task{Kind: KindUnscheduled}
	clone := orig.Clone()
	if clone.EstDuration != nil {
		t.Error("expected clone of a task with unset EstDuration to remain nil")
	}
}

func TestWithRangeRecomputesDuration(t *testing.T) {
	task := scheduledTask()
	start := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 31, 10, 45, 0, 0, time.UTC)

	got := task.WithRange(start, end)
	if !got.StartDateTime.Equal(start) || !got.EndDateTime.Equal(end) {
		t.Errorf("WithRange did not set the requested range: got [%v, %v)", got.StartDateTime, got.EndDateTime)
	}
	if got.DurationMin != 45 {
		t.Errorf("WithRange duration = %d, want 45", got.DurationMin)
	}
}

func TestWithRangeAcrossMidnight(t *testing.T) {
	task := scheduledTask()
	start := time.Date(2026, 7, 31, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 15, 0, 0, time.UTC)

	got := task.WithRange(start, end)
	if got.DurationMin != 45 {
		t.Errorf("WithRange duration across midnight = %d, want 45", got.DurationMin)
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	if !(PriorityHigh.Weight() < PriorityMedium.Weight()) {
		t.Error("expected high priority to weigh less (sort earlier) than medium")
	}
	if !(PriorityMedium.Weight() < PriorityLow.Weight()) {
		t.Error("expected medium priority to weigh less (sort earlier) than low")
	}
	if Priority("bogus").Weight() != PriorityMedium.Weight() {
		t.Error("expected an unrecognized priority to weigh the same as medium")
	}
}
