package store

import (
	"testing"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

func scheduled(id string, start time.Time, durationMin int) *models.Task {
	return &models.Task{
		ID:            id,
		Kind:          models.KindScheduled,
		Status:        models.StatusIncomplete,
		StartDateTime: start,
		EndDateTime:   start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:   durationMin,
	}
}

func unscheduled(id string, priority models.Priority, est *int, rank int) *models.Task {
	return &models.Task{
		ID:          id,
		Kind:        models.KindUnscheduled,
		Status:      models.StatusIncomplete,
		Priority:    priority,
		EstDuration: est,
		Rank:        rank,
	}
}

func TestGetStateReturnsDefensiveCopy(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	s := New([]*models.Task{scheduled("a", base, 30)})

	got := s.GetState()
	got = append(got, scheduled("b", base.Add(time.Hour), 30))

	if len(s.GetState()) != 1 {
		t.Errorf("mutating the returned slice affected the store: len = %d, want 1", len(s.GetState()))
	}

	// The contained Task record is shared, so mutating it through the
	// returned slice is visible on the next read.
	got2 := s.GetState()
	got2[0].Description = "edited"
	if s.GetState()[0].Description != "edited" {
		t.Error("expected the underlying *Task record to be shared across GetState calls")
	}
}

func TestFindAndIndexOf(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	s := New([]*models.Task{scheduled("a", base, 30), scheduled("b", base.Add(time.Hour), 30)})

	task, ok := s.Find("b")
	if !ok || task.ID != "b" {
		t.Fatalf("Find(%q) = %v, %v", "b", task, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Error("Find(missing) should report not found")
	}

	if idx := s.IndexOf("b"); idx != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", idx)
	}
	if idx := s.IndexOf("missing"); idx != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", idx)
	}
}

func TestUpdateStateBumpsGeneration(t *testing.T) {
	s := New(nil)
	gen0 := s.Generation()
	s.UpdateState([]*models.Task{scheduled("a", time.Now(), 30)})
	if s.Generation() == gen0 {
		t.Error("UpdateState did not bump the generation counter")
	}
}

func TestTouchBumpsGenerationWithoutReplacingSequence(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	task := scheduled("a", base, 30)
	s := New([]*models.Task{task})
	gen0 := s.Generation()

	task.Locked = true
	s.Touch()

	if s.Generation() == gen0 {
		t.Error("Touch did not bump the generation counter")
	}
	if !s.GetState()[0].Locked {
		t.Error("expected the in-place mutation to be visible after Touch")
	}
}

func TestSortedScheduledOrdersByStart(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	s := New([]*models.Task{
		scheduled("late", base.Add(2*time.Hour), 30),
		scheduled("early", base, 30),
		scheduled("mid", base.Add(time.Hour), 30),
	})

	got := s.SortedScheduled()
	wantOrder := []string{"early", "mid", "late"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("SortedScheduled()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSortedScheduledCacheInvalidatesOnUpdate(t *testing.T) {
	base := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	s := New([]*models.Task{scheduled("a", base, 30)})
	_ = s.SortedScheduled() // populate the cache

	s.UpdateState([]*models.Task{scheduled("a", base, 30), scheduled("b", base.Add(time.Hour), 30)})

	if got := len(s.SortedScheduled()); got != 2 {
		t.Errorf("SortedScheduled() after UpdateState returned %d tasks, want 2 (stale cache)", got)
	}
}

func TestSortedUnscheduledOrdering(t *testing.T) {
	est20, est5 := 20, 5
	s := New([]*models.Task{
		unscheduled("completed-high", models.PriorityHigh, nil, 1),
		unscheduled("low", models.PriorityLow, nil, 2),
		unscheduled("high-unset-est", models.PriorityHigh, nil, 3),
		unscheduled("high-est20", models.PriorityHigh, &est20, 4),
		unscheduled("high-est5", models.PriorityHigh, &est5, 5),
	})
	s.GetState()[0].Status = models.StatusCompleted
	// the mutation above is on a defensive-copy slice, but the *Task it
	// points at is shared with the store, so the store observes it.
	s.Touch()

	got := s.SortedUnscheduled()
	wantOrder := []string{"high-est5", "high-est20", "high-unset-est", "low", "completed-high"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("SortedUnscheduled()[%d].ID = %q, want %q (full order: %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
