package engine

import (
	"testing"
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

func TestFindGaps_BetweenAndAroundLockedTasks(t *testing.T) {
	l1 := mkTask("l1", day(10, 0), 60)  // 10:00-11:00
	l1.Locked = true
	l2 := mkTask("l2", day(11, 15), 60) // 11:15-12:15
	l2.Locked = true

	gaps := FindGaps(day(0, 0), []*models.Task{l1, l2}, 15)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps (before l1, between, after l2), got %d: %v", len(gaps), gaps)
	}

	wantDayEnd := time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC)
	if !gaps[0].Start.Equal(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)) || !gaps[0].End.Equal(l1.StartDateTime) {
		t.Errorf("gap 0 = [%v, %v), want [00:00, %v)", gaps[0].Start, gaps[0].End, l1.StartDateTime)
	}
	if !gaps[1].Start.Equal(l1.EndDateTime) || !gaps[1].End.Equal(l2.StartDateTime) {
		t.Errorf("gap 1 = [%v, %v), want [%v, %v)", gaps[1].Start, gaps[1].End, l1.EndDateTime, l2.StartDateTime)
	}
	if !gaps[2].Start.Equal(l2.EndDateTime) || !gaps[2].End.Equal(wantDayEnd) {
		t.Errorf("gap 2 = [%v, %v), want [%v, %v)", gaps[2].Start, gaps[2].End, l2.EndDateTime, wantDayEnd)
	}
}

func TestFindGaps_FiltersByRequiredDuration(t *testing.T) {
	l1 := mkTask("l1", day(10, 0), 60)
	l1.Locked = true
	l2 := mkTask("l2", day(11, 15), 60) // 15-minute gap between l1 and l2
	l2.Locked = true

	gaps := FindGaps(day(0, 0), []*models.Task{l1, l2}, 60)
	for _, g := range gaps {
		minutes := int(g.End.Sub(g.Start).Minutes())
		if minutes < 60 {
			t.Errorf("gap [%v, %v) is %d minutes, shorter than the required 60", g.Start, g.End, minutes)
		}
	}
	// the 15-minute gap between l1 and l2 must be filtered out
	for _, g := range gaps {
		if g.Start.Equal(l1.EndDateTime) {
			t.Error("the 15-minute gap between l1 and l2 should not satisfy a 60-minute requirement")
		}
	}
}

func TestFindGaps_NoLockedTasks(t *testing.T) {
	gaps := FindGaps(day(0, 0), nil, 30)
	if len(gaps) != 1 {
		t.Fatalf("expected a single gap spanning the whole day, got %d", len(gaps))
	}
	if !gaps[0].Start.Equal(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("gap start = %v, want 00:00", gaps[0].Start)
	}
}

func TestFindGaps_UnsortedInput(t *testing.T) {
	l1 := mkTask("l1", day(10, 0), 60)
	l1.Locked = true
	l2 := mkTask("l2", day(14, 0), 60)
	l2.Locked = true

	// pass them out of order; FindGaps must sort internally
	gaps := FindGaps(day(0, 0), []*models.Task{l2, l1}, 30)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps regardless of input order, got %d", len(gaps))
	}
	if !gaps[1].Start.Equal(l1.EndDateTime) {
		t.Errorf("middle gap should start at l1's end even though l1 was passed second")
	}
}
