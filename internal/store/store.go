// Package store holds the in-process task collection: a single ordered
// sequence of tasks, with cached scheduled/unscheduled views that are only
// recomputed when the underlying collection actually changes. Persisting
// that collection to disk is a separate concern, handled by
// internal/storage.Provider; Store is the in-memory repository the
// task-state machine and reschedule engine read and write against during a
// single command invocation.
//
// The live []*models.Task is held directly and derived views are recomputed
// lazily, gated by an explicit generation counter rather than an implicit
// dirty flag.
package store

import (
	"sort"
	"sync"

	"github.com/oskarlind/dayqueue/internal/models"
)

// Store is the ordered collection of tasks for a single day. Readers get a
// defensive copy of the sequence itself (so they cannot insert/remove
// through it), but the contained *models.Task records are shared, so
// updates made through the engine or task-state machine remain visible.
type Store struct {
	mu         sync.RWMutex
	tasks      []*models.Task
	generation uint64

	cachedGeneration uint64
	cachedScheduled  []*models.Task
	cachedUnscheduled []*models.Task
}

// New returns a Store seeded with tasks. The slice is copied; the Task
// pointers inside it are not.
func New(tasks []*models.Task) *Store {
	s := &Store{tasks: make([]*models.Task, len(tasks))}
	copy(s.tasks, tasks)
	return s
}

// GetState returns a defensive copy of the current task sequence.
func (s *Store) GetState() []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the task with the given ID, if present.
func (s *Store) Find(id string) (*models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// IndexOf returns the position of id in the current sequence, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// UpdateState replaces the entire sequence and bumps the generation
// counter, invalidating the sorted-view cache. Used for add, delete, and
// bulk-replace operations; in-place edits to a task already in the
// sequence (lock toggles, reschedule execution) should call Touch instead
// since the sequence identity hasn't changed, only a member's fields.
func (s *Store) UpdateState(tasks []*models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make([]*models.Task, len(tasks))
	copy(s.tasks, tasks)
	s.generation++
}

// Touch bumps the generation counter without changing the sequence itself,
// for callers that mutated one or more *models.Task fields in place (the
// reschedule engine's Execute, lock toggles) and need the sorted-view
// cache invalidated.
func (s *Store) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// Generation returns the current generation counter, incremented on every
// UpdateState or Touch call.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SortedScheduled returns scheduled tasks ordered by start time, recomputed
// only when the generation counter has advanced since the last call.
func (s *Store) SortedScheduled() []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCacheLocked()
	out := make([]*models.Task, len(s.cachedScheduled))
	copy(out, s.cachedScheduled)
	return out
}

// SortedUnscheduled returns unscheduled tasks ordered by: incomplete before
// completed, then priority (high before medium before low), then
// EstDuration ascending with "unset" sorting last, then Rank — the
// drag-reorder tie-break. Recomputed only when the generation counter has
// advanced since the last call.
func (s *Store) SortedUnscheduled() []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCacheLocked()
	out := make([]*models.Task, len(s.cachedUnscheduled))
	copy(out, s.cachedUnscheduled)
	return out
}

func (s *Store) refreshCacheLocked() {
	if s.cachedGeneration == s.generation && s.cachedScheduled != nil {
		return
	}

	var scheduled, unscheduled []*models.Task
	for _, t := range s.tasks {
		if t.IsScheduled() {
			scheduled = append(scheduled, t)
		} else {
			unscheduled = append(unscheduled, t)
		}
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].StartDateTime.Before(scheduled[j].StartDateTime)
	})
	sort.SliceStable(unscheduled, func(i, j int) bool {
		a, b := unscheduled[i], unscheduled[j]
		if (a.Status == models.StatusCompleted) != (b.Status == models.StatusCompleted) {
			return a.Status != models.StatusCompleted
		}
		if a.Priority.Weight() != b.Priority.Weight() {
			return a.Priority.Weight() < b.Priority.Weight()
		}
		aSet, bSet := a.EstDuration != nil, b.EstDuration != nil
		if aSet != bSet {
			return aSet // unset sorts last
		}
		if aSet && bSet && *a.EstDuration != *b.EstDuration {
			return *a.EstDuration < *b.EstDuration
		}
		return a.Rank < b.Rank
	})

	s.cachedScheduled = scheduled
	s.cachedUnscheduled = unscheduled
	s.cachedGeneration = s.generation
}
