// Package storage implements the external store collaborator: load, save,
// and close over a persisted record shape that excludes the three
// UI-transient flags. One Provider interface with three concrete backends
// plus an optional CouchDB replicator.
package storage

import (
	"time"

	"github.com/oskarlind/dayqueue/internal/models"
)

// Provider is the external store collaborator. Implementations never see
// or persist the transient UI flags (editing, confirmingDelete,
// isEditingInline) — a record loaded from any Provider has them cleared.
type Provider interface {
	Load() ([]*models.Task, error)
	Save(tasks []*models.Task) error
	Close() error
}

// record is the wire/row shape: every persisted field, with ISO-8601
// timestamps and no transient flags.
type record struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartTime   *time.Time `json:"startDateTime,omitempty"`
	EndTime     *time.Time `json:"endDateTime,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	Locked      *bool      `json:"locked,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	EstDuration *int       `json:"estDuration,omitempty"`
	Rank        *int       `json:"rank,omitempty"`
}

func toRecord(t *models.Task) record {
	r := record{
		ID:          t.ID,
		Type:        string(t.Kind),
		Description: t.Description,
		Status:      string(t.Status),
	}
	if t.IsScheduled() {
		start, end, dur, locked := t.StartDateTime, t.EndDateTime, t.DurationMin, t.Locked
		r.StartTime, r.EndTime, r.Duration, r.Locked = &start, &end, &dur, &locked
	} else {
		priority := string(t.Priority)
		r.Priority = &priority
		r.EstDuration = t.EstDuration
		rank := t.Rank
		r.Rank = &rank
	}
	return r
}

func fromRecord(r record) *models.Task {
	t := &models.Task{
		ID:          r.ID,
		Kind:        models.Kind(r.Type),
		Description: r.Description,
		Status:      models.Status(r.Status),
	}
	switch t.Kind {
	case models.KindScheduled:
		if r.StartTime != nil {
			t.StartDateTime = *r.StartTime
		}
		if r.EndTime != nil {
			t.EndDateTime = *r.EndTime
		}
		if r.Duration != nil {
			t.DurationMin = *r.Duration
		}
		if r.Locked != nil {
			t.Locked = *r.Locked
		}
	case models.KindUnscheduled:
		if r.Priority != nil {
			t.Priority = models.Priority(*r.Priority)
		}
		t.EstDuration = r.EstDuration
		if r.Rank != nil {
			t.Rank = *r.Rank
		}
	}
	return t
}
