// Package clock supplies the "current time" collaborator: the reschedule
// engine and task-state machine never call time.Now() directly, they take
// a Clock.
package clock

import "time"

// Clock is the external clock collaborator. Production code uses System();
// tests inject a fixed implementation for deterministic scenarios.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the real wall-clock collaborator.
func System() Clock { return systemClock{} }

// Fixed is a Clock that always returns the same instant, for tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

type locatedClock struct{ loc *time.Location }

func (l locatedClock) Now() time.Time { return time.Now().In(l.loc) }

// InLocation returns the real wall-clock collaborator with every instant
// expressed in loc, so "today" and start-time parsing follow the user's
// configured timezone rather than the host's.
func InLocation(loc *time.Location) Clock { return locatedClock{loc: loc} }
