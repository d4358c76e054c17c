package progress

import (
	"math"
	"time"

	"clipwatch/internal/stage"
)

// StageState is a catalog entry plus its live status and percent complete.
type StageState struct {
	stage.Definition
	Status   Status
	Progress float64
}

// Session is the derived view of one observed job. It is a value: Apply,
// Reduce, and Tick return an updated copy and never mutate their input's
// stage slice.
//
// At most one stage is processing at a time; stages before it are completed
// and stages after it pending, until the terminal complete signal forces
// everything to completed.
type Session struct {
	Mode      stage.Mode
	StartTime time.Time

	Stages         []StageState
	Overall        int
	ElapsedSeconds int
	Completed      bool

	// Current annotations, overwritten by each event.
	Message    string
	ETASeconds float64
	AgentName  string

	catalog stage.Catalog
	reached int // highest stage index applied so far; -1 before any event

	onComplete func()
}

// Option configures a new session.
type Option func(*Session)

// WithOnComplete registers a hook invoked exactly once when the session
// receives the terminal complete signal.
func WithOnComplete(fn func()) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// NewSession creates a session for a processing mode with every stage
// pending at zero percent.
func NewSession(mode stage.Mode, start time.Time, opts ...Option) Session {
	catalog := stage.NewCatalog(mode)
	states := make([]StageState, 0, catalog.Len())
	for _, d := range catalog.Definitions() {
		states = append(states, StageState{Definition: d, Status: StatusPending})
	}
	s := Session{
		Mode:      mode,
		StartTime: start,
		Stages:    states,
		catalog:   catalog,
		reached:   -1,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Apply folds one event into the session and returns the updated session.
// Malformed events (unknown stage id, non-numeric percent) and stale events
// for stages already passed are absorbed as no-ops. Applying the same event
// twice yields the same session as applying it once.
func Apply(s Session, ev Event) Session {
	if ev.Stage == stage.Complete {
		return complete(s, ev)
	}
	if s.Completed {
		return s
	}

	idx, ok := s.catalog.Index(ev.Stage)
	if !ok {
		return s
	}

	if ev.Failed {
		s.Stages = cloneStages(s.Stages)
		s.Stages[idx].Status = StatusError
		return s
	}

	if math.IsNaN(ev.Percent) {
		return s
	}
	// Forward ratchet: a report for a stage already passed must not regress
	// the board.
	if idx < s.reached {
		return s
	}

	pct := clamp(ev.Percent, 0, 100)
	s.Stages = cloneStages(s.Stages)
	s.Stages[idx].Status = StatusProcessing
	s.Stages[idx].Progress = pct
	for i := 0; i < idx; i++ {
		if s.Stages[i].Status == StatusError {
			continue
		}
		s.Stages[i].Status = StatusCompleted
		s.Stages[i].Progress = 100
	}
	s.reached = idx

	n := s.catalog.Len()
	f := pct / 100
	s.Overall = int(clamp((float64(idx)+f)/float64(n)*100, 0, 100))

	s.Message = ev.Message
	s.ETASeconds = ev.ETASeconds
	s.AgentName = ev.AgentName
	return s
}

// complete applies the terminal signal: every stage is forced to completed
// at 100 percent and the completion hook fires once. Further complete
// events are no-ops.
func complete(s Session, ev Event) Session {
	if s.Completed {
		return s
	}
	s.Stages = cloneStages(s.Stages)
	for i := range s.Stages {
		s.Stages[i].Status = StatusCompleted
		s.Stages[i].Progress = 100
	}
	s.Overall = 100
	s.Completed = true
	s.reached = len(s.Stages)
	if ev.Message != "" {
		s.Message = ev.Message
	}
	s.ETASeconds = 0
	if ev.AgentName != "" {
		s.AgentName = ev.AgentName
	}
	if s.onComplete != nil {
		s.onComplete()
	}
	return s
}

// Reduce folds an ordered event sequence into the session.
func Reduce(s Session, events []Event) Session {
	for _, ev := range events {
		s = Apply(s, ev)
	}
	return s
}

// Tick advances the elapsed-time display. It is a no-op once the session
// has completed.
func Tick(s Session, now time.Time) Session {
	if s.Completed {
		return s
	}
	elapsed := int(now.Sub(s.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	s.ElapsedSeconds = elapsed
	return s
}

func cloneStages(in []StageState) []StageState {
	out := make([]StageState, len(in))
	copy(out, in)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
