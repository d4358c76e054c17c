package ui

import (
	"time"

	"clipwatch/internal/progress"
	"clipwatch/internal/timing"
)

type tickMsg time.Time

type jobUpdateMsg struct {
	Ev progress.Event
}

type jobLogMsg struct {
	Line string
}

type pollDoneMsg struct {
	Err error
}

// timingMsg carries the post-completion timing summary (or the fetch error).
type timingMsg struct {
	Durations []timing.AgentDuration
	Queue     time.Duration
	QueueOK   bool
	Pipeline  time.Duration
	Wall      time.Duration
	WallOK    bool
	Err       error
}
