// Package progress tracks per-stage status and overall completion for one
// observed pipeline job. The session is a plain value folded over incoming
// events; nothing here blocks or talks to a transport.
package progress

import "clipwatch/internal/stage"

// Status is the lifecycle state of one stage within a session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Event is one report from the job-status source. The most recently received
// event reflects current truth; no other ordering is guaranteed.
// ETASeconds of zero (or NaN, or negative) means no estimate.
type Event struct {
	Stage      stage.ID
	Percent    float64
	Message    string
	ETASeconds float64
	AgentName  string

	// Failed marks the stage as failed instead of progressing it.
	Failed bool
}

// Reporter is implemented by UI surfaces or any observer interested in
// events delivered by a transport.
type Reporter interface {
	Update(ev Event)
	Log(line string)
}
