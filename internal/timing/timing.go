// Package timing derives per-agent execution durations and job-level time
// summaries from unordered processing-log snapshots.
//
// All functions are pure and recompute from the full snapshot they are
// given; callers re-run them as new log pages arrive.
package timing

import (
	"sort"
	"time"
)

// Status classifies a processing-log entry.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// LogEntry is one timestamped record from the processing-log source.
// Entries for the same agent are not guaranteed adjacent or paired.
type LogEntry struct {
	JobID     string
	AgentName string
	Stage     string
	Status    Status
	CreatedAt time.Time
}

// JobMeta carries the job's creation and, once finished, completion times.
// A zero CompletedAt means the job has not finished.
type JobMeta struct {
	CreatedAt   time.Time
	CompletedAt time.Time
}

// AgentDuration is the measured execution time of one agent, derived from
// its first started and first completed log entries.
type AgentDuration struct {
	AgentName string
	Duration  time.Duration
	StartedAt time.Time
}

// AgentDurations pairs each agent's first started entry with its first
// completed entry (by CreatedAt ascending) and returns the durations in
// execution order. Agents missing either entry, and entries with no agent
// name, contribute nothing.
func AgentDurations(logs []LogEntry) []AgentDuration {
	sorted := make([]LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	type span struct {
		started   time.Time
		completed time.Time
		hasStart  bool
		hasEnd    bool
	}
	spans := make(map[string]*span)
	for _, entry := range sorted {
		if entry.AgentName == "" {
			continue
		}
		sp := spans[entry.AgentName]
		if sp == nil {
			sp = &span{}
			spans[entry.AgentName] = sp
		}
		switch entry.Status {
		case StatusStarted:
			if !sp.hasStart {
				sp.started = entry.CreatedAt
				sp.hasStart = true
			}
		case StatusCompleted:
			if !sp.hasEnd {
				sp.completed = entry.CreatedAt
				sp.hasEnd = true
			}
		}
	}

	out := make([]AgentDuration, 0, len(spans))
	for name, sp := range spans {
		if !sp.hasStart || !sp.hasEnd {
			continue
		}
		out = append(out, AgentDuration{
			AgentName: name,
			Duration:  sp.completed.Sub(sp.started),
			StartedAt: sp.started,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// QueueTime is the interval between job creation and the earliest started
// entry across all agents. It reports false when no agent has started.
func QueueTime(meta JobMeta, logs []LogEntry) (time.Duration, bool) {
	var earliest time.Time
	found := false
	for _, entry := range logs {
		if entry.Status != StatusStarted {
			continue
		}
		if !found || entry.CreatedAt.Before(earliest) {
			earliest = entry.CreatedAt
			found = true
		}
	}
	if !found {
		return 0, false
	}
	d := earliest.Sub(meta.CreatedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// TotalPipelineTime sums every agent duration. Agents that overlap in wall
// clock time are double-counted; the report shows total compute, not the
// union of intervals.
func TotalPipelineTime(logs []LogEntry) time.Duration {
	var total time.Duration
	for _, d := range AgentDurations(logs) {
		total += d.Duration
	}
	return total
}

// WallClockTime is the interval from job creation to completion. It reports
// false while the job is unfinished.
func WallClockTime(meta JobMeta) (time.Duration, bool) {
	if meta.CompletedAt.IsZero() {
		return 0, false
	}
	return meta.CompletedAt.Sub(meta.CreatedAt), true
}
