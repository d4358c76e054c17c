package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"clipwatch/internal/timing"
)

func TestWriteReport(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	completed := created.Add(3 * time.Minute)

	logs := []timing.LogEntry{
		{JobID: "job-1", AgentName: "silence-detector", Status: timing.StatusStarted, CreatedAt: created.Add(500 * time.Millisecond)},
		{JobID: "job-1", AgentName: "silence-detector", Status: timing.StatusCompleted, CreatedAt: created.Add(30 * time.Second)},
		{JobID: "job-1", AgentName: "transcriber", Status: timing.StatusStarted, CreatedAt: created.Add(31 * time.Second)},
		{JobID: "job-1", AgentName: "transcriber", Status: timing.StatusCompleted, CreatedAt: created.Add(96 * time.Second)},
	}
	meta := timing.JobMeta{CreatedAt: created, CompletedAt: completed}

	var buf bytes.Buffer
	writeReport(&buf, logs, meta)
	out := buf.String()

	for _, want := range []string{
		"silence-detector",
		"transcriber",
		"29.5s",  // silence-detector duration
		"1m 5s",  // transcriber duration
		"< 1s",   // queue time
		"1m 35s", // pipeline time: 29.5s + 65s rounds to 95s
		"3m 0s",  // wall-clock total
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportSparseInputs(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Unpaired agent, no started entries, unfinished job: the agent table,
	// queue row, and total row are all omitted rather than erroring.
	logs := []timing.LogEntry{
		{JobID: "job-2", AgentName: "uploader", Status: timing.StatusCompleted, CreatedAt: created.Add(time.Second)},
	}
	meta := timing.JobMeta{CreatedAt: created}

	var buf bytes.Buffer
	writeReport(&buf, logs, meta)
	out := buf.String()

	if strings.Contains(out, "uploader") {
		t.Errorf("unpaired agent should not appear in report:\n%s", out)
	}
	if strings.Contains(out, "Queue time") {
		t.Errorf("queue row should be omitted with no started entries:\n%s", out)
	}
	if strings.Contains(out, "Total time") {
		t.Errorf("total row should be omitted for unfinished job:\n%s", out)
	}
	if !strings.Contains(out, "Pipeline time") {
		t.Errorf("pipeline row should always be present:\n%s", out)
	}
}
