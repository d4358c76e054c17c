package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"clipwatch/internal/progress"
	"clipwatch/internal/stage"
	"clipwatch/internal/timing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     progress.Event
		wantFail bool
	}{
		{
			name: "progress report",
			body: `{"stage":"transcription","percent":42.5,"message":"Transcribing audio","etaSeconds":90,"agentName":"whisper-1"}`,
			want: progress.Event{
				Stage:      stage.Transcription,
				Percent:    42.5,
				Message:    "Transcribing audio",
				ETASeconds: 90,
				AgentName:  "whisper-1",
			},
		},
		{
			name: "error status maps to failed event",
			body: `{"stage":"segmentation","percent":10,"status":"error","message":"segmenter crashed"}`,
			want: progress.Event{
				Stage:   stage.Segmentation,
				Percent: 10,
				Message: "segmenter crashed",
				Failed:  true,
			},
		},
		{
			name: "terminal complete signal",
			body: `{"stage":"complete","percent":100}`,
			want: progress.Event{Stage: stage.Complete, Percent: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/jobs/job-1/status" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := New(srv.URL).Status(context.Background(), "job-1")
			if err != nil {
				t.Fatalf("Status() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Status() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatusHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Status(context.Background(), "job-1"); err == nil {
		t.Fatalf("Status() expected error on 502, got nil")
	}
}

func TestLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs/job-2/logs" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"jobId":"job-2","agentName":"uploader","status":"started","createdAt":"2024-06-01T12:00:00Z"},
			{"jobId":"job-2","agentName":"uploader","status":"completed","createdAt":"2024-06-01T12:00:30Z"},
			{"jobId":"job-2","stage":"preparing","status":"started","createdAt":"2024-06-01T12:00:31Z"}
		]`))
	}))
	defer srv.Close()

	logs, err := New(srv.URL).Logs(context.Background(), "job-2")
	if err != nil {
		t.Fatalf("Logs() error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Logs() returned %d entries, want 3", len(logs))
	}
	if logs[0].AgentName != "uploader" || logs[0].Status != timing.StatusStarted {
		t.Errorf("Logs()[0] = %+v, want uploader/started", logs[0])
	}
	if !logs[1].CreatedAt.Equal(time.Date(2024, 6, 1, 12, 0, 30, 0, time.UTC)) {
		t.Errorf("Logs()[1].CreatedAt = %v, want 2024-06-01T12:00:30Z", logs[1].CreatedAt)
	}
	if logs[2].Stage != "preparing" || logs[2].AgentName != "" {
		t.Errorf("Logs()[2] = %+v, want stage preparing with no agent", logs[2])
	}
}

func TestMeta(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantCompleted bool
	}{
		{
			name:          "finished job",
			body:          `{"createdAt":"2024-06-01T12:00:00Z","completedAt":"2024-06-01T12:05:00Z"}`,
			wantCompleted: true,
		},
		{
			name:          "running job has no completedAt",
			body:          `{"createdAt":"2024-06-01T12:00:00Z"}`,
			wantCompleted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/jobs/job-3" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			meta, err := New(srv.URL).Meta(context.Background(), "job-3")
			if err != nil {
				t.Fatalf("Meta() error: %v", err)
			}
			if meta.CreatedAt.IsZero() {
				t.Errorf("Meta().CreatedAt is zero")
			}
			if got := !meta.CompletedAt.IsZero(); got != tt.wantCompleted {
				t.Errorf("Meta() completed = %v, want %v", got, tt.wantCompleted)
			}
		})
	}
}

// recordingReporter collects poll deliveries for assertions.
type recordingReporter struct {
	mu      sync.Mutex
	updates []progress.Event
	logs    []string
}

func (r *recordingReporter) Update(ev progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, ev)
}

func (r *recordingReporter) Log(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, line)
}

func TestPollStopsOnComplete(t *testing.T) {
	responses := []string{
		`{"stage":"uploading","percent":50}`,
		`{"stage":"transcription","percent":20}`,
		`{"stage":"complete","percent":100}`,
	}
	var mu sync.Mutex
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		body := responses[call]
		if call < len(responses)-1 {
			call++
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	rep := &recordingReporter{}
	err := New(srv.URL).Poll(context.Background(), "job-4", time.Millisecond, rep)
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if len(rep.updates) != 3 {
		t.Fatalf("Poll() delivered %d updates, want 3", len(rep.updates))
	}
	if rep.updates[2].Stage != stage.Complete {
		t.Errorf("last update stage = %q, want complete", rep.updates[2].Stage)
	}
}

func TestPollStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"stage":"uploading","percent":10}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	rep := &recordingReporter{}
	done := make(chan error, 1)
	go func() {
		done <- New(srv.URL).Poll(ctx, "job-5", time.Millisecond, rep)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Poll() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Poll() did not stop after cancel")
	}
}

func TestPollReportsFetchFailures(t *testing.T) {
	var mu sync.Mutex
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		n := call
		call++
		mu.Unlock()
		if n == 0 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"stage":"complete","percent":100}`))
	}))
	defer srv.Close()

	rep := &recordingReporter{}
	if err := New(srv.URL).Poll(context.Background(), "job-6", time.Millisecond, rep); err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if len(rep.logs) != 1 {
		t.Errorf("Poll() logged %d lines, want 1 for the failed fetch", len(rep.logs))
	}
	if len(rep.updates) != 1 || rep.updates[0].Stage != stage.Complete {
		t.Errorf("Poll() updates = %+v, want single complete", rep.updates)
	}
}
