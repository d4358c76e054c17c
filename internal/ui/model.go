package ui

import (
	"context"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"clipwatch/internal/client"
	"clipwatch/internal/progress"
	"clipwatch/internal/stage"
	"clipwatch/internal/timing"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	api      *client.Client
	jobID    string
	interval time.Duration

	session  progress.Session
	spinner  spinner.Model
	overall  bubblesprogress.Model
	stageBar bubblesprogress.Model

	summary  *timingMsg
	pollErr  error
	logsRing []string

	width, height int
	styles        Styles

	// Internal event channel used by the poll reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, api *client.Client, jobID string, mode stage.Mode, interval time.Duration) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	sp := spinner.New()
	sp.Style = sty.Spinner

	return Model{
		ctx:      c,
		cancel:   cancel,
		api:      api,
		jobID:    jobID,
		interval: interval,
		session:  progress.NewSession(mode, time.Now()),
		spinner:  sp,
		overall:  bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(40)),
		stageBar: bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(20)),
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.listenEventsCmd(),
		m.tickCmd(),
		m.startPollCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		m.session = progress.Tick(m.session, time.Time(msg))
		if !m.session.Completed {
			return m, tea.Batch(m.tickCmd(), m.listenEventsCmd())
		}

	case jobUpdateMsg:
		wasDone := m.session.Completed
		m.session = progress.Apply(m.session, msg.Ev)
		if !wasDone && m.session.Completed {
			// Terminal signal: fetch the processing log once and derive
			// the timing summary.
			return m, tea.Batch(m.fetchTimingCmd(), m.listenEventsCmd())
		}

	case jobLogMsg:
		if len(m.logsRing) > 50 {
			m.logsRing = m.logsRing[1:]
		}
		m.logsRing = append(m.logsRing, msg.Line)

	case pollDoneMsg:
		if msg.Err != nil && m.ctx.Err() == nil {
			m.pollErr = msg.Err
		}

	case timingMsg:
		summary := msg
		m.summary = &summary
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	var c tea.Cmd
	m.spinner, c = m.spinner.Update(msg)
	if c != nil {
		cmds = append(cmds, c)
	}
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) startPollCmd() tea.Cmd {
	return func() tea.Msg {
		rep := teaReporter{ch: m.eventCh}
		go func() {
			err := m.api.Poll(m.ctx, m.jobID, m.interval, rep)
			select {
			case m.eventCh <- pollDoneMsg{Err: err}:
			case <-m.ctx.Done():
			}
		}()
		return nil
	}
}

func (m Model) fetchTimingCmd() tea.Cmd {
	return func() tea.Msg {
		logs, err := m.api.Logs(m.ctx, m.jobID)
		if err != nil {
			return timingMsg{Err: err}
		}
		meta, err := m.api.Meta(m.ctx, m.jobID)
		if err != nil {
			return timingMsg{Err: err}
		}
		out := timingMsg{Durations: timing.AgentDurations(logs)}
		out.Queue, out.QueueOK = timing.QueueTime(meta, logs)
		out.Pipeline = timing.TotalPipelineTime(logs)
		out.Wall, out.WallOK = timing.WallClockTime(meta)
		return out
	}
}

// teaReporter bridges poll deliveries onto the bubbletea message channel.
type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(ev progress.Event) {
	// Block on terminal signals to ensure they're delivered
	if ev.Stage == stage.Complete || ev.Failed {
		r.ch <- jobUpdateMsg{Ev: ev}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{Ev: ev}:
	default:
	}
}

func (r teaReporter) Log(line string) {
	select {
	case r.ch <- jobLogMsg{Line: line}:
	default:
	}
}
