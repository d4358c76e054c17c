package ui

import (
	"fmt"
	"strings"
	"time"

	"clipwatch/internal/progress"
	"clipwatch/internal/util/format"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewOverall())
	b.WriteString("\n\n")
	b.WriteString(m.viewStages())
	if note := m.viewAnnotation(); note != "" {
		b.WriteString("\n")
		b.WriteString(note)
	}
	if m.summary != nil {
		b.WriteString("\n\n")
		b.WriteString(m.viewTiming())
	}
	if m.pollErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("polling stopped: %v", m.pollErr)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("clipwatch — pipeline status")
	elapsed := format.Clock(time.Duration(m.session.ElapsedSeconds) * time.Second)
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Job %s • %s mode • elapsed %s • q: quit", m.jobID, m.session.Mode, elapsed))
	return title + "\n" + sub
}

func (m Model) viewOverall() string {
	bar := m.overall.ViewAs(float64(m.session.Overall) / 100.0)
	line := fmt.Sprintf("%s %3d%%", bar, m.session.Overall)
	if eta := format.ETALabel(m.session.ETASeconds); eta != "" && !m.session.Completed {
		line += "  " + m.styles.Faint.Render(eta)
	}
	return line
}

func (m Model) viewStages() string {
	var b strings.Builder
	for _, st := range m.session.Stages {
		b.WriteString(m.viewStage(st))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewStage(st progress.StageState) string {
	var marker, detail string
	switch st.Status {
	case progress.StatusCompleted:
		marker = m.styles.Success.Render("✓")
		detail = m.styles.Faint.Render("done")
	case progress.StatusProcessing:
		marker = m.styles.Spinner.Render(m.spinner.View())
		detail = fmt.Sprintf("%s %5.1f%%", m.stageBar.ViewAs(st.Progress/100.0), st.Progress)
	case progress.StatusError:
		marker = m.styles.Error.Render("✗")
		detail = m.styles.Error.Render("failed")
	default:
		marker = m.styles.Pending.Render("•")
		detail = m.styles.Faint.Render("waiting")
	}

	name := m.styles.StageName.Render(st.DisplayName)
	if st.IsParallel {
		name += " " + m.styles.Faint.Render("(parallel)")
	}
	return m.styles.Box.Render(fmt.Sprintf("%s %-40s %s", marker, name, detail))
}

func (m Model) viewAnnotation() string {
	if m.session.Message == "" && m.session.AgentName == "" {
		return ""
	}
	line := m.session.Message
	if m.session.AgentName != "" {
		if line != "" {
			line += " — "
		}
		line += m.session.AgentName
	}
	return m.styles.Annotation.Render(line)
}

func (m Model) viewTiming() string {
	s := m.summary
	if s.Err != nil {
		return m.styles.Error.Render(fmt.Sprintf("timing report unavailable: %v", s.Err))
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Agent timings:"))
	b.WriteString("\n")
	for _, d := range s.Durations {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", d.AgentName, format.Duration(d.Duration)))
	}
	if s.QueueOK {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", "Queue time", format.Queue(s.Queue)))
	}
	b.WriteString(fmt.Sprintf("  %-24s %s\n", "Pipeline time", format.Duration(s.Pipeline)))
	if s.WallOK {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", "Total time", format.Duration(s.Wall)))
	}
	return strings.TrimRight(b.String(), "\n")
}
