package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"clipwatch/internal/client"
	"clipwatch/internal/stage"
)

// Run launches the live status board for one job and blocks until the job
// completes or the user quits.
func Run(ctx context.Context, api *client.Client, jobID string, mode stage.Mode, interval time.Duration) error {
	m := NewModel(ctx, api, jobID, mode, interval)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.pollErr != nil {
		return fm.pollErr
	}
	return nil
}
