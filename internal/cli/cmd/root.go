package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"clipwatch/internal/config"
)

const (
	ExitOK        = 0
	ExitCLIError  = 1
	ExitAPIError  = 2
	ExitJobFailed = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clipwatch",
		Short:         "Watch video-processing jobs from your terminal",
		Long:          "Clipwatch observes a job on a video-processing pipeline and turns its progress reports into a live per-stage status board, an overall completion percentage, and a post-hoc per-agent timing report.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().String("api-url", "http://localhost:8080", "Pipeline API base URL")
	root.PersistentFlags().Duration("interval", 2*time.Second, "Status poll interval")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show dropped events and fetch failures")

	_ = config.Init(root)

	// Subcommands
	root.AddCommand(newWatchCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}
