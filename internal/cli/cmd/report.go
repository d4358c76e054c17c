package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"clipwatch/internal/client"
	"clipwatch/internal/config"
	"clipwatch/internal/timing"
	"clipwatch/internal/util/format"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "report <job-id>",
		Short:         "Print the per-agent timing report for a job",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			api := client.New(config.APIURL())

			logs, err := api.Logs(cmd.Context(), jobID)
			if err != nil {
				return &ExitError{Code: ExitAPIError, Err: fmt.Errorf("fetch logs: %w", err)}
			}
			meta, err := api.Meta(cmd.Context(), jobID)
			if err != nil {
				return &ExitError{Code: ExitAPIError, Err: fmt.Errorf("fetch job: %w", err)}
			}

			writeReport(cmd.OutOrStdout(), logs, meta)
			return nil
		},
	}
}

// writeReport renders the agent execution table and the job summary table.
// Agents without a paired started/completed entry are omitted, and missing
// derived values drop their summary row rather than erroring.
func writeReport(w io.Writer, logs []timing.LogEntry, meta timing.JobMeta) {
	durations := timing.AgentDurations(logs)

	if len(durations) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header("Agent", "Started", "Duration")
		for _, d := range durations {
			table.Append([]string{
				d.AgentName,
				d.StartedAt.Format("15:04:05"),
				format.Duration(d.Duration),
			})
		}
		table.Render()
	}

	summary := tablewriter.NewWriter(w)
	summary.Header("Summary", "Value")
	if queue, ok := timing.QueueTime(meta, logs); ok {
		summary.Append([]string{"Queue time", format.Queue(queue)})
	}
	summary.Append([]string{"Pipeline time", format.Duration(timing.TotalPipelineTime(logs))})
	if wall, ok := timing.WallClockTime(meta); ok {
		summary.Append([]string{"Total time", format.Duration(wall)})
	}
	summary.Render()
}
