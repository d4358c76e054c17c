package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"clipwatch/internal/client"
	"clipwatch/internal/config"
	"clipwatch/internal/progress"
	"clipwatch/internal/stage"
	"clipwatch/internal/ui"
	"clipwatch/internal/util/format"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "watch <job-id>",
		Short:         "Show a live status board for one processing job",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
	bindWatchFlags(cmd.Flags())
	return cmd
}

func bindWatchFlags(fs *pflag.FlagSet) {
	fs.String("mode", "vision", "Processing mode of the job: audio, vision")
	fs.Bool("no-ui", false, "Disable TUI; print plain stage transitions")
}

func runWatch(cmd *cobra.Command, jobID string) error {
	mode := stage.Mode(strings.ToLower(mustString(cmd, "mode")))
	if !mode.Valid() {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --mode: %q (valid: audio|vision)", mode)}
	}

	interval, _ := cmd.InheritedFlags().GetDuration("interval")
	api := client.New(config.APIURL())

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if noUI || !isTerminal() {
		return watchPlain(cmd.Context(), cmd, api, jobID, mode, interval)
	}
	if err := ui.Run(cmd.Context(), api, jobID, mode, interval); err != nil {
		return &ExitError{Code: ExitAPIError, Err: err}
	}
	return nil
}

// watchPlain polls without a TUI and prints one line per state change,
// then the timing summary. Used for pipes and dumb terminals.
func watchPlain(ctx context.Context, cmd *cobra.Command, api *client.Client, jobID string, mode stage.Mode, interval time.Duration) error {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	out := cmd.OutOrStdout()

	session := progress.NewSession(mode, time.Now())
	rep := &plainReporter{cmd: cmd, verbose: verbose, session: &session}

	if err := api.Poll(ctx, jobID, interval, rep); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return &ExitError{Code: ExitAPIError, Err: err}
	}

	logs, err := api.Logs(ctx, jobID)
	if err != nil {
		return &ExitError{Code: ExitAPIError, Err: fmt.Errorf("fetch logs: %w", err)}
	}
	meta, err := api.Meta(ctx, jobID)
	if err != nil {
		return &ExitError{Code: ExitAPIError, Err: fmt.Errorf("fetch job: %w", err)}
	}
	writeReport(out, logs, meta)
	if rep.failed {
		return &ExitError{Code: ExitJobFailed, Err: fmt.Errorf("job %s reported stage failures", jobID)}
	}
	return nil
}

// plainReporter folds events into a session and prints transitions.
type plainReporter struct {
	cmd     *cobra.Command
	verbose bool
	session *progress.Session
	last    string
	failed  bool
}

func (r *plainReporter) Update(ev progress.Event) {
	if ev.Failed {
		r.failed = true
	}
	*r.session = progress.Apply(*r.session, ev)
	s := *r.session

	var line string
	switch {
	case s.Completed:
		line = "complete — all stages finished"
	case ev.Failed:
		line = fmt.Sprintf("%s: failed", stage.DisplayName(ev.Stage))
	default:
		line = fmt.Sprintf("%s: %.0f%% (overall %d%%)", stage.DisplayName(ev.Stage), ev.Percent, s.Overall)
		if eta := format.ETALabel(s.ETASeconds); eta != "" {
			line += " " + eta
		}
	}
	if line == r.last {
		return
	}
	r.last = line
	fmt.Fprintln(r.cmd.OutOrStdout(), line)
}

func (r *plainReporter) Log(line string) {
	if r.verbose {
		fmt.Fprintln(r.cmd.ErrOrStderr(), line)
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
