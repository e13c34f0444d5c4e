package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/highlight"
)

var flagStatusFormat string

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a one-line countdown for status bars",
		Long: `Print the next Ramadan event with a countdown, e.g. "Iftar in 2h 15m".
Prints nothing once Ramadan is over. Suitable for tmux, polybar or a shell prompt.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	cmd.Flags().StringVarP(&flagStatusFormat, "format", "f", highlight.FormatLine,
		"Output format: line, countdown, label, full, or a Go template such as '{{.Label}} {{.Countdown}}'")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	_, sched, err := a.loadSchedule(cmd.Context())
	if err != nil {
		return err
	}

	day, ok := sched.Focus(a.times)
	if !ok {
		return nil
	}

	state := highlight.New(a.times).State(day.Data)
	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), state)
	}
	fmt.Fprint(cmd.OutOrStdout(), highlight.Format(state, flagStatusFormat))
	return nil
}
