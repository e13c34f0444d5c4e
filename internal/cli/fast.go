package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/tracker"
)

var flagFastNote string

func newFastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fast",
		Aliases: []string{"fasts"},
		Short:   "Log the days you fasted",
		Long:    "Keep a personal fasting log and see your streaks.\nDates default to today and use the YYYY-MM-DD format.",
		Args:    cobra.NoArgs,
		RunE:    runFastStatus,
	}

	mark := &cobra.Command{
		Use:   "mark [date]",
		Short: "Mark a day as fasted",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFastMark,
	}
	mark.Flags().StringVarP(&flagFastNote, "note", "n", "", "Optional note for the day")
	cmd.AddCommand(mark)

	cmd.AddCommand(&cobra.Command{
		Use:   "unmark [date]",
		Short: "Remove a day from the log",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFastUnmark,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the fasting log and streaks",
		Args:  cobra.NoArgs,
		RunE:  runFastStatus,
	})

	return cmd
}

// openTracker loads the tracker document from the configured data directory.
func openTracker(cmd *cobra.Command) (*tracker.Store, error) {
	return tracker.Open(effectiveConfig(cmd).DataDir, tracker.WithClock(newTimes().Now))
}

// parseDate parses a YYYY-MM-DD argument, defaulting to today.
func parseDate(args []string) (time.Time, error) {
	if len(args) == 0 {
		now := newTimes().Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(tracker.DateLayout, args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
	}
	return d, nil
}

func runFastMark(cmd *cobra.Command, args []string) error {
	date, err := parseDate(args)
	if err != nil {
		return err
	}
	store, err := openTracker(cmd)
	if err != nil {
		return err
	}

	f := store.MarkFast(date, flagFastNote)
	if err := store.Save(); err != nil {
		return err
	}

	current, _ := store.Streaks(newTimes().Now())
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as fasted. Current streak: %d %s.\n", f.Date, current, plural(current, "day", "days"))
	return nil
}

func runFastUnmark(cmd *cobra.Command, args []string) error {
	date, err := parseDate(args)
	if err != nil {
		return err
	}
	store, err := openTracker(cmd)
	if err != nil {
		return err
	}

	key := date.Format(tracker.DateLayout)
	if !store.UnmarkFast(date) {
		return fmt.Errorf("%s is not in the fasting log", key)
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the fasting log.\n", key)
	return nil
}

type fastStatusJSON struct {
	Total         int            `json:"total"`
	CurrentStreak int            `json:"currentStreak"`
	LongestStreak int            `json:"longestStreak"`
	Fasts         []tracker.Fast `json:"fasts"`
}

func runFastStatus(cmd *cobra.Command, args []string) error {
	store, err := openTracker(cmd)
	if err != nil {
		return err
	}

	fasts := store.Fasts()
	current, longest := store.Streaks(newTimes().Now())

	out := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(out, fastStatusJSON{Total: len(fasts), CurrentStreak: current, LongestStreak: longest, Fasts: fasts})
	}

	if len(fasts) == 0 {
		fmt.Fprintln(out, "No fasts logged yet. Run 'ramadan fast mark' after your Iftar.")
		return nil
	}

	tbl := display.NewTable([]string{"Date", "Note"})
	tbl.SetTitle("Fasting log")
	for _, f := range fasts {
		tbl.AddRow([]string{f.Date, f.Note})
	}
	fmt.Fprint(out, tbl.Render())

	fmt.Fprintln(out, display.Card("Streaks", display.KeyValue([][2]string{
		{"Fasted", display.Boldf("%d %s", len(fasts), plural(len(fasts), "day", "days"))},
		{"Current", fmt.Sprintf("%d %s", current, plural(current, "day", "days"))},
		{"Longest", fmt.Sprintf("%d %s", longest, plural(longest, "day", "days"))},
	})...))
	return nil
}
