package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/highlight"
	"github.com/smokyabdulrahman/ramadan-cli/internal/roza"
)

var (
	flagDayTimings bool
	flagAllTimings bool
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day <n>",
		Short: "Show one day of Ramadan",
		Long:  "Display Sehar and Iftar for roza number n (1-30).\nUse --timings to add the prayer times of that day, --all for every time the API reports.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDay,
	}

	cmd.Flags().BoolVarP(&flagDayTimings, "timings", "t", false, "Include the prayer times")
	cmd.Flags().BoolVarP(&flagAllTimings, "all", "a", false, "Include every time, from Imsak to the last third of the night")

	return cmd
}

// dayDetailJSON extends dayJSON with the full timing list.
type dayDetailJSON struct {
	todayJSON
	Timings map[string]string `json:"timings,omitempty"`
}

func runDay(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid roza number: %q (must be a positive integer)", args[0])
	}

	a := newApp(cmd)
	loc, sched, err := a.loadSchedule(cmd.Context())
	if err != nil {
		return err
	}

	day, ok := sched.Day(n)
	if !ok {
		return fmt.Errorf("roza %d is out of range: Ramadan %d AH has %d days", n, sched.HijriYear, sched.Len())
	}

	state := highlight.New(a.times).State(day.Data)

	var names []string
	switch {
	case flagAllTimings:
		names = roza.AllTimingNames
	case flagDayTimings:
		names = roza.DefaultTimingNames
	}
	entries, err := roza.Timings(day, names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		res := dayDetailJSON{todayJSON: newDayJSON(loc, sched, day, state, a.times, a.cfg.TimeFormat)}
		if len(entries) > 0 {
			res.Timings = make(map[string]string, len(entries))
			for _, e := range entries {
				res.Timings[e.Name] = a.times.FormatClock(e.Time, a.cfg.TimeFormat)
			}
		}
		return writeJSON(out, res)
	}

	printDayCard(out, loc, sched, day, state, a.times, a.cfg.TimeFormat, true)

	if len(entries) > 0 {
		tbl := display.NewTable([]string{"Prayer", "Time"})
		for _, e := range entries {
			tbl.AddRow([]string{e.Name, a.times.FormatClock(e.Time, a.cfg.TimeFormat)})
		}
		fmt.Fprint(out, tbl.Render())
	}
	return nil
}
