package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
)

func newCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "list"},
		Short:   "Show the full Ramadan timetable",
		Long:    "Display Sehar and Iftar for every day of the current or upcoming Ramadan.\nToday's row is highlighted.",
		Args:    cobra.NoArgs,
		RunE:    runCalendar,
	}
}

type calendarJSON struct {
	Location  string     `json:"location"`
	HijriYear int        `json:"hijriYear"`
	Today     int        `json:"today,omitempty"`
	Days      []*dayJSON `json:"days"`
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	loc, sched, err := a.loadSchedule(cmd.Context())
	if err != nil {
		return err
	}

	// Only a day inside Ramadan is highlighted.
	today := 0
	if sched.Started(a.times) {
		if d, ok := sched.Focus(a.times); ok {
			today = d.Number
		}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		res := calendarJSON{Location: loc.Label, HijriYear: sched.HijriYear, Today: today}
		for _, d := range sched.Days {
			res.Days = append(res.Days, toDayJSON(d, a.times, a.cfg.TimeFormat))
		}
		return writeJSON(out, res)
	}

	tbl := display.NewTable([]string{"Roza", "Date", "Day", "Sehar", "Iftar"})
	tbl.SetTitle(fmt.Sprintf("Ramadan %d AH · %s", sched.HijriYear, loc.Label))
	for i, d := range sched.Days {
		weekday := d.Data.Date.Gregorian.Weekday.En
		if d.Number != today {
			weekday = display.Gray(weekday)
		}
		tbl.AddRow([]string{
			strconv.Itoa(d.Number),
			d.Data.Date.Gregorian.Date,
			weekday,
			a.times.FormatClock(d.Data.Timings.Fajr, a.cfg.TimeFormat),
			a.times.FormatClock(d.Data.Timings.Maghrib, a.cfg.TimeFormat),
		})
		if d.Number == today {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	return nil
}
