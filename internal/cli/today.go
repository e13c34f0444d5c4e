package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/highlight"
	"github.com/smokyabdulrahman/ramadan-cli/internal/roza"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

func runToday(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	loc, sched, err := a.loadSchedule(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	day, ok := sched.Focus(a.times)
	if !ok {
		if FlagJSON {
			return writeJSON(out, todayJSON{Location: loc.Label, HijriYear: sched.HijriYear, Ended: true})
		}
		fmt.Fprintf(out, "Ramadan %d AH has ended. Eid Mubarak!\n", sched.HijriYear)
		return nil
	}

	state := highlight.New(a.times).State(day.Data)

	if FlagJSON {
		return writeJSON(out, newDayJSON(loc, sched, day, state, a.times, a.cfg.TimeFormat))
	}

	printDayCard(out, loc, sched, day, state, a.times, a.cfg.TimeFormat, sched.Started(a.times))
	return nil
}

// printDayCard renders one roza day as a bordered card.
func printDayCard(w io.Writer, loc location, sched roza.Schedule, day roza.Day, state *highlight.State, times timefmt.Service, timeFormat string, started bool) {
	pairs := [][2]string{
		{"Location", loc.Label},
		{"Date", gregorianLabel(day)},
		{"Hijri", day.Data.Date.Hijri.Format()},
		{"Sehar", times.FormatClock(day.Data.Timings.Fajr, timeFormat)},
		{"Iftar", times.FormatClock(day.Data.Timings.Maghrib, timeFormat)},
	}
	lines := display.KeyValue(pairs)

	if state != nil {
		lines = append(lines, "",
			display.Yellow(state.Current),
			fmt.Sprintf("%s in %s", highlight.StatusLabel(state.Next), display.Accent(state.Countdown)),
		)
	}

	title := fmt.Sprintf("☪ %s of %d", day.Title(), sched.Len())
	if !started {
		title = fmt.Sprintf("☪ Ramadan %d AH starts soon", sched.HijriYear)
	}

	fmt.Fprintln(w, display.Card(title, lines...))
}

// gregorianLabel returns "Thursday 19-02-2026", or just the date when the
// weekday is missing.
func gregorianLabel(day roza.Day) string {
	g := day.Data.Date.Gregorian
	if g.Weekday.En == "" {
		return g.Date
	}
	return g.Weekday.En + " " + g.Date
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location  string           `json:"location"`
	HijriYear int              `json:"hijriYear"`
	Ended     bool             `json:"ended,omitempty"`
	Day       *dayJSON         `json:"day,omitempty"`
	Highlight *highlight.State `json:"highlight,omitempty"`
}

type dayJSON struct {
	Roza      int    `json:"roza"`
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
	Sehar     string `json:"sehar"`
	Iftar     string `json:"iftar"`
	Timezone  string `json:"timezone"`
}

func newDayJSON(loc location, sched roza.Schedule, day roza.Day, state *highlight.State, times timefmt.Service, timeFormat string) todayJSON {
	return todayJSON{
		Location:  loc.Label,
		HijriYear: sched.HijriYear,
		Day:       toDayJSON(day, times, timeFormat),
		Highlight: state,
	}
}

func toDayJSON(day roza.Day, times timefmt.Service, timeFormat string) *dayJSON {
	return &dayJSON{
		Roza:      day.Number,
		Gregorian: day.Data.Date.Gregorian.Date,
		Hijri:     day.Data.Date.Hijri.Format(),
		Sehar:     times.FormatClock(day.Data.Timings.Fajr, timeFormat),
		Iftar:     times.FormatClock(day.Data.Timings.Maghrib, timeFormat),
		Timezone:  day.Data.Meta.Timezone,
	}
}

// writeJSON prints v indented.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
