// Package roza assembles the days of Ramadan into a numbered schedule and
// answers which day is in focus right now.
package roza

import (
	"fmt"

	"github.com/smokyabdulrahman/ramadan-cli/internal/api"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

// RamadanMonth is the Hijri month number of Ramadan.
const RamadanMonth = 9

// Day is one numbered day of Ramadan.
type Day struct {
	Number int
	Data   api.Data
}

// Schedule holds every day of one Ramadan, in order.
type Schedule struct {
	HijriYear int
	Days      []Day
}

// Build numbers the calendar days 1..N in the order given.
func Build(days []api.Data) Schedule {
	s := Schedule{Days: make([]Day, len(days))}
	for i, d := range days {
		s.Days[i] = Day{Number: i + 1, Data: d}
	}
	if len(days) > 0 {
		s.HijriYear = days[0].Date.Hijri.YearNumber()
	}
	return s
}

// RamadanYear returns the Hijri year of the Ramadan that is current or
// upcoming on the given Hijri date. Once Ramadan has ended the next one
// belongs to the following year.
func RamadanYear(today api.HijriDate) int {
	year := today.YearNumber()
	if today.Month.Number > RamadanMonth {
		return year + 1
	}
	return year
}

// Len returns the number of days in the schedule.
func (s Schedule) Len() int { return len(s.Days) }

// Day returns the day numbered n (1-based).
func (s Schedule) Day(n int) (Day, bool) {
	if n < 1 || n > len(s.Days) {
		return Day{}, false
	}
	return s.Days[n-1], true
}

// Find returns the day whose Gregorian date is year-month-day.
func (s Schedule) Find(dates timefmt.Service, year, month, day int) (Day, bool) {
	for _, d := range s.Days {
		p, ok := dates.ParseGregorian(d.Data.Date.Gregorian.Date)
		if !ok {
			continue
		}
		if p.Year == year && p.Month == month && p.Day == day {
			return d, true
		}
	}
	return Day{}, false
}

// Focus returns the day to highlight now: today while Ramadan is running,
// day 1 while it is still ahead. After the last day there is nothing to
// focus on.
func (s Schedule) Focus(t timefmt.Service) (Day, bool) {
	if len(s.Days) == 0 {
		return Day{}, false
	}

	today, ok := s.today(t)
	if !ok {
		return Day{}, false
	}
	if d, ok := s.Find(t, today.Year, today.Month, today.Day); ok {
		return d, true
	}

	first, ok := t.ParseGregorian(s.Days[0].Data.Date.Gregorian.Date)
	if !ok {
		return Day{}, false
	}
	if timefmt.DayDiff(today, first) > 0 {
		return s.Days[0], true
	}
	return Day{}, false
}

// Started reports whether day 1 is today or already past.
func (s Schedule) Started(t timefmt.Service) bool {
	if len(s.Days) == 0 {
		return false
	}
	today, ok := s.today(t)
	if !ok {
		return false
	}
	first, ok := t.ParseGregorian(s.Days[0].Data.Date.Gregorian.Date)
	return ok && timefmt.DayDiff(today, first) <= 0
}

// today returns the current date in the schedule's timezone, falling back
// to the local clock when the timezone is unknown.
func (s Schedule) today(t timefmt.Service) (timefmt.DateParts, bool) {
	if now, ok := t.NowParts(s.Days[0].Data.Meta.Timezone); ok {
		return now.Date(), true
	}
	now := t.Now()
	return timefmt.DateParts{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}, true
}

// Sehar returns the end of the Sehar meal (Fajr) without its zone suffix.
func Sehar(d Day) string { return timefmt.Strip(d.Data.Timings.Fajr) }

// Iftar returns the time of Iftar (Maghrib) without its zone suffix.
func Iftar(d Day) string { return timefmt.Strip(d.Data.Timings.Maghrib) }

// Title returns a heading such as "Roza 3".
func (d Day) Title() string { return fmt.Sprintf("Roza %d", d.Number) }
