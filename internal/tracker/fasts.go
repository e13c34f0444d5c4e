package tracker

import (
	"sort"
	"time"
)

// Fast is one logged day of fasting.
type Fast struct {
	Date     string    `json:"date"` // YYYY-MM-DD
	Note     string    `json:"note,omitempty"`
	MarkedAt time.Time `json:"markedAt"`
}

func dateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MarkFast records date as fasted. Marking an already logged day replaces
// its note.
func (s *Store) MarkFast(date time.Time, note string) Fast {
	f := Fast{Date: dateKey(date), Note: note, MarkedAt: s.now()}
	s.doc.Fasts[f.Date] = f
	return f
}

// UnmarkFast removes date from the log and reports whether it was there.
func (s *Store) UnmarkFast(date time.Time) bool {
	key := dateKey(date)
	if _, ok := s.doc.Fasts[key]; !ok {
		return false
	}
	delete(s.doc.Fasts, key)
	return true
}

// Fasted reports whether date is logged.
func (s *Store) Fasted(date time.Time) bool {
	_, ok := s.doc.Fasts[dateKey(date)]
	return ok
}

// Fasts returns the log in date order.
func (s *Store) Fasts() []Fast {
	out := make([]Fast, 0, len(s.doc.Fasts))
	for _, f := range s.doc.Fasts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Streaks returns the current and longest runs of consecutive fasted days.
// The current run counts back from today, or from yesterday when today is
// not logged yet so an unfinished day does not break it.
func (s *Store) Streaks(today time.Time) (current, longest int) {
	days := make([]time.Time, 0, len(s.doc.Fasts))
	for key := range s.doc.Fasts {
		d, err := time.Parse(DateLayout, key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, d := range days {
		if i > 0 && d.Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if !s.Fasted(day) {
		day = day.AddDate(0, 0, -1)
	}
	for s.Fasted(day) {
		current++
		day = day.AddDate(0, 0, -1)
	}
	return current, longest
}
