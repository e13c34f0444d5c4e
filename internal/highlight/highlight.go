// Package highlight works out which phase of a fasting day is active and how
// long remains until the next transition.
package highlight

import (
	"fmt"

	"github.com/smokyabdulrahman/ramadan-cli/internal/api"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

// Phase labels.
const (
	BeforeRoza    = "Before roza day"
	SeharOpen     = "Sehar window open"
	RozaRunning   = "Roza in progress"
	IftarTime     = "Iftar time"
	NextFirstSehr = "First Sehar"
	NextFajr      = "Roza starts (Fajr)"
	NextIftar     = "Iftar"
	NextDaySehar  = "Next day Sehar"
)

const minutesPerDay = 24 * 60

// State is the active phase of a roza day.
type State struct {
	Current   string `json:"current"`
	Next      string `json:"next"`
	Countdown string `json:"countdown"`
	// Minutes is the countdown before formatting.
	Minutes int `json:"minutes"`
}

// Service computes highlight states. It holds no state besides its
// time collaborator, so a single value can be shared.
type Service struct {
	times timefmt.Service
}

// New returns a Service that parses dates and times with times.
func New(times timefmt.Service) *Service {
	return &Service{times: times}
}

// State returns the highlight for day, or nil when there is nothing to
// show: the day is in the past, or its date, Fajr, Maghrib or timezone
// cannot be parsed.
func (s *Service) State(day api.Data) *State {
	date, ok := s.times.ParseGregorian(day.Date.Gregorian.Date)
	if !ok {
		return nil
	}

	sehar, ok := s.times.ToMinutes(day.Timings.Fajr)
	if !ok {
		return nil
	}
	iftar, ok := s.times.ToMinutes(day.Timings.Maghrib)
	if !ok {
		return nil
	}

	now, ok := s.times.NowParts(day.Meta.Timezone)
	if !ok {
		return nil
	}

	dayDiff := timefmt.DayDiff(now.Date(), date)

	switch {
	case dayDiff > 0:
		return s.state(BeforeRoza, NextFirstSehr, dayDiff*minutesPerDay+sehar-now.Minutes)
	case dayDiff < 0:
		return nil
	case now.Minutes < sehar:
		return s.state(SeharOpen, NextFajr, sehar-now.Minutes)
	case now.Minutes < iftar:
		return s.state(RozaRunning, NextIftar, iftar-now.Minutes)
	default:
		// Tomorrow's Fajr is approximated by today's.
		return s.state(IftarTime, NextDaySehar, minutesPerDay-now.Minutes+sehar)
	}
}

func (s *Service) state(current, next string, minutes int) *State {
	return &State{
		Current:   current,
		Next:      next,
		Countdown: s.times.FormatCountdown(minutes),
		Minutes:   minutes,
	}
}

// statusLabels shortens "next" labels for one-line output.
var statusLabels = map[string]string{
	NextFirstSehr: "Sehar",
	NextDaySehar:  "Sehar",
	NextFajr:      "Fast starts",
}

// StatusLabel returns the short form of a "next" label.
func StatusLabel(next string) string {
	if label, ok := statusLabels[next]; ok {
		return label
	}
	return next
}

// FormatStatusLine renders h as "{label} in {countdown}", e.g. "Iftar in 2h 15m".
// A nil state renders as the empty string.
func FormatStatusLine(h *State) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%s in %s", StatusLabel(h.Next), h.Countdown)
}
