// Package timefmt parses and formats the "HH:MM" time strings returned by the
// Al Adhan API and decomposes the current instant in an IANA timezone.
//
// Malformed input never produces an error: conversions either return the
// input unchanged or report ok=false, leaving the caller to decide what to
// show.
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// clockPattern matches the numeric part of an API time string.
var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// tzSuffix matches a trailing timezone annotation such as " (PKT)".
var tzSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Service converts API time strings and reads the clock.
// The zero value is not usable; construct it with New or NewWithClock.
type Service struct {
	now func() time.Time
}

// New returns a Service backed by the wall clock.
func New() Service {
	return Service{now: time.Now}
}

// NewWithClock returns a Service whose notion of "now" comes from fn.
func NewWithClock(fn func() time.Time) Service {
	return Service{now: fn}
}

// Now returns the current instant according to the service clock.
func (s Service) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Strip removes a trailing " (TZ)" annotation and surrounding whitespace.
func Strip(raw string) string {
	return strings.TrimSpace(tzSuffix.ReplaceAllString(raw, ""))
}

// parseClock splits "HH:MM" into validated hour and minute values.
func parseClock(raw string) (hour, minute int, ok bool) {
	s := Strip(raw)
	if !clockPattern.MatchString(s) {
		return 0, 0, false
	}

	h, m, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// To12Hour converts "HH:MM" (optionally suffixed with " (TZ)") to "h:MM AM|PM".
// Input that does not parse is returned unchanged.
func (Service) To12Hour(raw string) string {
	hour, minute, ok := parseClock(raw)
	if !ok {
		return raw
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

// ToMinutes converts "HH:MM" to minutes since midnight.
func (Service) ToMinutes(raw string) (int, bool) {
	hour, minute, ok := parseClock(raw)
	if !ok {
		return 0, false
	}
	return hour*60 + minute, true
}

// FormatCountdown renders a minute count as "Xh Ym", or "Ym" below one hour.
// Negative values are treated as zero.
func (Service) FormatCountdown(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatClock renders raw in the requested display format: "12h" converts to
// AM/PM, anything else returns the stripped 24-hour value.
func (s Service) FormatClock(raw, format string) string {
	if format == "12h" {
		return s.To12Hour(Strip(raw))
	}
	return Strip(raw)
}

// NowParts is the calendar decomposition of an instant in a given timezone.
type NowParts struct {
	Year    int
	Month   int
	Day     int
	Minutes int // minutes since local midnight
}

// NowParts decomposes the service clock's current instant in the given IANA
// timezone. It reports false for an empty or unknown timezone.
func (s Service) NowParts(timezone string) (NowParts, bool) {
	if strings.TrimSpace(timezone) == "" {
		return NowParts{}, false
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return NowParts{}, false
	}

	t := s.Now().In(loc)
	y, m, d := t.Date()
	hour, minute, _ := t.Clock()

	return NowParts{
		Year:    y,
		Month:   int(m),
		Day:     d,
		Minutes: hour*60 + minute,
	}, true
}
