package timefmt

import (
	"regexp"
	"strconv"
	"time"
)

var gregorianPattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)

// DateParts is a calendar date without a time of day.
type DateParts struct {
	Year  int
	Month int
	Day   int
}

// ParseGregorian parses the API's "DD-MM-YYYY" date. Impossible dates such as
// "31-02-2026" are rejected.
func (Service) ParseGregorian(s string) (DateParts, bool) {
	m := gregorianPattern.FindStringSubmatch(s)
	if m == nil {
		return DateParts{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateParts{}, false
	}
	return DateParts{Year: year, Month: month, Day: day}, true
}

// UTCMidnight returns midnight UTC on the given date.
func (d DateParts) UTCMidnight() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Date returns the calendar part of p.
func (p NowParts) Date() DateParts {
	return DateParts{Year: p.Year, Month: p.Month, Day: p.Day}
}

// DayDiff returns the whole number of days from "from" to "to".
func DayDiff(from, to DateParts) int {
	const day = 24 * time.Hour
	return int(to.UTCMidnight().Sub(from.UTCMidnight()) / day)
}
