package api

import "strconv"

// Response wraps a single-day timings lookup; Code mirrors the HTTP status.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data is one roza day as reported by the API: its timings, both calendars
// and the location it was computed for.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings are "HH:MM" strings, optionally followed by a zone such as " (PKT)".
// Fajr marks Sehar and Maghrib marks Iftar; the rest feed `day --all`.
type Timings struct {
	Fajr       string `json:"Fajr"`
	Sunrise    string `json:"Sunrise"`
	Dhuhr      string `json:"Dhuhr"`
	Asr        string `json:"Asr"`
	Sunset     string `json:"Sunset"`
	Maghrib    string `json:"Maghrib"`
	Isha       string `json:"Isha"`
	Imsak      string `json:"Imsak"`
	Midnight   string `json:"Midnight"`
	Firstthird string `json:"Firstthird"`
	Lastthird  string `json:"Lastthird"`
}

// DateInfo pairs the Gregorian date with its Hijri equivalent.
type DateInfo struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

// HijriDate is the Islamic calendar date. Month 9 is Ramadan, and the
// month and year decide which Ramadan the schedule targets.
type HijriDate struct {
	Date        string           `json:"date"` // "DD-MM-YYYY", e.g. "15-09-1447"
	Day         string           `json:"day"`
	Month       HijriMonth       `json:"month"`
	Year        string           `json:"year"`
	Designation HijriDesignation `json:"designation"`
}

// HijriMonth names the month in English and Arabic.
type HijriMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"` // e.g. "Ramaḍān"
	Ar     string `json:"ar"` // Arabic name
}

// HijriDesignation carries the era label printed after the year.
type HijriDesignation struct {
	Abbreviated string `json:"abbreviated"` // "AH"
	Expanded    string `json:"expanded"`    // "Anno Hegirae"
}

// YearNumber returns the Hijri year as a number, 0 when missing or malformed.
func (h HijriDate) YearNumber() int {
	n, err := strconv.Atoi(h.Year)
	if err != nil {
		return 0
	}
	return n
}

// Format renders the date for the roza card, e.g. "15 Ramaḍān 1447 AH".
// Incomplete dates render as "".
func (h HijriDate) Format() string {
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	abbr := h.Designation.Abbreviated
	if abbr == "" {
		abbr = "AH"
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " " + abbr
}

// GregorianDate is the civil date; Date ("DD-MM-YYYY") is what schedules match on.
type GregorianDate struct {
	Date    string         `json:"date"` // e.g. "05-03-2026"
	Day     string         `json:"day"`
	Weekday GregorianDay   `json:"weekday"`
	Month   GregorianMonth `json:"month"`
	Year    string         `json:"year"`
}

// GregorianDay is shown in the calendar Day column.
type GregorianDay struct {
	En string `json:"en"`
}

// GregorianMonth is the civil month.
type GregorianMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
}

// Meta echoes where and how the day was computed. Timezone anchors every
// countdown.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
}

// MethodInfo is the calculation method the API applied.
type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CalendarResponse is a whole Hijri month, one Data per day, which is how a
// Ramadan schedule is fetched.
type CalendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []Data `json:"data"`
}
