package roza

import (
	"fmt"

	"github.com/smokyabdulrahman/ramadan-cli/internal/api"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

// Entry is one named time of a day.
type Entry struct {
	Name string
	Time string
}

// AllTimingNames lists every time the API returns, in chronological order.
var AllTimingNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
	"Firstthird", "Midnight", "Lastthird",
}

// DefaultTimingNames are shown by `day --timings`.
var DefaultTimingNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// Timings returns the selected times of d, stripped of their zone suffix.
func Timings(d Day, selected []string) ([]Entry, error) {
	all := timingMap(d.Data.Timings)

	entries := make([]Entry, 0, len(selected))
	for _, name := range selected {
		raw, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown timing name: %s", name)
		}
		entries = append(entries, Entry{Name: name, Time: timefmt.Strip(raw)})
	}
	return entries, nil
}

func timingMap(t api.Timings) map[string]string {
	return map[string]string{
		"Fajr":       t.Fajr,
		"Sunrise":    t.Sunrise,
		"Dhuhr":      t.Dhuhr,
		"Asr":        t.Asr,
		"Sunset":     t.Sunset,
		"Maghrib":    t.Maghrib,
		"Isha":       t.Isha,
		"Imsak":      t.Imsak,
		"Midnight":   t.Midnight,
		"Firstthird": t.Firstthird,
		"Lastthird":  t.Lastthird,
	}
}
