package roza

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramadan-cli/internal/api"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

var karachi = time.FixedZone("PKT", 5*60*60)

// ramadanDays returns n Karachi calendar days starting on 19 February 2026.
func ramadanDays(n int) []api.Data {
	start := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	days := make([]api.Data, n)
	for i := range days {
		days[i] = api.Data{
			Timings: api.Timings{
				Imsak:   "05:05 (PKT)",
				Fajr:    "05:15 (PKT)",
				Sunrise: "06:35 (PKT)",
				Dhuhr:   "12:30 (PKT)",
				Asr:     "15:50 (PKT)",
				Maghrib: "17:55 (PKT)",
				Isha:    "19:25 (PKT)",
			},
			Date: api.DateInfo{
				Gregorian: api.GregorianDate{Date: start.AddDate(0, 0, i).Format("02-01-2006")},
				Hijri: api.HijriDate{
					Day:   fmt.Sprint(i + 1),
					Month: api.HijriMonth{Number: 9, En: "Ramaḍān"},
					Year:  "1447",
				},
			},
			Meta: api.Meta{Timezone: "Asia/Karachi"},
		}
	}
	return days
}

func clockAt(year int, month time.Month, day, hour, min int) timefmt.Service {
	return timefmt.NewWithClock(func() time.Time {
		return time.Date(year, month, day, hour, min, 0, 0, karachi)
	})
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	s := Build(ramadanDays(30))

	if s.Len() != 30 {
		t.Fatalf("Len() = %d, want 30", s.Len())
	}
	if s.HijriYear != 1447 {
		t.Errorf("HijriYear = %d, want 1447", s.HijriYear)
	}
	for i, d := range s.Days {
		if d.Number != i+1 {
			t.Fatalf("Days[%d].Number = %d, want %d", i, d.Number, i+1)
		}
	}
	if got := s.Days[2].Title(); got != "Roza 3" {
		t.Errorf("Title() = %q, want %q", got, "Roza 3")
	}
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil)
	if s.Len() != 0 || s.HijriYear != 0 {
		t.Errorf("Build(nil) = %+v, want empty", s)
	}
	if _, ok := s.Focus(timefmt.New()); ok {
		t.Error("Focus() on an empty schedule should report false")
	}
}

// ---------------------------------------------------------------------------
// RamadanYear
// ---------------------------------------------------------------------------

func TestRamadanYear(t *testing.T) {
	tests := []struct {
		name  string
		month int
		want  int
	}{
		{"before Ramadan", 8, 1447},
		{"during Ramadan", 9, 1447},
		{"after Ramadan", 10, 1448},
		{"end of year", 12, 1448},
		{"start of year", 1, 1447},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := api.HijriDate{Month: api.HijriMonth{Number: tt.month}, Year: "1447"}
			if got := RamadanYear(h); got != tt.want {
				t.Errorf("RamadanYear(month %d) = %d, want %d", tt.month, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Day / Find
// ---------------------------------------------------------------------------

func TestDay(t *testing.T) {
	s := Build(ramadanDays(29))

	tests := []struct {
		n      int
		wantOK bool
	}{
		{1, true},
		{29, true},
		{0, false},
		{30, false},
		{-1, false},
	}
	for _, tt := range tests {
		d, ok := s.Day(tt.n)
		if ok != tt.wantOK {
			t.Errorf("Day(%d) ok = %v, want %v", tt.n, ok, tt.wantOK)
		}
		if ok && d.Number != tt.n {
			t.Errorf("Day(%d).Number = %d", tt.n, d.Number)
		}
	}
}

func TestFind(t *testing.T) {
	s := Build(ramadanDays(30))
	dates := timefmt.New()

	d, ok := s.Find(dates, 2026, 3, 1)
	if !ok {
		t.Fatal("Find(2026-03-01) not found")
	}
	if d.Number != 11 {
		t.Errorf("Find(2026-03-01).Number = %d, want 11", d.Number)
	}

	if _, ok := s.Find(dates, 2026, 4, 1); ok {
		t.Error("Find(2026-04-01) should not be found")
	}
}

func TestFind_SkipsUnparsableDates(t *testing.T) {
	days := ramadanDays(3)
	days[0].Date.Gregorian.Date = "garbage"
	s := Build(days)

	d, ok := s.Find(timefmt.New(), 2026, 2, 20)
	if !ok || d.Number != 2 {
		t.Errorf("Find() = %v, %v; want day 2", d.Number, ok)
	}
}

// ---------------------------------------------------------------------------
// Focus / Started
// ---------------------------------------------------------------------------

func TestFocus(t *testing.T) {
	s := Build(ramadanDays(30))

	tests := []struct {
		name        string
		clock       timefmt.Service
		wantOK      bool
		wantNumber  int
		wantStarted bool
	}{
		{"weeks before", clockAt(2026, 1, 30, 12, 0), true, 1, false},
		{"day before", clockAt(2026, 2, 18, 23, 59), true, 1, false},
		{"first day", clockAt(2026, 2, 19, 4, 0), true, 1, true},
		{"middle", clockAt(2026, 3, 5, 18, 30), true, 15, true},
		{"last day", clockAt(2026, 3, 20, 20, 0), true, 30, true},
		{"after Ramadan", clockAt(2026, 3, 21, 9, 0), false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := s.Focus(tt.clock)
			if ok != tt.wantOK {
				t.Fatalf("Focus() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && d.Number != tt.wantNumber {
				t.Errorf("Focus().Number = %d, want %d", d.Number, tt.wantNumber)
			}
			if got := s.Started(tt.clock); got != tt.wantStarted {
				t.Errorf("Started() = %v, want %v", got, tt.wantStarted)
			}
		})
	}
}

func TestFocus_UsesScheduleTimezone(t *testing.T) {
	s := Build(ramadanDays(30))

	// 20:30 UTC on 18 Feb is already 01:30 on 19 Feb in Karachi.
	clock := timefmt.NewWithClock(func() time.Time {
		return time.Date(2026, 2, 18, 20, 30, 0, 0, time.UTC)
	})

	d, ok := s.Focus(clock)
	if !ok || d.Number != 1 {
		t.Fatalf("Focus() = %d, %v; want day 1", d.Number, ok)
	}
	if !s.Started(clock) {
		t.Error("Started() should be true once day 1 has begun in Karachi")
	}
}

// ---------------------------------------------------------------------------
// Sehar / Iftar / Timings
// ---------------------------------------------------------------------------

func TestSeharIftar(t *testing.T) {
	d, _ := Build(ramadanDays(1)).Day(1)

	if got := Sehar(d); got != "05:15" {
		t.Errorf("Sehar() = %q, want %q", got, "05:15")
	}
	if got := Iftar(d); got != "17:55" {
		t.Errorf("Iftar() = %q, want %q", got, "17:55")
	}
}

func TestTimings(t *testing.T) {
	d, _ := Build(ramadanDays(1)).Day(1)

	got, err := Timings(d, []string{"Fajr", "Maghrib", "Isha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{Name: "Fajr", Time: "05:15"},
		{Name: "Maghrib", Time: "17:55"},
		{Name: "Isha", Time: "19:25"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Timings() = %v, want %v", got, want)
	}
}

func TestTimings_DefaultsAreKnown(t *testing.T) {
	d, _ := Build(ramadanDays(1)).Day(1)

	for _, names := range [][]string{DefaultTimingNames, AllTimingNames} {
		if _, err := Timings(d, names); err != nil {
			t.Errorf("Timings(%v) error: %v", names, err)
		}
	}
}

func TestTimings_UnknownName(t *testing.T) {
	d, _ := Build(ramadanDays(1)).Day(1)

	if _, err := Timings(d, []string{"Tahajjud"}); err == nil {
		t.Fatal("expected error for unknown timing name, got nil")
	}
}
