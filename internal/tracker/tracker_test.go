package tracker

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 5, 21, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Open / Save
// ---------------------------------------------------------------------------

func TestDefaultDir_XDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-data", "ramadan-cli"); dir != want {
		t.Errorf("DefaultDir() = %q, want %q", dir, want)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	s := openTemp(t)
	if len(s.Fasts()) != 0 || len(s.Donations()) != 0 {
		t.Error("new store should be empty")
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(dir); err == nil {
		t.Fatal("Open() with a corrupt file should error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := Open(dir, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}

	s.MarkFast(day(1), "first")
	s.MarkFast(day(2), "")
	d, err := s.AddDonation(500, "pkr", "masjid", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if !reflect.DeepEqual(reopened.Fasts(), s.Fasts()) {
		t.Errorf("Fasts() = %+v, want %+v", reopened.Fasts(), s.Fasts())
	}
	got := reopened.Donations()
	if len(got) != 1 || got[0].ID != d.ID || got[0].Currency != "PKR" {
		t.Errorf("Donations() = %+v", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only %s in data dir, found %d entries", fileName, len(entries))
	}
}

// ---------------------------------------------------------------------------
// Fasting log
// ---------------------------------------------------------------------------

func TestMarkAndUnmarkFast(t *testing.T) {
	s := openTemp(t)

	f := s.MarkFast(day(3), "tired")
	if f.Date != "2026-03-03" || !f.MarkedAt.Equal(fixedNow) {
		t.Errorf("MarkFast() = %+v", f)
	}
	if !s.Fasted(day(3)) {
		t.Error("Fasted() should be true after MarkFast")
	}

	s.MarkFast(day(3), "better")
	if fasts := s.Fasts(); len(fasts) != 1 || fasts[0].Note != "better" {
		t.Errorf("re-marking should replace the note, got %+v", fasts)
	}

	if !s.UnmarkFast(day(3)) {
		t.Error("UnmarkFast() should report true for a logged day")
	}
	if s.UnmarkFast(day(3)) {
		t.Error("UnmarkFast() should report false for an unlogged day")
	}
	if s.Fasted(day(3)) {
		t.Error("Fasted() should be false after UnmarkFast")
	}
}

func TestFasts_Sorted(t *testing.T) {
	s := openTemp(t)
	for _, d := range []int{4, 1, 3} {
		s.MarkFast(day(d), "")
	}

	var dates []string
	for _, f := range s.Fasts() {
		dates = append(dates, f.Date)
	}
	want := []string{"2026-03-01", "2026-03-03", "2026-03-04"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("Fasts() dates = %v, want %v", dates, want)
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name        string
		days        []int
		today       int
		wantCurrent int
		wantLongest int
	}{
		{"empty", nil, 5, 0, 0},
		{"today only", []int{5}, 5, 1, 1},
		{"run through today", []int{1, 2, 3, 4, 5}, 5, 5, 5},
		{"today not yet logged", []int{2, 3, 4}, 5, 3, 3},
		{"broken yesterday", []int{1, 2, 3}, 5, 0, 3},
		{"longest in the past", []int{1, 2, 3, 4, 7, 8}, 8, 2, 4},
		{"gap then today", []int{1, 2, 5}, 5, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t)
			for _, d := range tt.days {
				s.MarkFast(day(d), "")
			}

			current, longest := s.Streaks(day(tt.today))
			if current != tt.wantCurrent || longest != tt.wantLongest {
				t.Errorf("Streaks() = %d, %d; want %d, %d", current, longest, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

func TestStreaks_AcrossMonthBoundary(t *testing.T) {
	s := openTemp(t)
	s.MarkFast(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), "")
	s.MarkFast(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), "")
	s.MarkFast(day(1), "")

	current, longest := s.Streaks(day(1))
	if current != 3 || longest != 3 {
		t.Errorf("Streaks() = %d, %d; want 3, 3", current, longest)
	}
}

// ---------------------------------------------------------------------------
// Charity log
// ---------------------------------------------------------------------------

func TestAddDonation(t *testing.T) {
	s := openTemp(t)

	d, err := s.AddDonation(25.5, " usd ", "zakat al-fitr", time.Time{})
	if err != nil {
		t.Fatalf("AddDonation() error: %v", err)
	}
	if d.Currency != "USD" {
		t.Errorf("Currency = %q, want %q", d.Currency, "USD")
	}
	if !d.At.Equal(fixedNow) {
		t.Errorf("At = %v, want store clock %v", d.At, fixedNow)
	}
	if d.ID.String() == "" || d.ID.Version() != 4 {
		t.Errorf("ID = %v, want a random UUID", d.ID)
	}
}

func TestAddDonation_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
	}{
		{"zero amount", 0, "USD"},
		{"negative amount", -10, "USD"},
		{"NaN amount", math.NaN(), "USD"},
		{"infinite amount", math.Inf(1), "USD"},
		{"missing currency", 10, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t)
			if _, err := s.AddDonation(tt.amount, tt.currency, "", time.Time{}); err == nil {
				t.Fatal("expected an error, got nil")
			}
			if len(s.Donations()) != 0 {
				t.Error("invalid donation must not be stored")
			}
		})
	}
}

func TestDonations_ChronologicalAndTotals(t *testing.T) {
	s := openTemp(t)
	s.AddDonation(100, "PKR", "", day(4))
	s.AddDonation(10, "USD", "", day(1))
	s.AddDonation(250, "pkr", "", day(2))

	got := s.Donations()
	if len(got) != 3 || !got[0].At.Equal(day(1)) || !got[2].At.Equal(day(4)) {
		t.Errorf("Donations() not in chronological order: %+v", got)
	}

	want := map[string]float64{"PKR": 350, "USD": 10}
	if totals := s.TotalsByCurrency(); !reflect.DeepEqual(totals, want) {
		t.Errorf("TotalsByCurrency() = %v, want %v", totals, want)
	}
}

func TestRemoveDonation(t *testing.T) {
	s := openTemp(t)
	d, _ := s.AddDonation(5, "EUR", "", time.Time{})
	s.AddDonation(7, "EUR", "", time.Time{})

	removed, err := s.RemoveDonation(d.ID.String())
	if err != nil {
		t.Fatalf("RemoveDonation() error: %v", err)
	}
	if removed.ID != d.ID {
		t.Errorf("removed %v, want %v", removed.ID, d.ID)
	}
	if len(s.Donations()) != 1 {
		t.Errorf("expected 1 donation left, got %d", len(s.Donations()))
	}

	if _, err := s.RemoveDonation(d.ID.String()); !errors.Is(err, ErrDonationNotFound) {
		t.Errorf("second remove error = %v, want ErrDonationNotFound", err)
	}
	if _, err := s.RemoveDonation("not-a-uuid"); err == nil {
		t.Error("expected an error for a malformed id")
	}
}
