package display

import (
	"strings"
	"testing"
)

func TestStyles_Enabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	funcs := []struct {
		name string
		fn   func(string) string
	}{
		{"Bold", Bold},
		{"Dim", Dim},
		{"Green", Green},
		{"Yellow", Yellow},
		{"Cyan", Cyan},
		{"Gray", Gray},
		{"Accent", Accent},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			got := f.fn("styled")
			if !strings.Contains(got, "\033[") {
				t.Errorf("%s(\"styled\") = %q, want ANSI escape codes", f.name, got)
			}
			if !strings.Contains(got, "styled") {
				t.Errorf("%s(\"styled\") = %q, lost the text", f.name, got)
			}
		})
	}
}

func TestBold_Enabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	got := Bold("hello")
	if !strings.HasPrefix(got, "\033[1") || !strings.HasSuffix(got, "\033[0m") {
		t.Errorf("Bold(\"hello\") = %q, want ANSI bold wrapped", got)
	}
}

func TestAllStyles_Disabled_ReturnPlainText(t *testing.T) {
	SetEnabled(false)

	funcs := []struct {
		name string
		fn   func(string) string
	}{
		{"Bold", Bold},
		{"Dim", Dim},
		{"Green", Green},
		{"Yellow", Yellow},
		{"Cyan", Cyan},
		{"Gray", Gray},
		{"Accent", Accent},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			got := f.fn("plain")
			if got != "plain" {
				t.Errorf("%s(\"plain\") with colors disabled = %q, want \"plain\"", f.name, got)
			}
		})
	}
}

func TestBoldf(t *testing.T) {
	SetEnabled(false)

	if got := Boldf("count: %d", 42); got != "count: 42" {
		t.Errorf("Boldf = %q, want %q", got, "count: 42")
	}
}

func TestEnabled_ReportsState(t *testing.T) {
	SetEnabled(true)
	if !Enabled() {
		t.Error("Enabled() should return true after SetEnabled(true)")
	}

	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() should return false after SetEnabled(false)")
	}
}

func TestShouldEnable_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldEnable() {
		t.Error("shouldEnable() should be false when NO_COLOR is set")
	}
}

func TestShouldEnable_ForceColor(t *testing.T) {
	t.Setenv("FORCE_COLOR", "1")
	if !shouldEnable() {
		t.Error("shouldEnable() should be true when FORCE_COLOR is set")
	}
}
