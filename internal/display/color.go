// Package display renders terminal output: lipgloss styles for text and
// cards, go-pretty for tables.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette.
var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorCyan   = lipgloss.Color("6")
	colorGray   = lipgloss.Color("8")
)

var (
	enabled  bool
	renderer = lipgloss.NewRenderer(os.Stdout)
)

func init() {
	SetEnabled(shouldEnable())
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
	if b {
		renderer.SetColorProfile(termenv.ANSI256)
		text.EnableColors()
	} else {
		renderer.SetColorProfile(termenv.Ascii)
		text.DisableColors()
	}
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

func style() lipgloss.Style {
	return renderer.NewStyle()
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return render(style().Bold(true), text)
}

// Dim returns text rendered faint.
func Dim(text string) string {
	return render(style().Faint(true), text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return render(style().Foreground(colorGreen), text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return render(style().Foreground(colorYellow), text)
}

// Cyan returns text rendered in cyan.
func Cyan(text string) string {
	return render(style().Foreground(colorCyan), text)
}

// Gray returns text rendered in gray.
func Gray(text string) string {
	return render(style().Foreground(colorGray), text)
}

// Accent returns text rendered in the accent color (cyan + bold).
// Used for the highlighted roza day and the active countdown.
func Accent(text string) string {
	return render(style().Bold(true).Foreground(colorCyan), text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}
