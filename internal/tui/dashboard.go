// Package tui is the interactive Ramadan dashboard. It shows the focused
// roza day with a live countdown that refreshes once a minute.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/smokyabdulrahman/ramadan-cli/internal/highlight"
	"github.com/smokyabdulrahman/ramadan-cli/internal/roza"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

// DefaultRefresh is how often the countdown is recomputed.
const DefaultRefresh = 60 * time.Second

// Loader fetches the Ramadan schedule. It runs off the UI goroutine.
type Loader func(ctx context.Context) (roza.Schedule, error)

// Options configure the dashboard.
type Options struct {
	Location   string // shown under the title, e.g. "Karachi, Pakistan"
	TimeFormat string // "12h" or "24h"
	Times      timefmt.Service
	Load       Loader
	Refresh    time.Duration
	NoColor    bool
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")) // Green

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	todayCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")). // Yellow
			Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Bright pink
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// scheduleMsg carries the result of a Loader run.
type scheduleMsg struct {
	schedule roza.Schedule
	err      error
}

// tickMsg fires every refresh interval.
type tickMsg time.Time

// Model is the bubbletea model for the dashboard.
type Model struct {
	opts        Options
	highlighter *highlight.Service
	help        help.Model

	schedule roza.Schedule
	loading  bool
	err      error

	focus    int // day number in focus now, 0 when none
	selected int // day number on screen, 0 when none
	state    *highlight.State

	width    int
	quitting bool
}

// New returns a dashboard model. Nothing is fetched until Init runs.
func New(opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	return Model{
		opts:        opts,
		highlighter: highlight.New(opts.Times),
		help:        help.New(),
		loading:     true,
		width:       80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m Model) load() tea.Cmd {
	loader := m.opts.Load
	return func() tea.Msg {
		if loader == nil {
			return scheduleMsg{err: fmt.Errorf("no schedule loader configured")}
		}
		s, err := loader(context.Background())
		return scheduleMsg{schedule: s, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case scheduleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.schedule = msg.schedule
		m.refresh(true)
		return m, nil

	case tickMsg:
		m.refresh(false)
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Prev):
			if m.selected > 1 {
				m.selected--
				m.updateState()
			}
			return m, nil

		case key.Matches(msg, keys.Next):
			if m.selected > 0 && m.selected < m.schedule.Len() {
				m.selected++
				m.updateState()
			}
			return m, nil

		case key.Matches(msg, keys.Today):
			m.refresh(true)
			return m, nil

		case key.Matches(msg, keys.Refresh):
			m.loading = true
			return m, m.load()

		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

// refresh recomputes the focused day. With jump, or when the user was
// looking at the previous focus, the selection follows it.
func (m *Model) refresh(jump bool) {
	prev := m.focus
	m.focus = 0
	if d, ok := m.schedule.Focus(m.opts.Times); ok {
		m.focus = d.Number
	}

	if jump || m.selected == 0 || m.selected == prev {
		m.selected = m.focus
		if m.selected == 0 && m.schedule.Len() > 0 {
			m.selected = m.schedule.Len()
		}
	}
	m.updateState()
}

// updateState recomputes the highlight for the day on screen.
func (m *Model) updateState() {
	m.state = nil
	if d, ok := m.schedule.Day(m.selected); ok {
		m.state = m.highlighter.State(d.Data)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n")
	if m.opts.Location != "" {
		b.WriteString(dimStyle.Render(m.opts.Location))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading && m.schedule.Len() == 0:
		b.WriteString(dimStyle.Render("Loading Ramadan timetable..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderDay())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) title() string {
	if m.schedule.HijriYear > 0 {
		return fmt.Sprintf("☪ Ramadan %d AH", m.schedule.HijriYear)
	}
	return "☪ Ramadan"
}

func (m Model) renderDay() string {
	d, ok := m.schedule.Day(m.selected)
	if !ok {
		return dimStyle.Render("No roza days to show.")
	}

	rows := []string{
		row("Date", d.Data.Date.Gregorian.Date),
		row("Hijri", d.Data.Date.Hijri.Format()),
		row("Sehar", m.opts.Times.FormatClock(d.Data.Timings.Fajr, m.opts.TimeFormat)),
		row("Iftar", m.opts.Times.FormatClock(d.Data.Timings.Maghrib, m.opts.TimeFormat)),
	}

	if m.state != nil {
		rows = append(rows,
			"",
			phaseStyle.Render(m.state.Current),
			fmt.Sprintf("%s in %s", m.state.Next, countdownStyle.Render(m.state.Countdown)),
		)
	} else {
		rows = append(rows, "", dimStyle.Render("Completed"))
	}

	heading := fmt.Sprintf("%s of %d", d.Title(), m.schedule.Len())
	style := cardStyle
	if d.Number == m.focus {
		heading += "  (today)"
		style = todayCardStyle
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{titleStyle.Render(heading), ""}, rows...)...)
	return style.Render(body)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// Run starts the dashboard on the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
