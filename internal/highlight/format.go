package highlight

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Status line formats.
const (
	FormatLine      = "line"      // "Iftar in 2h 15m"
	FormatCountdown = "countdown" // "2h 15m"
	FormatLabel     = "label"     // "Iftar"
	FormatFull      = "full"      // "Roza in progress, Iftar in 2h 15m"
)

// FormatData is the data passed to custom status templates.
type FormatData struct {
	Current   string // e.g. "Roza in progress"
	Next      string // e.g. "Iftar"
	Label     string // short form of Next, e.g. "Sehar"
	Countdown string // e.g. "2h 15m"
	Hours     int
	Minutes   int // remaining minutes after Hours
}

// Format renders h for status bars. A mode containing "{{" is executed as
// a Go template over FormatData, e.g. "{{.Label}} {{.Countdown}}". Unknown
// modes fall back to FormatLine. A nil state renders as "".
func Format(h *State, mode string) string {
	if h == nil {
		return ""
	}

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Current:   h.Current,
			Next:      h.Next,
			Label:     StatusLabel(h.Next),
			Countdown: h.Countdown,
			Hours:     h.Minutes / 60,
			Minutes:   h.Minutes % 60,
		})
	}

	switch mode {
	case FormatCountdown:
		return h.Countdown
	case FormatLabel:
		return StatusLabel(h.Next)
	case FormatFull:
		return fmt.Sprintf("%s, %s", h.Current, FormatStatusLine(h))
	default:
		return FormatStatusLine(h)
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("status").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return buf.String()
}
