package display

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders an aligned table with an optionally highlighted row.
type Table struct {
	title   string
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight (typically "today"). -1 = none.
	highlightRow int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// SetTitle sets a caption rendered above the header.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Render produces the formatted table string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Options.SeparateColumns = false
	tw.Style().Title.Align = text.AlignCenter
	if enabled {
		tw.Style().Color.Header = text.Colors{text.Bold}
		tw.Style().Color.Border = text.Colors{text.Faint}
		tw.Style().Color.Separator = text.Colors{text.Faint}
	}
	if t.title != "" {
		tw.SetTitle("%s", t.title)
	}

	tw.AppendHeader(toRow(t.headers, len(t.headers), nil))
	accent := text.Colors{text.Bold, text.FgHiCyan}
	for i, cells := range t.rows {
		if i == t.highlightRow && enabled {
			tw.AppendRow(toRow(cells, len(t.headers), accent))
			continue
		}
		tw.AppendRow(toRow(cells, len(t.headers), nil))
	}

	return tw.Render() + "\n"
}

// toRow pads or trims cells to width columns, applying colors if given.
func toRow(cells []string, width int, colors text.Colors) table.Row {
	row := make(table.Row, width)
	for i := range row {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if colors != nil {
			row[i] = colors.Sprint(cell)
		} else {
			row[i] = cell
		}
	}
	return row
}
