package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column describes one table column.
type Column struct {
	Title string
	Max   int  // Width cap for this column (0 = use Table.MaxWidth)
	Right bool // Right-align cells, for counts and durations
}

// Table renders rows in fixed-width columns for terminal display.
// Cells wider than their column are cut with an ellipsis.
type Table struct {
	Columns  []Column
	Rows     [][]string
	MaxWidth int // Default width cap (0 = unlimited)
}

// NewTable returns a table with left-aligned columns titled by headers.
func NewTable(headers ...string) *Table {
	t := &Table{}
	for _, h := range headers {
		t.Columns = append(t.Columns, Column{Title: h})
	}
	return t
}

// AddRow appends a row. Missing trailing cells render blank.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ColumnWidths returns the display width of each column: the widest of
// its title and cells, capped by the column or table limit.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		w := lipgloss.Width(col.Title)
		for _, row := range t.Rows {
			w = max(w, lipgloss.Width(t.cell(row, i)))
		}
		limit := col.Max
		if limit == 0 {
			limit = t.MaxWidth
		}
		if limit > 0 {
			w = min(w, limit)
		}
		widths[i] = w
	}
	return widths
}

// Render lays the table out as a header, a rule and one line per row.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}
	widths := t.ColumnWidths()

	titles := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
		rule[i] = strings.Repeat("─", widths[i])
	}

	var sb strings.Builder
	sb.WriteString(t.line(titles, widths, StyleTableHeader))
	sb.WriteString(" " + StyleSubtle.Render(strings.Join(rule, "──")) + "\n")
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			cells[i] = t.cell(row, i)
		}
		sb.WriteString(t.line(cells, widths, StyleText))
	}
	return sb.String()
}

func (t *Table) line(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		c = truncate(c, widths[i])
		if t.Columns[i].Right {
			c = padLeft(c, widths[i])
		} else {
			c = padRight(c, widths[i])
		}
		parts[i] = style.Render(c)
	}
	return " " + strings.Join(parts, "  ") + "\n"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncate cuts s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	switch {
	case width <= 0 || len(runes) <= width:
		return s
	case width == 1:
		return "…"
	default:
		return string(runes[:width-1]) + "…"
	}
}

// TruncateID shortens a run ID for display (first 8 chars).
func TruncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
