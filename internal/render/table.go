package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/username/calview/internal/grid"
)

// Options controls rendering behavior
type Options struct {
	Color bool
}

var (
	dayStyle  = color.New(color.FgGreen, color.Bold)
	dateStyle = color.New(color.FgYellow, color.Bold)
)

// Month renders one month block: the header centered over the table width,
// then the label row and week rows, aligned into fixed-width columns.
// Trailing whitespace is trimmed from every line.
func Month(block grid.MonthBlock, opts Options) string {
	lines, width := tableLines(block, opts)

	var b strings.Builder
	b.WriteString(center(block.Header, width))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// tableLines renders the label row plus one line per week row and reports
// the total rendered width. Column widths are display widths (runewidth),
// so non-ASCII day names from config align correctly.
func tableLines(block grid.MonthBlock, opts Options) ([]string, int) {
	widths := make(map[string]int, len(block.Columns))
	for _, col := range block.Columns {
		widths[col] = runewidth.StringWidth(col)
	}
	for _, row := range block.Rows {
		for _, cell := range row {
			if w := runewidth.StringWidth(cell.Text); w > widths[cell.Label] {
				widths[cell.Label] = w
			}
		}
	}

	width := 0
	for _, col := range block.Columns {
		width += widths[col]
	}
	if n := len(block.Columns); n > 1 {
		width += n - 1 // single-space separators
	}

	lines := make([]string, 0, len(block.Rows)+1)

	labelCells := make([]string, len(block.Columns))
	for i, col := range block.Columns {
		labelCells[i] = padLeft(col, widths[col])
	}
	lines = append(lines, strings.TrimRight(strings.Join(labelCells, " "), " "))

	for _, row := range block.Rows {
		byLabel := make(map[string]grid.Cell, len(row))
		for _, cell := range row {
			byLabel[cell.Label] = cell
		}

		cells := make([]string, len(block.Columns))
		for i, col := range block.Columns {
			cell, ok := byLabel[col]
			if !ok {
				// row is missing this trailing day
				cells[i] = strings.Repeat(" ", widths[col])
				continue
			}
			text := padLeft(cell.Text, widths[col])
			if opts.Color {
				text = colorize(text, cell.Mark)
			}
			cells[i] = text
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	return lines, width
}

func colorize(text string, mark grid.Highlight) string {
	switch mark {
	case grid.HighlightDay:
		return dayStyle.Sprint(text)
	case grid.HighlightDate:
		return dateStyle.Sprint(text)
	default:
		return text
	}
}

func padLeft(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

func center(s string, width int) string {
	gap := (width - runewidth.StringWidth(s)) / 2
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
