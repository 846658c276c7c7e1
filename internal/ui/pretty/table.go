package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	columnGap    = " "
	ellipsis     = "…"
	minColWidth  = 4
	separatorRun = "─"
)

// Align controls how a column pads its cells.
type Align int

const (
	// AlignLeft pads on the right.
	AlignLeft Align = iota
	// AlignRight pads on the left.
	AlignRight
)

// Column describes one table column.
type Column struct {
	Title string
	Align Align

	// Max caps the display width of the column. Zero means no cap.
	Max int

	// KeepTail truncates from the front, which keeps file names visible.
	KeepTail bool
}

// Row is one table row. Style, when set, colors the first cell.
type Row struct {
	Cells []string
	Style *lipgloss.Style
}

// Table renders aligned columns sized by display width, so wide runes in
// paths or messages do not break alignment.
type Table struct {
	styles  *Styles
	columns []Column
	rows    []Row
}

// NewTable creates a table with the given columns.
func NewTable(styles *Styles, columns ...Column) *Table {
	return &Table{styles: styles, columns: columns}
}

// Add appends a row.
func (t *Table) Add(row Row) {
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the header, a separator, and all rows.
func (t *Table) Render() string {
	widths := t.widths()

	total := 0
	for _, w := range widths {
		total += w
	}
	total += len(columnGap) * (len(widths) - 1)
	separator := t.styles.TableSeparator.Render(strings.Repeat(separatorRun, total))

	var builder strings.Builder

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = t.styles.TableHeader.Render(pad(col.Title, widths[i], col.Align))
	}
	builder.WriteString(separator + "\n")
	builder.WriteString(strings.Join(header, columnGap) + "\n")
	builder.WriteString(separator + "\n")

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			var cell string
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			cell = pad(fit(cell, widths[i], col.KeepTail), widths[i], col.Align)
			if i == 0 && row.Style != nil {
				cell = row.Style.Render(cell)
			}
			cells[i] = cell
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, columnGap), " ") + "\n")
	}

	return builder.String()
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = max(runewidth.StringWidth(col.Title), minColWidth)
	}
	for _, row := range t.rows {
		for i := range min(len(row.Cells), len(widths)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row.Cells[i]))
		}
	}
	for i, col := range t.columns {
		if col.Max > 0 {
			widths[i] = min(widths[i], col.Max)
		}
	}
	return widths
}

// pad pads s to width display columns. It must run before styling.
func pad(s string, width int, align Align) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// fit truncates s to width display columns.
func fit(s string, width int, keepTail bool) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if !keepTail {
		return runewidth.Truncate(s, width, ellipsis)
	}

	runes := []rune(s)
	budget := width - runewidth.StringWidth(ellipsis)
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}
