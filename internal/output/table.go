package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle holds the styles a Table renders with.
type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	Header      lipgloss.Style
	Cell        lipgloss.Style

	// Placeholder styles cells that carry no value: empty or "-".
	Placeholder lipgloss.Style
}

// DefaultTableStyle returns the palette-based table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: ColorDimGray,
		Header:      lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1),
		Cell:        lipgloss.NewStyle().Padding(0, 1),
		Placeholder: StyleDim.Padding(0, 1),
	}
}

// Table is a bordered lipgloss table with optional per-column styles.
type Table struct {
	headers []string
	rows    [][]string
	columns map[int]lipgloss.Style
	style   TableStyle
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		columns: make(map[int]lipgloss.Style),
		style:   DefaultTableStyle(),
	}
}

// Row appends a row of cells.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// ColumnStyle styles every value cell of column col. Placeholder cells keep
// the placeholder style.
func (t *Table) ColumnStyle(col int, style lipgloss.Style) *Table {
	t.columns[col] = style.Padding(0, 1)
	return t
}

func (t *Table) cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return t.style.Header
	}
	if row < len(t.rows) && col < len(t.rows[row]) {
		if v := strings.TrimSpace(t.rows[row][col]); v == "" || v == "-" {
			return t.style.Placeholder
		}
	}
	if s, ok := t.columns[col]; ok {
		return s
	}
	return t.style.Cell
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(t.cellStyle)
	return tbl.String()
}
