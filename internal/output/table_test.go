package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	out := stripAnsi(NewTable("PATH", "REQUIRES").
		Row("README.md", "-").
		Row("Dockerfile", "containers").
		String())

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "REQUIRES")
	assert.Contains(t, out, "Dockerfile")
	assert.Contains(t, out, "containers")
}

func TestTable_CellStyle(t *testing.T) {
	tbl := NewTable("PATH", "REQUIRES", "DESCRIPTION").
		Row("README.md", "-", "").
		Row("Dockerfile", "containers", "Container image").
		ColumnStyle(1, StyleNoun)
	style := tbl.style

	tests := []struct {
		name     string
		row, col int
		want     lipgloss.Style
	}{
		{name: "header", row: table.HeaderRow, col: 1, want: style.Header},
		{name: "placeholder dash", row: 0, col: 1, want: style.Placeholder},
		{name: "placeholder blank", row: 0, col: 2, want: style.Placeholder},
		{name: "column style", row: 1, col: 1, want: StyleNoun.Padding(0, 1)},
		{name: "plain cell", row: 1, col: 0, want: style.Cell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.cellStyle(tt.row, tt.col))
		})
	}
}
