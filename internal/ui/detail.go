package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vista/internal/record"
	"vista/internal/table"
)

// RowDetailModel shows every column of one row.
type RowDetailModel struct {
	boardTitle string
	columns    table.Schema
	row        record.Row
}

// NewRowDetailModel creates a detail view of row.
func NewRowDetailModel(boardTitle string, columns table.Schema, row record.Row) *RowDetailModel {
	return &RowDetailModel{boardTitle: boardTitle, columns: columns, row: row}
}

// Title is the breadcrumb label, the first column's value.
func (m *RowDetailModel) Title() string {
	if m.columns.Len() == 0 {
		return "Detail"
	}
	return m.columns.At(0).Display(m.row.Get(m.columns.At(0).Key))
}

// View renders the row detail.
func (m *RowDetailModel) View(width, height int) string {
	shortcuts := HelpDescStyle.Render("y copy  esc back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	var fields []string
	for _, col := range m.columns.Columns() {
		v := m.row.Get(col.Key)
		value := col.Display(v)
		if col.Key == "status" {
			value = statusStyle(v.String()).Render(value)
		}
		fields = append(fields, renderField(col.Label, value))
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(0, width-8)))

	sections := []string{
		LabelStyle.Render(m.boardTitle),
		strings.Join(fields, "\n"),
		divider,
		HelpDescStyle.Render("Raw values: " + m.rawLine()),
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func (m *RowDetailModel) rawLine() string {
	var parts []string
	for _, col := range m.columns.Columns() {
		parts = append(parts, col.Key+"="+m.row.Get(col.Key).String())
	}
	return strings.Join(parts, "  ")
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
