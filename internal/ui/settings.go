package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vista/internal/model"
	"vista/internal/util"
)

// ConfigEntry is one line of the effective configuration.
type ConfigEntry struct {
	Key   string
	Value string
}

// SettingsModel shows the effective configuration and export history.
type SettingsModel struct {
	config  []ConfigEntry
	exports []model.ExportRecord
}

// NewSettingsModel creates the settings screen.
func NewSettingsModel(config []ConfigEntry) *SettingsModel {
	return &SettingsModel{config: config}
}

// SetExports replaces the export history.
func (m *SettingsModel) SetExports(exports []model.ExportRecord) {
	m.exports = exports
}

// View renders the settings screen.
func (m *SettingsModel) View(width, height int) string {
	var fields []string
	for _, e := range m.config {
		fields = append(fields, renderField(e.Key, e.Value))
	}
	if len(fields) == 0 {
		fields = append(fields, HelpDescStyle.Render("Defaults in effect"))
	}

	sections := []string{
		LabelStyle.Render("Configuration"),
		strings.Join(fields, "\n"),
		lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", max(0, width-8))),
		LabelStyle.Render(fmt.Sprintf("Recent exports (%d)", len(m.exports))),
		m.renderExports(width - 8),
	}

	return PanelStyle.Width(width - 4).Render(strings.Join(sections, "\n\n"))
}

func (m *SettingsModel) renderExports(width int) string {
	if len(m.exports) == 0 {
		return HelpDescStyle.Render("No exports yet. Press 'e' on a table to write one.")
	}

	widths := []int{16, 12, 8, 10}
	pathWidth := max(10, width-sum(widths))
	widths = append(widths, pathWidth)

	header := renderTableRow([]string{
		formatHeaderLabel("when"),
		formatHeaderLabel("board"),
		formatHeaderLabel("rows"),
		formatHeaderLabel("mode"),
		formatHeaderLabel("path"),
	}, widths, TableHeaderStyle)

	lines := []string{header, renderTableDivider(widths)}
	for _, e := range m.exports {
		path := e.Path
		if path == "" {
			path = "(clipboard)"
		}
		lines = append(lines, renderTableRow([]string{
			util.FormatTimestamp(e.CreatedAt),
			e.Board,
			util.LocaleNumber(float64(e.Rows)),
			e.Mode,
			util.TruncateString(path, pathWidth-2),
		}, widths, NormalRowStyle))
	}
	return strings.Join(lines, "\n")
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
