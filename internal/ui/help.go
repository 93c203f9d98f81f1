package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vista/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeSearch:
		return renderSearchHelp(width)
	case model.ModeFilter:
		return renderFilterHelp(width)
	}

	switch screen {
	case model.ScreenOverview:
		return renderOverviewHelp(width)
	case model.ScreenProducts, model.ScreenCustomers:
		return renderBoardHelp(width)
	case model.ScreenSettings:
		return renderSettingsHelp(width)
	case model.ScreenRowDetail:
		return renderDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderOverviewHelp(width int) string {
	keys := []string{
		helpKey("←/→", "tabs"),
		helpKey("1-4", "jump tab"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderBoardHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s", "sort"),
		helpKey("[/]", "page"),
		helpKey("/", "search"),
		helpKey("f", "filters"),
		helpKey("x", "clear filters"),
		helpKey("e/y", "export/copy"),
		helpKey("u/ctrl+r", "undo/redo"),
		helpKey("enter", "details"),
	}
	return renderHelpLine(keys, width)
}

func renderSettingsHelp(width int) string {
	keys := []string{
		helpKey("←/→", "tabs"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("esc/b", "back"),
		helpKey("y", "copy row"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchHelp(width int) string {
	keys := []string{
		helpKey("type", "filter rows"),
		helpKey("enter", "done"),
		helpKey("esc", "clear"),
	}
	return renderHelpLine(keys, width)
}

func renderFilterHelp(width int) string {
	keys := []string{
		helpKey("j/k", "move"),
		helpKey("space", "toggle"),
		helpKey("d", "remove filter"),
		helpKey("x", "clear all"),
		helpKey("esc/f", "done"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"← / →", "Previous / next tab"},
			{"1 - 4", "Overview, products, customers, settings"},
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"enter", "Open row detail"},
			{"esc / b", "Back"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
		titleSection("Tables"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{"c then 1-9", "Jump to column"},
			{"s", "Sort active column (asc, desc, off)"},
			{"] / l / pgdown", "Next page"},
			{"[ / h / pgup", "Previous page"},
			{"gg / G", "First / last page"},
			{"/", "Search (products only)"},
			{"e", "Export all matching rows to CSV"},
			{"y", "Copy matching rows as CSV"},
			{"u / ctrl+r", "Undo / redo table changes"},
		}),
		titleSection("Filters"),
		helpSection([]helpItem{
			{"f", "Focus filter panel"},
			{"space / enter", "Toggle option under cursor"},
			{"d", "Remove filter under cursor"},
			{"x", "Clear all filters"},
			{"esc / f", "Leave filter panel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
