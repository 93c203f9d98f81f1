package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vista/internal/model"
	"vista/internal/util"
)

// OverviewModel renders the KPI cards and the four dashboard charts.
type OverviewModel struct {
	dataset model.Dataset
	caps    TerminalCapabilities
}

// NewOverviewModel creates the overview screen.
func NewOverviewModel(ds model.Dataset, caps TerminalCapabilities) *OverviewModel {
	return &OverviewModel{dataset: ds, caps: caps}
}

// View renders the overview.
func (m *OverviewModel) View(width, height int) string {
	cards := m.renderCards(width)

	half := max(20, width/2-2)
	var charts string
	if width >= 80 {
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			renderRevenueTrends(m.dataset.RevenueTrends, half, m.caps),
			renderMonthlyOrders(m.dataset.MonthlyOrders, half, m.caps))
		bottom := lipgloss.JoinHorizontal(lipgloss.Top,
			renderCategoryShare(m.dataset.SalesByCategory, half, m.caps),
			renderRevenueVsExpenses(m.dataset.RevenueVsExpenses, half, m.caps))
		charts = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	} else {
		full := max(20, width-2)
		charts = lipgloss.JoinVertical(lipgloss.Left,
			renderRevenueTrends(m.dataset.RevenueTrends, full, m.caps),
			renderMonthlyOrders(m.dataset.MonthlyOrders, full, m.caps),
			renderCategoryShare(m.dataset.SalesByCategory, full, m.caps),
			renderRevenueVsExpenses(m.dataset.RevenueVsExpenses, full, m.caps))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, charts)
}

func (m *OverviewModel) renderCards(width int) string {
	if len(m.dataset.KPIs) == 0 {
		return EmptyStateStyle.Render("No metrics yet. Run with the sample dataset to populate the dashboard.")
	}
	perRow := 4
	if width < 100 {
		perRow = 2
	}
	cardWidth := max(18, width/perRow-2)

	var rows []string
	var row []string
	for _, k := range m.dataset.KPIs {
		row = append(row, renderKPICard(k, cardWidth, m.caps))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderKPICard draws one metric: title, value, signed change with the
// trend arrow, and a bar of |change|*5 percent of the card, capped at full.
func renderKPICard(k model.KPI, width int, caps TerminalCapabilities) string {
	g := caps.glyphs()
	arrow := g.up
	if k.Trend == model.TrendDown {
		arrow = g.down
	}
	style := changeStyle(k.Change)

	inner := max(4, width-4)
	fill := int(math.Round(kpiProgress(k.Change) / 100 * float64(inner)))
	progress := style.Render(strings.Repeat(g.full, fill)) +
		HelpDescStyle.Render(strings.Repeat(g.empty, inner-fill))

	lines := []string{
		HelpDescStyle.Render(k.Title),
		ValueStyle.Bold(true).Render(util.FormatKPIValue(k.Value, k.Prefix, k.Suffix)),
		style.Render(arrow+" "+util.FormatChange(k.Change)) + " " + HelpDescStyle.Render("vs last period"),
		progress,
	}
	return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// kpiProgress is the bar fill in percent.
func kpiProgress(change float64) float64 {
	return math.Min(math.Abs(change)*5, 100)
}
