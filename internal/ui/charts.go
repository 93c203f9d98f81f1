package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vista/internal/model"
	"vista/internal/util"
)

// bar draws value as a horizontal bar scaled so maxValue fills width cells.
func bar(value, maxValue float64, width int, g glyphs) string {
	if width <= 0 || maxValue <= 0 || value <= 0 {
		return ""
	}
	cells := math.Min(value/maxValue, 1) * float64(width)
	full := int(cells)
	out := strings.Repeat(g.full, full)
	if len(g.partials) > 0 && full < width {
		frac := cells - float64(full)
		if i := int(frac * float64(len(g.partials)+1)); i > 0 {
			out += g.partials[i-1]
		}
	}
	return out
}

// sparkline maps values onto the glyph ramp, one cell per value.
func sparkline(values []float64, g glyphs) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := len(g.spark) - 1
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(g.spark)-1))
		}
		b.WriteString(g.spark[i])
	}
	return b.String()
}

// shares returns each value's whole-number percentage of the total.
func shares(values []float64) []int {
	var total float64
	for _, v := range values {
		total += v
	}
	out := make([]int, len(values))
	if total <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = int(math.Round(v / total * 100))
	}
	return out
}

func chartPanel(title string, width int, body string) string {
	return PanelStyle.Width(width).Render(LabelStyle.Render(title) + "\n\n" + body)
}

func colorize(s string, c lipgloss.Color, caps TerminalCapabilities) string {
	if !caps.Color || s == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

type series struct {
	name  string
	color lipgloss.Color
}

func legend(caps TerminalCapabilities, entries ...series) string {
	g := caps.glyphs()
	var parts []string
	for _, e := range entries {
		parts = append(parts, colorize(g.full, e.color, caps)+" "+e.name)
	}
	return HelpDescStyle.Render(strings.Join(parts, "  "))
}

// renderRevenueTrends draws one bar per month: the profit share of the
// revenue first, the rest of the revenue after it.
func renderRevenueTrends(points []model.TrendPoint, width int, caps TerminalCapabilities) string {
	if len(points) == 0 {
		return chartPanel("Revenue & Profit Trends", width, HelpDescStyle.Render("No data"))
	}
	g := caps.glyphs()
	var peak float64
	revenue := make([]float64, len(points))
	for i, p := range points {
		peak = math.Max(peak, p.Revenue)
		revenue[i] = p.Revenue
	}
	barWidth := max(4, width-20)

	lines := []string{legend(caps, series{"profit", seriesColors[1]}, series{"revenue", seriesColors[0]}) + "  " + HelpDescStyle.Render(sparkline(revenue, g))}
	for _, p := range points {
		lines = append(lines, fmt.Sprintf("%-4s %s %s", p.Month,
			stackedBar(p.Profit, p.Revenue, peak, barWidth, g, seriesColors[1], seriesColors[0], caps),
			"$"+util.FormatCompact(p.Revenue)+"/$"+util.FormatCompact(p.Profit)))
	}
	return chartPanel("Revenue & Profit Trends", width, strings.Join(lines, "\n"))
}

// stackedBar draws part in one color and the remainder of whole in another.
func stackedBar(part, whole, peak float64, width int, g glyphs, partColor, restColor lipgloss.Color, caps TerminalCapabilities) string {
	if peak <= 0 || whole <= 0 || width <= 0 {
		return ""
	}
	total := int(math.Round(math.Min(whole/peak, 1) * float64(width)))
	head := int(math.Round(math.Max(math.Min(part/whole, 1), 0) * float64(total)))
	return colorize(strings.Repeat(g.full, head), partColor, caps) +
		colorize(strings.Repeat(g.full, total-head), restColor, caps)
}

// renderMonthlyOrders draws one bar per month.
func renderMonthlyOrders(orders []model.MonthlyOrders, width int, caps TerminalCapabilities) string {
	if len(orders) == 0 {
		return chartPanel("Monthly Orders", width, HelpDescStyle.Render("No data"))
	}
	g := caps.glyphs()
	var peak float64
	for _, o := range orders {
		peak = math.Max(peak, float64(o.Orders))
	}
	barWidth := max(4, width-16)

	var lines []string
	for _, o := range orders {
		lines = append(lines, fmt.Sprintf("%-4s %s %s", o.Month,
			colorize(bar(float64(o.Orders), peak, barWidth, g), seriesColors[0], caps),
			util.LocaleNumber(float64(o.Orders))))
	}
	return chartPanel("Monthly Orders", width, strings.Join(lines, "\n"))
}

// renderCategoryShare draws a stacked share bar and a legend of
// "Name: NN%" entries in each category's own color.
func renderCategoryShare(cats []model.CategorySales, width int, caps TerminalCapabilities) string {
	if len(cats) == 0 {
		return chartPanel("Sales by Category", width, HelpDescStyle.Render("No data"))
	}
	g := caps.glyphs()
	values := make([]float64, len(cats))
	for i, c := range cats {
		values[i] = c.Value
	}
	pct := shares(values)
	barWidth := max(10, width-6)

	var stacked strings.Builder
	used := 0
	for i, c := range cats {
		n := barWidth * pct[i] / 100
		if i == len(cats)-1 {
			n = max(0, barWidth-used)
		}
		used += n
		stacked.WriteString(colorize(strings.Repeat(g.full, n), categoryColor(c, i), caps))
	}

	lines := []string{stacked.String(), ""}
	for i, c := range cats {
		lines = append(lines, fmt.Sprintf("%s %s: %d%%  %s",
			colorize(g.full, categoryColor(c, i), caps), c.Name, pct[i],
			HelpDescStyle.Render("$"+util.LocaleNumber(c.Value))))
	}
	return chartPanel("Sales by Category", width, strings.Join(lines, "\n"))
}

func categoryColor(c model.CategorySales, i int) lipgloss.Color {
	if strings.HasPrefix(c.Color, "#") {
		return lipgloss.Color(c.Color)
	}
	return seriesColors[i%len(seriesColors)]
}

// renderRevenueVsExpenses draws one bar per month: expenses first, then
// the margin up to revenue.
func renderRevenueVsExpenses(points []model.RevenueExpense, width int, caps TerminalCapabilities) string {
	if len(points) == 0 {
		return chartPanel("Revenue vs Expenses", width, HelpDescStyle.Render("No data"))
	}
	g := caps.glyphs()
	var peak float64
	for _, p := range points {
		peak = math.Max(peak, math.Max(p.Revenue, p.Expenses))
	}
	barWidth := max(4, width-28)

	lines := []string{legend(caps, series{"expenses", seriesColors[3]}, series{"margin", seriesColors[4]})}
	for _, p := range points {
		margin := p.Revenue - p.Expenses
		lines = append(lines, fmt.Sprintf("%-4s %s %s %s", p.Month,
			stackedBar(p.Expenses, math.Max(p.Revenue, p.Expenses), peak, barWidth, g, seriesColors[3], seriesColors[4], caps),
			"$"+util.FormatCompact(p.Revenue),
			changeStyle(margin).Render("Δ $"+util.FormatCompact(margin))))
	}
	return chartPanel("Revenue vs Expenses", width, strings.Join(lines, "\n"))
}
