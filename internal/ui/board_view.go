package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"vista/internal/board"
	"vista/internal/record"
	"vista/internal/table"
	"vista/internal/util"
)

// BoardModel is the table screen for one board: filter panel, search box,
// sortable columns and pagination.
type BoardModel struct {
	board *board.Board
	state board.State
	view  board.View

	cursor       int // row within the current page
	activeColumn int

	search textinput.Model
	pager  paginator.Model
	panel  filterPanel
}

// NewBoardModel creates a screen for b in its initial state.
func NewBoardModel(b *board.Board) *BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Search in table..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.ActiveDot = lipgloss.NewStyle().Foreground(ColorAccent).Render("•")
	pg.InactiveDot = lipgloss.NewStyle().Foreground(ColorMuted).Render("•")

	m := &BoardModel{
		board:  b,
		state:  board.Initial(),
		search: ti,
		pager:  pg,
		panel:  newFilterPanel(b.Filters()),
	}
	m.refresh()
	return m
}

// Board returns the underlying board.
func (m *BoardModel) Board() *board.Board { return m.board }

// State returns the current board state.
func (m *BoardModel) State() board.State { return m.state }

// Derived returns the last derived view.
func (m *BoardModel) Derived() board.View { return m.view }

// SetState replaces the state, e.g. when undoing.
func (m *BoardModel) SetState(s board.State) {
	m.state = s
	m.search.SetValue(s.Search)
	m.refresh()
}

// Apply runs an intent and reports whether the state changed.
func (m *BoardModel) Apply(in board.Intent) bool {
	before := m.state
	m.state = m.board.Apply(m.state, in)
	m.refresh()
	return !sameState(before, m.state)
}

func (m *BoardModel) refresh() {
	m.view = m.board.Derive(m.state)
	if clamped := board.Clamp(m.state, m.view); clamped.Page != m.state.Page {
		m.state = clamped
		m.view = m.board.Derive(m.state)
	}
	m.pager.PerPage = m.board.PerPage()
	m.pager.SetTotalPages(m.view.Page.TotalCount)
	m.pager.Page = max(m.state.Page-1, 0)
	m.clampCursor()
}

func (m *BoardModel) clampCursor() {
	n := len(m.view.Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func sameState(a, b board.State) bool {
	return a.Filters.Equal(b.Filters) && a.Search == b.Search && a.Sort == b.Sort && a.Page == b.Page
}

// ApplyPrefs restores the active column.
func (m *BoardModel) ApplyPrefs(prefs TablePrefs) {
	if i := m.board.Columns().Index(prefs.ActiveColumn); i >= 0 {
		m.activeColumn = i
	}
}

// Prefs returns the persisted part of the screen state.
func (m *BoardModel) Prefs() TablePrefs {
	return TablePrefs{ActiveColumn: m.activeColumnKey()}
}

func (m *BoardModel) activeColumnKey() string {
	cols := m.board.Columns()
	if cols.Len() == 0 {
		return ""
	}
	return cols.At(m.activeColumn).Key
}

// NextColumn moves the active column right, wrapping.
func (m *BoardModel) NextColumn() {
	if n := m.board.Columns().Len(); n > 0 {
		m.activeColumn = (m.activeColumn + 1) % n
	}
}

// PrevColumn moves the active column left, wrapping.
func (m *BoardModel) PrevColumn() {
	n := m.board.Columns().Len()
	if n == 0 {
		return
	}
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = n - 1
	}
}

// JumpToColumn activates column number (1-based).
func (m *BoardModel) JumpToColumn(number int) bool {
	if number < 1 || number > m.board.Columns().Len() {
		return false
	}
	m.activeColumn = number - 1
	return true
}

// SortActiveColumn clicks the active column header and describes the result.
func (m *BoardModel) SortActiveColumn() string {
	col := m.board.Columns().At(m.activeColumn)
	if !col.Sortable {
		return fmt.Sprintf("%s is not sortable", col.Label)
	}
	m.Apply(board.ClickSort(col.Key))
	dir := "ascending"
	if m.state.Sort.Dir == table.Descending {
		dir = "descending"
	}
	return fmt.Sprintf("Sorted %s %s", strings.ToUpper(col.Label), dir)
}

// NextPage requests the following page; the view clamps at the end.
func (m *BoardModel) NextPage() bool { return m.Apply(board.RequestPage(m.state.Page + 1)) }

// PrevPage requests the preceding page.
func (m *BoardModel) PrevPage() bool { return m.Apply(board.RequestPage(m.state.Page - 1)) }

// FirstPage jumps to page 1.
func (m *BoardModel) FirstPage() bool { return m.Apply(board.RequestPage(1)) }

// LastPage jumps to the final page.
func (m *BoardModel) LastPage() bool {
	return m.Apply(board.RequestPage(max(m.view.Page.TotalPages, 1)))
}

// MoveDown moves the cursor down within the page.
func (m *BoardModel) MoveDown() {
	if m.cursor < len(m.view.Rows)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up within the page.
func (m *BoardModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// SelectedRow returns the row under the cursor.
func (m *BoardModel) SelectedRow() (record.Row, bool) {
	if len(m.view.Rows) == 0 {
		return nil, false
	}
	return m.view.Rows[m.cursor], true
}

// TableMeta summarises the active column, sort and filters.
func (m *BoardModel) TableMeta() string {
	cols := m.board.Columns()
	if cols.Len() == 0 {
		return ""
	}
	parts := []string{fmt.Sprintf("col %s", strings.ToUpper(cols.At(m.activeColumn).Label))}
	if m.state.Sort.Active() {
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.state.Sort.Key), m.state.Sort.Dir))
	}
	if m.state.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.state.Search))
	}
	if n := m.view.ActiveFilters; n > 0 {
		parts = append(parts, fmt.Sprintf("%d filters, %d of %d match", n, m.view.Matched, m.view.Total))
	}
	return strings.Join(parts, "  ·  ")
}

// StatusLine reports the visible window, "Showing 1 to 5 of 10 results".
func (m *BoardModel) StatusLine() string {
	p := m.view.Page
	if p.Empty() {
		return "No results found"
	}
	return fmt.Sprintf("Showing %d to %d of %d results", p.Start, p.End, p.TotalCount)
}

// PageLine reports the page position, "Page 1 of 2".
func (m *BoardModel) PageLine() string {
	return fmt.Sprintf("Page %d of %d", m.state.Page, max(m.view.Page.TotalPages, 1))
}

// pageButtons renders the numbered page strip: first, last and the pages
// next to the current one, with ellipses two pages out.
func pageButtons(current, total int) string {
	var parts []string
	for p := 1; p <= total; p++ {
		switch {
		case p == 1 || p == total || (p >= current-1 && p <= current+1):
			label := fmt.Sprintf(" %d ", p)
			if p == current {
				parts = append(parts, BadgeStyle.Render(label))
			} else {
				parts = append(parts, HelpDescStyle.Render(label))
			}
		case p == current-2 || p == current+2:
			parts = append(parts, HelpDescStyle.Render("..."))
		}
	}
	return strings.Join(parts, "")
}

// searchFocus gives the search box focus.
func (m *BoardModel) searchFocus() {
	m.search.SetValue(m.state.Search)
	m.search.CursorEnd()
	m.search.Focus()
}

func (m *BoardModel) searchBlur() {
	m.search.Blur()
}

// View renders the table screen.
func (m *BoardModel) View(width, height int, panelFocused bool) string {
	var top []string

	title := LabelStyle.Render(m.board.Title())
	if m.board.Searchable() {
		title += "  " + m.search.View()
	}
	top = append(top, title)
	if tags := renderSummaries(m.view.Summaries); tags != "" {
		top = append(top, tags)
	}

	tableWidth := width
	var panel string
	if !m.panel.empty() {
		panelWidth := min(24, width/4)
		panel = m.panel.View(m.state.Filters, panelFocused, panelWidth)
		tableWidth = width - lipgloss.Width(panel) - 1
	}

	body := m.renderTable(tableWidth)
	if panel != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, panel, " ", body)
	}

	footer := []string{m.StatusLine()}
	if m.view.Page.TotalPages > 1 {
		footer = append(footer, m.PageLine(), pageButtons(m.state.Page, m.view.Page.TotalPages), m.pager.View())
	}
	if meta := m.TableMeta(); meta != "" {
		footer = append(footer, meta)
	}
	status := StatusBarStyle.Render(strings.Join(footer, "  ·  "))

	content := lipgloss.JoinVertical(lipgloss.Left, strings.Join(top, "\n"), "", body)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

func (m *BoardModel) renderTable(width int) string {
	cols := m.board.Columns().Columns()
	if len(cols) == 0 {
		return EmptyStateStyle.Render("No columns configured.")
	}

	widths := make([]int, len(cols))
	headers := make([]string, len(cols))
	total := 0
	for i, col := range cols {
		label := formatHeaderLabel(col.Label)
		if marker := m.view.Indicator(col.Key).Marker(col.Sortable); marker != "" {
			label += " " + marker
		}
		if i == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		widths[i] = max(col.Width+2, lipgloss.Width(label)+2)
		headers[i] = label
		total += widths[i]
	}
	if extra := width - total; extra > 0 {
		widths[len(widths)-1] += extra
	} else if extra < 0 {
		widths[0] = max(widths[0]+extra, 8)
	}

	lines := []string{
		renderTableRow(headers, widths, TableHeaderStyle),
		renderTableDivider(widths),
	}

	if len(m.view.Rows) == 0 {
		lines = append(lines, EmptyStateStyle.Render("No results found\nTry adjusting your search or filters"))
		return strings.Join(lines, "\n")
	}

	for i, row := range m.view.Rows {
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, len(cols))
		for j, col := range cols {
			v := row.Get(col.Key)
			text := util.TruncateString(col.Display(v), widths[j]-2)
			if col.Align == table.AlignRight {
				text = util.PadLeft(text, widths[j]-2)
			}
			if col.Key == "status" && i != m.cursor {
				text = statusStyle(v.String()).Render(text)
			}
			cells[j] = text
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}
	return strings.Join(lines, "\n")
}

func formatHeaderLabel(label string) string {
	return strings.ToUpper(label)
}

func renderActiveHeaderLabel(label string) string {
	return lipgloss.NewStyle().Underline(true).Render(label)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", total))
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
