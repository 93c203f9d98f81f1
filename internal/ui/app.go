package ui

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vista/internal/board"
	"vista/internal/dashboard"
	"vista/internal/db"
	"vista/internal/model"
	"vista/internal/record"
	"vista/internal/table"
)

const loadTimeout = 10 * time.Second

// Options configures the root model.
type Options struct {
	DB           *sql.DB
	Logger       *slog.Logger
	Layout       dashboard.Layout
	ExportDir    string
	CSVMode      table.ExportMode
	PrefsPath    string // empty disables persisted preferences
	Config       []ConfigEntry
	Capabilities TerminalCapabilities
}

// Model is the root Bubble Tea model.
type Model struct {
	db     *sql.DB
	logger *slog.Logger
	opts   Options

	screen     model.Screen
	prevScreen model.Screen
	mode       model.Mode
	gState     GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool
	loading     spinner.Model

	// Screen models
	overview  *OverviewModel
	products  *BoardModel
	customers *BoardModel
	settings  *SettingsModel
	detail    *RowDetailModel

	// state of the board when the search box was focused
	searchBefore board.State

	keys      KeyMap
	inputKeys InputKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prefs := loadUIPreferences(opts.PrefsPath)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	screen := model.ScreenOverview
	if s, ok := model.ParseScreen(prefs.LastScreen); ok {
		screen = s
	}
	return Model{
		db:        opts.DB,
		logger:    logger,
		opts:      opts,
		screen:    screen,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		loading:   sp,
		settings:  NewSettingsModel(opts.Config),
		keys:      DefaultKeyMap(),
		inputKeys: DefaultInputKeyMap(),
		prefs:     prefs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadDatasetCmd(m.db), loadExportsCmd(m.db), m.loading.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case model.ModeSearch:
			return m.handleSearchMode(msg)
		case model.ModeFilter:
			return m.handleFilterMode(msg)
		}

		if m.columnJump {
			return m.handleColumnJump(msg)
		}

		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error("command failed", "err", msg.Err)
		return m, nil

	case model.DatasetLoadedMsg:
		m.loadDataset(msg.Dataset)
		return m, nil

	case spinner.TickMsg:
		if m.overview != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd

	case model.ExportsLoadedMsg:
		m.settings.SetExports(msg.Exports)
		return m, nil

	case model.ExportDoneMsg:
		m.info = fmt.Sprintf("Exported %d rows to %s", msg.Record.Rows, msg.Record.Path)
		m.error = ""
		m.logger.Info("export written", "board", msg.Record.Board, "rows", msg.Record.Rows, "path", msg.Record.Path)
		return m, loadExportsCmd(m.db)

	case model.ClipboardCopiedMsg:
		m.info = fmt.Sprintf("Copied %d rows from %s to clipboard", msg.Rows, msg.Board)
		m.error = ""
		return m, loadExportsCmd(m.db)

	default:
		// cursor blink and similar messages belong to the search box
		if m.mode == model.ModeSearch {
			if t := m.currentBoard(); t != nil {
				var cmd tea.Cmd
				t.search, cmd = t.search.Update(msg)
				return m, cmd
			}
		}
	}

	return m, nil
}

func (m *Model) loadDataset(ds model.Dataset) {
	boards, err := dashboard.New(ds, m.opts.Layout, m.logger)
	if err != nil {
		m.error = err.Error()
		return
	}
	m.overview = NewOverviewModel(ds, m.opts.Capabilities)
	m.products = NewBoardModel(boards.Products)
	m.products.ApplyPrefs(m.prefs.Boards[dashboard.Products])
	m.customers = NewBoardModel(boards.Customers)
	m.customers.ApplyPrefs(m.prefs.Boards[dashboard.Customers])
	m.undoStack = nil
	m.redoStack = nil
	m.error = ""
	m.logger.Debug("dataset loaded", "products", len(ds.Products), "customers", len(ds.Customers))
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	showTabs := m.screen != model.ScreenRowDetail

	// Header: 2 lines, Footer: 2 lines, Tabs: 2 lines (if shown)
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}
	contentHeight = max(contentHeight, 1)

	var content string
	var breadcrumbParts []string

	switch m.screen {
	case model.ScreenOverview:
		breadcrumbParts = []string{"Overview"}
		if m.overview != nil {
			content = m.overview.View(m.width, contentHeight)
		}
	case model.ScreenProducts:
		breadcrumbParts = []string{"Products"}
		if m.products != nil {
			content = m.products.View(m.width, contentHeight, m.mode == model.ModeFilter)
		}
	case model.ScreenCustomers:
		breadcrumbParts = []string{"Customers"}
		if m.customers != nil {
			content = m.customers.View(m.width, contentHeight, m.mode == model.ModeFilter)
		}
	case model.ScreenSettings:
		breadcrumbParts = []string{"Settings"}
		content = m.settings.View(m.width, contentHeight)
	case model.ScreenRowDetail:
		breadcrumbParts = []string{m.prevScreen.String(), "Detail"}
		if m.detail != nil {
			breadcrumbParts = []string{m.prevScreenTitle(), m.detail.Title()}
			content = m.detail.View(m.width, contentHeight)
		}
	}
	if content == "" && m.overview == nil {
		content = EmptyStateStyle.Render(m.loading.View() + " Loading dashboard...")
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) prevScreenTitle() string {
	if t := m.boardModel(m.prevScreen.String()); t != nil {
		return t.Board().Title()
	}
	return m.prevScreen.String()
}

func renderTabs(screen model.Screen, width int) string {
	tabs := []struct {
		name   string
		screen model.Screen
	}{
		{"1 Overview", model.ScreenOverview},
		{"2 Products", model.ScreenProducts},
		{"3 Customers", model.ScreenCustomers},
		{"4 Settings", model.ScreenSettings},
	}

	var tabStrings []string
	for _, tab := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("vista")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	dateStr := time.Now().Format("Mon 02 Jan")
	right := BreadcrumbStyle.Render(dateStr) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if t := m.currentTable(); t != nil {
			t.FirstPage()
		}
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persistPrefs()
		return m, tea.Quit
	case key.Matches(msg, m.keys.TabOverview):
		return m.switchScreen(model.ScreenOverview)
	case key.Matches(msg, m.keys.TabProducts):
		return m.switchScreen(model.ScreenProducts)
	case key.Matches(msg, m.keys.TabCustomers):
		return m.switchScreen(model.ScreenCustomers)
	case key.Matches(msg, m.keys.TabSettings):
		return m.switchScreen(model.ScreenSettings)
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		m.applyUndoResult(m.undo())
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		m.applyUndoResult(m.redo())
		return m, nil
	}

	if m.screen == model.ScreenRowDetail {
		return m.handleDetailNav(msg)
	}

	switch {
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchScreen(m.adjacentTab(-1))
	case key.Matches(msg, m.keys.NextTab):
		return m.switchScreen(m.adjacentTab(1))
	}

	if t := m.currentTable(); t != nil && m.handleTableNav(t, msg) {
		return m, nil
	}
	if t := m.currentBoard(); t != nil {
		return m.handleBoardNav(t, msg)
	}
	return m, nil
}

func (m Model) handleBoardNav(t *BoardModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Sort):
		before := t.State()
		m.info = t.SortActiveColumn()
		m.recordUndo(t, board.SortClicked.String(), before)
	case key.Matches(msg, m.keys.Search):
		if !t.Board().Searchable() {
			m.info = fmt.Sprintf("Search is not available for %s", t.Board().Title())
			return m, nil
		}
		m.mode = model.ModeSearch
		m.searchBefore = t.State()
		t.searchFocus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filters):
		if t.panel.empty() {
			m.info = fmt.Sprintf("%s has no filters", t.Board().Title())
			return m, nil
		}
		m.mode = model.ModeFilter
	case key.Matches(msg, m.keys.ClearFilters):
		if m.applyIntent(t, board.ClearFilters()) {
			m.info = "Filters cleared"
		}
	case key.Matches(msg, m.keys.Export):
		m.info = "Exporting..."
		return m, exportCmd(m.db, t.Board(), t.State(), m.opts.ExportDir, m.opts.CSVMode)
	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.db, t.Board(), t.State(), m.opts.CSVMode)
	case key.Matches(msg, m.keys.Select):
		row, ok := t.SelectedRow()
		if !ok {
			return m, nil
		}
		m.detail = NewRowDetailModel(t.Board().Title(), t.Board().Columns(), row)
		m.prevScreen = m.screen
		m.screen = model.ScreenRowDetail
	}
	return m, nil
}

func (m Model) handleDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.prevScreen
		m.detail = nil
	case key.Matches(msg, m.keys.Copy):
		if m.detail == nil {
			return m, nil
		}
		return m, copyRowCmd(m.detail.columns, m.detail.row, m.opts.CSVMode)
	}
	return m, nil
}

func (m Model) handleColumnJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.columnJump = false
		m.info = ""
		return m, nil
	}
	n, err := strconv.Atoi(msg.String())
	if err != nil {
		return m, nil
	}
	if t := m.currentTable(); t != nil && t.JumpToColumn(n) {
		m.columnJump = false
		m.info = fmt.Sprintf("Jumped to column %d", n)
		m.persistPrefs()
		return m, nil
	}
	m.info = fmt.Sprintf("Column %d unavailable", n)
	return m, nil
}

// handleSearchMode feeds keys to the search box and applies the text on
// every keystroke.
func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentBoard()
	if t == nil {
		m.mode = model.ModeNav
		return m, nil
	}

	switch {
	case key.Matches(msg, m.inputKeys.Accept):
		t.searchBlur()
		m.mode = model.ModeNav
		m.recordUndo(t, board.SearchChanged.String(), m.searchBefore)
		return m, nil
	case key.Matches(msg, m.inputKeys.Cancel):
		t.searchBlur()
		t.Apply(board.Search(""))
		t.search.SetValue("")
		m.mode = model.ModeNav
		m.recordUndo(t, board.SearchChanged.String(), m.searchBefore)
		return m, nil
	}

	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	if text := t.search.Value(); text != t.State().Search {
		t.Apply(board.Search(text))
	}
	return m, cmd
}

func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentBoard()
	if t == nil {
		m.mode = model.ModeNav
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Filters):
		m.mode = model.ModeNav
	case key.Matches(msg, m.keys.Down):
		t.panel.moveDown()
	case key.Matches(msg, m.keys.Up):
		t.panel.moveUp()
	case key.Matches(msg, m.keys.Toggle):
		if in, ok := t.panel.intent(t.State().Filters); ok {
			m.applyIntent(t, in)
		}
	case key.Matches(msg, m.keys.RemoveFilter):
		if m.applyIntent(t, board.RemoveFilter(t.panel.facetKey())) {
			m.info = "Filter removed"
		}
	case key.Matches(msg, m.keys.ClearFilters):
		if m.applyIntent(t, board.ClearFilters()) {
			m.info = "Filters cleared"
		}
	}
	return m, nil
}

// recordUndo pushes an undo step if t moved away from before.
func (m *Model) recordUndo(t *BoardModel, label string, before board.State) {
	if sameState(before, t.State()) {
		return
	}
	m.pushUndoAction(undoAction{
		label:  label,
		board:  t.Board().Name(),
		before: before,
		after:  t.State(),
	})
}

func (m Model) switchScreen(screen model.Screen) (tea.Model, tea.Cmd) {
	if screen == m.screen {
		return m, nil
	}
	m.screen = screen
	m.info = ""
	m.logger.Debug("screen changed", "screen", screen.String())
	m.persistPrefs()
	return m, nil
}

func (m Model) adjacentTab(step int) model.Screen {
	n := len(model.TabScreens)
	for i, s := range model.TabScreens {
		if s == m.screen {
			return model.TabScreens[((i+step)%n+n)%n]
		}
	}
	return model.ScreenOverview
}

// currentBoard returns the board model of the active screen, if any.
func (m *Model) currentBoard() *BoardModel {
	switch m.screen {
	case model.ScreenProducts:
		return m.products
	case model.ScreenCustomers:
		return m.customers
	}
	return nil
}

func (m *Model) boardModel(name string) *BoardModel {
	switch name {
	case dashboard.Products:
		return m.products
	case dashboard.Customers:
		return m.customers
	}
	return nil
}

func (m *Model) persistPrefs() {
	if m.screen != model.ScreenRowDetail {
		m.prefs.LastScreen = m.screen.String()
	}
	for _, t := range []*BoardModel{m.products, m.customers} {
		if t != nil {
			m.prefs.Boards[t.Board().Name()] = t.Prefs()
		}
	}
	if err := saveUIPreferences(m.opts.PrefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save preferences", "err", err)
	}
}

// Commands

func loadDatasetCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		if database == nil {
			return model.DatasetLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		ds, err := db.LoadDataset(ctx, database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DatasetLoadedMsg{Dataset: ds}
	}
}

func loadExportsCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		if database == nil {
			return nil
		}
		exports, err := db.ListExports(database, 20)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExportsLoadedMsg{Exports: exports}
	}
}

// WriteExport writes every row matching s to a timestamped CSV file in dir
// and returns its path and row count.
func WriteExport(b *board.Board, s board.State, dir string, mode table.ExportMode) (string, int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create export dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.csv", b.Name(), time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create export file: %w", err)
	}
	n, err := b.Export(f, s, mode)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close export file: %w", cerr)
	}
	if err != nil {
		return "", 0, err
	}
	return path, n, nil
}

func exportCmd(database *sql.DB, b *board.Board, s board.State, dir string, mode table.ExportMode) tea.Cmd {
	return func() tea.Msg {
		path, n, err := WriteExport(b, s, dir, mode)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if database == nil {
			return model.ExportDoneMsg{Record: model.ExportRecord{
				Board: b.Name(), Rows: n, Path: path, Mode: mode.String(), CreatedAt: time.Now(),
			}}
		}
		rec, err := db.RecordExport(database, b.Name(), n, path, mode.String())
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExportDoneMsg{Record: rec}
	}
}

func copyCmd(database *sql.DB, b *board.Board, s board.State, mode table.ExportMode) tea.Cmd {
	return func() tea.Msg {
		rows := b.Sorted(s)
		text, err := table.ExportString(b.Columns(), rows, mode)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to build csv: %w", err)}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		if database != nil {
			if _, err := db.RecordExport(database, b.Name(), len(rows), "", mode.String()); err != nil {
				return model.ErrorMsg{Err: err}
			}
		}
		return model.ClipboardCopiedMsg{Board: b.Name(), Rows: len(rows)}
	}
}

func copyRowCmd(columns table.Schema, row record.Row, mode table.ExportMode) tea.Cmd {
	return func() tea.Msg {
		text, err := table.ExportString(columns, []record.Row{row}, mode)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to build csv: %w", err)}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return model.ClipboardCopiedMsg{Board: "row", Rows: 1}
	}
}
