package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tableController is what the app needs from a table screen to route
// cursor, paging and column keys, independent of which board it shows.
type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	NextPage() bool
	PrevPage() bool
	FirstPage() bool
	LastPage() bool
	MoveUp()
	MoveDown()
}

// currentTable returns the table of the active screen, if any.
func (m *Model) currentTable() tableController {
	if t := m.currentBoard(); t != nil {
		return t
	}
	return nil
}

// handleTableNav applies keys every table screen shares. It reports
// whether msg was consumed.
func (m *Model) handleTableNav(t tableController, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		t.LastPage()
	case key.Matches(msg, m.keys.NextPage):
		t.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		t.PrevPage()
	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
		m.persistPrefs()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
		m.persistPrefs()
	case key.Matches(msg, m.keys.JumpColumn):
		m.columnJump = true
		m.info = "Jump to column: press 1-9 (esc to cancel)"
	default:
		return false
	}
	return true
}
