package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevTab      key.Binding
	NextTab      key.Binding
	TabOverview  key.Binding
	TabProducts  key.Binding
	TabCustomers key.Binding
	TabSettings  key.Binding
	Select       key.Binding
	Back         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	NextColumn   key.Binding
	PrevColumn   key.Binding
	JumpColumn   key.Binding
	Sort         key.Binding
	Search       key.Binding
	Filters      key.Binding
	Toggle       key.Binding
	ClearFilters key.Binding
	RemoveFilter key.Binding
	Export       key.Binding
	Copy         key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next tab"),
		),
		TabOverview: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "overview"),
		),
		TabProducts: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "products"),
		),
		TabCustomers: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "customers"),
		),
		TabSettings: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "settings"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "first page"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "h", "pgup"),
			key.WithHelp("[/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "l", "pgdown"),
			key.WithHelp("]/l", "next page"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next col"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev col"),
		),
		JumpColumn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c 1-9", "jump col"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort col"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		RemoveFilter: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove filter"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy csv"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InputKeyMap defines keybindings while the search box has focus.
type InputKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

// DefaultInputKeyMap returns the default search input keybindings.
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}
