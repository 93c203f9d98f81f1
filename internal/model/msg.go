package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when every dataset has been read from the database.
type DatasetLoadedMsg struct {
	Dataset Dataset
}

// ExportsLoadedMsg is sent when the export history is loaded.
type ExportsLoadedMsg struct {
	Exports []ExportRecord
}

// ExportDoneMsg is sent when a CSV export has been written and audited.
type ExportDoneMsg struct {
	Record ExportRecord
}

// ClipboardCopiedMsg is sent when an export was copied to the clipboard.
type ClipboardCopiedMsg struct {
	Board string
	Rows  int
}

// Screen represents different app screens.
type Screen int

const (
	ScreenOverview Screen = iota
	ScreenProducts
	ScreenCustomers
	ScreenSettings
	ScreenRowDetail
)

// TabScreens lists the screens reachable from the tab bar, in order.
var TabScreens = []Screen{ScreenOverview, ScreenProducts, ScreenCustomers, ScreenSettings}

func (s Screen) String() string {
	switch s {
	case ScreenOverview:
		return "overview"
	case ScreenProducts:
		return "products"
	case ScreenCustomers:
		return "customers"
	case ScreenSettings:
		return "settings"
	case ScreenRowDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseScreen maps a stored screen name back to a Screen.
func ParseScreen(name string) (Screen, bool) {
	for _, s := range TabScreens {
		if s.String() == name {
			return s, true
		}
	}
	return ScreenOverview, false
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeSearch
	ModeFilter
)
