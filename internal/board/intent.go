package board

import (
	"vista/internal/filter"
	"vista/internal/record"
	"vista/internal/table"
)

// State is everything the user controls on one board. Boards never hold
// it; the caller owns it and threads it through Apply and Derive.
type State struct {
	Filters filter.State
	Search  string
	Sort    table.SortState
	Page    int
}

// Initial is the state of a freshly mounted board.
func Initial() State {
	return State{Page: 1}
}

// IntentKind enumerates the UI events a board reacts to.
type IntentKind int

const (
	SearchChanged IntentKind = iota
	SortClicked
	PageRequested
	FilterSelected
	FilterToggled
	FiltersCleared
	FilterRemoved
)

var intentNames = [...]string{
	SearchChanged:  "search-changed",
	SortClicked:    "sort-clicked",
	PageRequested:  "page-requested",
	FilterSelected: "filter-selected",
	FilterToggled:  "filter-toggled",
	FiltersCleared: "filters-cleared",
	FilterRemoved:  "filter-removed",
}

func (k IntentKind) String() string {
	if int(k) >= 0 && int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "unknown"
}

// Intent is one UI event. Only the fields its Kind names are read.
type Intent struct {
	Kind    IntentKind
	Text    string
	Key     string
	Value   record.Value
	Checked bool
	Page    int
}

// Search changes the free-text query.
func Search(text string) Intent {
	return Intent{Kind: SearchChanged, Text: text}
}

// ClickSort is a click on a column header.
func ClickSort(key string) Intent {
	return Intent{Kind: SortClicked, Key: key}
}

// RequestPage asks for page n (1-based).
func RequestPage(n int) Intent {
	return Intent{Kind: PageRequested, Page: n}
}

// SelectFilter sets a single-select facet; an absent value clears it.
func SelectFilter(key string, v record.Value) Intent {
	return Intent{Kind: FilterSelected, Key: key, Value: v}
}

// ToggleFilter checks or unchecks one checkbox option.
func ToggleFilter(key string, v record.Value, checked bool) Intent {
	return Intent{Kind: FilterToggled, Key: key, Value: v, Checked: checked}
}

// ClearFilters drops every filter.
func ClearFilters() Intent {
	return Intent{Kind: FiltersCleared}
}

// RemoveFilter drops the filter on key.
func RemoveFilter(key string) Intent {
	return Intent{Kind: FilterRemoved, Key: key}
}
