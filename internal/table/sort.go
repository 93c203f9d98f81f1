package table

import (
	"slices"
	"strings"

	"vista/internal/record"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the active sort. An empty Key means input order.
type SortState struct {
	Key string
	Dir Direction
}

// Active reports whether a sort key is set.
func (s SortState) Active() bool { return s.Key != "" }

// Indicator is the per-column sort marker shown in a header.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorAsc
	IndicatorDesc
)

// Arrow returns the header glyph for the indicator.
func (i Indicator) Arrow() string {
	switch i {
	case IndicatorAsc:
		return "↑"
	case IndicatorDesc:
		return "↓"
	default:
		return ""
	}
}

// Marker is the header glyph for a column: the direction arrow when it is
// the sort key, a neutral "↕" when it could be sorted, otherwise "".
func (i Indicator) Marker(sortable bool) string {
	if a := i.Arrow(); a != "" {
		return a
	}
	if sortable {
		return "↕"
	}
	return ""
}

// IndicatorFor returns the marker column key should show under s.
func IndicatorFor(s SortState, key string) Indicator {
	if !s.Active() || s.Key != key {
		return IndicatorNone
	}
	if s.Dir == Descending {
		return IndicatorDesc
	}
	return IndicatorAsc
}

// Click applies a header click to s. Non-sortable and unknown columns are
// ignored; clicking the active column flips its direction; any other
// sortable column becomes the key, ascending.
func Click(schema Schema, s SortState, key string) SortState {
	col, ok := schema.Column(key)
	if !ok || !col.Sortable {
		return s
	}
	if s.Key == key {
		if s.Dir == Ascending {
			s.Dir = Descending
		} else {
			s.Dir = Ascending
		}
		return s
	}
	return SortState{Key: key, Dir: Ascending}
}

// Compare orders two raw values ascending. Equal values compare 0, two
// numbers compare numerically, anything else compares by lowercased string
// form. Absent values order after present ones.
func Compare(a, b record.Value) int {
	if a.Equal(b) {
		return 0
	}
	switch {
	case a.IsAbsent():
		return 1
	case b.IsAbsent():
		return -1
	}

	af, aNum := a.Float()
	bf, bNum := b.Float()
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

// Sort returns a stably sorted copy of rows. When s has no key, or the key
// names no sortable column in schema, the copy keeps input order.
func Sort(rows []record.Row, schema Schema, s SortState) []record.Row {
	out := append([]record.Row(nil), rows...)
	if !s.Active() {
		return out
	}
	col, ok := schema.Column(s.Key)
	if !ok || !col.Sortable {
		return out
	}

	key := s.Key
	desc := s.Dir == Descending
	slices.SortStableFunc(out, func(a, b record.Row) int {
		c := Compare(a.Get(key), b.Get(key))
		if desc {
			return -c
		}
		return c
	})
	return out
}
