package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"vista/internal/record"
)

type selection struct {
	kind   Kind
	value  record.Value   // Select
	values []record.Value // Checkbox, insertion order, never empty
}

// State is the set of active filter selections. It is an immutable value:
// every transition returns a new State and leaves the receiver untouched.
// The zero State has no active filters.
//
// A checkbox key is never stored with an empty set, so ActiveCount always
// counts keys that constrain something.
type State struct {
	m map[string]selection
}

func (s State) clone() State {
	m := make(map[string]selection, len(s.m))
	for k, v := range s.m {
		m[k] = v
	}
	return State{m: m}
}

// SetSelect sets a single-value constraint. An absent or empty-string value
// removes the key. Values are not checked against the facet's options.
func (s State) SetSelect(key string, v record.Value) State {
	out := s.clone()
	if v.IsAbsent() || (v.IsString() && v.String() == "") {
		delete(out.m, key)
		return out
	}
	out.m[key] = selection{kind: Select, value: v}
	return out
}

// ToggleCheckbox adds v to, or removes it from, the set at key. Removing the
// last value removes the key. Repeating a toggle is a no-op.
func (s State) ToggleCheckbox(key string, v record.Value, checked bool) State {
	if v.IsAbsent() {
		return s
	}
	var current []record.Value
	if sel, ok := s.m[key]; ok && sel.kind == Checkbox {
		current = sel.values
	}

	has := containsValue(current, v)
	if checked == has {
		return s
	}

	var next []record.Value
	if checked {
		next = append(slices.Clip(current), v)
	} else {
		next = make([]record.Value, 0, len(current))
		for _, c := range current {
			if !c.Equal(v) {
				next = append(next, c)
			}
		}
	}

	out := s.clone()
	if len(next) == 0 {
		delete(out.m, key)
		return out
	}
	out.m[key] = selection{kind: Checkbox, values: next}
	return out
}

// ClearAll drops every selection.
func (s State) ClearAll() State {
	return State{}
}

// Remove drops key whatever its kind.
func (s State) Remove(key string) State {
	if _, ok := s.m[key]; !ok {
		return s
	}
	out := s.clone()
	delete(out.m, key)
	return out
}

// ActiveCount is the number of keys carrying a constraint.
func (s State) ActiveCount() int {
	return len(s.m)
}

// Active reports whether key carries a constraint.
func (s State) Active(key string) bool {
	_, ok := s.m[key]
	return ok
}

// Keys returns the active keys in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Selected returns the value of a Select constraint.
func (s State) Selected(key string) (record.Value, bool) {
	sel, ok := s.m[key]
	if !ok || sel.kind != Select {
		return record.Value{}, false
	}
	return sel.value, true
}

// Values returns a copy of a Checkbox constraint's set.
func (s State) Values(key string) []record.Value {
	sel, ok := s.m[key]
	if !ok || sel.kind != Checkbox {
		return nil
	}
	return append([]record.Value(nil), sel.values...)
}

// Checked reports whether v is in the Checkbox set at key.
func (s State) Checked(key string, v record.Value) bool {
	sel, ok := s.m[key]
	return ok && sel.kind == Checkbox && containsValue(sel.values, v)
}

// Equal reports whether both states hold the same constraints. Checkbox
// sets compare as sets.
func (s State) Equal(o State) bool {
	if len(s.m) != len(o.m) {
		return false
	}
	for k, a := range s.m {
		b, ok := o.m[k]
		if !ok || a.kind != b.kind {
			return false
		}
		switch a.kind {
		case Select:
			if !a.value.Equal(b.value) {
				return false
			}
		case Checkbox:
			if len(a.values) != len(b.values) {
				return false
			}
			for _, v := range a.values {
				if !containsValue(b.values, v) {
					return false
				}
			}
		}
	}
	return true
}

// Fingerprint is a canonical string for the state, equal for Equal states.
func (s State) Fingerprint() string {
	var sb strings.Builder
	for _, k := range s.Keys() {
		sel := s.m[k]
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte('=')
		switch sel.kind {
		case Select:
			sb.WriteString(valueKey(sel.value))
		case Checkbox:
			parts := make([]string, len(sel.values))
			for i, v := range sel.values {
				parts[i] = valueKey(v)
			}
			slices.Sort(parts)
			sb.WriteByte('[')
			sb.WriteString(strings.Join(parts, ","))
			sb.WriteByte(']')
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// Predicate combines every active constraint with AND. A Select constraint
// requires row[key] to equal its value, a Checkbox constraint requires
// row[key] to be in its set. Keys with no facet in schema are ignored.
func (s State) Predicate(schema Schema) func(record.Row) bool {
	type constraint struct {
		key string
		sel selection
	}
	var cs []constraint
	for _, k := range s.Keys() {
		if _, ok := schema.Lookup(k); !ok {
			continue
		}
		cs = append(cs, constraint{key: k, sel: s.m[k]})
	}

	return func(row record.Row) bool {
		for _, c := range cs {
			v := row.Get(c.key)
			switch c.sel.kind {
			case Select:
				if !v.Equal(c.sel.value) {
					return false
				}
			case Checkbox:
				if !containsValue(c.sel.values, v) {
					return false
				}
			}
		}
		return true
	}
}

// Summary is the display line for one active filter.
type Summary struct {
	Key     string
	Label   string
	Display string
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: %s", s.Label, s.Display)
}

// Summaries lists active filters in schema order. Checkbox filters show
// "N selected"; select filters show the option label, or the raw value when
// no option matches. Keys with no facet are skipped.
func (s State) Summaries(schema Schema) []Summary {
	var out []Summary
	for _, spec := range schema {
		sel, ok := s.m[spec.Key]
		if !ok {
			continue
		}
		var display string
		switch sel.kind {
		case Checkbox:
			display = fmt.Sprintf("%d selected", len(sel.values))
		default:
			display = sel.value.String()
			if label, ok := spec.OptionLabel(sel.value); ok {
				display = label
			}
		}
		out = append(out, Summary{Key: spec.Key, Label: spec.Label, Display: display})
	}
	return out
}

func containsValue(vs []record.Value, v record.Value) bool {
	for _, c := range vs {
		if c.Equal(v) {
			return true
		}
	}
	return false
}

func valueKey(v record.Value) string {
	switch v.Kind() {
	case record.KindNumber:
		return "n:" + v.String()
	case record.KindString:
		return "s:" + strconv.Quote(v.String())
	default:
		return "-"
	}
}
