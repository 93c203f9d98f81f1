package filter

import "vista/internal/record"

// Kind is the selection model of a facet.
type Kind int

const (
	// Select holds at most one value.
	Select Kind = iota
	// Checkbox holds a set of values.
	Checkbox
)

func (k Kind) String() string {
	if k == Checkbox {
		return "checkbox"
	}
	return "select"
}

// Option is one choice offered by a facet.
type Option struct {
	Value record.Value
	Label string
}

// Spec describes a single filterable dimension.
type Spec struct {
	Key     string
	Label   string
	Kind    Kind
	Options []Option
}

// OptionLabel returns the label of the option holding v.
func (s Spec) OptionLabel(v record.Value) (string, bool) {
	for _, o := range s.Options {
		if o.Value.Equal(v) {
			return o.Label, true
		}
	}
	return "", false
}

// Schema is the ordered list of facets offered to the user.
type Schema []Spec

// Lookup finds the facet for key.
func (s Schema) Lookup(key string) (Spec, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec, true
		}
	}
	return Spec{}, false
}
