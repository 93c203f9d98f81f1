package table

import (
	"errors"
	"fmt"

	"vista/internal/record"
)

var (
	ErrEmptyKey     = errors.New("column key is empty")
	ErrDuplicateKey = errors.New("duplicate column key")
)

// Align controls horizontal alignment of a rendered cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column. Format only changes how a value is
// displayed; search, sort and export always read the raw value.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Format   func(record.Value) string
	Width    int
	Align    Align
}

// Display renders v for the screen. Absent values render as "".
func (c Column) Display(v record.Value) string {
	if v.IsAbsent() {
		return ""
	}
	if c.Format != nil {
		return c.Format(v)
	}
	return v.String()
}

// Schema is an ordered, validated set of columns.
type Schema struct {
	cols  []Column
	index map[string]int
}

// NewSchema validates column keys once: every key must be non-empty and unique.
func NewSchema(cols ...Column) (Schema, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Key == "" {
			return Schema{}, fmt.Errorf("column %d: %w", i, ErrEmptyKey)
		}
		if _, dup := index[c.Key]; dup {
			return Schema{}, fmt.Errorf("column %q: %w", c.Key, ErrDuplicateKey)
		}
		index[c.Key] = i
	}
	return Schema{
		cols:  append([]Column(nil), cols...),
		index: index,
	}, nil
}

// MustSchema is NewSchema for static column sets; it panics on a bad schema.
func MustSchema(cols ...Column) Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.cols) }

// At returns the i-th column.
func (s Schema) At(i int) Column { return s.cols[i] }

// Columns returns a copy of the columns in schema order.
func (s Schema) Columns() []Column {
	return append([]Column(nil), s.cols...)
}

// Column looks a column up by key.
func (s Schema) Column(key string) (Column, bool) {
	i, ok := s.index[key]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Index returns the position of key, or -1.
func (s Schema) Index(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return -1
}
