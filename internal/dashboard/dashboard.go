// Package dashboard declares the boards the app ships with: their columns,
// display formats and facets.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"vista/internal/board"
	"vista/internal/filter"
	"vista/internal/model"
	"vista/internal/record"
	"vista/internal/table"
	"vista/internal/util"
)

const (
	Products  = "products"
	Customers = "customers"

	DefaultProductsPerPage  = 5
	DefaultCustomersPerPage = 10
)

var (
	ErrUnknownBoard  = errors.New("unknown board")
	ErrUnknownFilter = errors.New("unknown filter")
	ErrBadFilterArg  = errors.New("filter must be key=value")
)

// Layout holds the per-board page sizes.
type Layout struct {
	ProductsPerPage  int
	CustomersPerPage int
}

// Boards is the set of boards built from one dataset.
type Boards struct {
	Products  *board.Board
	Customers *board.Board
}

// Lookup returns the board called name.
func (b Boards) Lookup(name string) (*board.Board, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Products:
		return b.Products, nil
	case Customers:
		return b.Customers, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
}

// Names lists the board names in display order.
func Names() []string {
	return []string{Products, Customers}
}

func numeric(f func(float64) string) func(record.Value) string {
	return func(v record.Value) string {
		n, ok := v.Float()
		if !ok {
			return v.String()
		}
		return f(n)
	}
}

// ProductColumns is the product performance table.
func ProductColumns() table.Schema {
	return table.MustSchema(
		table.Column{Key: "name", Label: "Product Name", Sortable: true, Width: 26},
		table.Column{Key: "category", Label: "Category", Sortable: true, Width: 15},
		table.Column{Key: "sales", Label: "Sales", Sortable: true, Format: numeric(util.LocaleNumber), Width: 8, Align: table.AlignRight},
		table.Column{Key: "revenue", Label: "Revenue", Sortable: true, Format: numeric(util.FormatCurrency), Width: 10, Align: table.AlignRight},
		table.Column{Key: "growth", Label: "Growth", Sortable: true, Format: numeric(util.FormatGrowth), Width: 8, Align: table.AlignRight},
		table.Column{Key: "status", Label: "Status", Sortable: true, Width: 10},
	)
}

// ProductFilters offers a category select and a status checkbox group.
func ProductFilters() filter.Schema {
	return filter.Schema{
		{
			Key: "category", Label: "Category", Kind: filter.Select,
			Options: stringOptions("Electronics", "Clothing", "Home & Garden", "Sports", "Books"),
		},
		{
			Key: "status", Label: "Status", Kind: filter.Checkbox,
			Options: []filter.Option{
				{Value: record.Str("trending"), Label: "Trending"},
				{Value: record.Str("stable"), Label: "Stable"},
				{Value: record.Str("declining"), Label: "Declining"},
			},
		},
	}
}

// CustomerColumns is the customer segments table.
func CustomerColumns() table.Schema {
	return table.MustSchema(
		table.Column{Key: "segment", Label: "Segment", Sortable: true, Width: 16},
		table.Column{Key: "customers", Label: "Customers", Sortable: true, Format: numeric(util.LocaleNumber), Width: 10, Align: table.AlignRight},
		table.Column{Key: "revenue", Label: "Revenue", Sortable: true, Format: numeric(util.FormatCurrency), Width: 10, Align: table.AlignRight},
		table.Column{Key: "avgOrderValue", Label: "Avg Order Value", Sortable: true, Format: numeric(util.FormatCurrency), Width: 16, Align: table.AlignRight},
		table.Column{Key: "retention", Label: "Retention", Sortable: true, Format: numeric(util.FormatPercent), Width: 10, Align: table.AlignRight},
	)
}

func stringOptions(values ...string) []filter.Option {
	out := make([]filter.Option, len(values))
	for i, v := range values {
		out[i] = filter.Option{Value: record.Str(v), Label: v}
	}
	return out
}

// New builds both boards over ds.
func New(ds model.Dataset, layout Layout, logger *slog.Logger) (Boards, error) {
	if layout.ProductsPerPage <= 0 {
		layout.ProductsPerPage = DefaultProductsPerPage
	}
	if layout.CustomersPerPage <= 0 {
		layout.CustomersPerPage = DefaultCustomersPerPage
	}

	products, err := board.New(board.Config{
		Name:       Products,
		Title:      "Product Performance",
		Columns:    ProductColumns(),
		Filters:    ProductFilters(),
		Searchable: true,
		PerPage:    layout.ProductsPerPage,
	}, ds.ProductRecords(), logger)
	if err != nil {
		return Boards{}, fmt.Errorf("failed to build products board: %w", err)
	}

	customers, err := board.New(board.Config{
		Name:    Customers,
		Title:   "Customer Segments",
		Columns: CustomerColumns(),
		PerPage: layout.CustomersPerPage,
	}, ds.CustomerRecords(), logger)
	if err != nil {
		return Boards{}, fmt.Errorf("failed to build customers board: %w", err)
	}

	return Boards{Products: products, Customers: customers}, nil
}

// ApplyFilterArg applies a "key=value" argument to s. Checkbox facets take a
// comma-separated list of values. Values matching an option's text use that
// option's value; anything else is parsed as a number or string.
func ApplyFilterArg(b *board.Board, s board.State, arg string) (board.State, error) {
	key, raw, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return s, fmt.Errorf("%w: %q", ErrBadFilterArg, arg)
	}
	spec, ok := b.Filters().Lookup(key)
	if !ok {
		return s, fmt.Errorf("%w %q on board %s (have %s)", ErrUnknownFilter, key, b.Name(), strings.Join(filterKeys(b.Filters()), ", "))
	}

	if spec.Kind == filter.Checkbox {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s = b.Apply(s, board.ToggleFilter(key, optionValue(spec, part), true))
		}
		return s, nil
	}
	return b.Apply(s, board.SelectFilter(key, optionValue(spec, strings.TrimSpace(raw)))), nil
}

func optionValue(spec filter.Spec, text string) record.Value {
	for _, o := range spec.Options {
		if strings.EqualFold(o.Value.String(), text) {
			return o.Value
		}
	}
	return record.Parse(text)
}

func filterKeys(fs filter.Schema) []string {
	keys := make([]string, 0, len(fs))
	for _, spec := range fs {
		keys = append(keys, spec.Key)
	}
	sort.Strings(keys)
	return keys
}
