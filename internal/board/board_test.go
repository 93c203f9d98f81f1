package board

import (
	"bytes"
	"strings"
	"testing"

	"vista/internal/filter"
	"vista/internal/record"
	"vista/internal/table"
)

func product(id int64, name, category string, sales, revenue int64, growth float64, status string) record.Row {
	return record.Row{
		"id":       record.Int(id),
		"name":     record.Str(name),
		"category": record.Str(category),
		"sales":    record.Int(sales),
		"revenue":  record.Int(revenue),
		"growth":   record.Num(growth),
		"status":   record.Str(status),
	}
}

func products() []record.Row {
	return []record.Row{
		product(1, "Wireless Headphones Pro", "Electronics", 1250, 87500, 15.3, "trending"),
		product(2, "Smart Fitness Watch", "Electronics", 980, 68600, 12.7, "trending"),
		product(3, "Premium Cotton T-Shirt", "Clothing", 2100, 52500, 8.2, "stable"),
		product(4, "Running Shoes Elite", "Sports", 750, 97500, 18.9, "trending"),
		product(5, "Organic Coffee Beans", "Home & Garden", 3200, 64000, -2.1, "declining"),
		product(6, "Yoga Mat Premium", "Sports", 890, 44500, 6.5, "stable"),
		product(7, "LED Desk Lamp", "Electronics", 1450, 58000, 10.1, "stable"),
		product(8, "Leather Wallet", "Clothing", 1680, 84000, 14.6, "trending"),
		product(9, "Gardening Tool Set", "Home & Garden", 620, 37200, -4.3, "declining"),
		product(10, "Cookbook Collection", "Books", 1920, 57600, 5.8, "stable"),
	}
}

func newProductBoard(t *testing.T, searchable bool) *Board {
	t.Helper()
	cols := table.MustSchema(
		table.Column{Key: "name", Label: "Product Name", Sortable: true},
		table.Column{Key: "category", Label: "Category", Sortable: true},
		table.Column{Key: "sales", Label: "Sales", Sortable: true},
		table.Column{Key: "revenue", Label: "Revenue", Sortable: true},
		table.Column{Key: "growth", Label: "Growth", Sortable: true},
		table.Column{Key: "status", Label: "Status"},
	)
	facets := filter.Schema{
		{Key: "category", Label: "Category", Kind: filter.Select, Options: []filter.Option{
			{Value: record.Str("Electronics"), Label: "Electronics"},
			{Value: record.Str("Clothing"), Label: "Clothing"},
			{Value: record.Str("Home & Garden"), Label: "Home & Garden"},
			{Value: record.Str("Sports"), Label: "Sports"},
			{Value: record.Str("Books"), Label: "Books"},
		}},
		{Key: "status", Label: "Status", Kind: filter.Checkbox, Options: []filter.Option{
			{Value: record.Str("trending"), Label: "Trending"},
			{Value: record.Str("stable"), Label: "Stable"},
			{Value: record.Str("declining"), Label: "Declining"},
		}},
	}
	b, err := New(Config{
		Name:       "products",
		Columns:    cols,
		Filters:    facets,
		Searchable: searchable,
		PerPage:    5,
	}, products(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func names(rows []record.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get("name").String()
	}
	return out
}

func apply(b *Board, s State, intents ...Intent) State {
	for _, in := range intents {
		s = b.Apply(s, in)
	}
	return s
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := New(Config{}, nil, nil); err != ErrNoName {
		t.Errorf("err = %v, want ErrNoName", err)
	}
}

func TestNewDefaults(t *testing.T) {
	b, err := New(Config{Name: "x"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.PerPage() != table.DefaultPerPage {
		t.Errorf("PerPage = %d", b.PerPage())
	}
	if b.Title() != "x" {
		t.Errorf("Title = %q", b.Title())
	}
}

// ---------------------------------------------------------------------------
// Derive
// ---------------------------------------------------------------------------

func TestDeriveFilterSortPaginate(t *testing.T) {
	b := newProductBoard(t, true)
	s := apply(b, Initial(),
		SelectFilter("category", record.Str("Electronics")),
		ToggleFilter("status", record.Str("trending"), true),
		ClickSort("revenue"),
		ClickSort("revenue"),
	)

	v := b.Derive(s)
	got := names(v.Rows)
	want := []string{"Wireless Headphones Pro", "Smart Fitness Watch"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if v.Rows[0].Get("revenue").String() != "87500" || v.Rows[1].Get("revenue").String() != "68600" {
		t.Errorf("revenues = %s, %s", v.Rows[0].Get("revenue"), v.Rows[1].Get("revenue"))
	}
	if v.ActiveFilters != 2 {
		t.Errorf("ActiveFilters = %d", v.ActiveFilters)
	}
	if v.Indicator("revenue") != table.IndicatorDesc || v.Indicator("name") != table.IndicatorNone {
		t.Error("unexpected sort indicators")
	}
	if v.Total != 10 || v.Matched != 2 {
		t.Errorf("Total = %d, Matched = %d", v.Total, v.Matched)
	}
	if v.Page.Start != 1 || v.Page.End != 2 || v.Page.TotalPages != 1 {
		t.Errorf("page = %+v", v.Page)
	}
	if len(v.Summaries) != 2 || v.Summaries[0].String() != "Category: Electronics" || v.Summaries[1].String() != "Status: 1 selected" {
		t.Errorf("summaries = %v", v.Summaries)
	}
}

func TestDeriveSearchIsCaseInsensitive(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), Search("PRO"))
	got := names(b.Derive(s).Rows)
	if len(got) != 1 || got[0] != "Wireless Headphones Pro" {
		t.Errorf("rows = %v", got)
	}
}

func TestSearchIgnoredWhenNotSearchable(t *testing.T) {
	b := newProductBoard(t, false)
	s := b.Apply(Initial(), Search("pro"))
	if s.Search != "" {
		t.Errorf("search stored on non-searchable board: %q", s.Search)
	}
	if b.Derive(s).Page.TotalCount != 10 {
		t.Error("non-searchable board must show every row")
	}
}

func TestDeriveIsMemoisedAcrossPages(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), ClickSort("sales"))
	first := b.Derive(s)
	second := b.Derive(b.Apply(s, RequestPage(2)))
	if len(first.Rows) != 5 || len(second.Rows) != 5 {
		t.Fatalf("page sizes = %d, %d", len(first.Rows), len(second.Rows))
	}
	if b.cache.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", b.cache.Len())
	}
}

func TestDerivedRowsDoNotAliasCache(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), ClickSort("name"))
	want := names(b.Sorted(s))

	v := b.Derive(s)
	v.Rows[0] = record.Row{"name": record.Str("overwritten")}
	v.Rows[1]["name"] = record.Str("renamed")
	sorted := b.Sorted(s)
	sorted[2] = nil

	if got := names(b.Sorted(s)); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("sorted after caller writes = %v, want %v", got, want)
	}
	again := b.Derive(s)
	for i, r := range again.Rows {
		if r == nil {
			t.Fatalf("row %d is nil after caller writes", i)
		}
	}
	if got := names(again.Rows); strings.Join(got, "|") != strings.Join(want[:5], "|") {
		t.Errorf("window after caller writes = %v, want %v", got, want[:5])
	}
}

func TestDeriveOutOfRangePage(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), RequestPage(3))
	v := b.Derive(s)
	if len(v.Rows) != 0 || v.Page.TotalPages != 2 {
		t.Errorf("page 3 of 2: rows=%d info=%+v", len(v.Rows), v.Page)
	}
	if c := Clamp(s, v); c.Page != 2 {
		t.Errorf("Clamp page = %d, want 2", c.Page)
	}
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApplyPagePolicy(t *testing.T) {
	b := newProductBoard(t, true)
	onTwo := b.Apply(Initial(), RequestPage(2))

	tests := []struct {
		name string
		in   Intent
		want int
	}{
		{"search resets", Search("a"), 1},
		{"select resets", SelectFilter("category", record.Str("Books")), 1},
		{"toggle resets", ToggleFilter("status", record.Str("stable"), true), 1},
		{"clear resets", ClearFilters(), 1},
		{"remove resets", RemoveFilter("category"), 1},
		{"sort keeps page", ClickSort("name"), 2},
		{"page request", RequestPage(0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Apply(onTwo, tt.in).Page; got != tt.want {
				t.Errorf("page = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplySortClickCycle(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), ClickSort("revenue"))
	if s.Sort != (table.SortState{Key: "revenue", Dir: table.Ascending}) {
		t.Fatalf("first click = %+v", s.Sort)
	}
	s = b.Apply(s, ClickSort("revenue"))
	if s.Sort.Dir != table.Descending {
		t.Fatalf("second click = %+v", s.Sort)
	}
	s = b.Apply(s, ClickSort("status"))
	if s.Sort.Key != "revenue" {
		t.Error("non-sortable column must not change the sort")
	}
	s = b.Apply(s, ClickSort("growth"))
	if s.Sort != (table.SortState{Key: "growth", Dir: table.Ascending}) {
		t.Errorf("new column = %+v", s.Sort)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	b := newProductBoard(t, true)
	s := b.Apply(Initial(), SelectFilter("category", record.Str("Sports")))
	_ = b.Apply(s, ClearFilters())
	if s.Filters.ActiveCount() != 1 {
		t.Error("Apply mutated its input state")
	}
}

func TestClampEmptyResult(t *testing.T) {
	b := newProductBoard(t, true)
	s := apply(b, Initial(), Search("zzz"), RequestPage(4))
	v := b.Derive(s)
	if !v.Page.Empty() || v.Page.TotalPages != 0 {
		t.Errorf("expected empty view, got %+v", v.Page)
	}
	if got := Clamp(s, v).Page; got != 1 {
		t.Errorf("Clamp page = %d, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

func TestExportCoversEveryPage(t *testing.T) {
	b := newProductBoard(t, true)
	s := apply(b, Initial(), ClickSort("revenue"), RequestPage(2))

	var buf bytes.Buffer
	n, err := b.Export(&buf, s, table.ExportRFC4180)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 10 {
		t.Errorf("exported %d rows, want 10", n)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "Product Name,Category,Sales,Revenue,Growth,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Gardening Tool Set,") {
		t.Errorf("first record = %q", lines[1])
	}
	if !strings.Contains(buf.String(), "Organic Coffee Beans,Home & Garden,3200,64000,-2.1,declining") {
		t.Error("raw values expected in export")
	}
}

func TestIntentKindString(t *testing.T) {
	if FilterToggled.String() != "filter-toggled" || IntentKind(99).String() != "unknown" {
		t.Error("unexpected intent names")
	}
}
