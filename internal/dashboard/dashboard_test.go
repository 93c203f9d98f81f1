package dashboard

import (
	"errors"
	"strings"
	"testing"

	"vista/internal/board"
	"vista/internal/db"
	"vista/internal/record"
	"vista/internal/table"
)

func sampleBoards(t *testing.T) Boards {
	t.Helper()
	bs, err := New(db.SampleDataset(), Layout{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return bs
}

func TestDefaults(t *testing.T) {
	bs := sampleBoards(t)
	if bs.Products.PerPage() != 5 || !bs.Products.Searchable() {
		t.Errorf("products: per page %d, searchable %v", bs.Products.PerPage(), bs.Products.Searchable())
	}
	if bs.Customers.PerPage() != 10 || bs.Customers.Searchable() {
		t.Errorf("customers: per page %d, searchable %v", bs.Customers.PerPage(), bs.Customers.Searchable())
	}
	if bs.Products.Len() != 10 || bs.Customers.Len() != 3 {
		t.Errorf("rows: %d products, %d customers", bs.Products.Len(), bs.Customers.Len())
	}
}

func TestProductFormats(t *testing.T) {
	cols := ProductColumns()
	tests := []struct {
		key  string
		v    record.Value
		want string
	}{
		{"sales", record.Int(3200), "3,200"},
		{"revenue", record.Int(87500), "$87,500"},
		{"growth", record.Num(15.3), "+15.3%"},
		{"growth", record.Num(-4.3), "-4.3%"},
		{"name", record.Str("Yoga Mat Premium"), "Yoga Mat Premium"},
	}
	for _, tt := range tests {
		col, ok := cols.Column(tt.key)
		if !ok {
			t.Fatalf("missing column %s", tt.key)
		}
		if got := col.Display(tt.v); got != tt.want {
			t.Errorf("%s.Display(%v) = %q, want %q", tt.key, tt.v, got, tt.want)
		}
	}

	retention, _ := CustomerColumns().Column("retention")
	if got := retention.Display(record.Num(92.5)); got != "92.5%" {
		t.Errorf("retention = %q", got)
	}
}

func TestLookup(t *testing.T) {
	bs := sampleBoards(t)
	b, err := bs.Lookup(" Customers ")
	if err != nil || b != bs.Customers {
		t.Errorf("Lookup(Customers) = %v, %v", b, err)
	}
	if _, err := bs.Lookup("orders"); !errors.Is(err, ErrUnknownBoard) {
		t.Errorf("err = %v", err)
	}
}

func TestApplyFilterArg(t *testing.T) {
	bs := sampleBoards(t)
	b := bs.Products
	s := board.Initial()

	var err error
	for _, arg := range []string{"category=electronics", "status=trending, stable"} {
		s, err = ApplyFilterArg(b, s, arg)
		if err != nil {
			t.Fatalf("ApplyFilterArg(%q): %v", arg, err)
		}
	}
	if v, _ := s.Filters.Selected("category"); v.String() != "Electronics" {
		t.Errorf("category = %q, want option value", v.String())
	}
	if len(s.Filters.Values("status")) != 2 {
		t.Errorf("status = %v", s.Filters.Values("status"))
	}

	v := b.Derive(b.Apply(s, board.ClickSort("name")))
	var names []string
	for _, r := range v.Rows {
		names = append(names, r.Get("name").String())
	}
	if got := strings.Join(names, "|"); got != "LED Desk Lamp|Smart Fitness Watch|Wireless Headphones Pro" {
		t.Errorf("rows = %s", got)
	}

	if _, err := ApplyFilterArg(b, s, "warehouse=north"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("unknown key err = %v", err)
	}
	if _, err := ApplyFilterArg(b, s, "category"); !errors.Is(err, ErrBadFilterArg) {
		t.Errorf("missing value err = %v", err)
	}
}

func TestEndToEndProducts(t *testing.T) {
	b := sampleBoards(t).Products
	s := board.Initial()
	for _, in := range []board.Intent{
		board.SelectFilter("category", record.Str("Electronics")),
		board.ToggleFilter("status", record.Str("trending"), true),
		board.ClickSort("revenue"),
		board.ClickSort("revenue"),
	} {
		s = b.Apply(s, in)
	}
	v := b.Derive(s)
	if len(v.Rows) != 2 {
		t.Fatalf("got %d rows", len(v.Rows))
	}
	revenue, _ := b.Columns().Column("revenue")
	if v.Rows[0].Get("name").String() != "Wireless Headphones Pro" || revenue.Display(v.Rows[0].Get("revenue")) != "$87,500" {
		t.Errorf("first row = %v", v.Rows[0])
	}
	if v.Rows[1].Get("name").String() != "Smart Fitness Watch" || revenue.Display(v.Rows[1].Get("revenue")) != "$68,600" {
		t.Errorf("second row = %v", v.Rows[1])
	}
	if v.Indicator("revenue") != table.IndicatorDesc {
		t.Error("revenue should show a descending indicator")
	}
}
