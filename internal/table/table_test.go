package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"vista/internal/record"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func ids(rows []record.Row) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get("id").String()
	}
	return strings.Join(out, ",")
}

func tieSchema() Schema {
	return MustSchema(
		Column{Key: "k", Label: "K", Sortable: true},
		Column{Key: "id", Label: "ID", Sortable: true},
	)
}

func tieRows() []record.Row {
	return []record.Row{
		{"k": record.Num(1), "id": record.Str("a")},
		{"k": record.Num(1), "id": record.Str("b")},
		{"k": record.Num(2), "id": record.Str("c")},
	}
}

func numbered(n int) []record.Row {
	rows := make([]record.Row, n)
	for i := range rows {
		rows[i] = record.Row{"id": record.Int(int64(i))}
	}
	return rows
}

// ---------------------------------------------------------------------------
// schema
// ---------------------------------------------------------------------------

func TestNewSchemaRejectsBadKeys(t *testing.T) {
	if _, err := NewSchema(Column{Key: ""}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	_, err := NewSchema(Column{Key: "a"}, Column{Key: "a"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestColumnDisplayUsesFormat(t *testing.T) {
	col := Column{Key: "revenue", Format: func(v record.Value) string { return "$" + v.String() }}
	if got := col.Display(record.Num(100)); got != "$100" {
		t.Errorf("Display = %q", got)
	}
	if got := col.Display(record.Value{}); got != "" {
		t.Errorf("absent Display = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// search
// ---------------------------------------------------------------------------

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	schema := MustSchema(
		Column{Key: "name", Label: "Name"},
		Column{Key: "category", Label: "Category"},
	)
	rows := []record.Row{
		{"id": record.Int(1), "name": record.Str("Wireless Headphones Pro"), "category": record.Str("Electronics")},
		{"id": record.Int(2), "name": record.Str("Yoga Mat"), "category": record.Str("Sports")},
	}

	got := Search(rows, schema, true, "pro")
	if ids(got) != "1" {
		t.Errorf("search pro = %s, want 1", ids(got))
	}
	if got := Search(rows, schema, true, "SPORTS"); ids(got) != "2" {
		t.Errorf("search SPORTS = %s, want 2", ids(got))
	}
}

func TestSearchPassThrough(t *testing.T) {
	schema := MustSchema(Column{Key: "name", Label: "Name"})
	rows := []record.Row{{"name": record.Str("x")}}

	if got := Search(rows, schema, false, "zzz"); len(got) != 1 {
		t.Error("non-searchable table must pass rows through")
	}
	if got := Search(rows, schema, true, ""); len(got) != 1 {
		t.Error("empty search text must pass rows through")
	}
}

func TestSearchIgnoresAbsentAndUsesRawValues(t *testing.T) {
	schema := MustSchema(
		Column{Key: "name", Label: "Name"},
		Column{Key: "revenue", Label: "Revenue", Format: func(v record.Value) string { return "$" + v.String() }},
	)
	rows := []record.Row{
		{"id": record.Int(1), "revenue": record.Num(87500)},
		{"id": record.Int(2), "name": record.Str("Lamp")},
	}

	if got := Search(rows, schema, true, "$"); len(got) != 0 {
		t.Errorf("formatted text must not be searched, got %s", ids(got))
	}
	if got := Search(rows, schema, true, "875"); ids(got) != "1" {
		t.Errorf("raw number search = %s, want 1", ids(got))
	}
}

// ---------------------------------------------------------------------------
// sort
// ---------------------------------------------------------------------------

func TestSortStableAscending(t *testing.T) {
	got := Sort(tieRows(), tieSchema(), SortState{Key: "k", Dir: Ascending})
	if ids(got) != "a,b,c" {
		t.Errorf("ascending = %s, want a,b,c", ids(got))
	}
}

func TestSortStableDescending(t *testing.T) {
	got := Sort(tieRows(), tieSchema(), SortState{Key: "k", Dir: Descending})
	if ids(got) != "c,a,b" {
		t.Errorf("descending = %s, want c,a,b", ids(got))
	}
}

func TestSortNoKeyKeepsOrderAndCopies(t *testing.T) {
	rows := tieRows()
	got := Sort(rows, tieSchema(), SortState{})
	if ids(got) != "a,b,c" {
		t.Errorf("got %s", ids(got))
	}
	got[0] = nil
	if rows[0] == nil {
		t.Error("Sort must not share the input slice")
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	rows := []record.Row{
		{"id": record.Str("b")},
		{"id": record.Str("a")},
	}
	got := Sort(rows, tieSchema(), SortState{Key: "nope", Dir: Descending})
	if ids(got) != "b,a" {
		t.Errorf("unknown key = %s, want b,a", ids(got))
	}
}

func TestSortNonSortableColumnKeepsOrder(t *testing.T) {
	schema := MustSchema(Column{Key: "id", Label: "ID"})
	rows := []record.Row{{"id": record.Str("b")}, {"id": record.Str("a")}}
	if got := Sort(rows, schema, SortState{Key: "id"}); ids(got) != "b,a" {
		t.Errorf("non-sortable = %s, want b,a", ids(got))
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b record.Value
		want int
	}{
		{"equal numbers", record.Num(3), record.Num(3), 0},
		{"numeric not lexical", record.Num(9), record.Num(10), -1},
		{"case insensitive", record.Str("apple"), record.Str("Banana"), -1},
		{"same letters different case", record.Str("Apple"), record.Str("apple"), 0},
		{"mixed kinds compare as strings", record.Num(10), record.Str("abc"), -1},
		{"absent last", record.Value{}, record.Num(1), 1},
		{"present before absent", record.Str("z"), record.Value{}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSortIgnoresFormat(t *testing.T) {
	schema := MustSchema(Column{
		Key: "id", Label: "ID", Sortable: true,
		// A format that would invert lexical order if it were used.
		Format: func(v record.Value) string { return fmt.Sprintf("%03d", 100-int(mustFloat(v))) },
	})
	rows := []record.Row{{"id": record.Num(2)}, {"id": record.Num(1)}}
	if got := Sort(rows, schema, SortState{Key: "id"}); ids(got) != "1,2" {
		t.Errorf("got %s, want 1,2", ids(got))
	}
}

func mustFloat(v record.Value) float64 {
	f, _ := v.Float()
	return f
}

func TestClickPolicy(t *testing.T) {
	schema := MustSchema(
		Column{Key: "name", Label: "Name", Sortable: true},
		Column{Key: "revenue", Label: "Revenue", Sortable: true},
		Column{Key: "notes", Label: "Notes"},
	)

	s := Click(schema, SortState{}, "name")
	if s != (SortState{Key: "name", Dir: Ascending}) {
		t.Fatalf("first click = %+v", s)
	}
	s = Click(schema, s, "name")
	if s.Dir != Descending {
		t.Errorf("second click dir = %v, want desc", s.Dir)
	}
	s = Click(schema, s, "name")
	if s.Dir != Ascending {
		t.Errorf("third click dir = %v, want asc", s.Dir)
	}

	s = Click(schema, SortState{Key: "name", Dir: Descending}, "revenue")
	if s != (SortState{Key: "revenue", Dir: Ascending}) {
		t.Errorf("switch column = %+v", s)
	}

	before := SortState{Key: "name", Dir: Descending}
	if got := Click(schema, before, "notes"); got != before {
		t.Errorf("non-sortable click changed state: %+v", got)
	}
	if got := Click(schema, before, "missing"); got != before {
		t.Errorf("unknown column click changed state: %+v", got)
	}
}

func TestIndicatorFor(t *testing.T) {
	s := SortState{Key: "revenue", Dir: Descending}
	if IndicatorFor(s, "revenue") != IndicatorDesc {
		t.Error("expected desc indicator")
	}
	if IndicatorFor(s, "name") != IndicatorNone {
		t.Error("expected no indicator on other column")
	}
	if IndicatorFor(SortState{Key: "name"}, "name").Arrow() != "↑" {
		t.Error("expected up arrow")
	}
}

func TestIndicatorMarker(t *testing.T) {
	tests := []struct {
		ind      Indicator
		sortable bool
		want     string
	}{
		{IndicatorAsc, true, "↑"},
		{IndicatorDesc, true, "↓"},
		{IndicatorNone, true, "↕"},
		{IndicatorNone, false, ""},
	}
	for _, tt := range tests {
		if got := tt.ind.Marker(tt.sortable); got != tt.want {
			t.Errorf("Indicator(%d).Marker(%v) = %q, want %q", tt.ind, tt.sortable, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// pagination
// ---------------------------------------------------------------------------

func TestPaginateWindows(t *testing.T) {
	rows := numbered(10)

	win, info := Paginate(rows, PageState{Current: 2, PerPage: 5})
	if ids(win) != "5,6,7,8,9" {
		t.Errorf("page 2 = %s", ids(win))
	}
	if info.TotalPages != 2 || info.TotalCount != 10 {
		t.Errorf("info = %+v", info)
	}
	if info.Start != 6 || info.End != 10 {
		t.Errorf("start/end = %d/%d, want 6/10", info.Start, info.End)
	}

	win, info = Paginate(rows, PageState{Current: 3, PerPage: 5})
	if len(win) != 0 || !info.Empty() {
		t.Errorf("page 3 should be empty, got %s", ids(win))
	}
	if info.Current != 3 {
		t.Errorf("pagination must not clamp, current = %d", info.Current)
	}
}

func TestPaginatePartialLastPage(t *testing.T) {
	win, info := Paginate(numbered(7), PageState{Current: 2, PerPage: 5})
	if ids(win) != "5,6" {
		t.Errorf("got %s", ids(win))
	}
	if info.TotalPages != 2 {
		t.Errorf("total pages = %d", info.TotalPages)
	}
}

func TestPaginateEmptyAndDegenerate(t *testing.T) {
	win, info := Paginate(nil, PageState{Current: 1, PerPage: 5})
	if len(win) != 0 || info.TotalPages != 0 {
		t.Errorf("empty dataset: %d rows, %d pages", len(win), info.TotalPages)
	}
	if win, _ := Paginate(numbered(3), PageState{Current: 0, PerPage: 5}); len(win) != 0 {
		t.Error("page 0 should yield an empty window")
	}
	if _, info := Paginate(numbered(25), PageState{Current: 1}); info.PerPage != DefaultPerPage {
		t.Errorf("per page = %d, want default", info.PerPage)
	}
}

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{
		{0, 5}:  0,
		{1, 5}:  1,
		{5, 5}:  1,
		{6, 5}:  2,
		{10, 5}: 2,
	}
	for in, want := range cases {
		if got := TotalPages(in[0], in[1]); got != want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

func exportFixture() (Schema, []record.Row) {
	schema := MustSchema(
		Column{Key: "name", Label: "Product Name"},
		Column{Key: "category", Label: "Category"},
		Column{Key: "revenue", Label: "Revenue", Format: func(v record.Value) string { return "$" + v.String() }},
	)
	rows := []record.Row{
		{"name": record.Str("Wireless Headphones Pro"), "category": record.Str("Electronics"), "revenue": record.Num(87500)},
		{"name": record.Str("Tools, Garden"), "category": record.Str("Home & Garden"), "revenue": record.Num(37200)},
	}
	return schema, rows
}

func TestExportRFC4180(t *testing.T) {
	schema, rows := exportFixture()
	got, err := ExportString(schema, rows, ExportRFC4180)
	if err != nil {
		t.Fatal(err)
	}
	want := "Product Name,Category,Revenue\n" +
		"Wireless Headphones Pro,Electronics,87500\n" +
		"\"Tools, Garden\",Home & Garden,37200\n"
	if got != want {
		t.Errorf("export =\n%q\nwant\n%q", got, want)
	}
}

func TestExportMinimal(t *testing.T) {
	schema, rows := exportFixture()
	got, err := ExportString(schema, rows, ExportMinimal)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got %d lines: %q", len(lines), got)
	}
	if lines[2] != `"Tools, Garden",Home & Garden,37200` {
		t.Errorf("record 2 = %q", lines[2])
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("minimal export has no trailing newline")
	}
}

// Quotes and line breaks are where the two dialects differ: the minimal
// dialect writes them unescaped, RFC 4180 escapes them.
func TestExportQuoteHandlingDiffersByMode(t *testing.T) {
	schema := MustSchema(Column{Key: "name", Label: "Name"})
	rows := []record.Row{{"name": record.Str(`12" Vinyl, Deluxe`)}}

	minimal, _ := ExportString(schema, rows, ExportMinimal)
	if minimal != "Name\n\"12\" Vinyl, Deluxe\"" {
		t.Errorf("minimal = %q", minimal)
	}
	rfc, _ := ExportString(schema, rows, ExportRFC4180)
	if rfc != "Name\n\"12\"\" Vinyl, Deluxe\"\n" {
		t.Errorf("rfc4180 = %q", rfc)
	}
}

func TestExportAbsentIsEmptyField(t *testing.T) {
	schema := MustSchema(Column{Key: "a", Label: "A"}, Column{Key: "b", Label: "B"})
	got, _ := ExportString(schema, []record.Row{{"b": record.Num(1)}}, ExportMinimal)
	if got != "A,B\n,1" {
		t.Errorf("got %q", got)
	}
}

func TestParseExportMode(t *testing.T) {
	if ParseExportMode("Minimal") != ExportMinimal {
		t.Error("expected minimal")
	}
	if ParseExportMode("") != ExportRFC4180 || ParseExportMode("bogus") != ExportRFC4180 {
		t.Error("expected rfc4180 default")
	}
}
