package table

import (
	"strings"

	"vista/internal/record"
)

// DefaultPerPage is used when a PageState carries no usable page size.
const DefaultPerPage = 10

// PageState is the requested page. Current is 1-based.
type PageState struct {
	Current int
	PerPage int
}

// PageInfo describes the window produced by Paginate. Start and End are
// 1-based positions for "Showing Start to End of TotalCount"; both are 0
// when the window is empty.
type PageInfo struct {
	Current    int
	PerPage    int
	TotalPages int
	TotalCount int
	Start      int
	End        int
}

// Empty reports whether the window holds no rows.
func (p PageInfo) Empty() bool { return p.End == 0 }

// TotalPages returns ceil(n / perPage), 0 for an empty set.
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Search keeps rows where any schema column's raw value contains text,
// case-insensitively. Absent values never match. When the table is not
// searchable or text is empty, rows are returned unchanged.
func Search(rows []record.Row, schema Schema, searchable bool, text string) []record.Row {
	if !searchable || text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	out := make([]record.Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, schema, needle) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row record.Row, schema Schema, needle string) bool {
	for _, col := range schema.cols {
		v := row.Get(col.Key)
		if v.IsAbsent() {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}

// Paginate cuts the window [(Current-1)*PerPage, Current*PerPage) out of
// rows. It never clamps Current: a page outside the range yields an empty
// window, and correcting it is the caller's job.
func Paginate(rows []record.Row, p PageState) ([]record.Row, PageInfo) {
	per := p.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	info := PageInfo{
		Current:    p.Current,
		PerPage:    per,
		TotalPages: TotalPages(len(rows), per),
		TotalCount: len(rows),
	}
	if p.Current < 1 {
		return nil, info
	}

	start := (p.Current - 1) * per
	if start >= len(rows) {
		return nil, info
	}
	end := min(start+per, len(rows))

	info.Start = start + 1
	info.End = end
	return rows[start:end:end], info
}
