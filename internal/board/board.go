package board

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"vista/internal/filter"
	"vista/internal/record"
	"vista/internal/table"
)

const defaultCacheSize = 64

var ErrNoName = errors.New("board name is empty")

// Config is the static description of a board.
type Config struct {
	Name       string
	Title      string
	Columns    table.Schema
	Filters    filter.Schema
	Searchable bool
	PerPage    int
	CacheSize  int
}

// View is what the presentation layer renders for a given State.
type View struct {
	Rows          []record.Row
	Page          table.PageInfo
	Sort          table.SortState
	ActiveFilters int
	Summaries     []filter.Summary
	Total         int
	Matched       int
}

// Indicator returns the sort marker for column key.
func (v View) Indicator(key string) table.Indicator {
	return table.IndicatorFor(v.Sort, key)
}

type derived struct {
	matched int
	sorted  []record.Row
}

// Board binds a dataset to its columns and facets and derives views from
// caller-owned State values. Derivations are memoised on everything but
// the page number.
type Board struct {
	cfg    Config
	rows   []record.Row
	cache  *lru.Cache[string, derived]
	logger *slog.Logger
}

// New creates a board over rows. The rows are copied and treated as
// read-only from then on.
func New(cfg Config, rows []record.Row, logger *slog.Logger) (*Board, error) {
	if cfg.Name == "" {
		return nil, ErrNoName
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = table.DefaultPerPage
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.Title == "" {
		cfg.Title = cfg.Name
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cache, err := lru.New[string, derived](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache for board %q: %w", cfg.Name, err)
	}

	return &Board{
		cfg:    cfg,
		rows:   append([]record.Row(nil), rows...),
		cache:  cache,
		logger: logger.With("board", cfg.Name),
	}, nil
}

// Name returns the board's identifier.
func (b *Board) Name() string { return b.cfg.Name }

// Title returns the board's display title.
func (b *Board) Title() string { return b.cfg.Title }

// Columns returns the column schema.
func (b *Board) Columns() table.Schema { return b.cfg.Columns }

// Filters returns the facet schema.
func (b *Board) Filters() filter.Schema { return b.cfg.Filters }

// Searchable reports whether free-text search applies.
func (b *Board) Searchable() bool { return b.cfg.Searchable }

// PerPage returns the page size.
func (b *Board) PerPage() int { return b.cfg.PerPage }

// Len returns the size of the unfiltered dataset.
func (b *Board) Len() int { return len(b.rows) }

// Apply returns the state that results from in. Search and filter changes
// return to page 1; sort clicks keep the page.
func (b *Board) Apply(s State, in Intent) State {
	switch in.Kind {
	case SearchChanged:
		if !b.cfg.Searchable {
			return s
		}
		s.Search = in.Text
		s.Page = 1
	case SortClicked:
		s.Sort = table.Click(b.cfg.Columns, s.Sort, in.Key)
	case PageRequested:
		s.Page = max(in.Page, 1)
	case FilterSelected:
		s.Filters = s.Filters.SetSelect(in.Key, in.Value)
		s.Page = 1
	case FilterToggled:
		s.Filters = s.Filters.ToggleCheckbox(in.Key, in.Value, in.Checked)
		s.Page = 1
	case FiltersCleared:
		s.Filters = s.Filters.ClearAll()
		s.Page = 1
	case FilterRemoved:
		s.Filters = s.Filters.Remove(in.Key)
		s.Page = 1
	default:
		return s
	}
	b.logger.Debug("intent applied", "intent", in.Kind.String(), "key", in.Key, "page", s.Page)
	return s
}

// Derive runs filter, search, sort and pagination for s.
func (b *Board) Derive(s State) View {
	d := b.derive(s)
	window, info := table.Paginate(d.sorted, table.PageState{Current: s.Page, PerPage: b.cfg.PerPage})
	return View{
		Rows:          cloneRows(window),
		Page:          info,
		Sort:          s.Sort,
		ActiveFilters: s.Filters.ActiveCount(),
		Summaries:     s.Filters.Summaries(b.cfg.Filters),
		Total:         len(b.rows),
		Matched:       d.matched,
	}
}

// Sorted returns the full filtered, searched and sorted sequence.
func (b *Board) Sorted(s State) []record.Row {
	return cloneRows(b.derive(s).sorted)
}

// cloneRows copies rows and each row map so callers cannot write through
// to the cache.
func cloneRows(rows []record.Row) []record.Row {
	if rows == nil {
		return nil
	}
	out := make([]record.Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out
}

// Export writes the full processed sequence for s (every page) as CSV and
// returns the number of data records written.
func (b *Board) Export(w io.Writer, s State, mode table.ExportMode) (int, error) {
	rows := b.derive(s).sorted
	if err := table.Export(w, b.cfg.Columns, rows, mode); err != nil {
		return 0, fmt.Errorf("failed to export board %q: %w", b.cfg.Name, err)
	}
	b.logger.Info("board exported", "rows", len(rows), "mode", mode.String())
	return len(rows), nil
}

func (b *Board) derive(s State) derived {
	key := cacheKey(s)
	if d, ok := b.cache.Get(key); ok {
		return d
	}

	pred := s.Filters.Predicate(b.cfg.Filters)
	filtered := make([]record.Row, 0, len(b.rows))
	for _, r := range b.rows {
		if pred(r) {
			filtered = append(filtered, r)
		}
	}
	searched := table.Search(filtered, b.cfg.Columns, b.cfg.Searchable, s.Search)
	d := derived{
		matched: len(filtered),
		sorted:  table.Sort(searched, b.cfg.Columns, s.Sort),
	}
	b.cache.Add(key, d)
	return d
}

func cacheKey(s State) string {
	return strings.Join([]string{
		s.Filters.Fingerprint(),
		s.Search,
		s.Sort.Key,
		s.Sort.Dir.String(),
	}, "\x00")
}

// Clamp pulls s.Page back into range once the view shows how many pages
// exist. An empty result leaves the page at 1.
func Clamp(s State, v View) State {
	if v.Page.TotalPages > 0 && s.Page > v.Page.TotalPages {
		s.Page = v.Page.TotalPages
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}
