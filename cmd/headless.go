package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vista/internal/board"
	"vista/internal/dashboard"
	"vista/internal/db"
	"vista/internal/model"
	"vista/internal/table"
	"vista/internal/util"
)

// ExportState builds the board state described by the -search, -sort,
// -desc and -filter flags.
func ExportState(b *board.Board, cfg *Config) (board.State, error) {
	s := board.Initial()
	for _, arg := range cfg.Filters {
		var err error
		if s, err = dashboard.ApplyFilterArg(b, s, arg); err != nil {
			return s, err
		}
	}
	if cfg.Search != "" {
		if !b.Searchable() {
			return s, fmt.Errorf("board %s does not support search", b.Name())
		}
		s = b.Apply(s, board.Search(cfg.Search))
	}
	if cfg.Sort != "" {
		col, ok := b.Columns().Column(cfg.Sort)
		if !ok || !col.Sortable {
			return s, fmt.Errorf("board %s has no sortable column %q", b.Name(), cfg.Sort)
		}
		s = b.Apply(s, board.ClickSort(col.Key))
		if cfg.Desc {
			s = b.Apply(s, board.ClickSort(col.Key))
		}
	}
	return s, nil
}

// RunExport writes the board named by cfg.Export as CSV to cfg.Out, or to
// w when no output path is set, and records the export.
func RunExport(ctx context.Context, cfg *Config, database *sql.DB, w io.Writer, logger *slog.Logger) error {
	ds, err := db.LoadDataset(ctx, database)
	if err != nil {
		return err
	}
	boards, err := dashboard.New(ds, cfg.Layout, logger)
	if err != nil {
		return err
	}
	b, err := boards.Lookup(cfg.Export)
	if err != nil {
		return err
	}
	s, err := ExportState(b, cfg)
	if err != nil {
		return err
	}

	var n int
	if cfg.Out != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Out), 0700); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		n, err = exportAndClose(f, b, s, cfg.CSVMode)
		if err != nil {
			return err
		}
	} else if n, err = b.Export(w, s, cfg.CSVMode); err != nil {
		return err
	}
	if _, err := db.RecordExport(database, b.Name(), n, cfg.Out, cfg.CSVMode.String()); err != nil {
		logger.Warn("export not recorded", "board", b.Name(), "err", err)
	}
	logger.Info("exported board", "board", b.Name(), "rows", n, "path", cfg.Out, "mode", cfg.CSVMode.String())
	return nil
}

// exportAndClose writes the CSV to wc and closes it. A close failure is
// reported when the export itself succeeded.
func exportAndClose(wc io.WriteCloser, b *board.Board, s board.State, mode table.ExportMode) (int, error) {
	n, err := b.Export(wc, s, mode)
	if cerr := wc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// PrintSnapshot writes a plain-text summary for non-interactive output:
// the KPIs followed by the first page of every board.
func PrintSnapshot(w io.Writer, ds model.Dataset, boards dashboard.Boards) error {
	var b strings.Builder
	b.WriteString("KPIs\n")
	if len(ds.KPIs) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, k := range ds.KPIs {
		fmt.Fprintf(&b, "  %s %s %s\n",
			util.PadRight(k.Title, 20),
			util.PadLeft(util.FormatKPIValue(k.Value, k.Prefix, k.Suffix), 12),
			util.FormatChange(k.Change))
	}

	for _, name := range dashboard.Names() {
		bd, err := boards.Lookup(name)
		if err != nil {
			return err
		}
		b.WriteString("\n")
		writeBoardPage(&b, bd)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBoardPage(b *strings.Builder, bd *board.Board) {
	v := bd.Derive(board.Initial())
	cols := bd.Columns().Columns()

	b.WriteString(bd.Title() + "\n")
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = util.PadRight(strings.ToUpper(col.Label), col.Width)
	}
	b.WriteString("  " + strings.TrimRight(strings.Join(header, " "), " ") + "\n")

	if len(v.Rows) == 0 {
		b.WriteString("  No results found\n")
		return
	}
	for _, row := range v.Rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			text := util.TruncateString(col.Display(row.Get(col.Key)), col.Width)
			if col.Align == table.AlignRight {
				cells[i] = util.PadLeft(text, col.Width)
			} else {
				cells[i] = util.PadRight(text, col.Width)
			}
		}
		b.WriteString("  " + strings.TrimRight(strings.Join(cells, " "), " ") + "\n")
	}
	fmt.Fprintf(b, "  Showing %d to %d of %d results\n", v.Page.Start, v.Page.End, v.Page.TotalCount)
}
