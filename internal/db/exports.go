package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vista/internal/model"
)

// Fixed-width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// RecordExport stores an audit entry for a CSV export and returns it with
// its generated id and timestamp.
func RecordExport(db *sql.DB, board string, rows int, path, mode string) (model.ExportRecord, error) {
	rec := model.ExportRecord{
		ID:        uuid.NewString(),
		Board:     board,
		Rows:      rows,
		Path:      path,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO exports (id, board, row_count, path, mode, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, rec.ID, rec.Board, rec.Rows, nullString(rec.Path), rec.Mode, rec.CreatedAt.Format(timestampLayout)); err != nil {
		return model.ExportRecord{}, fmt.Errorf("failed to record export: %w", err)
	}
	return rec, nil
}

// ListExports retrieves the most recent exports, newest first. A limit of
// zero or less returns every entry.
func ListExports(db *sql.DB, limit int) ([]model.ExportRecord, error) {
	query := `
		SELECT id, board, row_count, path, mode, created_at
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var results []model.ExportRecord
	for rows.Next() {
		var r model.ExportRecord
		var path sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Board, &r.Rows, &path, &r.Mode, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		if path.Valid {
			r.Path = path.String
		}
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}
	return results, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
