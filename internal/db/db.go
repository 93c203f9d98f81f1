package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kpis (
    id       INTEGER PRIMARY KEY,
    title    TEXT NOT NULL,
    value    REAL NOT NULL,
    change   REAL NOT NULL DEFAULT 0,
    trend    TEXT CHECK(trend IN ('up','down')),
    prefix   TEXT NOT NULL DEFAULT '',
    suffix   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS revenue_trends (
    position INTEGER PRIMARY KEY,
    month    TEXT NOT NULL,
    revenue  REAL NOT NULL,
    profit   REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_orders (
    position INTEGER PRIMARY KEY,
    month    TEXT NOT NULL,
    orders   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sales_by_category (
    position INTEGER PRIMARY KEY,
    name     TEXT NOT NULL,
    value    REAL NOT NULL,
    color    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS revenue_vs_expenses (
    position INTEGER PRIMARY KEY,
    month    TEXT NOT NULL,
    revenue  REAL NOT NULL,
    expenses REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id       INTEGER PRIMARY KEY,
    name     TEXT NOT NULL,
    category TEXT NOT NULL,
    sales    INTEGER NOT NULL DEFAULT 0,
    revenue  REAL NOT NULL DEFAULT 0,
    growth   REAL NOT NULL DEFAULT 0,
    status   TEXT CHECK(status IN ('trending','stable','declining'))
);

CREATE TABLE IF NOT EXISTS customer_segments (
    id              INTEGER PRIMARY KEY,
    segment         TEXT NOT NULL,
    customers       INTEGER NOT NULL DEFAULT 0,
    revenue         REAL NOT NULL DEFAULT 0,
    avg_order_value REAL NOT NULL DEFAULT 0,
    retention       REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS exports (
    id         TEXT PRIMARY KEY,
    board      TEXT NOT NULL,
    row_count  INTEGER NOT NULL,
    path       TEXT,
    mode       TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at DESC);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
