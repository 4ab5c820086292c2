package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1SavedCharts,
}

// migrationV1SavedCharts creates the saved-chart store.
//
// Key design decisions:
//
// 1. INPUT PLUS SNAPSHOT
//   - The full birth input (date, time, sex, tz, longitude, lmt flag) is
//     stored so a chart can be recomputed with different options later.
//   - The four pillar designations and the lunar echo are stored as text
//     snapshots so list views don't have to recompute anything.
//
// 2. TEXT DATES
//   - birth_date/birth_time are ISO strings, matching how they arrive in
//     API requests; created_at uses SQLite's datetime('now').
const migrationV1SavedCharts = `
-- Migration 001: saved charts

CREATE TABLE IF NOT EXISTS saved_charts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    birth_date TEXT NOT NULL,            -- YYYY-MM-DD
    birth_time TEXT NOT NULL,            -- HH:MM
    sex TEXT NOT NULL CHECK (sex IN ('male', 'female')),
    tz_offset REAL NOT NULL DEFAULT 9.0,
    longitude REAL NOT NULL DEFAULT 126.98,
    apply_lmt INTEGER NOT NULL DEFAULT 0,
    year_pillar TEXT NOT NULL,
    month_pillar TEXT NOT NULL,
    day_pillar TEXT NOT NULL,
    hour_pillar TEXT NOT NULL,
    lunar_date TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_saved_charts_created_at
    ON saved_charts(created_at);

CREATE INDEX IF NOT EXISTS idx_saved_charts_name
    ON saved_charts(name);
`
