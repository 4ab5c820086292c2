package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")
)

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	// Try RFC3339 format first (with timezone)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}

	// Try SQLite datetime format (no timezone)
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}

	return time.Time{}
}

// =============================================================================
// Saved Chart Queries
// =============================================================================

// CreateChart inserts a saved chart and fills in its ID and CreatedAt.
func (db *DB) CreateChart(ctx context.Context, chart *SavedChart) error {
	if chart.Name == "" {
		return errors.New("chart name is required")
	}
	if !ValidSex(chart.Sex) {
		return fmt.Errorf("invalid sex %q", chart.Sex)
	}

	query := `
		INSERT INTO saved_charts (
			name, birth_date, birth_time, sex,
			tz_offset, longitude, apply_lmt,
			year_pillar, month_pillar, day_pillar, hour_pillar, lunar_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := db.ExecContext(ctx, query,
		chart.Name, chart.BirthDate, chart.BirthTime, chart.Sex,
		chart.TZOffset, chart.Longitude, boolToInt(chart.ApplyLMT),
		chart.YearPillar, chart.MonthPillar, chart.DayPillar, chart.HourPillar,
		chart.LunarDate,
	)
	if err != nil {
		return fmt.Errorf("insert saved chart: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("saved chart id: %w", err)
	}
	chart.ID = id

	// Read back the database-assigned timestamp.
	var createdAt string
	err = db.QueryRowContext(ctx,
		"SELECT created_at FROM saved_charts WHERE id = ?", id).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("read back created_at: %w", err)
	}
	chart.CreatedAt = parseTimestamp(createdAt)

	return nil
}

// GetChart retrieves a saved chart by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetChart(ctx context.Context, id int64) (*SavedChart, error) {
	query := `
		SELECT id, name, birth_date, birth_time, sex,
		       tz_offset, longitude, apply_lmt,
		       year_pillar, month_pillar, day_pillar, hour_pillar, lunar_date,
		       created_at
		FROM saved_charts
		WHERE id = ?
	`

	chart, err := scanChart(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get saved chart %d: %w", id, err)
	}
	return chart, nil
}

// ListCharts returns saved charts ordered newest first, up to limit.
// A limit of 0 or less means a default page of 50.
func (db *DB) ListCharts(ctx context.Context, limit int) ([]SavedChart, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, birth_date, birth_time, sex,
		       tz_offset, longitude, apply_lmt,
		       year_pillar, month_pillar, day_pillar, hour_pillar, lunar_date,
		       created_at
		FROM saved_charts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list saved charts: %w", err)
	}
	defer rows.Close()

	var charts []SavedChart
	for rows.Next() {
		chart, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved chart: %w", err)
		}
		charts = append(charts, *chart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved charts: %w", err)
	}

	return charts, nil
}

// DeleteChart removes a saved chart by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) DeleteChart(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM saved_charts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete saved chart %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved chart %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChartsBefore removes saved charts created before the cutoff and
// returns how many were deleted. Used by the retention job.
func (db *DB) DeleteChartsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		"DELETE FROM saved_charts WHERE created_at < ?",
		cutoff.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("delete charts before %v: %w", cutoff, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted charts: %w", err)
	}
	return affected, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChart(row scanner) (*SavedChart, error) {
	var chart SavedChart
	var applyLMT int
	var createdAt string

	err := row.Scan(
		&chart.ID, &chart.Name, &chart.BirthDate, &chart.BirthTime, &chart.Sex,
		&chart.TZOffset, &chart.Longitude, &applyLMT,
		&chart.YearPillar, &chart.MonthPillar, &chart.DayPillar, &chart.HourPillar,
		&chart.LunarDate, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	chart.ApplyLMT = applyLMT != 0
	chart.CreatedAt = parseTimestamp(createdAt)
	return &chart, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
