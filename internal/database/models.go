// Package database provides SQLite-backed storage for saved charts.
package database

import (
	"time"
)

// SavedChart is a stored birth record together with the pillar designations
// computed for it at save time. The birth input is kept so a chart can be
// recomputed (e.g. with a different cycle count) without re-entering it.
type SavedChart struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`       // label chosen by the caller
	BirthDate string  `json:"birth_date"` // ISO 8601 format: YYYY-MM-DD
	BirthTime string  `json:"birth_time"` // HH:MM, local civil time
	Sex       string  `json:"sex"`        // male, female
	TZOffset  float64 `json:"tz_offset"`  // hours east of UTC
	Longitude float64 `json:"longitude"`  // degrees east
	ApplyLMT  bool    `json:"apply_lmt"`

	// Pillar designations as stem+branch characters (e.g. 乙巳).
	YearPillar  string `json:"year_pillar"`
	MonthPillar string `json:"month_pillar"`
	DayPillar   string `json:"day_pillar"`
	HourPillar  string `json:"hour_pillar"`

	// Lunar date echo, empty when the birth date is outside the lunar
	// table window.
	LunarDate string `json:"lunar_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ValidSex reports whether s is a recognized sex value for a saved chart.
func ValidSex(s string) bool {
	return s == "male" || s == "female"
}
