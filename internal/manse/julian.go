// Package manse provides Four Pillars (사주) calculations: Julian date
// arithmetic, a low-precision solar ecliptic longitude model, solar-term
// boundary search, the four pillar-determination rules, lunar calendar
// conversion, and the 10-year luck cycle (대운) sequence.
package manse

import (
	"errors"
	"math"
	"time"
)

// Sentinel errors returned by the calculation core.
var (
	// ErrInvalidDate indicates a malformed or out-of-range Gregorian input.
	ErrInvalidDate = errors.New("invalid date")

	// ErrLunarRange indicates a date outside the supported lunar table
	// window (1900-01-31 through 2101-01-28).
	ErrLunarRange = errors.New("date outside lunar calendar range")

	// ErrBoundarySearch indicates the solar-term root finder failed to
	// bracket a crossing. This should never happen for valid term geometry.
	ErrBoundarySearch = errors.New("solar term boundary search failed")
)

// GregorianToJD converts a Gregorian calendar date and time-of-day to a
// Julian Date. Hour, minute, and second may be fractional or negative;
// negative hours are how a local civil time is shifted to UTC before
// conversion (e.g. hour-9 for KST).
//
// The algorithm is the standard one from Meeus, Astronomical Algorithms
// ch. 7, valid for all dates in the Gregorian calendar.
func GregorianToJD(year, month, day int, hour, minute, second float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	frac := (hour + minute/60 + second/3600) / 24.0
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 + frac
}

// JDToTime converts a Julian Date to a time.Time in UTC.
// Inverse of GregorianToJD, from the same chapter of Meeus.
func JDToTime(jd float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := int(b - d - math.Floor(30.6001*e))
	var month int
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	var year int
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}

	// Convert the day fraction to time of day, rounding to the nearest
	// millisecond to absorb float error from the JD representation.
	ms := math.Round(f * 86400 * 1000)
	sec := int(ms / 1000)
	nsec := int(math.Mod(ms, 1000)) * 1e6

	return time.Date(year, time.Month(month), day, 0, 0, sec, nsec, time.UTC)
}

// JulianDayNumber returns the integer Julian Day Number for a Gregorian
// calendar date, i.e. the day count at noon of that date.
func JulianDayNumber(year, month, day int) int {
	return int(GregorianToJD(year, month, day, 0, 0, 0) + 0.5)
}

// LMTShiftMinutes returns the offset, in minutes, from zone civil time to
// local mean solar time: 4 minutes per degree of longitude east of the
// zone's central meridian (15° per hour of offset).
func LMTShiftMinutes(longitude, tzOffset float64) float64 {
	return 4 * (longitude - 15*tzOffset)
}

// ValidateDate checks that the Gregorian date and time components form a
// representable calendar instant. Returns ErrInvalidDate otherwise.
func ValidateDate(year, month, day, hour, minute int) error {
	if year < 1 {
		return ErrInvalidDate
	}
	if month < 1 || month > 12 {
		return ErrInvalidDate
	}
	if day < 1 || day > daysInMonth(year, month) {
		return ErrInvalidDate
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ErrInvalidDate
	}
	return nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if isLeapYear(year) {
		return 29
	}
	return 28
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
