package manse

import (
	"errors"
	"testing"
)

func TestLunarFromGregorian_Epoch(t *testing.T) {
	got, err := LunarFromGregorian(1900, 1, 31)
	if err != nil {
		t.Fatalf("LunarFromGregorian(1900-01-31): %v", err)
	}
	if want := (LunarDate{1900, 1, 1, false}); got != want {
		t.Errorf("epoch = %+v, want %+v", got, want)
	}

	// One day before the epoch is out of range, not clamped.
	if _, err := LunarFromGregorian(1900, 1, 30); !errors.Is(err, ErrLunarRange) {
		t.Errorf("1900-01-30 err = %v, want ErrLunarRange", err)
	}
}

func TestLunarFromGregorian_NewYear(t *testing.T) {
	// Lunar New Year 2025 fell on January 29.
	got, err := LunarFromGregorian(2025, 1, 29)
	if err != nil {
		t.Fatalf("LunarFromGregorian(2025-01-29): %v", err)
	}
	if want := (LunarDate{2025, 1, 1, false}); got != want {
		t.Errorf("new year = %+v, want %+v", got, want)
	}

	// The day before is still the 12th month of lunar 2024.
	got, err = LunarFromGregorian(2025, 1, 28)
	if err != nil {
		t.Fatalf("LunarFromGregorian(2025-01-28): %v", err)
	}
	if got.Year != 2024 || got.Month != 12 || got.Leap {
		t.Errorf("day before new year = %+v, want 2024-12", got)
	}
}

func TestLunarFromGregorian_LeapMonth(t *testing.T) {
	// Lunar 2023 intercalates a second month; its first day was March 22.
	got, err := LunarFromGregorian(2023, 3, 22)
	if err != nil {
		t.Fatalf("LunarFromGregorian(2023-03-22): %v", err)
	}
	if want := (LunarDate{2023, 2, 1, true}); got != want {
		t.Errorf("leap month start = %+v, want %+v", got, want)
	}

	// The day before is the last day of the regular second month.
	got, err = LunarFromGregorian(2023, 3, 21)
	if err != nil {
		t.Fatalf("LunarFromGregorian(2023-03-21): %v", err)
	}
	if got.Month != 2 || got.Leap {
		t.Errorf("day before leap month = %+v, want regular month 2", got)
	}
}

func TestLunarFromGregorian_TableBounds(t *testing.T) {
	// Late 2100 is still inside lunar year 2100.
	if _, err := LunarFromGregorian(2100, 12, 31); err != nil {
		t.Errorf("2100-12-31 err = %v, want nil", err)
	}

	// Well past the end of the table.
	if _, err := LunarFromGregorian(2101, 6, 1); !errors.Is(err, ErrLunarRange) {
		t.Errorf("2101-06-01 err = %v, want ErrLunarRange", err)
	}
}

func TestLunarDate_String(t *testing.T) {
	if got := (LunarDate{2025, 10, 25, false}).String(); got != "2025년 10월 25일" {
		t.Errorf("String() = %q", got)
	}
	if got := (LunarDate{2023, 2, 1, true}).String(); got != "2023년 윤2월 1일" {
		t.Errorf("leap String() = %q", got)
	}
}

func TestLunarYearDays_Plausible(t *testing.T) {
	// Every tabulated year is 353–355 days, or 383–385 with a leap month.
	for year := lunarFirstYear; year <= lunarLastYear; year++ {
		days := lunarYearDays(year)
		if lunarLeapMonth(year) == 0 {
			if days < 353 || days > 355 {
				t.Errorf("year %d: %d days without leap month", year, days)
			}
		} else {
			if days < 383 || days > 385 {
				t.Errorf("year %d: %d days with leap month", year, days)
			}
		}
	}
}
