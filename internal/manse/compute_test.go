package manse

import (
	"errors"
	"reflect"
	"testing"
)

// seoulBirth is the reference scenario used across the compute tests:
// 2025-12-14 15:00 KST in Seoul, male, no LMT correction.
func seoulBirth() Input {
	return Input{
		Year: 2025, Month: 12, Day: 14,
		Hour: 15, Minute: 0,
		Sex:        SexMale,
		TZOffset:   9,
		Longitude:  126.98,
		CycleCount: 10,
	}
}

func TestCompute_Scenario(t *testing.T) {
	res, err := Compute(seoulBirth())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := Pillars{
		Year:  Pillar{1, 5}, // 乙巳
		Month: Pillar{4, 0}, // 戊子
		Day:   Pillar{3, 5}, // 丁巳
		Hour:  Pillar{3, 7}, // 丁未
	}
	if res.Pillars != want {
		t.Errorf("pillars = %s %s %s %s, want %s %s %s %s",
			res.Pillars.Year, res.Pillars.Month, res.Pillars.Day, res.Pillars.Hour,
			want.Year, want.Month, want.Day, want.Hour)
	}

	if res.LunarErr != nil {
		t.Fatalf("LunarErr = %v", res.LunarErr)
	}
	if res.Lunar == nil {
		t.Fatal("Lunar = nil")
	}
	if wantLunar := (LunarDate{2025, 10, 25, false}); *res.Lunar != wantLunar {
		t.Errorf("lunar = %+v, want %+v", *res.Lunar, wantLunar)
	}

	if res.Forward {
		t.Error("male in yin-stem year: expected a backward sequence")
	}
	if len(res.Cycles) != 10 {
		t.Fatalf("len(Cycles) = %d, want 10", len(res.Cycles))
	}
	first := res.Cycles[0]
	if first.AgeStart < 0 || first.AgeStart >= 10 {
		t.Errorf("first AgeStart = %f, want [0, 10)", first.AgeStart)
	}
}

func TestCompute_Determinism(t *testing.T) {
	a, err := Compute(seoulBirth())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	b, err := Compute(seoulBirth())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestCompute_LunarOutOfRange(t *testing.T) {
	in := seoulBirth()
	in.Year = 1899
	in.Month = 6
	in.Day = 1

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v (lunar range must not fail the chart)", err)
	}
	if !errors.Is(res.LunarErr, ErrLunarRange) {
		t.Errorf("LunarErr = %v, want ErrLunarRange", res.LunarErr)
	}
	if res.Lunar != nil {
		t.Errorf("Lunar = %+v, want nil", res.Lunar)
	}

	// Pillars are still computed: 1899 after Lichun is a 己亥 year.
	if want := (Pillar{5, 11}); res.Pillars.Year != want {
		t.Errorf("year pillar = %s, want %s", res.Pillars.Year, want)
	}
	if len(res.Cycles) != 10 {
		t.Errorf("len(Cycles) = %d, want 10", len(res.Cycles))
	}
}

func TestCompute_InvalidDate(t *testing.T) {
	in := seoulBirth()
	in.Month = 13
	if _, err := Compute(in); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}

	in = seoulBirth()
	in.Year = 0
	if _, err := Compute(in); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}

func TestCompute_HourBoundary(t *testing.T) {
	in := seoulBirth()
	in.Hour, in.Minute = 1, 0

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// 01:00 sharp belongs to the 23:00–01:00 window.
	if res.Pillars.Hour.Branch != 0 {
		t.Errorf("hour branch = %d, want 子 (0)", res.Pillars.Hour.Branch)
	}
}

func TestCompute_LMTShiftsHourWindow(t *testing.T) {
	// 13:10 zone time in Seoul is 12:38 local mean time: without the
	// correction the instant is past the 13:00 boundary (未), with it the
	// instant falls back into the 午 window.
	in := seoulBirth()
	in.Hour, in.Minute = 13, 10

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Pillars.Hour.Branch != 7 {
		t.Errorf("without LMT: hour branch = %d, want 未 (7)", res.Pillars.Hour.Branch)
	}

	in.ApplyLMT = true
	res, err = Compute(in)
	if err != nil {
		t.Fatalf("Compute with LMT: %v", err)
	}
	if res.Pillars.Hour.Branch != 6 {
		t.Errorf("with LMT: hour branch = %d, want 午 (6)", res.Pillars.Hour.Branch)
	}
}

func TestCompute_DefaultCycleCount(t *testing.T) {
	in := seoulBirth()
	in.CycleCount = 0

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.Cycles) != DefaultCycleCount {
		t.Errorf("len(Cycles) = %d, want %d", len(res.Cycles), DefaultCycleCount)
	}
}
