package manse

import (
	"math"
	"time"
)

// Input is the birth record the chart is computed from. TZOffset is the
// civil zone offset in hours (east positive); Longitude is in degrees
// east. When ApplyLMT is set, the civil time is corrected to local mean
// solar time before any boundary classification.
type Input struct {
	Year, Month, Day int
	Hour, Minute     int
	Sex              Sex
	TZOffset         float64
	Longitude        float64
	ApplyLMT         bool
	CycleCount       int
}

// Pillars holds the four pillar designations of a chart.
type Pillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Result is a fully computed chart. Lunar is nil when the birth date falls
// outside the lunar table window; LunarErr then carries ErrLunarRange and
// everything else remains valid.
type Result struct {
	JulianDateUTC float64
	Gregorian     time.Time // local civil datetime after any LMT correction
	Lunar         *LunarDate
	LunarErr      error
	Pillars       Pillars
	Forward       bool
	Cycles        []LuckCycle
}

// Compute derives the four pillars, the lunar-date echo, and the luck
// sequence from a birth record. It is a pure function of its input: the
// only errors are ErrInvalidDate for unrepresentable calendar input and
// ErrBoundarySearch for an internal solar-model inconsistency. A lunar
// date outside the table window does not fail the computation.
func Compute(in Input) (*Result, error) {
	if err := ValidateDate(in.Year, in.Month, in.Day, in.Hour, in.Minute); err != nil {
		return nil, err
	}

	// Civil minutes of day, shifted to local mean time if requested. The
	// shift can move the instant across midnight, which changes the civil
	// date every later rule sees.
	minutes := float64(in.Hour*60 + in.Minute)
	if in.ApplyLMT {
		minutes += LMTShiftMinutes(in.Longitude, in.TZOffset)
	}
	dayShift := int(math.Floor(minutes / 1440))
	minutes -= float64(dayShift) * 1440

	civil := time.Date(in.Year, time.Month(in.Month), in.Day, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, dayShift).
		Add(time.Duration(minutes * float64(time.Minute)))
	cy, cm, cd := civil.Date()

	jdUTC := GregorianToJD(cy, int(cm), cd, minutes/60-in.TZOffset, 0, 0)

	yearP, err := YearPillar(jdUTC, cy)
	if err != nil {
		return nil, err
	}

	longitude := SunEclipticLongitude(jdUTC)
	monthP := MonthPillar(longitude, yearP.Stem)
	dayP := DayPillar(cy, int(cm), cd, in.TZOffset)
	hourP := HourPillar(dayP.Stem, minutes)

	res := &Result{
		JulianDateUTC: jdUTC,
		Gregorian:     civil,
		Pillars: Pillars{
			Year:  yearP,
			Month: monthP,
			Day:   dayP,
			Hour:  hourP,
		},
	}

	lunar, err := LunarFromGregorian(cy, int(cm), cd)
	if err != nil {
		res.LunarErr = err
	} else {
		res.Lunar = &lunar
	}

	cycles, forward, err := LuckCycles(jdUTC, in.Sex, yearP, monthP, in.CycleCount)
	if err != nil {
		return nil, err
	}
	res.Forward = forward
	res.Cycles = cycles

	return res, nil
}
