package manse

import (
	"math"
	"time"
)

// Sex of the person the chart is cast for. It decides the luck-cycle
// direction together with the year stem's polarity.
type Sex int

const (
	SexMale Sex = iota
	SexFemale
)

func (s Sex) String() string {
	if s == SexMale {
		return "male"
	}
	return "female"
}

const (
	// tropicalYearDays converts fractional ages into exact durations.
	tropicalYearDays = 365.242196

	// daysPerLuckYear is the traditional 3-days-per-year rule: each day
	// between birth and the anchoring term crossing counts as a third of
	// a year of starting age.
	daysPerLuckYear = 3.0

	// DefaultCycleCount is the number of luck cycles generated when the
	// caller does not ask for a specific count.
	DefaultCycleCount = 10
)

// LuckCycle is one 10-year span of the luck sequence. Ages are fractional
// years since birth; the instants are UTC.
type LuckCycle struct {
	Index     int       `json:"index"`
	AgeStart  float64   `json:"age_start"`
	AgeEnd    float64   `json:"age_end"`
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`
	Pillar    Pillar    `json:"pillar"`
}

// LuckDirection reports whether the luck sequence runs forward. Forward
// applies to men born in yang-stem years and women born in yin-stem
// years; the other combinations run backward.
func LuckDirection(sex Sex, yearPillar Pillar) bool {
	return (sex == SexMale) == yearPillar.StemYang()
}

// LuckCycles builds the luck sequence for a birth instant.
//
// The anchor is the nearest principal-term crossing in the direction of
// travel: the next term for a forward sequence, the previous term for a
// backward one. The birth-to-anchor gap in days, divided by three, is the
// starting age in years; that fractional age is re-expressed through the
// tropical-year constant to pin the first cycle's starting instant to the
// second. Cycle n carries the month pillar advanced n sexagenary steps in
// the direction of travel, and each cycle spans exactly ten years.
func LuckCycles(jdUTC float64, sex Sex, yearPillar, monthPillar Pillar, count int) ([]LuckCycle, bool, error) {
	if count <= 0 {
		count = DefaultCycleCount
	}
	forward := LuckDirection(sex, yearPillar)

	var anchor float64
	var err error
	if forward {
		anchor, _, err = NextTermCrossing(jdUTC)
	} else {
		anchor, _, err = PrevTermCrossing(jdUTC)
	}
	if err != nil {
		return nil, forward, err
	}

	ageStart := math.Abs(anchor-jdUTC) / daysPerLuckYear
	startJD := jdUTC + ageStart*tropicalYearDays

	monthIndex := monthPillar.SexagenaryIndex()
	step := 1
	if !forward {
		step = -1
	}

	// Boundary instants are computed once per boundary so that a cycle's
	// end is bit-identical to the next cycle's start.
	boundaryJD := func(n int) float64 {
		return startJD + float64(n)*10*tropicalYearDays
	}

	cycles := make([]LuckCycle, 0, count)
	for n := 1; n <= count; n++ {
		cycles = append(cycles, LuckCycle{
			Index:     n,
			AgeStart:  ageStart + float64(n-1)*10,
			AgeEnd:    ageStart + float64(n)*10,
			DateStart: JDToTime(boundaryJD(n - 1)),
			DateEnd:   JDToTime(boundaryJD(n)),
			Pillar:    PillarFromIndex(monthIndex + n*step),
		})
	}
	return cycles, forward, nil
}
