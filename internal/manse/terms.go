package manse

import "math"

// SolarTerm is one of the 12 principal term boundaries (절기), spaced 30°
// apart in solar ecliptic longitude starting at Lichun (입춘, 315°). These
// are the month-defining terms; the 12 mid-month terms (중기) play no role
// in pillar determination and are not modeled.
type SolarTerm struct {
	Name      string  // Korean name
	Hanja     string  // Chinese characters
	Longitude float64 // solar ecliptic longitude in degrees
}

// SolarTerms lists the 12 month-boundary terms in calendar order, starting
// with Lichun. Index i corresponds to month bucket i of the month pillar.
var SolarTerms = [12]SolarTerm{
	{"입춘", "立春", 315},
	{"경칩", "驚蟄", 345},
	{"청명", "淸明", 15},
	{"입하", "立夏", 45},
	{"망종", "芒種", 75},
	{"소서", "小暑", 105},
	{"입추", "立秋", 135},
	{"백로", "白露", 165},
	{"한로", "寒露", 195},
	{"입동", "立冬", 225},
	{"대설", "大雪", 255},
	{"소한", "小寒", 285},
}

const (
	// lichunLongitude anchors the astrological year and month bucket 0.
	lichunLongitude = 315.0

	// maxBracketDays bounds the outward scan when bracketing a crossing.
	// Adjacent terms are at most ~32 days apart, so a crossing of the
	// sought longitude always lies well inside this window.
	maxBracketDays = 45

	// bisectIterations refines a one-day bracket to ~8e-8 days (~7 ms),
	// comfortably below the sub-minute precision the pillar rules need.
	bisectIterations = 40
)

// FindTermCrossing locates the Julian Date at which the Sun's ecliptic
// longitude crosses targetDeg, searching outward from guessJD.
//
// The solar longitude increases monotonically at roughly 1°/day within any
// window this is called with, so the crossing is bracketed by scanning
// day-sized steps outward from the guess until the wraparound-normalized
// difference changes sign from negative to positive, then refined by
// bisection. Returns ErrBoundarySearch if no bracket is found within the
// scan bound, which indicates an inconsistency in the angular model rather
// than bad input.
func FindTermCrossing(targetDeg, guessJD float64) (float64, error) {
	f := func(jd float64) float64 {
		return AngleDelta(SunEclipticLongitude(jd), targetDeg)
	}

	lo, hi, ok := bracketCrossing(f, guessJD)
	if !ok {
		return 0, ErrBoundarySearch
	}

	for i := 0; i < bisectIterations; i++ {
		mid := (lo + hi) / 2
		if f(lo)*f(mid) <= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return (lo + hi) / 2, nil
}

// bracketCrossing scans day-sized intervals outward from guessJD looking
// for a negative-to-positive sign change of f.
func bracketCrossing(f func(float64) float64, guessJD float64) (lo, hi float64, ok bool) {
	for i := 0; i < maxBracketDays; i++ {
		// Interval i days ahead of the guess.
		a, b := guessJD+float64(i), guessJD+float64(i+1)
		if f(a) <= 0 && f(b) > 0 {
			return a, b, true
		}
		// Mirror interval behind the guess.
		a, b = guessJD-float64(i+1), guessJD-float64(i)
		if f(a) <= 0 && f(b) > 0 {
			return a, b, true
		}
	}
	return 0, 0, false
}

// LichunJD returns the Julian Date of the Lichun (315°) crossing that falls
// near the start of February of the given Gregorian year. This instant is
// the year-pillar boundary.
func LichunJD(year int) (float64, error) {
	return FindTermCrossing(lichunLongitude, GregorianToJD(year, 2, 4, 0, 0, 0))
}

// NextTermCrossing returns the Julian Date and term index of the first
// principal-term crossing after jd.
func NextTermCrossing(jd float64) (float64, int, error) {
	offset := normalizeDeg(SunEclipticLongitude(jd) - lichunLongitude)
	bucket := int(offset / 30)
	next := (bucket + 1) % 12
	// The Sun covers the remaining arc at ~1°/day.
	guess := jd + (30 - math.Mod(offset, 30))
	crossing, err := FindTermCrossing(SolarTerms[next].Longitude, guess)
	if err != nil {
		return 0, 0, err
	}
	return crossing, next, nil
}

// PrevTermCrossing returns the Julian Date and term index of the last
// principal-term crossing at or before jd.
func PrevTermCrossing(jd float64) (float64, int, error) {
	offset := normalizeDeg(SunEclipticLongitude(jd) - lichunLongitude)
	bucket := int(offset / 30)
	guess := jd - math.Mod(offset, 30)
	crossing, err := FindTermCrossing(SolarTerms[bucket].Longitude, guess)
	if err != nil {
		return 0, 0, err
	}
	return crossing, bucket, nil
}
