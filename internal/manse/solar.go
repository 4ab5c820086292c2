package manse

import "math"

// j2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000 = 2451545.0

// SunEclipticLongitude returns the Sun's apparent ecliptic longitude in
// degrees, normalized to [0, 360), for the given Julian Date.
//
// This is the low-precision model from Meeus ch. 25: mean longitude and
// mean anomaly as linear functions of Julian centuries since J2000, a
// three-term equation of center, then a constant aberration correction and
// the dominant nutation-in-longitude term. Accuracy is on the order of an
// arc minute, which is ample for classifying a birth instant against
// solar-term boundaries (the Sun moves about 1°/day, so an arc minute is
// under two minutes of clock time).
func SunEclipticLongitude(jd float64) float64 {
	t := (jd - j2000) / 36525.0

	// Mean anomaly and geometric mean longitude of the Sun.
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t

	mr := deg2rad(normalizeDeg(m))

	// Equation of center.
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mr) +
		(0.019993-0.000101*t)*math.Sin(2*mr) +
		0.000289*math.Sin(3*mr)

	trueLong := l0 + c

	// Apparent longitude: aberration plus nutation in longitude.
	omega := 125.04 - 1934.136*t
	lambda := trueLong - 0.00569 - 0.00478*math.Sin(deg2rad(omega))

	return normalizeDeg(lambda)
}

// AngleDelta returns the signed angular difference a-b normalized into
// [-180, 180). Differences near the 360°→0° wrap stay small instead of
// jumping by a full turn.
func AngleDelta(a, b float64) float64 {
	return math.Mod(a-b+540, 360) - 180
}

// normalizeDeg reduces an angle in degrees into [0, 360).
func normalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
