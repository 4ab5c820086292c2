package manse

import "math"

// The ten heavenly stems (천간) and twelve earthly branches (지지), in
// cycle order. Stems at even indices are yang, odd indices yin.
var (
	stemHanja    = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemHangul   = [10]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
	branchHanja  = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchHangul = [12]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
)

// Pillar is a stem/branch pair. Stem is an index 0–9 into the heavenly
// stems, Branch an index 0–11 into the earthly branches. Valid pillars
// always have matching stem and branch parity, because the sexagenary
// cycle advances both together.
type Pillar struct {
	Stem   int `json:"stem"`
	Branch int `json:"branch"`
}

// PillarFromIndex returns the pillar at position i of the sexagenary cycle
// (0 = 甲子). Any integer is accepted; it is reduced modulo 60 first.
func PillarFromIndex(i int) Pillar {
	i = ((i % 60) + 60) % 60
	return Pillar{Stem: i % 10, Branch: i % 12}
}

// SexagenaryIndex returns the position 0–59 of the pillar in the
// sexagenary cycle. The closed form solves the pair of congruences
// i ≡ stem (mod 10), i ≡ branch (mod 12), which has a solution exactly
// when stem and branch share parity.
func (p Pillar) SexagenaryIndex() int {
	return (36*p.Stem + 25*p.Branch) % 60
}

// StemYang reports whether the pillar's stem has yang polarity.
func (p Pillar) StemYang() bool {
	return p.Stem%2 == 0
}

// Hanja returns the pillar as a two-character stem+branch string (e.g. 甲子).
func (p Pillar) Hanja() string {
	return stemHanja[p.Stem] + branchHanja[p.Branch]
}

// Hangul returns the Korean reading of the pillar (e.g. 갑자).
func (p Pillar) Hangul() string {
	return stemHangul[p.Stem] + branchHangul[p.Branch]
}

func (p Pillar) String() string {
	return p.Hanja()
}

// yearReference is a Gregorian year with a known year pillar:
// 1984 was 甲子, index 0 of the sexagenary cycle.
const yearReference = 1984

// dayEpochConst aligns the integer Julian day count with the sexagenary
// day cycle. Tuned so that 1988-01-27 (KST) is 辛巳.
const dayEpochConst = 50

// monthStemStart gives the stem of month bucket 0 (the 寅 month) keyed by
// the year stem modulo 5, the traditional five-tiger rule (오호둔).
// 甲/己 years begin at 丙, 乙/庚 at 戊, 丙/辛 at 庚, 丁/壬 at 壬, 戊/癸 at 甲.
var monthStemStart = [5]int{2, 4, 6, 8, 0}

// hourStemStart gives the stem of the 子 double-hour keyed by the day stem
// modulo 5, the five-rat rule (오서둔). 甲/己 days begin at 甲, 乙/庚 at 丙,
// 丙/辛 at 戊, 丁/壬 at 庚, 戊/癸 at 壬.
var hourStemStart = [5]int{0, 2, 4, 6, 8}

// YearPillar determines the year pillar for a birth instant. The
// astrological year runs Lichun to Lichun: a birth before the civil year's
// Lichun crossing belongs to the previous year's pillar.
func YearPillar(jdUTC float64, civilYear int) (Pillar, error) {
	lichun, err := LichunJD(civilYear)
	if err != nil {
		return Pillar{}, err
	}
	year := civilYear
	if jdUTC < lichun {
		year--
	}
	return PillarFromIndex(year - yearReference), nil
}

// MonthBucket returns the month index 0–11 for a solar ecliptic longitude,
// where bucket 0 is the 寅 month [315°, 345°).
func MonthBucket(longitude float64) int {
	return int(normalizeDeg(longitude-lichunLongitude) / 30)
}

// MonthPillar determines the month pillar from the solar longitude at the
// birth instant and the year pillar's stem. The branch is fixed per bucket
// (bucket 0 is 寅, branch index 2); the stem starts from the five-tiger
// table and advances one per bucket.
func MonthPillar(longitude float64, yearStem int) Pillar {
	bucket := MonthBucket(longitude)
	return Pillar{
		Stem:   (monthStemStart[yearStem%5] + bucket) % 10,
		Branch: (2 + bucket) % 12,
	}
}

// DayPillar determines the day pillar for a local calendar date. The day
// boundary is local civil midnight: the date's 00:00 in the given zone is
// converted to a Julian day count and offset by the tuned epoch constant.
func DayPillar(year, month, day int, tzOffset float64) Pillar {
	jd0 := GregorianToJD(year, month, day, -tzOffset, 0, 0)
	return PillarFromIndex(int(jd0+0.5) + dayEpochConst)
}

// HourPillar determines the hour pillar from the day stem and the local
// civil time of day in minutes (which may already include an LMT shift).
// The 24-hour day divides into 12 double-hours anchored at 23:00; an exact
// window boundary belongs to the preceding window, so 01:00:00 sharp is
// still the 子 hour.
func HourPillar(dayStem int, minutesOfDay float64) Pillar {
	minutes := math.Mod(math.Mod(minutesOfDay, 1440)+1440, 1440)
	offset := math.Mod(minutes-23*60+1440, 1440)

	// Nudge exact boundaries into the previous window.
	const eps = 1e-7
	window := int(math.Mod(offset-eps+1440, 1440) / 120)

	return Pillar{
		Stem:   (hourStemStart[dayStem%5] + window) % 10,
		Branch: window,
	}
}
