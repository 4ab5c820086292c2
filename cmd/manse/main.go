// Package main is a command-line four-pillars calculator.
//
// Usage:
//
//	manse --date 2025-12-14 --time 15:00 --sex male
//	manse --date 1988-01-27 --time 06:30 --sex female --lmt --format json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/junhoahn/manse-api/internal/manse"
)

func main() {
	var (
		dateFlag   = flag.String("date", "", "birth date, YYYY-MM-DD (required)")
		timeFlag   = flag.String("time", "12:00", "birth time, HH:MM")
		sexFlag    = flag.String("sex", "male", "sex: male or female")
		tzFlag     = flag.Float64("tz", 9.0, "civil timezone offset in hours, east positive")
		lonFlag    = flag.Float64("lon", 126.98, "longitude in degrees east")
		lmtFlag    = flag.Bool("lmt", false, "apply local mean time correction")
		cyclesFlag = flag.Int("cycles", manse.DefaultCycleCount, "number of luck cycles")
		formatFlag = flag.String("format", "text", "output format: text or json")
	)
	flag.Parse()

	if *dateFlag == "" {
		fmt.Fprintln(os.Stderr, "error: --date is required")
		flag.Usage()
		os.Exit(2)
	}

	date, err := time.Parse("2006-01-02", *dateFlag)
	if err != nil {
		fatalf("invalid --date %q, use YYYY-MM-DD", *dateFlag)
	}
	tod, err := time.Parse("15:04", *timeFlag)
	if err != nil {
		fatalf("invalid --time %q, use HH:MM", *timeFlag)
	}

	var sex manse.Sex
	switch *sexFlag {
	case "male":
		sex = manse.SexMale
	case "female":
		sex = manse.SexFemale
	default:
		fatalf("invalid --sex %q, use male or female", *sexFlag)
	}

	res, err := manse.Compute(manse.Input{
		Year:       date.Year(),
		Month:      int(date.Month()),
		Day:        date.Day(),
		Hour:       tod.Hour(),
		Minute:     tod.Minute(),
		Sex:        sex,
		TZOffset:   *tzFlag,
		Longitude:  *lonFlag,
		ApplyLMT:   *lmtFlag,
		CycleCount: *cyclesFlag,
	})
	if err != nil {
		fatalf("%v", err)
	}

	switch *formatFlag {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonView(res)); err != nil {
			fatalf("encode result: %v", err)
		}
	case "text":
		printText(res)
	default:
		fatalf("invalid --format %q, use text or json", *formatFlag)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func printText(res *manse.Result) {
	fmt.Printf("양력    %s\n", res.Gregorian.Format("2006-01-02 15:04"))
	if res.Lunar != nil {
		fmt.Printf("음력    %s\n", res.Lunar)
	} else {
		fmt.Printf("음력    (범위 밖: %v)\n", res.LunarErr)
	}

	p := res.Pillars
	fmt.Printf("연주    %s (%s)\n", p.Year.Hanja(), p.Year.Hangul())
	fmt.Printf("월주    %s (%s)\n", p.Month.Hanja(), p.Month.Hangul())
	fmt.Printf("일주    %s (%s)\n", p.Day.Hanja(), p.Day.Hangul())
	fmt.Printf("시주    %s (%s)\n", p.Hour.Hanja(), p.Hour.Hangul())

	direction := "역행"
	if res.Forward {
		direction = "순행"
	}
	fmt.Printf("대운    %s\n", direction)
	for _, c := range res.Cycles {
		fmt.Printf("  %2.0f세  %s (%s)  %s ~ %s\n",
			c.AgeStart, c.Pillar.Hanja(), c.Pillar.Hangul(),
			c.DateStart.Format("2006-01-02"), c.DateEnd.Format("2006-01-02"))
	}
}

// chartView is the JSON shape of the CLI output.
type chartView struct {
	Gregorian  string `json:"gregorian"`
	Lunar      string `json:"lunar,omitempty"`
	LunarError string `json:"lunar_error,omitempty"`
	Pillars    struct {
		Year  string `json:"year"`
		Month string `json:"month"`
		Day   string `json:"day"`
		Hour  string `json:"hour"`
	} `json:"pillars"`
	Direction string      `json:"direction"`
	Cycles    []cycleView `json:"cycles"`
}

type cycleView struct {
	AgeStart  float64 `json:"age_start"`
	Pillar    string  `json:"pillar"`
	DateStart string  `json:"date_start"`
	DateEnd   string  `json:"date_end"`
}

func jsonView(res *manse.Result) *chartView {
	v := &chartView{
		Gregorian: res.Gregorian.Format("2006-01-02 15:04"),
	}
	if res.Lunar != nil {
		v.Lunar = res.Lunar.String()
	}
	if res.LunarErr != nil {
		v.LunarError = res.LunarErr.Error()
	}

	v.Pillars.Year = res.Pillars.Year.Hanja()
	v.Pillars.Month = res.Pillars.Month.Hanja()
	v.Pillars.Day = res.Pillars.Day.Hanja()
	v.Pillars.Hour = res.Pillars.Hour.Hanja()

	v.Direction = "backward"
	if res.Forward {
		v.Direction = "forward"
	}
	for _, c := range res.Cycles {
		v.Cycles = append(v.Cycles, cycleView{
			AgeStart:  c.AgeStart,
			Pillar:    c.Pillar.Hanja(),
			DateStart: c.DateStart.Format("2006-01-02"),
			DateEnd:   c.DateEnd.Format("2006-01-02"),
		})
	}
	return v
}
