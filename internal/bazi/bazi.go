// Package bazi derives the four sexagenary pillars of a birth moment from
// the lunisolar conversion, the solar-term boundaries and the cycle
// arithmetic. Everything here is a pure function of its inputs.
package bazi

import (
	"strings"
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/sexagenary"
	"github.com/tartampluch/go-chinacal/internal/solarterm"
)

// Result carries the four pillars of a chart.
type Result struct {
	Year  sexagenary.Pillar
	Month sexagenary.Pillar
	Day   sexagenary.Pillar
	Hour  sexagenary.Pillar
}

// EightCharacters renders the chart in the conventional form: four
// two-character pillars separated by spaces.
func (r Result) EightCharacters() string {
	return strings.Join([]string{
		r.Year.String(),
		r.Month.String(),
		r.Day.String(),
		r.Hour.String(),
	}, " ")
}

// Calculator orchestrates the converter and the term resolver.
type Calculator struct {
	converter *lunisolar.Converter
	terms     *solarterm.Resolver
}

// NewCalculator wires the two collaborators.
func NewCalculator(c *lunisolar.Converter, t *solarterm.Resolver) *Calculator {
	return &Calculator{converter: c, terms: t}
}

// Compute builds the chart for a Gregorian date and clock time. The year
// pillar follows the lunisolar year of the date; the month pillar follows
// the major-term interval, not the calendar month.
func (c *Calculator) Compute(date time.Time, hour, minute int) (Result, error) {
	if hour < 0 || hour > 23 {
		return Result{}, errs.Validation(config.ErrHourRange, "hour", hour)
	}
	if minute < 0 || minute > 59 {
		return Result{}, errs.Validation(config.ErrMinuteRange, "minute", minute)
	}

	lunar, err := c.converter.ToLunar(date)
	if err != nil {
		return Result{}, err
	}

	monthIndex, err := c.terms.MonthIndex(date)
	if err != nil {
		return Result{}, err
	}

	yearPillar := sexagenary.YearPillar(lunar.Year)
	dayPillar := sexagenary.DayPillar(date)

	hourPillar, err := sexagenary.HourPillar(dayPillar, hour)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Year:  yearPillar,
		Month: sexagenary.MonthPillar(yearPillar, monthIndex),
		Day:   dayPillar,
		Hour:  hourPillar,
	}, nil
}
