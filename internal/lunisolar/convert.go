package lunisolar

import (
	"sort"
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

// Date is a fully resolved lunisolar date.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..30
	Leap  bool
}

// Converter performs Gregorian to lunisolar conversion and back against a
// shared immutable Table.
type Converter struct {
	table *Table
}

// NewConverter wraps the given table. The converter itself is stateless.
func NewConverter(t *Table) *Converter {
	return &Converter{table: t}
}

// minDate/maxDate bound the supported Gregorian span.
var (
	minDate = time.Date(config.MinYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(config.MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// dayNumber counts whole days from the table epoch to the given date.
func dayNumber(d time.Time) int {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(epoch) / (24 * time.Hour))
}

// ToLunar converts a Gregorian date to its lunisolar equivalent.
// Dates in January/February before the 1901 new year resolve into the
// tail months of lunar 1900; that is the correct calendar answer even
// though 1900 is not directly queryable.
func (c *Converter) ToLunar(date time.Time) (Date, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(minDate) || date.After(maxDate) {
		return Date{}, errs.OutOfRange(config.ErrDateRange, "date", date.Format(config.DateFormatISO))
	}

	offset := dayNumber(date)

	// Binary search for the last year whose new year is on or before the
	// target date.
	idx := sort.Search(len(c.table.starts), func(i int) bool {
		return c.table.starts[i] > offset
	}) - 1

	rec := &c.table.records[idx]
	remaining := offset - c.table.starts[idx]

	for _, m := range rec.Months {
		if remaining < m.Days {
			return Date{Year: rec.Year, Month: m.Number, Day: remaining + 1, Leap: m.Leap}, nil
		}
		remaining -= m.Days
	}

	// Unreachable: the search guarantees offset falls inside rec's span.
	return Date{}, errs.OutOfRange(config.ErrDateRange, "date", date.Format(config.DateFormatISO))
}

// FromLunar converts lunisolar components back to a Gregorian date,
// validating them against the year's record first.
func (c *Converter) FromLunar(year, month, day int, leap bool) (time.Time, error) {
	rec, err := c.table.RecordFor(year)
	if err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 {
		return time.Time{}, errs.InvalidLunarDate(config.ErrMonthRange, "month", month)
	}
	if leap && rec.LeapMonth != month {
		return time.Time{}, errs.InvalidLunarDate(config.ErrLeapMismatch, "month", month)
	}

	length := rec.MonthDays(month, leap)
	if day < 1 || day > length {
		return time.Time{}, errs.InvalidLunarDate(config.ErrLunarDay, "day", day)
	}

	offset := 0
	for _, m := range rec.Months {
		if m.Number == month && m.Leap == leap {
			break
		}
		offset += m.Days
	}

	return rec.NewYear.AddDate(0, 0, offset+day-1), nil
}

// WeekdayNumber maps a date onto the 1..7 convention with Monday as 1.
// Pure proleptic Gregorian arithmetic, no table dependency.
func WeekdayNumber(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
