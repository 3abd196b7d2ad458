// Package lunisolar implements the Chinese lunisolar calendar tables and
// the bidirectional Gregorian conversion built on them, valid 1901-2100.
package lunisolar

import (
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

// yearInfo encodes one lunisolar year per entry, 1900 through 2100.
//
// Bit layout (17 bits used):
//
//	bits 0-3   index of the leap month, 0 when the year has none
//	bits 4-15  month lengths for months 1..12, set bit = 30 days (bit 15
//	           is month 1), clear bit = 29 days
//	bit 16     length of the leap month, set = 30 days
//
// The table is the compilation of the Hong Kong Observatory conversion
// data that the upstream holiday service family is built on; 1900 anchors
// the cumulative new-year computation and is not itself queryable.
var yearInfo = [...]uint32{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900-1909
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910-1919
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920-1929
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930-1939
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940-1949
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950-1959
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960-1969
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b5a0, 0x195a6, // 1970-1979
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980-1989
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x05ac0, 0x0ab60, 0x096d5, 0x092e0, // 1990-1999
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000-2009
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010-2019
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020-2029
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030-2039
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040-2049
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050-2059
	0x0a2e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060-2069
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070-2079
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080-2089
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090-2099
	0x0d520, // 2100
}

// epoch is the Gregorian date of lunar 1900-01-01.
var epoch = time.Date(config.TableEpochYear, time.January, 31, 0, 0, 0, 0, time.UTC)

// Month describes one month slot in a lunisolar year's traversal order.
// A leap month appears immediately after the regular month it duplicates.
type Month struct {
	Number int // 1..12, leap months repeat the preceding number
	Leap   bool
	Days   int // 29 or 30
}

// YearRecord is the immutable per-year calendar structure.
type YearRecord struct {
	Year      int
	LeapMonth int // 0 when the year has no leap month
	Months    []Month
	NewYear   time.Time // Gregorian date of lunar month 1 day 1
	TotalDays int
}

// MonthDays returns the length of the given month, or 0 when the
// month/leap combination does not exist in this year.
func (r *YearRecord) MonthDays(month int, leap bool) int {
	for _, m := range r.Months {
		if m.Number == month && m.Leap == leap {
			return m.Days
		}
	}
	return 0
}

// Table holds every YearRecord for the supported span as process-wide
// immutable state. Construct once at startup and share by reference.
type Table struct {
	records []YearRecord // indexed by year - TableEpochYear
	starts  []int        // day offset of each year's new year from epoch
}

// NewTable materializes the bitmask table into year records. The work is
// bounded (201 years) and runs once per process.
func NewTable() *Table {
	t := &Table{
		records: make([]YearRecord, len(yearInfo)),
		starts:  make([]int, len(yearInfo)),
	}

	offset := 0
	for i, info := range yearInfo {
		year := config.TableEpochYear + i
		rec := YearRecord{
			Year:      year,
			LeapMonth: int(info & 0xf),
			NewYear:   epoch.AddDate(0, 0, offset),
		}

		for m := 1; m <= 12; m++ {
			days := 29
			if info&(0x8000>>uint(m-1)) != 0 {
				days = 30
			}
			rec.Months = append(rec.Months, Month{Number: m, Days: days})
			rec.TotalDays += days

			if m == rec.LeapMonth {
				leapDays := 29
				if info&0x10000 != 0 {
					leapDays = 30
				}
				rec.Months = append(rec.Months, Month{Number: m, Leap: true, Days: leapDays})
				rec.TotalDays += leapDays
			}
		}

		t.records[i] = rec
		t.starts[i] = offset
		offset += rec.TotalDays
	}

	return t
}

// RecordFor returns the record for a lunisolar year within 1901-2100.
func (t *Table) RecordFor(year int) (*YearRecord, error) {
	if year < config.MinYear || year > config.MaxYear {
		return nil, errs.OutOfRange(config.ErrYearRange, "year", year)
	}
	return &t.records[year-config.TableEpochYear], nil
}

// yearStartOffset returns the epoch day offset of a year's new year.
func (t *Table) yearStartOffset(year int) int {
	return t.starts[year-config.TableEpochYear]
}
