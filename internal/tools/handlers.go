package tools

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/holiday"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/sexagenary"
)

const (
	langEN = "en"
	langZH = "zh"
)

// -----------------------------------------------------------------------------
// Argument Helpers
// -----------------------------------------------------------------------------

// dateArg parses the ISO date argument; when optional and absent it
// defaults to the engine clock's today.
func dateArg(e *Engine, args map[string]any, required bool) (time.Time, error) {
	raw, ok := args[config.ArgDate]
	if !ok || raw == nil || raw == "" {
		if required {
			return time.Time{}, errs.Validation(config.ErrMissingRequired, config.ArgDate, nil)
		}
		now := e.Clock.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	str, ok := raw.(string)
	if !ok {
		return time.Time{}, errs.Validation(config.ErrDateFormat, config.ArgDate, raw)
	}

	d, err := time.Parse(config.DateFormatISO, str)
	if err != nil {
		return time.Time{}, errs.Validation(config.ErrDateFormat, config.ArgDate, str)
	}
	return d, nil
}

// intArg reads an integer argument, tolerating the float64 JSON decoding
// produces. Absent arguments return the fallback.
func intArg(args map[string]any, name string, fallback int, required bool) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		if required {
			return 0, errs.Validation(config.ErrMissingRequired, name, nil)
		}
		return fallback, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, errs.Validation(config.ErrIntegerArg, name, raw)
		}
		return int(v), nil
	default:
		return 0, errs.Validation(config.ErrIntegerArg, name, raw)
	}
}

func boolArg(args map[string]any, name string) bool {
	v, _ := args[name].(bool)
	return v
}

func isoDate(d time.Time) string {
	return d.Format(config.DateFormatISO)
}

func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// -----------------------------------------------------------------------------
// Schemas
// -----------------------------------------------------------------------------

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var dateProp = map[string]any{
	"type":        "string",
	"description": "ISO date, YYYY-MM-DD",
}

// -----------------------------------------------------------------------------
// Tool Definitions
// -----------------------------------------------------------------------------

func toolset() []Tool {
	return []Tool{
		{
			Name:        config.ToolHolidayInfo,
			Description: "Holiday, adjusted-workday or ordinary-day status of a date (default: today)",
			InputSchema: objectSchema(map[string]any{config.ArgDate: dateProp}),
			volatile:    true,
			handler:     handleHolidayInfo,
		},
		{
			Name:        config.ToolNextHoliday,
			Description: "The next statutory holiday after today",
			InputSchema: objectSchema(map[string]any{}),
			volatile:    true,
			handler:     handleNextHoliday,
		},
		{
			Name:        config.ToolYearHolidays,
			Description: "All statutory holidays of the current year",
			InputSchema: objectSchema(map[string]any{}),
			volatile:    true,
			handler:     handleYearHolidays,
		},
		{
			Name:        config.ToolYearWorkDays,
			Description: "All adjusted workdays of the current year",
			InputSchema: objectSchema(map[string]any{}),
			volatile:    true,
			handler:     handleYearWorkDays,
		},
		{
			Name:        config.ToolGregorianToLunar,
			Description: "Convert a Gregorian date to its lunisolar equivalent",
			InputSchema: objectSchema(map[string]any{config.ArgDate: dateProp}, config.ArgDate),
			handler:     handleGregorianToLunar,
		},
		{
			Name:        config.ToolLunarToGregorian,
			Description: "Convert lunisolar components back to a Gregorian date",
			InputSchema: objectSchema(map[string]any{
				config.ArgYear:   map[string]any{"type": "integer"},
				config.ArgMonth:  map[string]any{"type": "integer"},
				config.ArgDay:    map[string]any{"type": "integer"},
				config.ArgIsLeap: map[string]any{"type": "boolean"},
			}, config.ArgYear, config.ArgMonth, config.ArgDay),
			handler: handleLunarToGregorian,
		},
		{
			Name:        config.ToolLunarString,
			Description: "Traditional rendering of a date: stem-branch year, month and day names",
			InputSchema: objectSchema(map[string]any{config.ArgDate: dateProp}, config.ArgDate),
			handler:     handleLunarString,
		},
		{
			Name:        config.ToolSolarTerms,
			Description: "Solar terms of the date's calendar month with day distances",
			InputSchema: objectSchema(map[string]any{config.ArgDate: dateProp}, config.ArgDate),
			handler:     handleSolarTerms,
		},
		{
			Name:        config.ToolBazi,
			Description: "The four sexagenary pillars of a birth moment",
			InputSchema: objectSchema(map[string]any{
				config.ArgDate:   dateProp,
				config.ArgHour:   map[string]any{"type": "integer", "minimum": 0, "maximum": 23},
				config.ArgMinute: map[string]any{"type": "integer", "minimum": 0, "maximum": 59},
			}, config.ArgDate),
			handler: handleBazi,
		},
		{
			Name:        config.ToolWeekday,
			Description: "Weekday of a date with bilingual names",
			InputSchema: objectSchema(map[string]any{config.ArgDate: dateProp}, config.ArgDate),
			handler:     handleWeekday,
		},
	}
}

// -----------------------------------------------------------------------------
// Holiday Handlers
// -----------------------------------------------------------------------------

func handleHolidayInfo(e *Engine, args map[string]any) (map[string]any, error) {
	d, err := dateArg(e, args, false)
	if err != nil {
		return nil, err
	}

	rec := e.Holidays.Resolve(d)
	rest := holiday.IsRestDay(rec)

	name := rec.Name
	note := rec.Note
	if rec.Kind == holiday.KindOrdinary {
		name = e.Trans.T(langZH, config.TKeyOrdinaryDay)
		if rest {
			note = e.Trans.T(langZH, config.TKeyNoteWeekend)
		} else {
			note = e.Trans.T(langZH, config.TKeyNoteWorkday)
		}
	}

	return map[string]any{
		"date":            isoDate(d),
		"name":            name,
		"type":            string(rec.Kind),
		"is_holiday":      rest,
		"is_work_day":     !rest,
		"note":            note,
		"weekday_name_en": e.Trans.WeekdayName(langEN, lunisolar.WeekdayNumber(d)),
	}, nil
}

func handleNextHoliday(e *Engine, args map[string]any) (map[string]any, error) {
	now := e.Clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rec, err := e.Holidays.NextHoliday(today)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"name":            rec.Name,
		"date":            isoDate(rec.Date),
		"days_until":      daysBetween(today, rec.Date),
		"note":            rec.Note,
		"weekday_name_en": e.Trans.WeekdayName(langEN, lunisolar.WeekdayNumber(rec.Date)),
	}, nil
}

func handleYearHolidays(e *Engine, args map[string]any) (map[string]any, error) {
	year := e.Clock.Now().Year()
	records, err := e.Holidays.HolidaysInYear(year)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"year":        year,
		"holidays":    dayList(records),
		"total_count": len(records),
	}, nil
}

func handleYearWorkDays(e *Engine, args map[string]any) (map[string]any, error) {
	year := e.Clock.Now().Year()
	records, err := e.Holidays.AdjustedWorkdaysInYear(year)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"year":        year,
		"work_days":   dayList(records),
		"total_count": len(records),
	}, nil
}

func dayList(records []holiday.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"date": isoDate(rec.Date),
			"name": rec.Name,
			"note": rec.Note,
		})
	}
	return out
}

// -----------------------------------------------------------------------------
// Lunar Handlers
// -----------------------------------------------------------------------------

// lunarLookup resolves the date argument and converts it once, so both
// lunar handlers work from the same lunisolar.Date.
func lunarLookup(e *Engine, args map[string]any) (lunisolar.Date, map[string]any, error) {
	d, err := dateArg(e, args, true)
	if err != nil {
		return lunisolar.Date{}, nil, err
	}

	ld, err := e.Converter.ToLunar(d)
	if err != nil {
		return lunisolar.Date{}, nil, err
	}

	return ld, map[string]any{
		"gregorian_date": isoDate(d),
		"lunar_year":     ld.Year,
		"lunar_month":    ld.Month,
		"lunar_day":      ld.Day,
		"is_leap_month":  ld.Leap,
		"zodiac":         sexagenary.Zodiac(ld.Year),
	}, nil
}

func handleGregorianToLunar(e *Engine, args map[string]any) (map[string]any, error) {
	_, result, err := lunarLookup(e, args)
	return result, err
}

func handleLunarToGregorian(e *Engine, args map[string]any) (map[string]any, error) {
	year, err := intArg(args, config.ArgYear, 0, true)
	if err != nil {
		return nil, err
	}
	month, err := intArg(args, config.ArgMonth, 0, true)
	if err != nil {
		return nil, err
	}
	day, err := intArg(args, config.ArgDay, 0, true)
	if err != nil {
		return nil, err
	}
	leap := boolArg(args, config.ArgIsLeap)

	g, err := e.Converter.FromLunar(year, month, day, leap)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"lunar_date":      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		"gregorian_year":  g.Year(),
		"gregorian_month": int(g.Month()),
		"gregorian_day":   g.Day(),
		"gregorian_date":  isoDate(g),
	}, nil
}

func handleLunarString(e *Engine, args map[string]any) (map[string]any, error) {
	ld, result, err := lunarLookup(e, args)
	if err != nil {
		return nil, err
	}

	yearPillar := sexagenary.YearPillar(ld.Year)
	ganZhi := yearPillar.String()

	result["year_gan_zhi"] = ganZhi
	result["tian_gan"] = yearPillar.StemName()
	result["di_zhi"] = yearPillar.BranchName()
	result["lunar_month_name"] = ld.MonthName()
	result["lunar_day_name"] = ld.DayName()
	result["lunar_string"] = ganZhi + "年" + ld.MonthName() + ld.DayName()
	return result, nil
}

func handleSolarTerms(e *Engine, args map[string]any) (map[string]any, error) {
	d, err := dateArg(e, args, true)
	if err != nil {
		return nil, err
	}

	events, err := e.Terms.EventsInMonth(d.Year(), d.Month())
	if err != nil {
		return nil, err
	}

	list := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		list = append(list, map[string]any{
			"name":       ev.Name,
			"date":       isoDate(ev.Date),
			"days_until": daysBetween(d, ev.Date),
			"season":     string(ev.Season),
		})
	}

	return map[string]any{
		"year":        d.Year(),
		"month":       int(d.Month()),
		"solar_terms": list,
	}, nil
}

func handleBazi(e *Engine, args map[string]any) (map[string]any, error) {
	d, err := dateArg(e, args, true)
	if err != nil {
		return nil, err
	}
	hour, err := intArg(args, config.ArgHour, config.DefaultHour, false)
	if err != nil {
		return nil, err
	}
	minute, err := intArg(args, config.ArgMinute, config.DefaultMinute, false)
	if err != nil {
		return nil, err
	}

	result, err := e.Bazi.Compute(d, hour, minute)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"eight_characters": result.EightCharacters(),
	}, nil
}

func handleWeekday(e *Engine, args map[string]any) (map[string]any, error) {
	d, err := dateArg(e, args, true)
	if err != nil {
		return nil, err
	}

	number := lunisolar.WeekdayNumber(d)
	return map[string]any{
		"date":            isoDate(d),
		"weekday_number":  number,
		"weekday_name_zh": e.Trans.WeekdayName(langZH, number),
		"weekday_name_en": e.Trans.WeekdayName(langEN, number),
		"is_weekend":      number >= 6,
	}, nil
}
