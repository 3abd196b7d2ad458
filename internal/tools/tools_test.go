package tools_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-chinacal/internal/bazi"
	"github.com/tartampluch/go-chinacal/internal/cache"
	"github.com/tartampluch/go-chinacal/internal/clock"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/holiday"
	"github.com/tartampluch/go-chinacal/internal/i18n"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/solarterm"
	"github.com/tartampluch/go-chinacal/internal/tools"
)

// testNow is the frozen "today" of every registry test: Monday 2024-06-10,
// the Dragon Boat festival.
var testNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func newRegistry(t *testing.T, c *cache.Cache) *tools.Registry {
	t.Helper()

	table := lunisolar.NewTable()
	conv := lunisolar.NewConverter(table)
	terms := solarterm.NewResolver(solarterm.NewTable())

	store, err := holiday.NewStore()
	require.NoError(t, err)

	return tools.NewRegistry(&tools.Engine{
		Converter: conv,
		Terms:     terms,
		Bazi:      bazi.NewCalculator(conv, terms),
		Holidays:  holiday.NewResolver(store),
		Cache:     c,
		Clock:     clock.Fixed{Time: testNow},
		Trans:     i18n.New(),
	})
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// TestRegistry_List verifies the ten operations register in a stable
// order with schemas attached.
func TestRegistry_List(t *testing.T) {
	r := newRegistry(t, cache.Disabled())
	infos := r.List()

	require.Len(t, infos, 10)
	assert.Equal(t, config.ToolHolidayInfo, infos[0].Name)
	assert.Equal(t, config.ToolWeekday, infos[9].Name)

	for _, info := range infos {
		assert.NotEmpty(t, info.Description, info.Name)
		assert.Equal(t, "object", info.InputSchema["type"], info.Name)
	}
}

// TestRegistry_UnknownTool verifies dispatch of an unregistered name.
func TestRegistry_UnknownTool(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	_, err := r.Execute("does_not_exist", nil)
	require.Error(t, err)
	assert.Equal(t, config.CodeUnknownTool, errs.CodeOf(err))
}

// TestRegistry_CacheEquivalence runs every tool once with the cache
// enabled and once disabled; the answers must be identical and the
// second cached call must be a hit.
func TestRegistry_CacheEquivalence(t *testing.T) {
	clk := clock.Fixed{Time: testNow}
	cached := newRegistry(t, cache.New(time.Hour, clk))
	plain := newRegistry(t, cache.Disabled())

	calls := []struct {
		tool string
		args map[string]any
	}{
		{config.ToolHolidayInfo, map[string]any{}},
		{config.ToolNextHoliday, map[string]any{}},
		{config.ToolYearHolidays, map[string]any{}},
		{config.ToolYearWorkDays, map[string]any{}},
		{config.ToolGregorianToLunar, map[string]any{config.ArgDate: "2024-02-10"}},
		{config.ToolLunarToGregorian, map[string]any{config.ArgYear: 2024, config.ArgMonth: 1, config.ArgDay: 1}},
		{config.ToolLunarString, map[string]any{config.ArgDate: "2024-02-10"}},
		{config.ToolSolarTerms, map[string]any{config.ArgDate: "2024-06-10"}},
		{config.ToolBazi, map[string]any{config.ArgDate: "2024-06-10", config.ArgHour: 12}},
		{config.ToolWeekday, map[string]any{config.ArgDate: "2024-06-10"}},
	}

	for _, call := range calls {
		fromCache, err := cached.Execute(call.tool, call.args)
		require.NoError(t, err, call.tool)
		fromPlain, err := plain.Execute(call.tool, call.args)
		require.NoError(t, err, call.tool)
		assert.Equal(t, fromPlain, fromCache, call.tool)

		again, err := cached.Execute(call.tool, call.args)
		require.NoError(t, err, call.tool)
		assert.Equal(t, fromCache, again, call.tool)
	}
}

// TestRegistry_CachesResults verifies the second execution is served from
// the cache.
func TestRegistry_CachesResults(t *testing.T) {
	clk := clock.Fixed{Time: testNow}
	resultCache := cache.New(time.Hour, clk)
	r := newRegistry(t, resultCache)

	args := map[string]any{config.ArgDate: "2024-02-10"}
	_, err := r.Execute(config.ToolGregorianToLunar, args)
	require.NoError(t, err)
	_, err = r.Execute(config.ToolGregorianToLunar, args)
	require.NoError(t, err)

	stats := resultCache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

// TestRegistry_ErrorsNotCached verifies a failing call leaves nothing
// behind.
func TestRegistry_ErrorsNotCached(t *testing.T) {
	clk := clock.Fixed{Time: testNow}
	resultCache := cache.New(time.Hour, clk)
	r := newRegistry(t, resultCache)

	_, err := r.Execute(config.ToolGregorianToLunar, map[string]any{config.ArgDate: "not-a-date"})
	require.Error(t, err)
	assert.Equal(t, 0, resultCache.Stats().Entries)
}

// -----------------------------------------------------------------------------
// Holiday Tools
// -----------------------------------------------------------------------------

// TestHolidayInfo_Defaults verifies the date defaults to the engine
// clock's today, which happens to be the Dragon Boat holiday.
func TestHolidayInfo_Defaults(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolHolidayInfo, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", got["date"])
	assert.Equal(t, "端午节", got["name"])
	assert.Equal(t, "holiday", got["type"])
	assert.Equal(t, true, got["is_holiday"])
	assert.Equal(t, false, got["is_work_day"])
	assert.Equal(t, "Monday", got["weekday_name_en"])
}

// TestHolidayInfo_Classifications covers the adjusted-workday and the
// two ordinary fallbacks with their localized labels.
func TestHolidayInfo_Classifications(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	tests := []struct {
		name     string
		date     string
		wantType string
		wantName string
		wantOff  bool
		wantNote string
	}{
		{"Adjusted workday", "2024-02-04", "work", "春节", false, ""},
		{"Ordinary weekday", "2024-03-15", "normal", "普通日", false, "工作日"},
		{"Ordinary weekend", "2024-03-16", "normal", "普通日", true, "周末"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Execute(config.ToolHolidayInfo, map[string]any{config.ArgDate: tt.date})
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got["type"])
			assert.Equal(t, tt.wantName, got["name"])
			assert.Equal(t, tt.wantOff, got["is_holiday"])
			assert.Equal(t, !tt.wantOff, got["is_work_day"])
			if tt.wantNote != "" {
				assert.Equal(t, tt.wantNote, got["note"])
			}
		})
	}
}

// TestHolidayInfo_BadDate verifies malformed dates reject with the
// validation code.
func TestHolidayInfo_BadDate(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	for _, bad := range []any{"2024/06/10", "June 10", 42} {
		_, err := r.Execute(config.ToolHolidayInfo, map[string]any{config.ArgDate: bad})
		require.Error(t, err)
		assert.Equal(t, config.CodeValidation, errs.CodeOf(err))
	}
}

// TestNextHoliday verifies the forward scan from the frozen today: the
// Dragon Boat day itself must be skipped in favor of Mid-Autumn.
func TestNextHoliday(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolNextHoliday, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "中秋节", got["name"])
	assert.Equal(t, "2024-09-15", got["date"])
	assert.Equal(t, 97, got["days_until"])
	assert.Equal(t, "Sunday", got["weekday_name_en"])
}

// TestYearListings verifies the current-year holiday and workday tools.
func TestYearListings(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolYearHolidays, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 2024, got["year"])
	assert.Equal(t, 28, got["total_count"])
	days, ok := got["holidays"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, days, 28)
	assert.Equal(t, "2024-01-01", days[0]["date"])
	assert.Equal(t, "元旦", days[0]["name"])

	got, err = r.Execute(config.ToolYearWorkDays, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 8, got["total_count"])
	work, ok := got["work_days"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-02-04", work[0]["date"])
}

// -----------------------------------------------------------------------------
// Calendar Tools
// -----------------------------------------------------------------------------

// TestGregorianToLunar verifies the conversion tool including the leap
// flag and the zodiac.
func TestGregorianToLunar(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolGregorianToLunar, map[string]any{config.ArgDate: "2024-02-10"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", got["gregorian_date"])
	assert.Equal(t, 2024, got["lunar_year"])
	assert.Equal(t, 1, got["lunar_month"])
	assert.Equal(t, 1, got["lunar_day"])
	assert.Equal(t, false, got["is_leap_month"])
	assert.Equal(t, "龙", got["zodiac"])

	got, err = r.Execute(config.ToolGregorianToLunar, map[string]any{config.ArgDate: "2020-05-23"})
	require.NoError(t, err)
	assert.Equal(t, true, got["is_leap_month"])
	assert.Equal(t, 4, got["lunar_month"])

	// The date is required here, unlike the holiday tools.
	_, err = r.Execute(config.ToolGregorianToLunar, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))
}

// TestLunarToGregorian verifies the reverse conversion and its error
// taxonomy: malformed arguments versus nonexistent lunar dates.
func TestLunarToGregorian(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolLunarToGregorian, map[string]any{
		config.ArgYear: 2024, config.ArgMonth: 1, config.ArgDay: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got["lunar_date"])
	assert.Equal(t, "2024-02-10", got["gregorian_date"])
	assert.Equal(t, 2024, got["gregorian_year"])
	assert.Equal(t, 2, got["gregorian_month"])
	assert.Equal(t, 10, got["gregorian_day"])

	// JSON numbers arrive as float64; the tool must tolerate that.
	got, err = r.Execute(config.ToolLunarToGregorian, map[string]any{
		config.ArgYear: float64(2020), config.ArgMonth: float64(4), config.ArgDay: float64(1), config.ArgIsLeap: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2020-05-23", got["gregorian_date"])

	_, err = r.Execute(config.ToolLunarToGregorian, map[string]any{config.ArgYear: 2024})
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))

	_, err = r.Execute(config.ToolLunarToGregorian, map[string]any{
		config.ArgYear: 2024, config.ArgMonth: 5, config.ArgDay: 1, config.ArgIsLeap: true,
	})
	require.Error(t, err)
	assert.Equal(t, config.CodeInvalidLunarDate, errs.CodeOf(err))
}

// TestLunarString verifies the traditional rendering with the
// stem-branch year.
func TestLunarString(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolLunarString, map[string]any{config.ArgDate: "2024-02-10"})
	require.NoError(t, err)
	assert.Equal(t, "甲辰", got["year_gan_zhi"])
	assert.Equal(t, "甲", got["tian_gan"])
	assert.Equal(t, "辰", got["di_zhi"])
	assert.Equal(t, "正月", got["lunar_month_name"])
	assert.Equal(t, "初一", got["lunar_day_name"])
	assert.Equal(t, "甲辰年正月初一", got["lunar_string"])

	got, err = r.Execute(config.ToolLunarString, map[string]any{config.ArgDate: "2020-05-23"})
	require.NoError(t, err)
	assert.Equal(t, "庚子年闰四月初一", got["lunar_string"])

	// Bad and out-of-range dates surface the converter's errors.
	_, err = r.Execute(config.ToolLunarString, map[string]any{config.ArgDate: "not-a-date"})
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))

	_, err = r.Execute(config.ToolLunarString, map[string]any{config.ArgDate: "1900-06-01"})
	require.Error(t, err)
	assert.Equal(t, config.CodeOutOfRange, errs.CodeOf(err))
}

// TestSolarTerms verifies the per-month term listing with signed day
// distances relative to the query date.
func TestSolarTerms(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolSolarTerms, map[string]any{config.ArgDate: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, 2024, got["year"])
	assert.Equal(t, 6, got["month"])

	list, ok := got["solar_terms"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, list, 2)

	assert.Equal(t, "芒种", list[0]["name"])
	assert.Equal(t, "2024-06-05", list[0]["date"])
	assert.Equal(t, -5, list[0]["days_until"], "MangZhong already passed")
	assert.Equal(t, "summer", list[0]["season"])

	assert.Equal(t, "夏至", list[1]["name"])
	assert.Equal(t, 11, list[1]["days_until"])
}

// TestBazi verifies the chart tool with explicit and defaulted hours.
func TestBazi(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolBazi, map[string]any{config.ArgDate: "2024-06-10", config.ArgHour: 12})
	require.NoError(t, err)
	assert.Equal(t, "甲辰 庚午 乙巳 壬午", got["eight_characters"])

	// Hour defaults to noon.
	defaulted, err := r.Execute(config.ToolBazi, map[string]any{config.ArgDate: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, got["eight_characters"], defaulted["eight_characters"])

	_, err = r.Execute(config.ToolBazi, map[string]any{config.ArgDate: "2024-06-10", config.ArgHour: 24})
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))
}

// TestWeekday verifies the bilingual weekday tool and the weekend flag.
func TestWeekday(t *testing.T) {
	r := newRegistry(t, cache.Disabled())

	got, err := r.Execute(config.ToolWeekday, map[string]any{config.ArgDate: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, got["weekday_number"])
	assert.Equal(t, "星期一", got["weekday_name_zh"])
	assert.Equal(t, "Monday", got["weekday_name_en"])
	assert.Equal(t, false, got["is_weekend"])

	got, err = r.Execute(config.ToolWeekday, map[string]any{config.ArgDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Equal(t, 6, got["weekday_number"])
	assert.Equal(t, true, got["is_weekend"])
}
