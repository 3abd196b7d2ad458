package bazi_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-chinacal/internal/bazi"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/solarterm"
)

func newCalculator(t *testing.T) *bazi.Calculator {
	t.Helper()
	conv := lunisolar.NewConverter(lunisolar.NewTable())
	terms := solarterm.NewResolver(solarterm.NewTable())
	return bazi.NewCalculator(conv, terms)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestCompute_KnownCharts pins full charts against almanac references.
// The January chart exercises the interplay of all three calendars: the
// civil year is 2024 but the lunisolar year pillar is still GuiMao, and
// the month pillar is the Zi month because XiaoHan has not yet passed.
func TestCompute_KnownCharts(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name string
		date time.Time
		hour int
		want string
	}{
		{
			name: "New year's day 2024 noon",
			date: day(2024, time.January, 1),
			hour: 12,
			want: "癸卯 甲子 甲子 庚午",
		},
		{
			name: "Dragon Boat festival 2024 noon",
			date: day(2024, time.June, 10),
			hour: 12,
			want: "甲辰 庚午 乙巳 壬午",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.date, tt.hour, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.EightCharacters())
		})
	}
}

// TestCompute_MonthBoundary verifies the month pillar flips at LiChun,
// not at the lunisolar new year or the calendar month.
func TestCompute_MonthBoundary(t *testing.T) {
	calc := newCalculator(t)

	before, err := calc.Compute(day(2024, time.February, 3), 12, 0)
	require.NoError(t, err)
	after, err := calc.Compute(day(2024, time.February, 4), 12, 0)
	require.NoError(t, err)

	assert.NotEqual(t, before.Month, after.Month, "LiChun opens a new month pillar")
	assert.Equal(t, 2, after.Month.Branch, "the LiChun month carries the Yin branch")
}

// TestCompute_HourWindows verifies adjacent hours inside one two-hour
// window share a pillar while the window edges differ.
func TestCompute_HourWindows(t *testing.T) {
	calc := newCalculator(t)
	d := day(2024, time.June, 10)

	eleven, err := calc.Compute(d, 11, 0)
	require.NoError(t, err)
	noon, err := calc.Compute(d, 12, 30)
	require.NoError(t, err)
	thirteen, err := calc.Compute(d, 13, 0)
	require.NoError(t, err)

	assert.Equal(t, eleven.Hour, noon.Hour, "11:00 and 12:30 share the Wu window")
	assert.NotEqual(t, noon.Hour, thirteen.Hour)
}

// TestCompute_LateNight verifies the 23:00 convention: the hour branch
// wraps to Zi but the day pillar stays with the civil date.
func TestCompute_LateNight(t *testing.T) {
	calc := newCalculator(t)
	d := day(2024, time.June, 10)

	late, err := calc.Compute(d, 23, 30)
	require.NoError(t, err)
	nextDay, err := calc.Compute(d.AddDate(0, 0, 1), 0, 30)
	require.NoError(t, err)

	assert.Equal(t, 0, late.Hour.Branch, "23:00 belongs to the Zi window")
	assert.Equal(t, dayString(t, calc, d), late.Day.String(), "day pillar keeps the civil date")
	assert.NotEqual(t, late.Day, nextDay.Day)
}

// dayString computes the day pillar of a noon chart for comparison.
func dayString(t *testing.T, calc *bazi.Calculator, d time.Time) string {
	t.Helper()
	r, err := calc.Compute(d, 12, 0)
	require.NoError(t, err)
	return r.Day.String()
}

// TestCompute_Validation covers hour/minute rejection and out-of-range
// dates.
func TestCompute_Validation(t *testing.T) {
	calc := newCalculator(t)
	d := day(2024, time.June, 10)

	_, err := calc.Compute(d, 24, 0)
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))

	_, err = calc.Compute(d, -1, 0)
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))

	_, err = calc.Compute(d, 12, 60)
	require.Error(t, err)
	assert.Equal(t, config.CodeValidation, errs.CodeOf(err))

	_, err = calc.Compute(day(1899, time.June, 10), 12, 0)
	require.Error(t, err)
	assert.Equal(t, config.CodeOutOfRange, errs.CodeOf(err))
}

// TestCompute_Deterministic verifies repeated computation yields the
// identical chart.
func TestCompute_Deterministic(t *testing.T) {
	calc := newCalculator(t)
	d := day(1990, time.May, 15)

	first, err := calc.Compute(d, 8, 0)
	require.NoError(t, err)
	second, err := calc.Compute(d, 8, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, []rune(first.EightCharacters()), 11, "four pillars and three separators")
}
