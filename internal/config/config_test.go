package config_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-chinacal/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for the wire contract.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"BinaryName", config.BinaryName},
		{"Version", config.Version},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DateFormatISO", config.DateFormatISO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestToolNames_Unique ensures no two operations collide in the dispatch
// table.
func TestToolNames_Unique(t *testing.T) {
	names := []string{
		config.ToolHolidayInfo,
		config.ToolNextHoliday,
		config.ToolYearHolidays,
		config.ToolYearWorkDays,
		config.ToolGregorianToLunar,
		config.ToolLunarToGregorian,
		config.ToolLunarString,
		config.ToolSolarTerms,
		config.ToolBazi,
		config.ToolWeekday,
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		assert.NotEmpty(t, n)
		assert.False(t, seen[n], "duplicate tool name %q", n)
		seen[n] = true
	}
	assert.Len(t, seen, 10)
}

// TestCalendarSpan_Sanity checks the table bounds and cycle anchors stay
// mutually consistent.
func TestCalendarSpan_Sanity(t *testing.T) {
	assert.Equal(t, config.TableEpochYear+1, config.MinYear, "the epoch year anchors but is not queryable")
	assert.Greater(t, config.MaxYear, config.MinYear)
	assert.Equal(t, 60, config.CycleLength)
	assert.Equal(t, config.CycleLength, config.StemCount*config.BranchCount/2, "the cycle pairs same-parity stems and branches")
	assert.GreaterOrEqual(t, config.AnchorCycleIndex, 0)
	assert.Less(t, config.AnchorCycleIndex, config.CycleLength)
	assert.Equal(t, 0, (config.YearPillarAnchor-4)%60, "the year anchor must itself be a JiaZi year")
}

// TestLanguages verifies the shipped locales include the default.
func TestLanguages(t *testing.T) {
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.Contains(t, config.SupportedLanguages, "zh")
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 24*time.Hour, config.DefaultCacheTTL)
	assert.Greater(t, config.DefaultCacheMaxSize, 0)
	port, err := strconv.Atoi(config.DefaultPort)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, port, config.MinPort)
	assert.LessOrEqual(t, port, config.MaxPort)
	assert.GreaterOrEqual(t, config.DefaultHour, 0)
	assert.LessOrEqual(t, config.DefaultHour, 23)
}

// TestRoutes_Shape ensures the dispatch route keeps its trailing slash so
// tool names can be path suffixes, while the list route does not.
func TestRoutes_Shape(t *testing.T) {
	assert.True(t, strings.HasSuffix(config.RouteToolCall, "/"))
	assert.False(t, strings.HasSuffix(config.RouteToolList, "/"))
	assert.True(t, strings.HasPrefix(config.RouteFeed, "/"))
}

// TestTimeoutsAndLimits ensures the operational constraints are
// reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)
	assert.Greater(t, config.ServerWriteTimeout, config.ServerReadTimeout,
		"year-sweep responses take longer to write than requests take to read")
	assert.GreaterOrEqual(t, config.MinPort, 1)
	assert.LessOrEqual(t, config.MaxPort, 65535)
}
