package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tartampluch/go-chinacal/internal/i18n"
)

// TestWeekdayName verifies both languages across the Monday-first 1..7
// convention.
func TestWeekdayName(t *testing.T) {
	tr := i18n.New()

	assert.Equal(t, "Monday", tr.WeekdayName("en", 1))
	assert.Equal(t, "Sunday", tr.WeekdayName("en", 7))
	assert.Equal(t, "星期一", tr.WeekdayName("zh", 1))
	assert.Equal(t, "星期六", tr.WeekdayName("zh", 6))
	assert.Equal(t, "星期日", tr.WeekdayName("zh", 7))
}

// TestT_Fallbacks verifies unknown keys return the key and unknown
// languages fall back to the default bundle rather than failing.
func TestT_Fallbacks(t *testing.T) {
	tr := i18n.New()

	assert.Equal(t, "no_such_key", tr.T("en", "no_such_key"))
	assert.Equal(t, "Weekend", tr.T("fr", "note_weekend"), "unknown language uses the default")
	assert.Equal(t, "周末", tr.T("zh", "note_weekend"))
	assert.Equal(t, "普通日", tr.T("zh", "ordinary_day"))
	assert.Equal(t, "工作日", tr.T("zh", "note_workday"))
}
