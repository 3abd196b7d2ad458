package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

// TestConstructors verifies each constructor stamps the right code and
// the field/value detail pair.
func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *errs.Error
		wantCode string
	}{
		{"Validation", errs.Validation("bad hour", "hour", 25), config.CodeValidation},
		{"OutOfRange", errs.OutOfRange("too early", "date", "1850-01-01"), config.CodeOutOfRange},
		{"InvalidLunarDate", errs.InvalidLunarDate("no such month", "month", 13), config.CodeInvalidLunarDate},
		{"UnknownHolidayData", errs.UnknownHolidayData("no data", 2047), config.CodeUnknownHolidayData},
		{"UnknownTool", errs.UnknownTool("bogus"), config.CodeUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Error())
			require.NotNil(t, tt.err.Details)
			assert.Contains(t, tt.err.Details, "field")
			assert.Contains(t, tt.err.Details, "value")
		})
	}
}

// TestCodeOf verifies extraction through wrapping and the fallback for
// foreign errors.
func TestCodeOf(t *testing.T) {
	base := errs.OutOfRange("too late", "year", 2101)

	assert.Equal(t, config.CodeOutOfRange, errs.CodeOf(base))
	assert.Equal(t, config.CodeOutOfRange, errs.CodeOf(fmt.Errorf("lookup failed: %w", base)))
	assert.Equal(t, config.CodeValidation, errs.CodeOf(errors.New("plain")))
}

// TestEnvelope verifies the external error shape.
func TestEnvelope(t *testing.T) {
	env := errs.Envelope(errs.UnknownTool("bogus"))

	assert.Equal(t, config.ErrUnknownTool, env["error"])
	assert.Equal(t, config.CodeUnknownTool, env["error_code"])

	details, ok := env["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bogus", details["value"])

	// Foreign errors still produce a well-formed envelope.
	env = errs.Envelope(errors.New("boom"))
	assert.Equal(t, "boom", env["error"])
	assert.Equal(t, config.CodeValidation, env["error_code"])
	assert.NotContains(t, env, "details")
}
