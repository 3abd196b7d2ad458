// Package errs defines the typed error taxonomy shared by the calendar
// engine and the mapping of engine errors onto the external response
// envelope. Every failure the engine can produce for well-typed input is
// one of these values; nothing in the engine panics on bad data.
package errs

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-chinacal/internal/config"
)

// Error is a typed, reportable engine failure. Details carries the
// offending field and value so callers can surface actionable messages.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// withField builds the standard single-field detail map.
func withField(field string, value any) map[string]any {
	if field == "" {
		return nil
	}
	return map[string]any{"field": field, "value": fmt.Sprintf("%v", value)}
}

// Validation reports malformed input: bad date format, out-of-range
// hour/minute, or a missing required argument.
func Validation(msg, field string, value any) *Error {
	return &Error{Code: config.CodeValidation, Message: msg, Details: withField(field, value)}
}

// OutOfRange reports a date or year outside the supported 1901-2100 span.
func OutOfRange(msg, field string, value any) *Error {
	return &Error{Code: config.CodeOutOfRange, Message: msg, Details: withField(field, value)}
}

// InvalidLunarDate reports a year/month/day/leap combination that does not
// exist in the lunisolar table for that year.
func InvalidLunarDate(msg, field string, value any) *Error {
	return &Error{Code: config.CodeInvalidLunarDate, Message: msg, Details: withField(field, value)}
}

// UnknownHolidayData reports a holiday query outside the published
// horizon. The resolver never extrapolates beyond legislated data.
func UnknownHolidayData(msg string, year int) *Error {
	return &Error{Code: config.CodeUnknownHolidayData, Message: msg, Details: withField("year", year)}
}

// UnknownTool reports a dispatch request for an unregistered operation.
func UnknownTool(name string) *Error {
	return &Error{Code: config.CodeUnknownTool, Message: config.ErrUnknownTool, Details: withField("tool", name)}
}

// CodeOf extracts the envelope code from any error chain. Errors that are
// not engine-typed map onto VALIDATION_ERROR: by the time an error leaves
// the boundary it has either been classified or it came from argument
// decoding.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return config.CodeValidation
}

// Envelope converts an error chain into the external
// {error, error_code, details} shape.
func Envelope(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		out := map[string]any{
			"error":      e.Message,
			"error_code": e.Code,
		}
		if len(e.Details) > 0 {
			out["details"] = e.Details
		}
		return out
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": config.CodeValidation,
	}
}
