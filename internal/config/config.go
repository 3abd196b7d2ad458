package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go ChinaCal"
	AppID             = "com.github.tartampluch.go-chinacal"
	BinaryName        = "go-chinacal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagPort         = "port"
	FlagArgs         = "args"
	FlagCacheTTL     = "cache-ttl"
	FlagNoCache      = "no-cache"
	FlagDescDebug    = "Enable debug logging"
	FlagDescPort     = "TCP port for the query server"
	FlagDescArgs     = "Tool arguments as a JSON object"
	FlagDescCacheTTL = "TTL for memoized query results"
	FlagDescNoCache  = "Disable the result cache"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Supported Calendar Span
// -----------------------------------------------------------------------------

const (
	// Lunisolar and solar-term tables cover 1901-2100. The 1900 record
	// exists only to anchor the cumulative year-start computation.
	TableEpochYear = 1900
	MinYear        = 1901
	MaxYear        = 2100

	// AnchorCycleIndex: 1900-01-01 is a JiaXu day, index 10 in the cycle.
	// Cross-checked against 1949-10-01 being a JiaZi day (index 0).
	AnchorCycleIndex = 10

	// YearPillarAnchor: 1984 opened a cycle with JiaZi.
	YearPillarAnchor = 1984

	CycleLength  = 60
	StemCount    = 10
	BranchCount  = 12
	TermsPerYear = 24
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	DefaultHour     = 12
	DefaultMinute   = 0

	// Holiday datasets are re-published at most a few times a year, so a
	// day-long TTL keeps the cache warm without risking stale answers.
	DefaultCacheTTL     = 24 * time.Hour
	DefaultCacheMaxSize = 1000
)

// SupportedLanguages defines the locales shipped with the engine (ISO 639-1).
var SupportedLanguages = []string{"en", "zh"}

// -----------------------------------------------------------------------------
// Tool Names (External Dispatch Contract)
// -----------------------------------------------------------------------------

const (
	ToolHolidayInfo      = "holiday_info"
	ToolNextHoliday      = "next_holiday"
	ToolYearHolidays     = "current_year_holidays"
	ToolYearWorkDays     = "current_year_work_days"
	ToolGregorianToLunar = "gregorian_to_lunar"
	ToolLunarToGregorian = "lunar_to_gregorian"
	ToolLunarString      = "get_lunar_string"
	ToolSolarTerms       = "get_24_lunar_feast"
	ToolBazi             = "get_8zi"
	ToolWeekday          = "get_weekday"
)

// -----------------------------------------------------------------------------
// Argument Names (wire contract)
// -----------------------------------------------------------------------------

const (
	ArgDate   = "date"
	ArgYear   = "year"
	ArgMonth  = "month"
	ArgDay    = "day"
	ArgIsLeap = "is_leap"
	ArgHour   = "hour"
	ArgMinute = "minute"
)

// -----------------------------------------------------------------------------
// Error Codes (external envelope)
// -----------------------------------------------------------------------------

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeInvalidLunarDate   = "INVALID_LUNAR_DATE"
	CodeUnknownHolidayData = "UNKNOWN_HOLIDAY_DATA"
	CodeUnknownTool        = "UNKNOWN_TOOL"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatISO = "2006-01-02"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWeekdayPrefix = "weekday_" // weekday_1 .. weekday_7, Monday first
	TKeyNoteWeekend   = "note_weekend"
	TKeyNoteWorkday   = "note_workday"
	TKeyOrdinaryDay   = "ordinary_day"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar Feed
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go ChinaCal//Feed//EN"
	ICalCalName = "Chinese Statutory Holidays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gochinacal"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDescr      = "DESCRIPTION"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	FormatUID = "%s-%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no
	// holiday data is loaded, so feed clients never see an invalid body.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AllowedMethodsGet  = "GET, HEAD"
	AllowedMethodsPost = "POST"
	RouteToolCall      = "/v1/tools/"
	RouteToolList      = "/v1/tools"
	RouteStats         = "/v1/stats"
	RouteFeed          = "/calendar.ics"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderRetryAfter   = "Retry-After"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrHolidayData     = "failed to load embedded holiday dataset"
	ErrArgsDecode      = "failed to decode tool arguments"
	ErrDateFormat      = "date must use the YYYY-MM-DD format"
	ErrDateRange       = "date is outside the supported 1901-2100 span"
	ErrYearRange       = "year is outside the supported 1901-2100 span"
	ErrMonthRange      = "month must be between 1 and 12"
	ErrHourRange       = "hour must be between 0 and 23"
	ErrMinuteRange     = "minute must be between 0 and 59"
	ErrLeapMismatch    = "requested leap month does not exist in that lunar year"
	ErrLunarDay        = "day exceeds the length of that lunar month"
	ErrNoHolidayData   = "no published holiday data for the requested year"
	ErrNoNextHoliday   = "no statutory holiday found within the published horizon"
	ErrUnknownTool     = "unknown tool"
	ErrMissingRequired = "missing required argument"
	ErrIntegerArg      = "argument must be an integer"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	RetryAfterSeconds   = "10"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgFeedUpdated   = "Holiday feed cache updated"
	MsgTablesLoaded  = "Calendar tables loaded"
	MsgToolCall      = "Tool invoked"
	MsgToolFailed    = "Tool returned an error"
	MsgCacheEvict    = "Result cache entry evicted"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyTool      = "tool"
	LogKeyCode      = "error_code"
	LogKeyYears     = "years"
	LogKeyCount     = "count"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompCLI     = "cli"
	CompServer  = "server"
	CompTools   = "tools"
	CompHoliday = "holiday"
	CompCache   = "cache"
	CompFeed    = "feed"
	CompI18n    = "i18n"
)
