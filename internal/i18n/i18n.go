// Package i18n serves the bilingual display strings the wire contract
// carries: weekday names, day-kind notes and fallback labels. Locales are
// embedded JSON files loaded into a go-i18n bundle at startup.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-chinacal/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys per language against the embedded
// bundle. Construct once; read-only afterwards.
type Translator struct {
	bundle     *goi18n.Bundle
	localizers map[string]*goi18n.Localizer
}

// New loads every active.<lang>.json locale into the bundle.
func New() *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer),
	}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.localizers[langCode] = goi18n.NewLocalizer(bundle, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return t
}

// T translates a key in the given language, falling back to the key
// itself when no message exists so output never goes blank.
func (t *Translator) T(lang, key string) string {
	loc, ok := t.localizers[lang]
	if !ok {
		loc, ok = t.localizers[config.DefaultLanguage]
		if !ok {
			return key
		}
	}

	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// WeekdayName translates a 1..7 weekday number (Monday first).
func (t *Translator) WeekdayName(lang string, number int) string {
	return t.T(lang, fmt.Sprintf("%s%s", config.TKeyWeekdayPrefix, strconv.Itoa(number)))
}
