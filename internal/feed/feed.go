// Package feed renders the published statutory holidays as an iCalendar
// object, so calendar clients can subscribe to the same data the query
// tools serve.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-chinacal/internal/clock"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/holiday"
)

// Generator builds the ICS body from the holiday resolver.
type Generator struct {
	Holidays *holiday.Resolver
	Store    *holiday.Store
	Clock    clock.Clock
}

// Build renders one VEVENT per statutory holiday day across every
// published year. With no data loaded it returns a minimal valid
// VCALENDAR so feed clients never see an invalid body.
func (g *Generator) Build() ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(g.Clock.Now().UTC())

	total := 0
	for _, year := range g.Store.Years() {
		records, err := g.Holidays.HolidaysInYear(year)
		if err != nil {
			// Years() only reports published years; a failure here is a
			// programming error worth surfacing, not skipping.
			return nil, err
		}

		for _, rec := range records {
			event := ical.NewEvent()
			dateKey := rec.Date.Format(config.DateFormatISO)
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, "holiday", dateKey, config.ICalDomain))
			event.Props.SetText(config.PropSummary, rec.Name)
			if rec.Note != "" {
				event.Props.SetText(config.PropDescr, rec.Note)
			}

			dtStart := ical.NewProp(config.PropDTStart)
			dtStart.SetDate(rec.Date)
			event.Props.Set(dtStart)
			event.Props.Set(dtStamp)

			cal.Children = append(cal.Children, event.Component)
			total++
		}
	}

	if total == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyCount, total,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}
