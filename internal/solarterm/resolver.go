package solarterm

import (
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

// Resolver answers next/range queries over a shared term table.
type Resolver struct {
	table *Table
}

// NewResolver wraps the given table.
func NewResolver(t *Table) *Resolver {
	return &Resolver{table: t}
}

// EventsInMonth returns the events falling in a calendar month, usually
// two of them, in date order.
func (r *Resolver) EventsInMonth(year int, month time.Month) ([]Event, error) {
	events, err := r.table.EventsInYear(year)
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, e := range events {
		if e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// NextEventFrom returns the first event on or after the given date along
// with the day distance; a date that is itself an event yields zero days.
// Past the final ZhongZhi of 2100 the answer lies outside the tables and
// the query fails.
func (r *Resolver) NextEventFrom(date time.Time) (Event, int, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	for _, year := range []int{date.Year(), date.Year() + 1} {
		events, err := r.table.EventsInYear(year)
		if err != nil {
			return Event{}, 0, err
		}
		for _, e := range events {
			if !e.Date.Before(date) {
				days := int(e.Date.Sub(date) / (24 * time.Hour))
				return e, days, nil
			}
		}
	}

	return Event{}, 0, errs.OutOfRange(config.ErrDateRange, "date", date.Format(config.DateFormatISO))
}

// MonthIndex locates the major-term (Jie) interval containing the date,
// counted with the LiChun interval as 0. This index, not the calendar
// month, drives the month pillar.
func (r *Resolver) MonthIndex(date time.Time) (int, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	events, err := r.table.EventsInYear(date.Year())
	if err != nil {
		return 0, err
	}

	// Major terms sit at the even positions: XiaoHan, LiChun, JingZhe...
	last := -1
	for i := 0; i < len(events); i += 2 {
		if !events[i].Date.After(date) {
			last = i / 2
		}
	}

	switch last {
	case -1:
		// Before XiaoHan: still the Zi month opened by the previous
		// year's DaXue.
		return 10, nil
	case 0:
		// Between XiaoHan and LiChun: the Chou month.
		return 11, nil
	default:
		return last - 1, nil
	}
}
