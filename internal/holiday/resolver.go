package holiday

import (
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

// Resolver merges the override store with weekday defaults.
type Resolver struct {
	store *Store
}

// NewResolver wraps the given store.
func NewResolver(s *Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve classifies a single date. An explicit override wins; otherwise
// Saturday and Sunday are non-working and weekdays are ordinary workdays.
func (r *Resolver) Resolve(date time.Time) Record {
	if rec, ok := r.store.Lookup(date); ok {
		return rec
	}
	return Record{Date: date, Kind: KindOrdinary}
}

// IsRestDay reports whether the resolved day is a day off: a statutory
// holiday, or an unadjusted weekend.
func IsRestDay(rec Record) bool {
	switch rec.Kind {
	case KindHoliday:
		return true
	case KindWorkday:
		return false
	default:
		wd := rec.Date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
}

// NextHoliday forward-scans the overrides for the first statutory holiday
// strictly after the given date. Exhausting the published horizon is an
// UnknownHolidayDataError: the resolver never extrapolates.
func (r *Resolver) NextHoliday(from time.Time) (Record, error) {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for _, rec := range r.store.sorted {
		if rec.Kind == KindHoliday && rec.Date.After(from) {
			return rec, nil
		}
	}
	return Record{}, errs.UnknownHolidayData(config.ErrNoNextHoliday, from.Year())
}

// HolidaysInYear lists the statutory holidays of a published year.
func (r *Resolver) HolidaysInYear(year int) ([]Record, error) {
	return r.filterYear(year, KindHoliday)
}

// AdjustedWorkdaysInYear lists the adjusted workdays of a published year.
func (r *Resolver) AdjustedWorkdaysInYear(year int) ([]Record, error) {
	return r.filterYear(year, KindWorkday)
}

func (r *Resolver) filterYear(year int, kind Kind) ([]Record, error) {
	if !r.store.HasYear(year) {
		return nil, errs.UnknownHolidayData(config.ErrNoHolidayData, year)
	}
	var out []Record
	for _, rec := range r.store.sorted {
		if rec.Date.Year() == year && rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}
