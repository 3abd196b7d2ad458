// Package holiday resolves statutory-holiday and adjusted-workday status
// against the annually published override datasets, falling back to
// weekday defaults where no override exists.
package holiday

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
)

//go:embed data/*.json
var dataFS embed.FS

// Kind classifies a day. The string values are the wire contract of the
// holiday_info "type" field.
type Kind string

const (
	KindHoliday  Kind = "holiday" // statutory day off
	KindWorkday  Kind = "work"    // adjusted workday compensating a holiday
	KindOrdinary Kind = "normal"  // no override published
)

// Record is one resolved day.
type Record struct {
	Date time.Time
	Name string
	Kind Kind
	Note string
}

// dataset mirrors the published JSON shape.
type dataset struct {
	Year int `json:"year"`
	Days []struct {
		Name     string `json:"name"`
		Date     string `json:"date"`
		IsOffDay bool   `json:"isOffDay"`
		Note     string `json:"note"`
	} `json:"days"`
}

// Store holds the per-date override records for every published year,
// loaded once from the embedded datasets and immutable afterwards.
type Store struct {
	byDate map[string]Record
	sorted []Record // ascending by date
	years  map[int]bool
}

// NewStore parses every embedded dataset. A malformed dataset is a
// packaging defect, not a runtime condition, so it fails construction.
func NewStore() (*Store, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrHolidayData, err)
	}

	s := &Store{
		byDate: make(map[string]Record),
		years:  make(map[int]bool),
	}

	for _, entry := range entries {
		raw, err := dataFS.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrHolidayData, err)
		}

		var ds dataset
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrHolidayData, err)
		}

		for _, d := range ds.Days {
			date, err := time.Parse(config.DateFormatISO, d.Date)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", config.ErrHolidayData, err)
			}

			kind := KindWorkday
			if d.IsOffDay {
				kind = KindHoliday
			}

			rec := Record{Date: date, Name: d.Name, Kind: kind, Note: d.Note}
			s.byDate[d.Date] = rec
			s.sorted = append(s.sorted, rec)
		}

		s.years[ds.Year] = true
	}

	sort.Slice(s.sorted, func(i, j int) bool {
		return s.sorted[i].Date.Before(s.sorted[j].Date)
	})

	slog.Info(config.MsgTablesLoaded,
		config.LogKeyComponent, config.CompHoliday,
		config.LogKeyYears, len(s.years),
		config.LogKeyCount, len(s.sorted),
	)
	return s, nil
}

// Lookup returns the override record for an exact date, if one exists.
func (s *Store) Lookup(date time.Time) (Record, bool) {
	rec, ok := s.byDate[date.Format(config.DateFormatISO)]
	return rec, ok
}

// HasYear reports whether official data for the year has been published.
func (s *Store) HasYear(year int) bool {
	return s.years[year]
}

// Years lists the published years in ascending order.
func (s *Store) Years() []int {
	out := make([]int, 0, len(s.years))
	for y := range s.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
