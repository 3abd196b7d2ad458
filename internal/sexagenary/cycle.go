// Package sexagenary implements the 60-term stem-branch cycle: pure
// cyclic arithmetic anchored to 1900-01-01 (a JiaXu day) for day pillars
// and to 1984 (a JiaZi year) for year pillars.
package sexagenary

import (
	"time"

	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/errs"
)

var stems = [...]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branches = [...]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var zodiacs = [...]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

// Pillar is one stem-branch pair. Cycle is its index in the canonical
// 60-term ordering; Stem == Cycle mod 10 and Branch == Cycle mod 12 by
// construction.
type Pillar struct {
	Stem   int // 0..9
	Branch int // 0..11
	Cycle  int // 0..59
}

// fromCycle builds a pillar from its cycle index.
func fromCycle(n int) Pillar {
	n = ((n % config.CycleLength) + config.CycleLength) % config.CycleLength
	return Pillar{Stem: n % config.StemCount, Branch: n % config.BranchCount, Cycle: n}
}

// fromParts builds a pillar from a stem and branch. Only pairs with equal
// parity exist in the cycle; the CRT solution below maps them back to the
// canonical index.
func fromParts(stem, branch int) Pillar {
	return fromCycle(6*stem - 5*branch)
}

// String renders the pillar as its two-character name, e.g. 甲子.
func (p Pillar) String() string {
	return stems[p.Stem] + branches[p.Branch]
}

// StemName returns the celestial-stem character.
func (p Pillar) StemName() string {
	return stems[p.Stem]
}

// BranchName returns the terrestrial-branch character.
func (p Pillar) BranchName() string {
	return branches[p.Branch]
}

// dayAnchor is the reference date whose day pillar defines the cycle.
var dayAnchor = time.Date(config.TableEpochYear, time.January, 1, 0, 0, 0, 0, time.UTC)

// DayPillar advances the anchor pillar by one per calendar day.
func DayPillar(date time.Time) Pillar {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(dayAnchor) / (24 * time.Hour))
	return fromCycle(config.AnchorCycleIndex + days)
}

// YearPillar derives the pillar of a lunisolar year.
func YearPillar(lunarYear int) Pillar {
	return fromCycle(lunarYear - config.YearPillarAnchor)
}

// MonthPillar derives the pillar of a solar-term month. monthIndex counts
// the twelve major-term intervals with 0 = the Yin month opened by LiChun.
// The stem follows the five-tiger rotation from the year stem.
func MonthPillar(year Pillar, monthIndex int) Pillar {
	monthIndex = ((monthIndex % config.BranchCount) + config.BranchCount) % config.BranchCount
	branch := (2 + monthIndex) % config.BranchCount
	stem := ((year.Stem%5)*2 + 2 + monthIndex) % config.StemCount
	return fromParts(stem, branch)
}

// HourBranch buckets an hour into the twelve two-hour windows, with the
// Zi window spanning 23:00-00:59.
func HourBranch(hour int) (int, error) {
	if hour < 0 || hour > 23 {
		return 0, errs.Validation(config.ErrHourRange, "hour", hour)
	}
	return ((hour + 1) / 2) % config.BranchCount, nil
}

// HourPillar derives the pillar of a two-hour window from the day pillar.
// The stem follows the five-rat rotation from the day stem. The day
// pillar itself does not roll over at 23:00; the hour branch alone wraps
// to Zi (the civil-date convention the upstream charts use).
func HourPillar(day Pillar, hour int) (Pillar, error) {
	branch, err := HourBranch(hour)
	if err != nil {
		return Pillar{}, err
	}
	stem := ((day.Stem%5)*2 + branch) % config.StemCount
	return fromParts(stem, branch), nil
}

// Zodiac returns the animal of a lunisolar year, which follows the year
// branch.
func Zodiac(lunarYear int) string {
	return zodiacs[YearPillar(lunarYear).Branch]
}
