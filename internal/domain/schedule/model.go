package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownDay   = errors.New("day is not part of the schedule")
	ErrInvalidClock = errors.New("invalid clock time")
)

// DaySetting is the operator switch for one tournament day.
type DaySetting struct {
	Day       int
	IsEnabled bool
	UpdatedAt time.Time
}

// DayStatus is a DaySetting plus the state derived from the day's start time.
type DayStatus struct {
	Day          int
	IsEnabled    bool
	FirstMatchAt *time.Time
	HasStarted   bool
	IsTimeLocked bool
	IsPickable   bool
}

// Calendar maps tournament days to dates in a single source time zone.
type Calendar struct {
	Location *time.Location
	dates    map[int]time.Time
	days     []int
}

// NewCalendar lays out numDays consecutive days beginning at start (year, month, day are used).
func NewCalendar(start time.Time, numDays int, loc *time.Location) (Calendar, error) {
	if numDays <= 0 {
		return Calendar{}, fmt.Errorf("schedule days must be > 0")
	}
	if loc == nil {
		return Calendar{}, fmt.Errorf("schedule location is required")
	}

	cal := Calendar{
		Location: loc,
		dates:    make(map[int]time.Time, numDays),
		days:     make([]int, 0, numDays),
	}
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	for i := 0; i < numDays; i++ {
		day := i + 1
		cal.dates[day] = first.AddDate(0, 0, i)
		cal.days = append(cal.days, day)
	}

	return cal, nil
}

// DefaultCalendar is November 26-30, 2024 in fixed EST (UTC-5).
func DefaultCalendar() Calendar {
	cal, _ := NewCalendar(time.Date(2024, time.November, 26, 0, 0, 0, 0, time.UTC), 5, time.FixedZone("EST", -5*60*60))
	return cal
}

func (c Calendar) Days() []int {
	return append([]int(nil), c.days...)
}

func (c Calendar) FirstDay() int {
	if len(c.days) == 0 {
		return 0
	}
	return c.days[0]
}

func (c Calendar) LastDay() int {
	if len(c.days) == 0 {
		return 0
	}
	return c.days[len(c.days)-1]
}

func (c Calendar) Has(day int) bool {
	_, ok := c.dates[day]
	return ok
}

// At combines a day with a "3:00 PM" style clock string.
func (c Calendar) At(day int, clock string) (time.Time, error) {
	date, ok := c.dates[day]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, c.Location), nil
}

// ParseClock parses a 12-hour clock such as "3:00 PM" or "12:15 am".
// A trailing zone label ("7:00 PM EST") is ignored; the calendar owns the zone.
func ParseClock(raw string) (hour, minute int, err error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}

	hh, mm, ok := strings.Cut(fields[0], ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidClock, raw)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidClock, raw)
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("%w: period in %q", ErrInvalidClock, raw)
	}

	return hour, minute, nil
}

// EarliestStart returns the first parseable start instant among clocks of one day.
func (c Calendar) EarliestStart(day int, clocks []string) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, clock := range clocks {
		at, err := c.At(day, clock)
		if err != nil {
			continue
		}
		if !found || at.Before(earliest) {
			earliest = at
			found = true
		}
	}
	return earliest, found
}

// Evaluate derives the status of a day. The first day is never closed by time;
// its start still counts as HasStarted so the next day can be promoted.
func (c Calendar) Evaluate(setting DaySetting, clocks []string, now time.Time) DayStatus {
	status := DayStatus{
		Day:       setting.Day,
		IsEnabled: setting.IsEnabled,
	}

	if first, ok := c.EarliestStart(setting.Day, clocks); ok {
		firstAt := first
		status.FirstMatchAt = &firstAt
		status.HasStarted = !now.Before(first)
	}
	status.IsTimeLocked = status.HasStarted && setting.Day != c.FirstDay()
	status.IsPickable = status.IsEnabled && !status.IsTimeLocked

	return status
}
