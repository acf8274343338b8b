// Package slot models the shop's fixed daily time grid and interval overlap.
package slot

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrPastDate      = errors.New("date is in the past")
	ErrBeyondHorizon = errors.New("date is beyond the booking horizon")
	ErrNotOnGrid     = errors.New("time is not one of the shop's slots")
	ErrOutsideHours  = errors.New("booking falls outside opening hours")
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Grid is the daily slot layout: slots start at OpenHour and every
// SlotMinutes after it, the last one at LastSlotHour. The shop closes one
// slot width after the last slot.
type Grid struct {
	Location     *time.Location
	OpenHour     int
	LastSlotHour int
	SlotMinutes  int
	HorizonDays  int
}

// Slot is one grid position evaluated for a requested duration.
type Slot struct {
	Time      string
	Start     time.Time
	End       time.Time
	Available bool
}

func (g Grid) loc() *time.Location {
	if g.Location == nil {
		return time.UTC
	}
	return g.Location
}

// Times lists the slot labels, e.g. 07:00 ... 20:00.
func (g Grid) Times() []string {
	var out []string
	if g.SlotMinutes <= 0 {
		return out
	}
	for m := g.OpenHour * 60; m <= g.LastSlotHour*60; m += g.SlotMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// ParseDay parses YYYY-MM-DD, or an RFC3339 timestamp, into midnight of that
// day in the shop's zone.
func (g Grid) ParseDay(value string) (time.Time, error) {
	if d, err := time.ParseInLocation(DateLayout, value, g.loc()); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return g.Day(ts), nil
}

// Day truncates t to midnight in the shop's zone.
func (g Grid) Day(t time.Time) time.Time {
	t = t.In(g.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.loc())
}

func (g Grid) clock(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, g.loc())
}

func (g Grid) Opening(day time.Time) time.Time {
	return g.clock(day, g.OpenHour*60)
}

func (g Grid) Closing(day time.Time) time.Time {
	return g.clock(day, g.LastSlotHour*60+g.SlotMinutes)
}

// At returns the start of the slot labelled hhmm on day.
func (g Grid) At(day time.Time, hhmm string) (time.Time, error) {
	for _, label := range g.Times() {
		if label == hhmm {
			t, _ := time.Parse(TimeLayout, hhmm)
			return g.clock(day, t.Hour()*60+t.Minute()), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNotOnGrid, hhmm)
}

// CheckDay rejects days before today or more than HorizonDays ahead.
func (g Grid) CheckDay(day, now time.Time) error {
	today := g.Day(now)
	day = g.Day(day)
	if day.Before(today) {
		return ErrPastDate
	}
	if g.HorizonDays > 0 && day.After(today.AddDate(0, 0, g.HorizonDays)) {
		return ErrBeyondHorizon
	}
	return nil
}

// CheckHours rejects intervals that start before opening or end after closing.
func (g Grid) CheckHours(iv Interval) error {
	day := g.Day(iv.Start)
	if iv.Start.Before(g.Opening(day)) || iv.End.After(g.Closing(day)) {
		return ErrOutsideHours
	}
	return nil
}

// Slots evaluates every grid slot of day for a booking lasting
// durationMinutes (one slot width when zero). A slot is available when it
// starts after now, ends by closing time and overlaps nothing in busy.
func (g Grid) Slots(day time.Time, durationMinutes int, busy []Interval, now time.Time) []Slot {
	// A slot blocks at least its own width even for shorter services.
	length := time.Duration(max(g.SlotMinutes, durationMinutes)) * time.Minute
	closing := g.Closing(day)

	labels := g.Times()
	slots := make([]Slot, 0, len(labels))
	for _, label := range labels {
		start, _ := g.At(day, label)
		iv := Interval{Start: start, End: start.Add(length)}

		available := start.After(now) && !iv.End.After(closing)
		for i := 0; available && i < len(busy); i++ {
			if iv.Overlaps(busy[i]) {
				available = false
			}
		}

		slots = append(slots, Slot{Time: label, Start: iv.Start, End: iv.End, Available: available})
	}
	return slots
}
