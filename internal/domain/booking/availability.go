package booking

import (
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/timeofday"
)

// Mode decides how a candidate slot is tested against booked intervals.
type Mode string

const (
	// ModePointContainment excludes a slot only when its start lies inside a
	// booked interval. A multi-hour request can still run into a later booking.
	ModePointContainment Mode = "point"
	// ModeIntervalOverlap excludes a slot when [start, start+duration)
	// intersects any booked interval.
	ModeIntervalOverlap Mode = "overlap"
)

const (
	OpeningMinute = 9 * 60
	ClosingMinute = 17 * 60
	SlotStep      = 60
)

var ErrInvalidMode = errs.Mark(errs.New("invalid slot mode"), errs.ErrValidation)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePointContainment, ModeIntervalOverlap:
		return Mode(s), nil
	case "":
		return ModePointContainment, nil
	default:
		return "", errs.Wrapf(ErrInvalidMode, "%q", s)
	}
}

// DefaultCatalog lists the hourly start times 09:00 through 17:00.
func DefaultCatalog() []string {
	slots := make([]string, 0, (ClosingMinute-OpeningMinute)/SlotStep+1)
	for m := OpeningMinute; m <= ClosingMinute; m += SlotStep {
		slots = append(slots, timeofday.MustToTimeString(m))
	}
	return slots
}

// Interval is a booked half-open span [Start, End) in minutes since midnight.
// BookingID is zero for a booking that has not been stored yet.
type Interval struct {
	BookingID int64
	Start     int
	End       int
	Status    Status
}

func (iv Interval) contains(minute int) bool {
	return iv.Start <= minute && minute < iv.End
}

func (iv Interval) overlaps(start, end int) bool {
	return start < iv.End && end > iv.Start
}

type SlotFilter struct {
	Mode    Mode
	Catalog []string
}

func NewSlotFilter(mode Mode) SlotFilter {
	return SlotFilter{Mode: mode, Catalog: DefaultCatalog()}
}

// Available returns the free catalog slots in catalog order. duration is only
// consulted in ModeIntervalOverlap; values below one minute behave like a
// point check. Cancelled intervals never block a slot.
func (f SlotFilter) Available(booked []Interval, duration int) ([]string, error) {
	if duration < 1 {
		duration = 1
	}

	free := make([]string, 0, len(f.Catalog))
	for _, slot := range f.Catalog {
		start, err := timeofday.ToMinutes(slot)
		if err != nil {
			return nil, err
		}
		if !f.blocked(booked, start, start+duration) {
			free = append(free, slot)
		}
	}
	return free, nil
}

func (f SlotFilter) blocked(booked []Interval, start, end int) bool {
	for _, iv := range booked {
		if iv.Status == StatusCancelled {
			continue
		}
		if f.Mode == ModeIntervalOverlap {
			if iv.overlaps(start, end) {
				return true
			}
			continue
		}
		if iv.contains(start) {
			return true
		}
	}
	return false
}

// Conflicts reports whether [start, end) intersects any active interval.
func Conflicts(booked []Interval, start, end int) bool {
	for _, iv := range booked {
		if iv.Status != StatusCancelled && iv.overlaps(start, end) {
			return true
		}
	}
	return false
}
