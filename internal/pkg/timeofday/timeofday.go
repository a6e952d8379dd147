// Package timeofday converts wall-clock "HH:MM" strings to minutes since
// midnight and back. Values carry no date and no timezone.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bodyshop/internal/pkg/errs"
)

const MinutesPerDay = 24 * 60

var ErrInvalidTimeFormat = errs.Mark(errs.New("invalid time format, expected HH:MM"), errs.ErrValidation)

var timePattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ToMinutes parses "H:MM" or "HH:MM" into minutes since midnight.
func ToMinutes(s string) (int, error) {
	if !timePattern.MatchString(s) {
		return 0, errs.Wrapf(ErrInvalidTimeFormat, "%q", s)
	}

	hh, mm, _ := strings.Cut(s, ":")
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, errs.Wrapf(ErrInvalidTimeFormat, "%q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, errs.Wrapf(ErrInvalidTimeFormat, "%q", s)
	}

	if hours > 23 || minutes > 59 {
		return 0, errs.Wrapf(ErrInvalidTimeFormat, "%q out of range", s)
	}

	return hours*60 + minutes, nil
}

// ToTimeString formats minutes since midnight as zero-padded "HH:MM".
func ToTimeString(minutes int) (string, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", errs.Wrapf(ErrInvalidTimeFormat, "%d minutes out of range", minutes)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// MustToTimeString panics on out-of-range input. Only for constant catalogs.
func MustToTimeString(minutes int) string {
	s, err := ToTimeString(minutes)
	if err != nil {
		panic(err)
	}
	return s
}

// AddMinutes shifts s by delta minutes; the result must stay within the same day.
func AddMinutes(s string, delta int) (string, error) {
	start, err := ToMinutes(s)
	if err != nil {
		return "", err
	}
	return ToTimeString(start + delta)
}
