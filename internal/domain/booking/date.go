package booking

import (
	"regexp"
	"time"

	"bodyshop/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errs.Mark(errs.New("invalid date, expected YYYY-MM-DD"), errs.ErrValidation)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate accepts only real calendar dates in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, errs.Wrapf(ErrInvalidDate, "%q", s)
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Wrapf(ErrInvalidDate, "%q", s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
