package evaluator

import (
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// dateDiff implements SUBTRACT_DATE: subject minus target, in the
// given unit, using calendar arithmetic for months/years so an
// end-of-month target (e.g. subject Feb 28 vs target Jan 31) counts as a
// full month rather than undercounting by one.
func dateDiff(subject, target value.Value, unit string) (value.Value, error) {
	subjectDate, err := asDate(subject)
	if err != nil {
		return value.Null(), err
	}
	targetDate, err := asDate(target)
	if err != nil {
		return value.Null(), err
	}

	switch unit {
	case "days":
		days := int64(subjectDate.Sub(targetDate).Hours() / 24)
		return value.Int(days), nil
	case "months":
		years, months := calendarDiff(subjectDate, targetDate)
		return value.Int(int64(years)*12 + int64(months)), nil
	case "years":
		years, _ := calendarDiff(subjectDate, targetDate)
		return value.Int(int64(years)), nil
	default:
		return value.Null(), rrerr.ErrInvalidOperation("unknown SUBTRACT_DATE unit: %q", unit)
	}
}

func asDate(v value.Value) (time.Time, error) {
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, rrerr.ErrTypeMismatch("date string (YYYY-MM-DD)", v.Kind().String())
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, rrerr.ErrInvalidDate("%q is not a valid YYYY-MM-DD date", s)
	}
	return t, nil
}

// calendarDiff computes the signed years/months elapsed from earlier
// to later. earlier's day-of-month is clamped to the last day of
// later's month before comparing, so an earlier date of Jan 31 reads
// as fully elapsed by Feb 28/29 rather than waiting for a Feb 31 that
// never comes.
func calendarDiff(later, earlier time.Time) (years, months int) {
	y1, m1, d1 := earlier.Date()
	y2, m2, d2 := later.Date()

	years = y2 - y1
	months = int(m2) - int(m1)

	if d1 > lastDayOfMonth(y2, m2) {
		d1 = lastDayOfMonth(y2, m2)
	}
	if d2 < d1 {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}

func lastDayOfMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
