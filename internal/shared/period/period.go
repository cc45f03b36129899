// Package period holds the calendar arithmetic shared by the payroll engine:
// month-end normalization, inclusive date clipping, and working-day counting.
package period

import (
	"errors"
	"time"
)

var ErrInvalidPeriodFormat = errors.New("invalid period format, expected YYYY-MM or YYYY-MM-DD")

// Parse accepts YYYY-MM or YYYY-MM-DD and returns the period normalized to the
// last calendar day of that month (UTC, midnight).
func Parse(v string) (time.Time, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, ErrInvalidPeriodFormat
		}
	}
	return MonthEnd(t), nil
}

// MonthEnd returns the last calendar day of t's month at midnight UTC.
func MonthEnd(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// MonthStart returns the first calendar day of t's month at midnight UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CurrentMonthEnd is MonthEnd(now) used to validate run periods.
func CurrentMonthEnd(now time.Time) time.Time {
	return MonthEnd(now.UTC())
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Clip narrows [start, end] to [hire, termination] when either bound falls
// inside the range. Both endpoints stay inclusive. ok is false when the
// resulting range is empty.
func Clip(start, end time.Time, hire, termination *time.Time) (time.Time, time.Time, bool) {
	s, e := midnight(start), midnight(end)
	if hire != nil {
		if h := midnight(*hire); h.After(s) {
			s = h
		}
	}
	if termination != nil {
		if t := midnight(*termination); t.Before(e) {
			e = t
		}
	}
	if s.After(e) {
		return s, e, false
	}
	return s, e, true
}

// CalendarDays counts days in [start, end], both endpoints included.
func CalendarDays(start, end time.Time) int {
	s, e := midnight(start), midnight(end)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// WorkingDays counts Monday-Friday days in [start, end], inclusive.
func WorkingDays(start, end time.Time) int {
	s, e := midnight(start), midnight(end)
	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}

func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Overlap returns the inclusive intersection of [aStart, aEnd] and
// [bStart, bEnd]; ok is false when they do not intersect.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	s, e := midnight(aStart), midnight(aEnd)
	if bs := midnight(bStart); bs.After(s) {
		s = bs
	}
	if be := midnight(bEnd); be.Before(e) {
		e = be
	}
	if s.After(e) {
		return s, e, false
	}
	return s, e, true
}
