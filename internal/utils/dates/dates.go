// Package dates normalizes the date and timestamp shapes found in requests and in storage.
//
// Calendar dates are civil.Date values: no time of day, no location. Due dates and sale dates are
// only ever compared as dates, never as instants.
package dates

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/bestcell/bestsystem_backend/internal/apperrors"
)

// DateLayout is the storage format of calendar dates.
const DateLayout = "2006-01-02"

// timestampLayouts are tried in order. Naive layouts (no offset) are read as UTC, which is how
// timestamps are written.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// NormalizeDate turns a civil.Date, time.Time (or pointers to them) or an ISO-8601 string into a
// calendar date. A time.Time keeps its own wall-clock date; it is not shifted to another zone.
func NormalizeDate(value any) (civil.Date, error) {
	switch v := value.(type) {
	case civil.Date:
		if !v.IsValid() {
			return civil.Date{}, fmt.Errorf("%w: %v is not a valid date", apperrors.ErrInvalidDateType, v)
		}
		return v, nil
	case *civil.Date:
		if v == nil {
			return civil.Date{}, fmt.Errorf("%w: nil date", apperrors.ErrInvalidDateType)
		}
		return NormalizeDate(*v)
	case time.Time:
		return civil.DateOf(v), nil
	case *time.Time:
		if v == nil {
			return civil.Date{}, fmt.Errorf("%w: nil time", apperrors.ErrInvalidDateType)
		}
		return civil.DateOf(*v), nil
	case string:
		s := strings.TrimSpace(v)
		if len(s) < len(DateLayout) {
			return civil.Date{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateType, v)
		}
		d, err := civil.ParseDate(s[:len(DateLayout)])
		if err != nil {
			return civil.Date{}, fmt.Errorf("%w: %q: %v", apperrors.ErrInvalidDateType, v, err)
		}
		return d, nil
	default:
		return civil.Date{}, fmt.Errorf("%w: unsupported type %T", apperrors.ErrInvalidDateType, value)
	}
}

// NormalizeDateTime turns a time.Time, civil.Date (midnight UTC) or an ISO-8601 string into a UTC
// timestamp.
func NormalizeDateTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", apperrors.ErrInvalidDateType)
		}
		return v.UTC(), nil
	case civil.Date:
		if !v.IsValid() {
			return time.Time{}, fmt.Errorf("%w: %v is not a valid date", apperrors.ErrInvalidDateType, v)
		}
		return StartOfDay(v), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateType, v)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", apperrors.ErrInvalidDateType, value)
	}
}

// TimestampLayout is the storage format of timestamps. Fixed width so text order is time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimestamp renders a timestamp the way it is persisted.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// StartOfDay is midnight UTC of d.
func StartOfDay(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// AddMonths advances d by n calendar months, clamping the day to the length of the target month
// (Jan 31 + 1 month is Feb 28 or Feb 29, never March).
func AddMonths(d civil.Date, n int) civil.Date {
	total := int(d.Month) - 1 + n
	year := d.Year + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	day := d.Day
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return civil.Date{Year: year, Month: month, Day: day}
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// SameMonth reports whether d falls in the given year and month.
func SameMonth(d civil.Date, year int, month time.Month) bool {
	return d.Year == year && d.Month == month
}

// MonthBounds returns the first and last calendar dates of a month.
func MonthBounds(year int, month time.Month) (civil.Date, civil.Date) {
	first := civil.Date{Year: year, Month: month, Day: 1}
	last := civil.Date{Year: year, Month: month, Day: DaysIn(year, month)}
	return first, last
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
