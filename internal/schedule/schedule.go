// Package schedule holds the pure clock arithmetic shared by the
// availability and booking packages. Times are wall-clock "HH:MM" strings
// compared as minute offsets from midnight; intervals are half-open
// [start, end).
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedTime = errors.New("malformed time, expected HH:MM")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
)

const DateLayout = "2006-01-02"

// ToMinutes converts "HH:MM" to minutes since midnight.
// Hours must be 00-23 and minutes 00-59.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, ErrMalformedTime
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrMalformedTime
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrMalformedTime
	}

	return hour*60 + minute, nil
}

// MinutesToClock is the inverse of ToMinutes.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. An interval starting exactly where the other
// ends does not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsClock is Overlaps over "HH:MM" strings.
func OverlapsClock(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := ToMinutes(aStart)
	if err != nil {
		return false, err
	}
	ae, err := ToMinutes(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := ToMinutes(bStart)
	if err != nil {
		return false, err
	}
	be, err := ToMinutes(bEnd)
	if err != nil {
		return false, err
	}
	return Overlaps(as, ae, bs, be), nil
}

// ParseDate parses a "YYYY-MM-DD" calendar day.
func ParseDate(dateStr string) (time.Time, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// WeekdayKey returns the lower-cased English weekday name for a calendar
// day, e.g. "monday". These are the keys of a facility's weekly schedule.
func WeekdayKey(dateStr string) (string, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return strings.ToLower(date.Weekday().String()), nil
}

// GenerateStarts lists candidate start offsets inside [openMin, closeMin]
// such that a reservation of durationMin still ends within the window,
// stepping every stepMin minutes.
func GenerateStarts(openMin, closeMin, stepMin, durationMin int) []int {
	if stepMin <= 0 || durationMin <= 0 {
		return nil
	}

	starts := make([]int, 0)
	for cursor := openMin; cursor+durationMin <= closeMin; cursor += stepMin {
		starts = append(starts, cursor)
	}
	return starts
}
