// Package clock holds the time source and the calendar helpers used by the booking core.
// Dates are ISO calendar days ("2006-01-02") and times of day are zero-padded "15:04".
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the facility's location.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// IsISODate reports whether value is a syntactically and calendrically valid YYYY-MM-DD date.
func IsISODate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !isoDatePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("date must use the YYYY-MM-DD format")
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date is not a valid calendar day")
	}
	return parsed, nil
}

// NormalizeTimeOfDay accepts "H:MM" or "HH:MM" on a 24 hour clock and returns "HH:MM".
func NormalizeTimeOfDay(value string) (string, error) {
	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", fmt.Errorf("time must use the HH:MM 24 hour format")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// MinutesOfDay converts a normalized "HH:MM" into minutes after midnight.
func MinutesOfDay(value string) (int, error) {
	normalized, err := NormalizeTimeOfDay(value)
	if err != nil {
		return 0, err
	}
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute, nil
}

// Duration returns end minus start for two times of day on the same date.
func Duration(start, end string) (time.Duration, error) {
	startMinutes, err := MinutesOfDay(start)
	if err != nil {
		return 0, err
	}
	endMinutes, err := MinutesOfDay(end)
	if err != nil {
		return 0, err
	}
	return time.Duration(endMinutes-startMinutes) * time.Minute, nil
}

// Hours expresses d as a real number of hours.
func Hours(d time.Duration) float64 {
	return d.Minutes() / 60
}

// SlotStart resolves a reservation date and start time to an instant in loc.
func SlotStart(date, start string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if _, err := ParseDate(date); err != nil {
		return time.Time{}, err
	}
	normalized, err := NormalizeTimeOfDay(start)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+normalized, loc)
}

// Today returns the current calendar day of c.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// DaysBetween returns the number of calendar days from one date to another.
func DaysBetween(from, to string) (int, error) {
	fromDate, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	toDate, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(toDate.Sub(fromDate).Hours() / 24), nil
}

// PreviousMonth returns the first and last calendar day of the month before now.
func PreviousMonth(now time.Time) (string, string) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfThisMonth.AddDate(0, -1, 0)
	lastOfPrevious := firstOfThisMonth.AddDate(0, 0, -1)
	return firstOfPrevious.Format(DateLayout), lastOfPrevious.Format(DateLayout)
}
