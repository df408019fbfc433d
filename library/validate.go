package library

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the on-disk and user-facing layout of a return date.
const DateLayout = "02-01-2006"

var (
	dateRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ParseDate parses a DD-MM-YYYY string and checks that it names a real
// calendar day. It does not look at the current date.
func ParseDate(text string) (time.Time, error) {
	if !dateRe.MatchString(text) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
	}
	day, _ := strconv.Atoi(text[0:2])
	month, _ := strconv.Atoi(text[3:5])
	year, _ := strconv.Atoi(text[6:10])

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month must be between 01 and 12, got %02d", ErrInvalidCalendarDate, month)
	}
	if day < 1 || day > daysIn(month, year) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidCalendarDate, text)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// ParseReturnDate is ParseDate plus the rule that a return date may not lie
// before today.
func ParseReturnDate(text string, today time.Time) (time.Time, error) {
	d, err := ParseDate(text)
	if err != nil {
		return time.Time{}, err
	}
	if d.Before(truncateDay(today)) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrPastDate, text)
	}
	return d, nil
}

// ValidatePhone accepts any non-empty run of ASCII digits.
func ValidatePhone(text string) (string, error) {
	if !phoneRe.MatchString(text) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, text)
	}
	return text, nil
}

// ValidateEmail checks text against a local@domain.tld pattern.
func ValidateEmail(text string) (string, error) {
	if !emailRe.MatchString(text) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, text)
	}
	return text, nil
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysIn(month, year int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
