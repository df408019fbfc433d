package library

import (
	"errors"
	"testing"
	"time"
)

var today = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.Local)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr error
	}{
		{"leap day in leap year", "29-02-2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), nil},
		{"leap day in common year", "29-02-2023", time.Time{}, ErrInvalidCalendarDate},
		{"century not leap", "29-02-1900", time.Time{}, ErrInvalidCalendarDate},
		{"400th year leap", "29-02-2000", time.Date(2000, 2, 29, 0, 0, 0, 0, time.Local), nil},
		{"april has 30 days", "31-04-2025", time.Time{}, ErrInvalidCalendarDate},
		{"month 13", "10-13-2025", time.Time{}, ErrInvalidCalendarDate},
		{"day zero", "00-01-2025", time.Time{}, ErrInvalidCalendarDate},
		{"single digit day", "1-01-2025", time.Time{}, ErrInvalidDateFormat},
		{"slashes", "01/01/2025", time.Time{}, ErrInvalidDateFormat},
		{"empty", "", time.Time{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDate(%q) err = %v, want %v", tt.in, err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("ParseDate(%q) err = %v, want it to wrap ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseReturnDate(t *testing.T) {
	if _, err := ParseReturnDate("09-03-2025", today); !errors.Is(err, ErrPastDate) {
		t.Fatalf("yesterday: err = %v, want ErrPastDate", err)
	}
	if _, err := ParseReturnDate("10-03-2025", today); err != nil {
		t.Fatalf("today should be accepted: %v", err)
	}
	if _, err := ParseReturnDate("11-03-2025", today); err != nil {
		t.Fatalf("tomorrow: %v", err)
	}
	if _, err := ParseReturnDate("30-02-2026", today); !errors.Is(err, ErrInvalidCalendarDate) {
		t.Fatalf("calendar check must run first: %v", err)
	}
}

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"91234567", "0", "6512345678"} {
		if _, err := ValidatePhone(ok); err != nil {
			t.Errorf("ValidatePhone(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "+6591234567", "9123 4567", "9123-4567", "abc"} {
		if _, err := ValidatePhone(bad); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("ValidatePhone(%q) err = %v, want ErrInvalidPhone", bad, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.com", "first.last+tag@mail.example.org"} {
		if _, err := ValidateEmail(ok); err != nil {
			t.Errorf("ValidateEmail(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "a@b", "@b.com", "a b@c.com", "a@b.c"} {
		if _, err := ValidateEmail(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("ValidateEmail(%q) err = %v, want ErrInvalidEmail", bad, err)
		}
	}
}

func TestCategoryFromLabel(t *testing.T) {
	tests := map[string]Category{
		"scifi":       SciFi,
		"SciFi":       SciFi,
		" ROMANCE ":   Romance,
		"non-fiction": NonFiction,
		"NonFiction":  NonFiction,
		"education":   Education,
	}
	for label, want := range tests {
		got, err := CategoryFromLabel(label)
		if err != nil {
			t.Fatalf("CategoryFromLabel(%q): %v", label, err)
		}
		if got != want {
			t.Fatalf("CategoryFromLabel(%q) = %v, want %v", label, got, want)
		}
	}
	if _, err := CategoryFromLabel("poetry"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("poetry: err = %v, want ErrInvalidCategory", err)
	}
	if _, err := ConditionFromLabel("mint"); !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("mint: err = %v, want ErrInvalidCondition", err)
	}
	if SciFi.String() != "SCIFI" || Poor.String() != "POOR" {
		t.Fatalf("unexpected names %s %s", SciFi, Poor)
	}
}

func TestValidationErrorsWrapInvalidArgument(t *testing.T) {
	for _, err := range []error{
		ErrInvalidDateFormat, ErrInvalidCalendarDate, ErrPastDate,
		ErrInvalidPhone, ErrInvalidEmail, ErrInvalidCategory, ErrInvalidCondition,
	} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v does not wrap ErrInvalidArgument", err)
		}
	}
	if errors.Is(ErrHistoryDisabled, ErrInvalidArgument) {
		t.Errorf("ErrHistoryDisabled is not a validation failure")
	}
}
