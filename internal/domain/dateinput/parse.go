// Package dateinput is the single validated date-entry component used by
// every screen that captures a date, either as typed jj/mm/aaaa text or
// through the rendered calendar picker.
package dateinput

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const Layout = "02/01/2006"

var (
	ErrFormat      = errors.New("format invalide, attendu jj/mm/aaaa")
	ErrDay         = errors.New("jour invalide")
	ErrMonth       = errors.New("mois invalide")
	ErrNonexistent = errors.New("date inexistante")
	ErrOutOfRange  = errors.New("date hors limites")
)

// Bounds restricts accepted dates. A zero Min or Max side is open.
type Bounds struct {
	Min time.Time
	Max time.Time
}

func (b Bounds) Check(date time.Time) error {
	if !b.Min.IsZero() && date.Before(b.Min) {
		return ErrOutOfRange
	}
	if !b.Max.IsZero() && date.After(b.Max) {
		return ErrOutOfRange
	}
	return nil
}

// Parse validates a jj/mm/aaaa string field by field so the error names
// the part the user got wrong, then confirms the date exists on the
// calendar. The result is midnight UTC.
func Parse(raw string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, ErrFormat
	}

	day, err := atoiField(parts[0], 2)
	if err != nil {
		return time.Time{}, ErrFormat
	}
	month, err := atoiField(parts[1], 2)
	if err != nil {
		return time.Time{}, ErrFormat
	}
	year, err := atoiField(parts[2], 4)
	if err != nil {
		return time.Time{}, ErrFormat
	}

	if day < 1 || day > 31 {
		return time.Time{}, ErrDay
	}
	if month < 1 || month > 12 {
		return time.Time{}, ErrMonth
	}
	if day > daysInMonth(year, time.Month(month)) {
		return time.Time{}, ErrNonexistent
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseInBounds is Parse plus a bounds check.
func ParseInBounds(raw string, bounds Bounds) (time.Time, error) {
	date, err := Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	if err := bounds.Check(date); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// Format renders a date back to the jj/mm/aaaa entry format.
func Format(date time.Time) string {
	return date.Format(Layout)
}

func atoiField(raw string, width int) (int, error) {
	if len(raw) != width {
		return 0, fmt.Errorf("want %d digits", width)
	}
	return strconv.Atoi(raw)
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
