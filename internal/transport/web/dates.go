package web

import (
	"fmt"
	"net/http"
	"time"

	"congeadmin/internal/domain/dateinput"
)

const isoLayout = "2006-01-02"

// The backend speaks ISO dates; forms and tables use jj/mm/aaaa.

func frToISO(raw string) (string, error) {
	date, err := dateinput.Parse(raw)
	if err != nil {
		return "", err
	}
	return date.Format(isoLayout), nil
}

func isoToFR(raw string) string {
	date, err := time.Parse(isoLayout, raw)
	if err != nil {
		return raw
	}
	return dateinput.Format(date)
}

// buildCalendar prepares the picker grid for a form page. The month shown
// comes from the cal=mm/aaaa query parameter and defaults to the current
// month.
func buildCalendar(r *http.Request, bounds dateinput.Bounds) (cal *dateinput.Month, prev, next string) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := r.URL.Query().Get("cal"); raw != "" {
		var m, y int
		if _, err := fmt.Sscanf(raw, "%02d/%04d", &m, &y); err == nil && m >= 1 && m <= 12 {
			year, month = y, time.Month(m)
		}
	}

	grid := dateinput.Grid(year, month, bounds)
	before := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	after := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return &grid,
		fmt.Sprintf("%02d/%04d", int(before.Month()), before.Year()),
		fmt.Sprintf("%02d/%04d", int(after.Month()), after.Year())
}
