package dateinput

import "time"

// Day is one cell of the rendered picker grid.
type Day struct {
	Date     time.Time
	Number   int
	InMonth  bool
	Disabled bool
}

type Month struct {
	Year  int
	Month time.Month
	Label string
	Weeks [][7]Day
}

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func MonthLabel(month time.Month) string {
	return monthNames[month-1]
}

// Grid builds the picker for one month: full weeks starting Monday, with
// leading/trailing days of the neighbouring months greyed out and days
// outside the bounds disabled.
func Grid(year int, month time.Month, bounds Bounds) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	cursor := first
	for cursor.Weekday() != time.Monday {
		cursor = cursor.AddDate(0, 0, -1)
	}

	grid := Month{Year: year, Month: month, Label: MonthLabel(month)}
	for !cursor.After(last) {
		var week [7]Day
		for i := 0; i < 7; i++ {
			week[i] = Day{
				Date:     cursor,
				Number:   cursor.Day(),
				InMonth:  cursor.Month() == month,
				Disabled: bounds.Check(cursor) != nil,
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
