// Package calendar lays out a month of perfect days for display.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitquest/internal/constants"
)

// Day is one cell of a month grid.
type Day struct {
	Date    string // YYYY-MM-DD
	Number  int
	Perfect bool
}

// MonthView is a calendar month with its perfect days marked.
type MonthView struct {
	Year  int
	Month time.Month
	Days  []Day
	// LeadingBlanks is the number of empty cells before the 1st in a
	// Sunday-first week row.
	LeadingBlanks int
	PerfectCount  int
}

// Month builds the view for year/month from a list of YYYY-MM-DD perfect days.
// Dates outside the month are ignored.
func Month(year int, month time.Month, perfectDays []string) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()

	perfect := make(map[string]bool, len(perfectDays))
	for _, d := range perfectDays {
		perfect[d] = true
	}

	view := MonthView{
		Year:          first.Year(),
		Month:         first.Month(),
		Days:          make([]Day, 0, daysIn),
		LeadingBlanks: int(first.Weekday()),
	}
	for n := 1; n <= daysIn; n++ {
		date := first.AddDate(0, 0, n-1).Format(constants.DateFormat)
		day := Day{Date: date, Number: n, Perfect: perfect[date]}
		if day.Perfect {
			view.PerfectCount++
		}
		view.Days = append(view.Days, day)
	}
	return view
}

// Shift returns the year and month n months away from year/month.
func Shift(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Year(), t.Month()
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// Title renders the month heading, e.g. "March 2024".
func (v MonthView) Title() string {
	return fmt.Sprintf("%s %d", v.Month, v.Year)
}

// Weeks splits the month into Sunday-first rows. Blank cells are zero Days.
func (v MonthView) Weeks() [][]Day {
	cells := make([]Day, v.LeadingBlanks, v.LeadingBlanks+len(v.Days)+6)
	cells = append(cells, v.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, Day{})
	}

	weeks := make([][]Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}
