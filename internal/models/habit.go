package models

import "slices"

// Habit represents a recurring daily practice worth a fixed number of points
type Habit struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Points         int      `json:"points"`
	CompletedDates []string `json:"completed_dates"` // YYYY-MM-DD, no duplicates, insertion order
}

// CompletedOn reports whether the habit was completed on the given day.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// WithDate returns a copy of the habit with day appended to its completion set.
// A day that is already present is not added twice.
func (h Habit) WithDate(day string) Habit {
	if h.CompletedOn(day) {
		return h
	}
	dates := make([]string, 0, len(h.CompletedDates)+1)
	dates = append(dates, h.CompletedDates...)
	h.CompletedDates = append(dates, day)
	return h
}

// WithoutDate returns a copy of the habit with day removed from its completion set.
func (h Habit) WithoutDate(day string) Habit {
	dates := make([]string, 0, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if d != day {
			dates = append(dates, d)
		}
	}
	h.CompletedDates = dates
	return h
}

// HabitsCompletedOn returns the habits with a completion recorded on day.
func HabitsCompletedOn(habits []Habit, day string) []Habit {
	var done []Habit
	for _, h := range habits {
		if h.CompletedOn(day) {
			done = append(done, h)
		}
	}
	return done
}

// PointsEarnedOn sums the points of every habit completed on day.
func PointsEarnedOn(habits []Habit, day string) int {
	total := 0
	for _, h := range HabitsCompletedOn(habits, day) {
		total += h.Points
	}
	return total
}
