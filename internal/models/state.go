package models

import "slices"

// UserStats aggregates the point balance and perfect-day record
type UserStats struct {
	TotalPoints int      `json:"total_points"`
	Streak      int      `json:"streak"`       // legacy; the live streak is derived from PerfectDays
	PerfectDays []string `json:"perfect_days"` // YYYY-MM-DD, no duplicates
}

// IsPerfect reports whether day is recorded as a perfect day.
func (s UserStats) IsPerfect(day string) bool {
	return slices.Contains(s.PerfectDays, day)
}

// State is the persisted domain state owned by the engine.
type State struct {
	Habits  []Habit
	Goals   []Goal
	Rewards []Reward
	Stats   UserStats
}

// Clone returns a deep copy of the state so callers never share slices with the engine.
func (s State) Clone() State {
	out := State{
		Goals:   slices.Clone(s.Goals),
		Rewards: slices.Clone(s.Rewards),
		Stats:   s.Stats.Clone(),
	}
	if s.Habits != nil {
		out.Habits = make([]Habit, len(s.Habits))
		for i, h := range s.Habits {
			h.CompletedDates = slices.Clone(h.CompletedDates)
			out.Habits[i] = h
		}
	}
	return out
}

func (s UserStats) Clone() UserStats {
	s.PerfectDays = slices.Clone(s.PerfectDays)
	return s
}
