package models

import "time"

// SeedHabits returns the starter habits used when no habits are stored.
func SeedHabits() []Habit {
	return []Habit{
		{ID: "1", Name: "Morning Meditation", Points: 10, CompletedDates: []string{}},
		{ID: "2", Name: "30 min Exercise", Points: 20, CompletedDates: []string{}},
		{ID: "3", Name: "Read 10 pages", Points: 15, CompletedDates: []string{}},
		{ID: "4", Name: "Drink 2L Water", Points: 5, CompletedDates: []string{}},
	}
}

// SeedGoals returns the starter goals, stamped with createdAt.
func SeedGoals(createdAt time.Time) []Goal {
	return []Goal{
		{ID: "g1", Text: "Wake up at 6 AM", Type: GoalDaily, CreatedAt: createdAt, Tracking: Checkbox{}},
		{ID: "g2", Text: "Visit the gym", Type: GoalWeekly, CreatedAt: createdAt, Tracking: Counter{Current: 0, Target: 4}},
		{ID: "g3", Text: "Complete course modules", Type: GoalMonthly, CreatedAt: createdAt, Tracking: Counter{Current: 1, Target: 12}},
		{ID: "g4", Text: "Save money ($)", Type: GoalYearly, CreatedAt: createdAt, Tracking: Counter{Current: 500, Target: 5000}},
	}
}

// SeedRewards returns the starter rewards.
func SeedRewards() []Reward {
	return []Reward{
		{ID: "r1", Name: "Treat yourself to Coffee", Cost: 100},
		{ID: "r2", Name: "Watch a Movie", Cost: 300},
		{ID: "r3", Name: "Dinner Out", Cost: 1000},
		{ID: "r4", Name: "New Gadget", Cost: 5000},
	}
}

// SeedStats returns an empty stats record.
func SeedStats() UserStats {
	return UserStats{TotalPoints: 0, Streak: 0, PerfectDays: []string{}}
}

// SeedState assembles a fresh state from the seed collections.
func SeedState(createdAt time.Time) State {
	return State{
		Habits:  SeedHabits(),
		Goals:   SeedGoals(createdAt),
		Rewards: SeedRewards(),
		Stats:   SeedStats(),
	}
}
