package engine

import (
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/utils"
)

// ApplyDailyReset clears the previous session day. When lastReset is a valid
// date strictly before today, that single date is removed from every habit and
// every daily goal is unchecked. Older completion dates are kept as history.
// An empty, malformed or future marker leaves everything untouched.
func ApplyDailyReset(lastReset, today string, habits []models.Habit, goals []models.Goal) ([]models.Habit, []models.Goal) {
	if lastReset == "" || !utils.ValidateDate(lastReset) || lastReset >= today {
		return habits, goals
	}

	var resetHabits []models.Habit
	if habits != nil {
		resetHabits = make([]models.Habit, len(habits))
		for i, h := range habits {
			resetHabits[i] = h.WithoutDate(lastReset)
		}
	}

	var resetGoals []models.Goal
	if goals != nil {
		resetGoals = make([]models.Goal, len(goals))
		for i, g := range goals {
			if g.Type == models.GoalDaily {
				g.Tracking = models.Checkbox{Done: false}
			}
			resetGoals[i] = g
		}
	}

	return resetHabits, resetGoals
}
