package engine

import (
	"slices"

	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
)

// ToggleHabit marks the habit done for today, or undoes today's completion.
// The habit's points are added or subtracted accordingly.
func (e *Engine) ToggleHabit(id string) ([]models.Habit, models.UserStats) {
	i := models.FindHabit(e.state.Habits, id)
	if i < 0 {
		logger.Debug("Habit not found", "id", id)
		return e.habits(), e.stats()
	}

	today := e.Today()
	h := e.state.Habits[i]
	if h.CompletedOn(today) {
		e.state.Habits[i] = h.WithoutDate(today)
		e.state.Stats.TotalPoints -= h.Points
	} else {
		e.state.Habits[i] = h.WithDate(today)
		e.state.Stats.TotalPoints += h.Points
	}

	e.commit()
	return e.habits(), e.stats()
}

// ToggleGoal flips a daily goal's checkbox. Progress goals complete through
// UpdateGoalProgress, so for them only the perfect day is re-evaluated.
func (e *Engine) ToggleGoal(id string) ([]models.Goal, models.UserStats) {
	i := models.FindGoal(e.state.Goals, id)
	if i < 0 {
		logger.Debug("Goal not found", "id", id)
		return e.goals(), e.stats()
	}

	if box, ok := e.state.Goals[i].Tracking.(models.Checkbox); ok {
		e.state.Goals[i].Tracking = models.Checkbox{Done: !box.Done}
	} else {
		logger.Debug("Toggle ignored for progress goal", "id", id, "type", e.state.Goals[i].Type)
	}

	e.commit()
	return e.goals(), e.stats()
}

// UpdateGoalProgress sets the current value of a progress goal. The value is
// stored as given; callers clamp user input.
func (e *Engine) UpdateGoalProgress(id string, value int) ([]models.Goal, models.UserStats) {
	i := models.FindGoal(e.state.Goals, id)
	if i < 0 {
		logger.Debug("Goal not found", "id", id)
		return e.goals(), e.stats()
	}

	if c, ok := e.state.Goals[i].Counter(); ok {
		c.Current = value
		e.state.Goals[i].Tracking = c
	} else {
		logger.Debug("Progress ignored for daily goal", "id", id)
	}

	e.commit()
	return e.goals(), e.stats()
}

// RecomputePerfectDay returns perfectDays with today added when every daily
// goal is done, or removed when at least one is not. Without daily goals the
// set is returned unchanged.
func RecomputePerfectDay(goals []models.Goal, perfectDays []string, today string) []string {
	daily := models.GoalsOfType(goals, models.GoalDaily)
	if len(daily) == 0 {
		return perfectDays
	}

	allDone := true
	for _, g := range daily {
		if !g.Completed() {
			allDone = false
			break
		}
	}

	present := slices.Contains(perfectDays, today)
	switch {
	case allDone && !present:
		return append(slices.Clone(perfectDays), today)
	case !allDone && present:
		return slices.DeleteFunc(slices.Clone(perfectDays), func(d string) bool { return d == today })
	default:
		return perfectDays
	}
}
