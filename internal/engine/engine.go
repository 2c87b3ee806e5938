// Package engine owns the habit, goal and reward state of one session and
// applies every mutation to it. Presentation code calls the command methods
// and renders the slices they return.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/utils"
)

// Store is the persistence the engine needs. Read methods always return a
// usable value; a non-nil error only describes what fell back to defaults.
type Store interface {
	LoadState(now time.Time) (models.State, error)
	SaveState(state models.State) error
	LastReset() (string, error)
	SetLastReset(day string) error
}

// Clock returns the current time in the user's timezone.
type Clock func() time.Time

// Option configures an Engine.
type Option func(*Engine)

// WithIDs replaces the id generator used for new habits, goals and rewards.
func WithIDs(next func() string) Option {
	return func(e *Engine) { e.newID = next }
}

// Engine processes commands one at a time. It is not safe for concurrent use.
type Engine struct {
	store Store
	clock Clock
	newID func() string
	state models.State
	err   error
}

// Open loads the stored state, applies the daily reset and moves the
// last-reset marker to today.
func Open(store Store, clock Clock, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: clock,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	now := clock()
	today := utils.FormatDate(now)

	state, err := store.LoadState(now)
	if err != nil {
		logger.Warn("Loaded state with defaults", "error", err)
	}
	lastReset, err := store.LastReset()
	if err != nil {
		logger.Warn("Could not read last reset date", "error", err)
	}

	state.Habits, state.Goals = ApplyDailyReset(lastReset, today, state.Habits, state.Goals)
	normalize(&state, today)
	e.state = state

	if err := store.SetLastReset(today); err != nil {
		e.fail("Failed to save last reset date", err)
	}
	if lastReset != today {
		logger.Debug("Daily reset applied", "last_reset", lastReset, "today", today)
	}
	e.snapshot()

	return e
}

// Today returns the current date as YYYY-MM-DD.
func (e *Engine) Today() string {
	return utils.FormatDate(e.clock())
}

// State returns a copy of the current state.
func (e *Engine) State() models.State {
	return e.state.Clone()
}

// Streak returns the number of consecutive perfect days ending today or yesterday.
func (e *Engine) Streak() int {
	return ComputeStreak(e.state.Stats.PerfectDays, e.Today())
}

// Err returns the most recent persistence failure, if any.
func (e *Engine) Err() error {
	return e.err
}

// Summary describes today's habit progress.
type Summary struct {
	Date        string
	HabitsDone  int
	HabitsTotal int
	PointsToday int
}

func (e *Engine) Summary() Summary {
	today := e.Today()
	return Summary{
		Date:        today,
		HabitsDone:  len(models.HabitsCompletedOn(e.state.Habits, today)),
		HabitsTotal: len(e.state.Habits),
		PointsToday: models.PointsEarnedOn(e.state.Habits, today),
	}
}

func (e *Engine) AddHabit(name string, points int) []models.Habit {
	if err := models.ValidateHabitInput(name, points); err != nil {
		logger.Debug("Habit not added", "error", err)
		return e.habits()
	}
	e.state.Habits = append(e.state.Habits, models.Habit{
		ID:             e.newID(),
		Name:           strings.TrimSpace(name),
		Points:         points,
		CompletedDates: []string{},
	})
	e.commit()
	return e.habits()
}

// DeleteHabit removes the habit. Points it earned stay in the balance.
func (e *Engine) DeleteHabit(id string) []models.Habit {
	i := models.FindHabit(e.state.Habits, id)
	if i < 0 {
		logger.Debug("Habit not found", "id", id)
		return e.habits()
	}
	e.state.Habits = append(e.state.Habits[:i:i], e.state.Habits[i+1:]...)
	e.commit()
	return e.habits()
}

// AddGoal creates a goal; target is ignored for daily goals.
func (e *Engine) AddGoal(text string, goalType models.GoalType, target int) ([]models.Goal, models.UserStats) {
	if err := models.ValidateGoalInput(text, goalType, target); err != nil {
		logger.Debug("Goal not added", "error", err)
		return e.goals(), e.stats()
	}
	goal := models.NewGoal(e.newID(), strings.TrimSpace(text), goalType, target, e.clock().UTC())
	e.state.Goals = append(e.state.Goals, goal)
	e.commit()
	return e.goals(), e.stats()
}

func (e *Engine) DeleteGoal(id string) ([]models.Goal, models.UserStats) {
	i := models.FindGoal(e.state.Goals, id)
	if i < 0 {
		logger.Debug("Goal not found", "id", id)
		return e.goals(), e.stats()
	}
	e.state.Goals = append(e.state.Goals[:i:i], e.state.Goals[i+1:]...)
	e.commit()
	return e.goals(), e.stats()
}

// commit re-establishes the state invariants and persists a snapshot.
func (e *Engine) commit() {
	normalize(&e.state, e.Today())
	e.snapshot()
}

func (e *Engine) snapshot() {
	snap := e.state.Clone()
	// Stored for older readers of the stats record; never read back.
	snap.Stats.Streak = ComputeStreak(snap.Stats.PerfectDays, e.Today())
	if err := e.store.SaveState(snap); err != nil {
		e.fail("Failed to save state", err)
	}
}

func (e *Engine) fail(msg string, err error) {
	logger.Error(msg, "error", err)
	e.err = err
}

func (e *Engine) habits() []models.Habit {
	return e.state.Clone().Habits
}

func (e *Engine) goals() []models.Goal {
	return e.state.Clone().Goals
}

func (e *Engine) rewards() []models.Reward {
	return e.state.Clone().Rewards
}

func (e *Engine) stats() models.UserStats {
	return e.state.Stats.Clone()
}
