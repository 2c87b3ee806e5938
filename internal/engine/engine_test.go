package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitquest/internal/models"
)

const (
	today     = "2024-03-10"
	yesterday = "2024-03-09"
)

var now = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

type fakeStore struct {
	state     models.State
	lastReset string
	saves     int
	saveErr   error
}

func (f *fakeStore) LoadState(time.Time) (models.State, error) { return f.state.Clone(), nil }

func (f *fakeStore) SaveState(s models.State) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = s.Clone()
	return nil
}

func (f *fakeStore) LastReset() (string, error) { return f.lastReset, nil }

func (f *fakeStore) SetLastReset(day string) error {
	f.lastReset = day
	return nil
}

func fixedClock() time.Time { return now }

func sequentialIDs() Option {
	n := 0
	return WithIDs(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func openWith(t *testing.T, state models.State, lastReset string) (*Engine, *fakeStore) {
	t.Helper()
	store := &fakeStore{state: state, lastReset: lastReset}
	return Open(store, fixedClock, sequentialIDs()), store
}

func baseState() models.State {
	return models.State{
		Habits: []models.Habit{
			{ID: "h1", Name: "Meditate", Points: 10, CompletedDates: []string{}},
			{ID: "h2", Name: "Run", Points: 20, CompletedDates: []string{}},
		},
		Goals: []models.Goal{
			{ID: "g1", Text: "Wake early", Type: models.GoalDaily, CreatedAt: now, Tracking: models.Checkbox{}},
			{ID: "g2", Text: "Gym", Type: models.GoalWeekly, CreatedAt: now, Tracking: models.Counter{Target: 4}},
		},
		Rewards: []models.Reward{
			{ID: "r1", Name: "Coffee", Cost: 100},
		},
		Stats: models.UserStats{PerfectDays: []string{}},
	}
}

func TestOpenMovesMarkerToToday(t *testing.T) {
	e, store := openWith(t, baseState(), "")

	assert.Equal(t, today, e.Today())
	assert.Equal(t, today, store.lastReset)
	assert.NoError(t, e.Err())
}

func TestToggleHabitTwiceRestoresState(t *testing.T) {
	state := baseState()
	state.Stats.TotalPoints = 40
	e, _ := openWith(t, state, today)
	before := e.State()

	habits, stats := e.ToggleHabit("h1")
	require.True(t, habits[0].CompletedOn(today))
	assert.Equal(t, 50, stats.TotalPoints)

	habits, stats = e.ToggleHabit("h1")
	assert.False(t, habits[0].CompletedOn(today))
	assert.Equal(t, 40, stats.TotalPoints)
	assert.Equal(t, before.Habits, e.State().Habits)
}

func TestToggleHabitNeverNegative(t *testing.T) {
	state := baseState()
	state.Stats.TotalPoints = 5
	state.Habits[1].CompletedDates = []string{today}
	e, _ := openWith(t, state, today)

	_, stats := e.ToggleHabit("h2")
	assert.Equal(t, 0, stats.TotalPoints)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	e, store := openWith(t, baseState(), today)
	saves := store.saves
	before := e.State()

	e.ToggleHabit("missing")
	e.DeleteHabit("missing")
	e.ToggleGoal("missing")
	e.UpdateGoalProgress("missing", 3)
	e.DeleteGoal("missing")
	e.RedeemReward("missing")
	e.DeleteReward("missing")

	assert.Equal(t, before, e.State())
	assert.Equal(t, saves, store.saves, "no-op commands must not persist")
}

func TestInvalidInputIsRejected(t *testing.T) {
	e, _ := openWith(t, baseState(), today)

	assert.Len(t, e.AddHabit("   ", 10), 2)
	assert.Len(t, e.AddHabit("Stretch", 0), 2)
	assert.Len(t, e.AddReward("", 50), 1)
	assert.Len(t, e.AddReward("Movie", -1), 1)

	goals, _ := e.AddGoal("Save", models.GoalYearly, 0)
	assert.Len(t, goals, 2)
	goals, _ = e.AddGoal("Bad", models.GoalType("hourly"), 3)
	assert.Len(t, goals, 2)
}

func TestAddAndDelete(t *testing.T) {
	e, store := openWith(t, baseState(), today)

	habits := e.AddHabit("  Stretch ", 5)
	require.Len(t, habits, 3)
	assert.Equal(t, models.Habit{ID: "id-1", Name: "Stretch", Points: 5, CompletedDates: []string{}}, habits[2])
	assert.Len(t, store.state.Habits, 3)

	rewards := e.AddReward("Movie", 300)
	require.Len(t, rewards, 2)
	assert.False(t, rewards[1].Unlocked)

	goals, _ := e.AddGoal("Read books", models.GoalMonthly, 3)
	require.Len(t, goals, 3)
	c, ok := goals[2].Counter()
	require.True(t, ok)
	assert.Equal(t, models.Counter{Current: 0, Target: 3}, c)
	assert.Equal(t, now, goals[2].CreatedAt)

	assert.Len(t, e.DeleteHabit("h1"), 2)
	assert.Len(t, e.DeleteReward("r1"), 1)
	goals, _ = e.DeleteGoal("g2")
	assert.Len(t, goals, 2)
}

func TestDeleteHabitKeepsPoints(t *testing.T) {
	e, _ := openWith(t, baseState(), today)
	e.ToggleHabit("h2")

	e.DeleteHabit("h2")
	assert.Equal(t, 20, e.State().Stats.TotalPoints)
}

func TestGoalProgressCompletion(t *testing.T) {
	e, _ := openWith(t, baseState(), today)

	goals, _ := e.UpdateGoalProgress("g2", 3)
	assert.False(t, goals[1].Completed())

	goals, _ = e.UpdateGoalProgress("g2", 4)
	assert.True(t, goals[1].Completed())

	goals, _ = e.UpdateGoalProgress("g2", 9)
	assert.True(t, goals[1].Completed())
	c, _ := goals[1].Counter()
	assert.Equal(t, 9, c.Current)
	assert.Equal(t, 100, c.Percent())
}

func TestProgressAndToggleIgnoreOtherVariant(t *testing.T) {
	e, _ := openWith(t, baseState(), today)

	goals, _ := e.UpdateGoalProgress("g1", 5)
	assert.Equal(t, models.Checkbox{Done: false}, goals[0].Tracking)

	goals, _ = e.ToggleGoal("g2")
	assert.Equal(t, models.Counter{Current: 0, Target: 4}, goals[1].Tracking)
}

func TestPerfectDayFollowsDailyGoals(t *testing.T) {
	state := baseState()
	state.Goals = append(state.Goals, models.Goal{
		ID: "g3", Text: "Journal", Type: models.GoalDaily, CreatedAt: now, Tracking: models.Checkbox{},
	})
	e, _ := openWith(t, state, today)

	_, stats := e.ToggleGoal("g1")
	assert.False(t, stats.IsPerfect(today), "one of two daily goals done")

	_, stats = e.ToggleGoal("g3")
	assert.True(t, stats.IsPerfect(today))
	assert.Equal(t, 1, e.Streak())

	_, stats = e.ToggleGoal("g1")
	assert.False(t, stats.IsPerfect(today))
	assert.Equal(t, 0, e.Streak())
}

func TestAddingDailyGoalRevokesPerfectDay(t *testing.T) {
	e, _ := openWith(t, baseState(), today)

	_, stats := e.ToggleGoal("g1")
	require.True(t, stats.IsPerfect(today))

	_, stats = e.AddGoal("Floss", models.GoalDaily, 0)
	assert.False(t, stats.IsPerfect(today))

	_, stats = e.DeleteGoal("id-1")
	assert.True(t, stats.IsPerfect(today))
}

func TestNoDailyGoalsLeavesPerfectDaysAlone(t *testing.T) {
	state := baseState()
	state.Goals = state.Goals[1:]
	state.Stats.PerfectDays = []string{today}
	e, _ := openWith(t, state, today)

	_, stats := e.UpdateGoalProgress("g2", 1)
	assert.Equal(t, []string{today}, stats.PerfectDays)
}

func TestRedeemReward(t *testing.T) {
	t.Run("insufficient balance", func(t *testing.T) {
		state := baseState()
		state.Stats.TotalPoints = 99
		e, _ := openWith(t, state, today)

		rewards, stats := e.RedeemReward("r1")
		assert.False(t, rewards[0].Unlocked)
		assert.Equal(t, 99, stats.TotalPoints)
	})

	t.Run("exact balance", func(t *testing.T) {
		state := baseState()
		state.Stats.TotalPoints = 100
		e, store := openWith(t, state, today)

		rewards, stats := e.RedeemReward("r1")
		assert.True(t, rewards[0].Unlocked)
		assert.Equal(t, 0, stats.TotalPoints)
		assert.True(t, store.state.Rewards[0].Unlocked)
		assert.Equal(t, 0, store.state.Stats.TotalPoints)
	})

	t.Run("already unlocked", func(t *testing.T) {
		state := baseState()
		state.Stats.TotalPoints = 500
		state.Rewards[0].Unlocked = true
		e, _ := openWith(t, state, today)

		_, stats := e.RedeemReward("r1")
		assert.Equal(t, 500, stats.TotalPoints)
	})

	t.Run("delete unlocked refunds nothing", func(t *testing.T) {
		state := baseState()
		state.Stats.TotalPoints = 150
		e, _ := openWith(t, state, today)

		e.RedeemReward("r1")
		e.DeleteReward("r1")
		assert.Equal(t, 50, e.State().Stats.TotalPoints)
	})
}

func TestDailyResetOnOpen(t *testing.T) {
	state := baseState()
	state.Habits[0].CompletedDates = []string{"2024-03-07", yesterday}
	state.Goals[0].Tracking = models.Checkbox{Done: true}
	state.Goals[1].Tracking = models.Counter{Current: 2, Target: 4}
	state.Stats.PerfectDays = []string{yesterday}

	e, store := openWith(t, state, yesterday)
	got := e.State()

	assert.Equal(t, []string{"2024-03-07"}, got.Habits[0].CompletedDates)
	assert.False(t, got.Goals[0].Completed())
	assert.Equal(t, models.Counter{Current: 2, Target: 4}, got.Goals[1].Tracking)
	assert.Equal(t, []string{yesterday}, got.Stats.PerfectDays)
	assert.Equal(t, today, store.lastReset)
	assert.Equal(t, 1, e.Streak())
	assert.Equal(t, 1, store.state.Stats.Streak)
}

func TestOpenWithFutureMarkerSkipsReset(t *testing.T) {
	state := baseState()
	state.Habits[0].CompletedDates = []string{"2024-03-11"}
	state.Goals[0].Tracking = models.Checkbox{Done: true}

	e, store := openWith(t, state, "2024-03-11")
	got := e.State()

	assert.Equal(t, []string{"2024-03-11"}, got.Habits[0].CompletedDates)
	assert.True(t, got.Goals[0].Completed())
	assert.Equal(t, today, store.lastReset)
}

func TestOpenNormalizesStoredState(t *testing.T) {
	state := baseState()
	state.Stats.TotalPoints = -30
	state.Habits[0].CompletedDates = []string{"2024-03-01", "2024-03-02", "2024-03-01"}
	state.Stats.PerfectDays = []string{"2024-03-01", "2024-03-01", today}

	e, _ := openWith(t, state, today)
	got := e.State()

	assert.Equal(t, 0, got.Stats.TotalPoints)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, got.Habits[0].CompletedDates)
	// g1 is unchecked, so today cannot stay perfect.
	assert.Equal(t, []string{"2024-03-01"}, got.Stats.PerfectDays)
}

func TestSaveFailureIsExposed(t *testing.T) {
	store := &fakeStore{state: baseState(), lastReset: today, saveErr: errors.New("disk full")}
	e := Open(store, fixedClock)

	require.Error(t, e.Err())
	habits, stats := e.ToggleHabit("h1")
	assert.True(t, habits[0].CompletedOn(today), "in-memory state still advances")
	assert.Equal(t, 10, stats.TotalPoints)
	assert.EqualError(t, e.Err(), "disk full")
}

func TestSummary(t *testing.T) {
	e, _ := openWith(t, baseState(), today)
	e.ToggleHabit("h2")

	assert.Equal(t, Summary{Date: today, HabitsDone: 1, HabitsTotal: 2, PointsToday: 20}, e.Summary())
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	e, _ := openWith(t, baseState(), today)

	habits, stats := e.ToggleHabit("h1")
	habits[0].Name = "changed"
	habits[0].CompletedDates[0] = "1999-01-01"
	stats.PerfectDays = append(stats.PerfectDays, "1999-01-01")

	got := e.State()
	assert.Equal(t, "Meditate", got.Habits[0].Name)
	assert.Equal(t, []string{today}, got.Habits[0].CompletedDates)
	assert.NotContains(t, got.Stats.PerfectDays, "1999-01-01")
}
