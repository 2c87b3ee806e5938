package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/engine"
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/storage"
	"github.com/julianstephens/habitquest/internal/tui/components/goallist"
	"github.com/julianstephens/habitquest/internal/tui/components/habitlist"
	"github.com/julianstephens/habitquest/internal/tui/components/rewardlist"
)

func setupModel(t *testing.T) (Model, *storage.Repository) {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryStore())
	clock := func() time.Time { return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC) }
	m := NewModel(engine.Open(repo, clock), repo)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), repo
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabNavigation(t *testing.T) {
	m, _ := setupModel(t)
	assert.Equal(t, constants.StateDaily, m.state)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateGoals, m.state)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, constants.StateRewards, m.state)
}

func TestToggleHabitUpdatesBalance(t *testing.T) {
	m, repo := setupModel(t)

	m = send(t, m, habitlist.ToggleHabitMsg{ID: "2"})
	assert.Equal(t, 20, m.eng.State().Stats.TotalPoints)
	assert.Contains(t, m.status, `Marked "30 min Exercise" done (+20)`)

	stored, err := repo.LoadState(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Stats.TotalPoints)

	m = send(t, m, habitlist.ToggleHabitMsg{ID: "2"})
	assert.Equal(t, 0, m.eng.State().Stats.TotalPoints)
	assert.Contains(t, m.status, "Unmarked")
}

func TestGoalProgressClampsAtZero(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, goallist.ProgressGoalMsg{ID: "g2", Delta: 1})
	g, _ := models.ResolveGoal(m.eng.State().Goals, "g2")
	c, _ := g.Counter()
	assert.Equal(t, 1, c.Current)

	m = send(t, m, goallist.ProgressGoalMsg{ID: "g2", Delta: -1})
	m = send(t, m, goallist.ProgressGoalMsg{ID: "g2", Delta: -1})
	g, _ = models.ResolveGoal(m.eng.State().Goals, "g2")
	c, _ = g.Counter()
	assert.Equal(t, 0, c.Current)
}

func TestToggleDailyGoalMarksPerfectDay(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, goallist.ToggleGoalMsg{ID: "g1"})
	assert.Equal(t, 1, m.eng.Streak())
	assert.Contains(t, m.status, "Perfect day!")
}

func TestRedeemRequiresPoints(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, rewardlist.RedeemRewardMsg{ID: "r1"})
	assert.Contains(t, m.status, "Not enough points")
	r, _ := models.ResolveReward(m.eng.State().Rewards, "r1")
	assert.False(t, r.Unlocked)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, habitlist.DeleteHabitMsg{ID: "1", Name: "Morning Meditation"})
	assert.Equal(t, constants.StateConfirmDelete, m.state)
	assert.Contains(t, m.View(), `Delete "Morning Meditation"?`)

	m = send(t, m, runes("n"))
	assert.Equal(t, constants.StateDaily, m.state)
	assert.Len(t, m.eng.State().Habits, 4)

	m = send(t, m, habitlist.DeleteHabitMsg{ID: "1", Name: "Morning Meditation"})
	m = send(t, m, runes("y"))
	assert.Equal(t, constants.StateDaily, m.state)
	assert.Len(t, m.eng.State().Habits, 3)
}

func TestAddFormOpensAndCancels(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, habitlist.AddHabitMsg{})
	assert.Equal(t, constants.StateAddHabit, m.state)
	require.NotNil(t, m.form)
	assert.Equal(t, "10", m.habitForm.Points)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, constants.StateDaily, m.state)
	assert.Nil(t, m.form)
}

func TestThemeTogglePersists(t *testing.T) {
	m, repo := setupModel(t)

	m = send(t, m, runes("t"))
	assert.True(t, m.dark)
	dark, err := repo.DarkMode()
	require.NoError(t, err)
	assert.True(t, dark)

	// The preference survives a restart.
	reopened := NewModel(m.eng, repo)
	assert.True(t, reopened.dark)
}

func TestHistoryMonthNavigation(t *testing.T) {
	m, _ := setupModel(t)
	m.state = constants.StateHistory

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	year, month := m.history.Month()
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	_, month = m.history.Month()
	assert.Equal(t, time.April, month)
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}
