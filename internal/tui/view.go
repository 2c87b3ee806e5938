package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitquest/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDaily:
		content = m.habitList.View()
	case constants.StateGoals:
		content = m.goalList.View()
	case constants.StateHistory:
		content = m.history.View()
	case constants.StateRewards:
		content = m.rewardList.View()
	case constants.StateAddHabit, constants.StateAddGoal, constants.StateAddReward:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		m.styles.Doc.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= constants.TabCount {
		active = m.previousState
	}

	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	summary := m.eng.Summary()
	state := m.eng.State()
	return m.styles.Header.Render(fmt.Sprintf(
		"%s · %d points · %d day streak · %d/%d habits today (+%d)",
		summary.Date, state.Stats.TotalPoints, m.eng.Streak(),
		summary.HabitsDone, summary.HabitsTotal, summary.PointsToday,
	))
}

func (m Model) viewStatus() string {
	if m.validationWarning != "" {
		return m.styles.Warning.Render(m.validationWarning)
	}
	return m.styles.Status.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.pending != nil {
		name = m.pending.name
	}
	return lipgloss.Place(m.width, max(m.height-8, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render(fmt.Sprintf("Delete %q?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
