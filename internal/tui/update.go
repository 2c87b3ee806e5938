package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/tui/components/goallist"
	"github.com/julianstephens/habitquest/internal/tui/components/habitlist"
	"github.com/julianstephens/habitquest/internal/tui/components/rewardlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateAddGoal, constants.StateAddReward:
		cmd := m.updateForm(msg)
		return m, cmd
	case constants.StateConfirmDelete:
		m.updateConfirmDelete(msg)
		return m, nil
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.TabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.toggleTheme()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDaily:
		m.habitList, cmd = m.habitList.Update(msg)
	case constants.StateGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case constants.StateHistory:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.history.Shift(-1)
				return m, nil
			case key.Matches(msg, m.keys.Right):
				m.history.Shift(1)
				return m, nil
			}
		}
		m.history, cmd = m.history.Update(msg)
	case constants.StateRewards:
		m.rewardList, cmd = m.rewardList.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, header, status and help lines plus the doc padding
	contentW := max(width-4, 0)
	contentH := max(height-7, 0)
	m.habitList.SetSize(contentW, contentH)
	m.goalList.SetSize(contentW, contentH)
	m.rewardList.SetSize(contentW, contentH)
	m.history.SetSize(contentW, contentH)
}

func (m *Model) toggleTheme() {
	dark := !m.dark
	if err := m.repo.SetDarkMode(dark); err != nil {
		logger.Warn("Failed to save theme preference", "error", err)
		m.status = "⚠ Theme not saved: " + err.Error()
	}
	m.applyTheme(dark)
}

// handleComponentMsg runs the engine command a list component asked for.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Points: strconv.Itoa(constants.DefaultHabitPoints)}
		m.form = m.NewHabitForm(m.habitForm)
		return true, m.openForm(constants.StateAddHabit)

	case habitlist.ToggleHabitMsg:
		habits, stats := m.eng.ToggleHabit(msg.ID)
		if h, ok := models.ResolveHabit(habits, msg.ID); ok {
			if h.CompletedOn(m.eng.Today()) {
				m.status = fmt.Sprintf("Marked %q done (+%d). Balance: %d", h.Name, h.Points, stats.TotalPoints)
			} else {
				m.status = fmt.Sprintf("Unmarked %q (-%d). Balance: %d", h.Name, h.Points, stats.TotalPoints)
			}
		}
		m.refresh()
		return true, nil

	case habitlist.DeleteHabitMsg:
		m.confirmDelete(msg.ID, msg.Name)
		return true, nil

	case goallist.AddGoalMsg:
		m.goalForm = &GoalFormModel{Type: models.GoalDaily, Target: strconv.Itoa(constants.DefaultGoalTarget)}
		m.form = m.NewGoalForm(m.goalForm)
		return true, m.openForm(constants.StateAddGoal)

	case goallist.ToggleGoalMsg:
		_, stats := m.eng.ToggleGoal(msg.ID)
		if stats.IsPerfect(m.eng.Today()) {
			m.status = fmt.Sprintf("Perfect day! Streak: %d", m.eng.Streak())
		} else {
			m.status = ""
		}
		m.refresh()
		return true, nil

	case goallist.ProgressGoalMsg:
		if g, ok := models.ResolveGoal(m.eng.State().Goals, msg.ID); ok {
			if c, ok := g.Counter(); ok {
				m.eng.UpdateGoalProgress(msg.ID, max(c.Current+msg.Delta, 0))
			}
		}
		m.refresh()
		return true, nil

	case goallist.DeleteGoalMsg:
		m.confirmDelete(msg.ID, msg.Name)
		return true, nil

	case rewardlist.AddRewardMsg:
		m.rewardForm = &RewardFormModel{Cost: strconv.Itoa(constants.DefaultRewardCost)}
		m.form = m.NewRewardForm(m.rewardForm)
		return true, m.openForm(constants.StateAddReward)

	case rewardlist.RedeemRewardMsg:
		m.redeem(msg.ID)
		m.refresh()
		return true, nil

	case rewardlist.DeleteRewardMsg:
		m.confirmDelete(msg.ID, msg.Name)
		return true, nil
	}
	return false, nil
}

func (m *Model) redeem(id string) {
	state := m.eng.State()
	r, ok := models.ResolveReward(state.Rewards, id)
	switch {
	case !ok:
		return
	case r.Unlocked:
		m.status = fmt.Sprintf("%q is already unlocked", r.Name)
		return
	case !r.Affordable(state.Stats.TotalPoints):
		m.status = fmt.Sprintf("Not enough points for %q (%d/%d)", r.Name, state.Stats.TotalPoints, r.Cost)
		return
	}

	_, stats := m.eng.RedeemReward(id)
	m.status = fmt.Sprintf("Redeemed %q (-%d). Balance: %d", r.Name, r.Cost, stats.TotalPoints)
}

func (m *Model) openForm(state constants.SessionState) tea.Cmd {
	m.previousState = m.state
	m.state = state
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.goalForm = nil
	m.rewardForm = nil
	m.state = m.previousState
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
		m.refresh()
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model) submitForm() {
	switch m.state {
	case constants.StateAddHabit:
		name := strings.TrimSpace(m.habitForm.Name)
		points, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.Points))
		m.eng.AddHabit(name, points)
		m.status = fmt.Sprintf("Added habit: %s (+%d)", name, points)

	case constants.StateAddGoal:
		text := strings.TrimSpace(m.goalForm.Text)
		target := 0
		if m.goalForm.Type.TracksProgress() {
			target, _ = strconv.Atoi(strings.TrimSpace(m.goalForm.Target))
		}
		m.eng.AddGoal(text, m.goalForm.Type, target)
		m.status = fmt.Sprintf("Added %s goal: %s", m.goalForm.Type, text)

	case constants.StateAddReward:
		name := strings.TrimSpace(m.rewardForm.Name)
		cost, _ := strconv.Atoi(strings.TrimSpace(m.rewardForm.Cost))
		m.eng.AddReward(name, cost)
		m.status = fmt.Sprintf("Added reward: %s (%d points)", name, cost)
	}
}

func (m *Model) confirmDelete(id, name string) {
	m.pending = &pendingDelete{state: m.state, id: id, name: name}
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

func (m *Model) updateConfirmDelete(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}

	switch keyMsg.String() {
	case "y", "Y":
		p := m.pending
		switch p.state {
		case constants.StateDaily:
			m.eng.DeleteHabit(p.id)
		case constants.StateGoals:
			m.eng.DeleteGoal(p.id)
		case constants.StateRewards:
			m.eng.DeleteReward(p.id)
		}
		m.status = fmt.Sprintf("Deleted %q", p.name)
		m.refresh()
	case "n", "N", "esc", "q":
	default:
		return
	}

	m.pending = nil
	m.state = m.previousState
}
