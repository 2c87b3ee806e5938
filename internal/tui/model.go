package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/engine"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/storage"
	"github.com/julianstephens/habitquest/internal/tui/components/goallist"
	"github.com/julianstephens/habitquest/internal/tui/components/habitlist"
	"github.com/julianstephens/habitquest/internal/tui/components/history"
	"github.com/julianstephens/habitquest/internal/tui/components/rewardlist"
	"github.com/julianstephens/habitquest/internal/validation"
)

var tabTitles = []string{"Daily", "Goals", "History", "Rewards"}

// Form drafts are pointers so huh can write into them across model copies.
type HabitFormModel struct {
	Name   string
	Points string
}

type GoalFormModel struct {
	Text   string
	Type   models.GoalType
	Target string
}

type RewardFormModel struct {
	Name string
	Cost string
}

// pendingDelete is the item awaiting a y/n confirmation.
type pendingDelete struct {
	state constants.SessionState // tab that asked
	id    string
	name  string
}

type Model struct {
	eng           *engine.Engine
	repo          *storage.Repository
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles
	dark          bool

	habitList  habitlist.Model
	goalList   goallist.Model
	rewardList rewardlist.Model
	history    history.Model

	form       *huh.Form
	habitForm  *HabitFormModel
	goalForm   *GoalFormModel
	rewardForm *RewardFormModel
	pending    *pendingDelete

	status            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(eng *engine.Engine, repo *storage.Repository) Model {
	dark, err := repo.DarkMode()
	if err != nil {
		logger.Warn("Could not read theme preference", "error", err)
	}

	state := eng.State()
	today := eng.Today()

	m := Model{
		eng:        eng,
		repo:       repo,
		state:      constants.StateDaily,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		habitList:  habitlist.New(state.Habits, today, 0, 0),
		goalList:   goallist.New(state.Goals, 0, 0),
		rewardList: rewardlist.New(state.Rewards, state.Stats.TotalPoints, 0, 0),
		history:    history.New(today, 0, 0),
	}
	m.applyTheme(dark)
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDaily:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Delete)
	case constants.StateGoals:
		keys = append(keys, m.keys.Toggle, m.keys.Inc, m.keys.Dec, m.keys.Add)
	case constants.StateHistory:
		keys = append(keys, m.keys.Left, m.keys.Right)
	case constants.StateRewards:
		keys = append(keys, m.keys.Redeem, m.keys.Add, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Theme}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateDaily:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete}
	case constants.StateGoals:
		actions = []key.Binding{m.keys.Toggle, m.keys.Inc, m.keys.Dec, m.keys.Add, m.keys.Delete}
	case constants.StateHistory:
		navigation = []key.Binding{m.keys.Left, m.keys.Right}
	case constants.StateRewards:
		actions = []key.Binding{m.keys.Redeem, m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh pushes the engine's current state into every component.
func (m *Model) refresh() {
	state := m.eng.State()
	today := m.eng.Today()

	m.habitList.SetHabits(state.Habits, today)
	m.goalList.SetGoals(state.Goals)
	m.rewardList.SetRewards(state.Rewards, state.Stats.TotalPoints)
	m.history.SetPerfectDays(state.Stats.PerfectDays, today)

	if err := m.eng.Err(); err != nil {
		m.status = "⚠ " + err.Error()
	}
	m.updateValidationStatus()
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateState(m.eng.State(), m.eng.Today())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) applyTheme(dark bool) {
	m.dark = dark
	m.styles = NewStyles(dark)

	hs := history.DefaultStyles()
	hs.Perfect = hs.Perfect.Foreground(m.styles.Palette.Success)
	hs.Weekday = hs.Weekday.Foreground(m.styles.Palette.Muted)
	hs.Title = hs.Title.Foreground(m.styles.Palette.Accent)
	m.history.SetStyles(hs)
}

func (m Model) formTheme() *huh.Theme {
	if m.dark {
		return huh.ThemeDracula()
	}
	return huh.ThemeCharm()
}
