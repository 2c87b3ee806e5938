package goallist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitquest/internal/models"
)

type AddGoalMsg struct{}

type ToggleGoalMsg struct {
	ID string
}

// ProgressGoalMsg asks for a progress goal to move by Delta.
type ProgressGoalMsg struct {
	ID    string
	Delta int
}

type DeleteGoalMsg struct {
	ID   string
	Name string
}

type Item struct {
	Goal models.Goal
	bar  progress.Model
}

func (i Item) Title() string {
	mark := "○"
	if i.Goal.Completed() {
		mark = "✓"
	}
	return fmt.Sprintf("%s [%s] %s", mark, strings.ToUpper(string(i.Goal.Type)), i.Goal.Text)
}

func (i Item) Description() string {
	c, ok := i.Goal.Counter()
	if !ok {
		if i.Goal.Completed() {
			return "done today"
		}
		return "not done today"
	}
	return fmt.Sprintf("%s %d/%d", i.bar.ViewAs(float64(c.Percent())/100), c.Current, c.Target)
}

func (i Item) FilterValue() string { return i.Goal.Text }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Inc    key.Binding
	Dec    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle daily"),
		),
		Inc: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "progress +1"),
		),
		Dec: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "progress -1"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	bar  progress.Model
}

func New(goals []models.Goal, width, height int) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))

	l := list.New(items(goals, bar), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	// q and esc belong to the parent model
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Inc, keys.Dec, keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys, bar: bar}
}

// items orders goals by horizon, daily first.
func items(goals []models.Goal, bar progress.Model) []list.Item {
	out := make([]list.Item, 0, len(goals))
	for _, t := range models.GoalTypes {
		for _, g := range models.GoalsOfType(goals, t) {
			out = append(out, Item{Goal: g, bar: bar})
		}
	}
	return out
}

func (m *Model) SetGoals(goals []models.Goal) {
	m.list.SetItems(items(goals, m.bar))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddGoalMsg{} }
		}

		i, selected := m.list.SelectedItem().(Item)
		switch {
		case !selected:
		case key.Matches(msg, m.keys.Toggle):
			if !i.Goal.Type.TracksProgress() {
				return m, func() tea.Msg { return ToggleGoalMsg{ID: i.Goal.ID} }
			}
		case key.Matches(msg, m.keys.Inc):
			return m, func() tea.Msg { return ProgressGoalMsg{ID: i.Goal.ID, Delta: 1} }
		case key.Matches(msg, m.keys.Dec):
			return m, func() tea.Msg { return ProgressGoalMsg{ID: i.Goal.ID, Delta: -1} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteGoalMsg{ID: i.Goal.ID, Name: i.Goal.Text} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No goals yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
