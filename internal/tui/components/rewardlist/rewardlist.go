package rewardlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitquest/internal/models"
)

type AddRewardMsg struct{}

type RedeemRewardMsg struct {
	ID string
}

type DeleteRewardMsg struct {
	ID   string
	Name string
}

type Item struct {
	Reward  models.Reward
	Balance int
}

func (i Item) Title() string {
	switch {
	case i.Reward.Unlocked:
		return "★ " + i.Reward.Name
	case i.Reward.Affordable(i.Balance):
		return "◆ " + i.Reward.Name
	default:
		return "◇ " + i.Reward.Name
	}
}

func (i Item) Description() string {
	switch {
	case i.Reward.Unlocked:
		return fmt.Sprintf("%d points · owned", i.Reward.Cost)
	case i.Reward.Affordable(i.Balance):
		return fmt.Sprintf("%d points · ready to redeem", i.Reward.Cost)
	default:
		return fmt.Sprintf("%d points · %d more needed", i.Reward.Cost, i.Reward.Cost-i.Balance)
	}
}

func (i Item) FilterValue() string { return i.Reward.Name }

type KeyMap struct {
	Add    key.Binding
	Redeem key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Redeem: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "redeem"),
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
}

func New(rewards []models.Reward, balance, width, height int) Model {
	l := list.New(items(rewards, balance), list.NewDefaultDelegate(), width, height)
	l.Title = "Rewards"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	// q and esc belong to the parent model
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Redeem, keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(rewards []models.Reward, balance int) []list.Item {
	out := make([]list.Item, len(rewards))
	for i, r := range rewards {
		out[i] = Item{Reward: r, Balance: balance}
	}
	return out
}

func (m *Model) SetRewards(rewards []models.Reward, balance int) {
	m.list.SetItems(items(rewards, balance))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRewardMsg{} }
		case key.Matches(msg, m.keys.Redeem):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RedeemRewardMsg{ID: i.Reward.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteRewardMsg{ID: i.Reward.ID, Name: i.Reward.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No rewards yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
