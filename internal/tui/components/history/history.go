package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitquest/internal/calendar"
	"github.com/julianstephens/habitquest/internal/utils"
)

const cellWidth = 5

// Styles colors the grid; the parent model swaps them when the theme changes.
type Styles struct {
	Title   lipgloss.Style
	Weekday lipgloss.Style
	Day     lipgloss.Style
	Perfect lipgloss.Style
	Today   lipgloss.Style
	Footer  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Weekday: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(cellWidth).Align(lipgloss.Center),
		Day:     lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center),
		Perfect: lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("42")).Bold(true),
		Today:   lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Underline(true),
		Footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// Model shows one month of perfect days. The displayed month is view state
// only and is never persisted.
type Model struct {
	viewport    viewport.Model
	styles      Styles
	year        int
	month       time.Month
	perfectDays []string
	today       string
}

// New opens on the month containing today (YYYY-MM-DD).
func New(today string, width, height int) Model {
	now, err := utils.ParseDate(today)
	if err != nil {
		now = time.Now()
	}
	m := Model{
		viewport: viewport.New(width, height),
		styles:   DefaultStyles(),
		year:     now.Year(),
		month:    now.Month(),
		today:    today,
	}
	m.Render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetStyles(s Styles) {
	m.styles = s
	m.Render()
}

func (m *Model) SetPerfectDays(perfectDays []string, today string) {
	m.perfectDays = perfectDays
	m.today = today
	m.Render()
}

// Shift moves the displayed month by n months.
func (m *Model) Shift(n int) {
	m.year, m.month = calendar.Shift(m.year, m.month, n)
	m.Render()
}

func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m *Model) Render() {
	view := calendar.Month(m.year, m.month, m.perfectDays)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(view.Title()))
	b.WriteString("\n\n")

	headers := make([]string, 0, 7)
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		headers = append(headers, m.styles.Weekday.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for _, week := range view.Weeks() {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, m.renderDay(d))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(fmt.Sprintf("%d perfect day(s) this month · ←/→ to change month", view.PerfectCount)))
	m.viewport.SetContent(b.String())
}

func (m Model) renderDay(d calendar.Day) string {
	if d.Number == 0 {
		return m.styles.Day.Render("")
	}

	label := fmt.Sprintf("%d", d.Number)
	style := m.styles.Day
	if d.Perfect {
		label += "★"
		style = m.styles.Perfect
	}
	if d.Date == m.today {
		style = style.Inherit(m.styles.Today).Underline(true)
	}
	return style.Render(label)
}
