package tui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors one theme uses.
type Palette struct {
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Surface lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
}

var (
	lightPalette = Palette{
		Accent:  lipgloss.Color("205"),
		Muted:   lipgloss.Color("245"),
		Text:    lipgloss.Color("235"),
		Surface: lipgloss.Color("254"),
		Success: lipgloss.Color("28"),
		Warning: lipgloss.Color("166"),
		Danger:  lipgloss.Color("160"),
	}

	darkPalette = Palette{
		Accent:  lipgloss.Color("212"),
		Muted:   lipgloss.Color("240"),
		Text:    lipgloss.Color("252"),
		Surface: lipgloss.Color("236"),
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("214"),
		Danger:  lipgloss.Color("196"),
	}
)

type Styles struct {
	Palette     Palette
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Header      lipgloss.Style
	Status      lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Doc         lipgloss.Style
}

func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return Styles{
		Palette: p,
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.Surface).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(p.Success).
			Padding(0, 1),
		Danger: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Italic(true),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
