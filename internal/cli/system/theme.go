package system

import (
	"github.com/julianstephens/habitquest/internal/cli"
)

type ThemeCmd struct {
	Dark   bool `help:"Switch to the dark palette." xor:"theme"`
	Light  bool `help:"Switch to the light palette." xor:"theme"`
	Toggle bool `help:"Flip the current palette." xor:"theme"`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	repo := ctx.Repo()
	dark, err := repo.DarkMode()
	if err != nil {
		return err
	}

	switch {
	case c.Dark:
		dark = true
	case c.Light:
		dark = false
	case c.Toggle:
		dark = !dark
	default:
		ctx.Printf("Theme: %s\n", themeName(dark))
		return nil
	}

	if err := repo.SetDarkMode(dark); err != nil {
		return err
	}
	ctx.Printf("Theme set to %s\n", themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
