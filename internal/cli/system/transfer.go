package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitquest/internal/cli"
)

type ExportCmd struct {
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if c.Output == "" {
		return ctx.Repo().Export(ctx.Out, ctx.Clock())
	}

	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := ctx.Repo().Export(f, ctx.Clock()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	ctx.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace all habits, goals, rewards and stats.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	// Keep a copy of what is being replaced when the store is a file.
	ctx.PerformAutomaticBackup()

	snap, err := ctx.Repo().Import(f)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Imported %d habits, %d goals, %d rewards (balance %d)\n",
		len(snap.Habits), len(snap.Goals), len(snap.Rewards), snap.Stats.TotalPoints)
	return nil
}
