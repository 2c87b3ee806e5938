package system

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store file before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitquest storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	// Opening the engine writes the starter data into an empty store.
	if err := ctx.Commit(ctx.Engine()); err != nil {
		return err
	}

	configPath := filepath.Join(ctx.Config.Dir, constants.DefaultConfigFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := ctx.Config.Save(); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		ctx.Printf("Wrote config file: %s\n", configPath)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath, ok := ctx.StoreFilePath()
	if !ok {
		return fmt.Errorf("--force only applies to SQLite and JSON file stores")
	}

	// Don't delete the store we are about to copy from
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// copyFrom moves every key of another store into this one through an
// export document, so any pair of backends can be combined.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	sourceStore, err := cli.NewProvider(source)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer sourceStore.Close()

	var buf bytes.Buffer
	if err := storage.NewRepository(sourceStore).Export(&buf, ctx.Clock()); err != nil {
		return fmt.Errorf("failed to read source store: %w", err)
	}
	snap, err := ctx.Repo().Import(&buf)
	if err != nil {
		return fmt.Errorf("failed to write destination store: %w", err)
	}

	ctx.Printf("  Copied %d habits, %d goals, %d rewards\n", len(snap.Habits), len(snap.Goals), len(snap.Rewards))
	return nil
}
