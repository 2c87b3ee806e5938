package system

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd  `cmd:"" help:"Show the store location."`
	Dump   DebugDumpKeyCmd `cmd:"" help:"Dump a stored key as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.Config.Dir,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

var dumpableKeys = append(slices.Clone(constants.StateKeys), constants.KeyDarkMode, constants.KeyLastResetDate)

type DebugDumpKeyCmd struct {
	Key string `arg:"" help:"Key to dump (habits, goals, rewards, stats, darkMode, lastResetDate)."`
}

func (cmd *DebugDumpKeyCmd) Run(ctx *cli.Context) error {
	if !slices.Contains(dumpableKeys, cmd.Key) {
		return fmt.Errorf("unknown key %q (want one of %v)", cmd.Key, dumpableKeys)
	}

	raw, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("key %q has never been written", cmd.Key)
		}
		return fmt.Errorf("failed to read %q: %w", cmd.Key, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		// Show corrupt values verbatim
		ctx.Println(string(raw))
		return fmt.Errorf("stored value for %q is not valid JSON: %w", cmd.Key, err)
	}
	ctx.Println(out.String())
	return nil
}
