package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/config"
	"github.com/julianstephens/habitquest/internal/storage"
	"github.com/julianstephens/habitquest/internal/storage/sqlite"
)

func setupTestBackupDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "habitquest.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC) }
	ctx := cli.NewContext(config.Default(dir), store, clock)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Engine()
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestBackupDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: habitquest-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total, keeping most recent 14)") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestBackupDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestBackupDB(t)
	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	// Change state after the backup
	if err := ctx.Repo().SetDarkMode(true); err != nil {
		t.Fatal(err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Previous data saved as") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	dark, err := ctx.Repo().DarkMode()
	if err != nil {
		t.Fatal(err)
	}
	if dark {
		t.Error("dark mode should be back to the backed-up value")
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := setupTestBackupDB(t)
	mgr, _ := ctx.BackupManager()
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestBackupDB(t)
	err := (&BackupRestoreCmd{BackupFile: "habitquest-19990101-000000.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	ctx := cli.NewContext(config.Default(t.TempDir()), storage.NewMemoryStore(), time.Now)
	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, cli.ErrBackupsUnsupported) {
		t.Errorf("expected ErrBackupsUnsupported, got %v", err)
	}
}
