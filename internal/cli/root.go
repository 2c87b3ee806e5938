package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitquest/internal/backup"
	"github.com/julianstephens/habitquest/internal/config"
	"github.com/julianstephens/habitquest/internal/engine"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/storage"
	"github.com/julianstephens/habitquest/internal/storage/sqlite"
	"github.com/julianstephens/habitquest/internal/utils"
)

// ErrBackupsUnsupported is returned for stores that are not a local file.
var ErrBackupsUnsupported = errors.New("backups are only supported for SQLite and JSON file stores")

// Context is handed to every command's Run method.
type Context struct {
	Config config.Config
	Store  storage.Provider
	Clock  engine.Clock
	Out    io.Writer
	In     io.Reader

	repo *storage.Repository
}

func NewContext(cfg config.Config, store storage.Provider, clock engine.Clock) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		Clock:  clock,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// NewClock returns a clock reading the wall time in the given timezone.
func NewClock(timezone string) (engine.Clock, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// Repo returns the typed repository over the context's store.
func (c *Context) Repo() *storage.Repository {
	if c.repo == nil {
		c.repo = storage.NewRepository(c.Store)
	}
	return c.repo
}

// Engine opens a session engine, applying the daily reset if a new day started.
func (c *Context) Engine() *engine.Engine {
	return engine.Open(c.Repo(), c.Clock)
}

// Commit turns a failed snapshot write into a command error.
func (c *Context) Commit(eng *engine.Engine) error {
	if err := eng.Err(); err != nil {
		return fmt.Errorf("failed to save changes: %w", err)
	}
	return nil
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command's output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on the context's input. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// StoreFilePath returns the path of a file-backed store.
func (c *Context) StoreFilePath() (string, bool) {
	switch c.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return c.Store.GetConfigPath(), true
	default:
		return "", false
	}
}

// BackupManager returns the backup manager for a file-backed store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	path, ok := c.StoreFilePath()
	if !ok {
		return nil, ErrBackupsUnsupported
	}
	return backup.NewManager(path, c.Config.Backups.Keep), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backups.Enabled {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
