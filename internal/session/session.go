// Package session guards a store against two interactive sessions at once.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/logger"
)

var ErrSessionActive = errors.New("another habitquest session is running")

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid
)

// Info is the content of a lock file: "<pid>|<RFC3339 start time>".
type Info struct {
	PID       int
	StartedAt time.Time
}

func (i Info) String() string {
	return fmt.Sprintf("%d|%s", i.PID, i.StartedAt.UTC().Format(time.RFC3339))
}

func parseInfo(content string) (Info, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 {
		return Info{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Info{}, errors.New("invalid process ID in lockfile")
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Info{}, errors.New("invalid start time in lockfile")
	}
	return Info{PID: pid, StartedAt: started}, nil
}

// Lock is a held session lock.
type Lock struct {
	path string
	info Info
}

// LockPath returns the lock file location inside dir.
func LockPath(dir string) string {
	return filepath.Join(dir, constants.SessionLockfileName)
}

// Acquire takes the session lock in dir. A lock left by a process that is no
// longer a running habitquest is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := LockPath(dir)

	holder, live, err := Status(dir)
	if err != nil {
		return nil, err
	}
	if live && holder.PID != getpid() {
		return nil, fmt.Errorf("%w (pid %d since %s)", ErrSessionActive, holder.PID, holder.StartedAt.Local().Format(time.Kitchen))
	}
	if holder.PID != 0 {
		logger.Debug("Replacing stale session lock", "pid", holder.PID)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}

	info := Info{PID: getpid(), StartedAt: time.Now()}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			// Lost a race with another session starting at the same moment.
			return nil, ErrSessionActive
		}
		return nil, fmt.Errorf("failed to create lock: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(info.String()); err != nil {
		return nil, fmt.Errorf("failed to write lock: %w", err)
	}
	return &Lock{path: path, info: info}, nil
}

// Status reads the lock in dir. live reports whether its owner is still a
// running habitquest process. A missing or unreadable lock yields a zero Info.
func Status(dir string) (info Info, live bool, err error) {
	content, err := os.ReadFile(LockPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, false, nil
		}
		return Info{}, false, fmt.Errorf("failed to read lock: %w", err)
	}

	info, err = parseInfo(string(content))
	if err != nil {
		logger.Warn("Ignoring malformed session lock", "error", err)
		// Still report a holder so Acquire removes the file.
		return Info{PID: -1}, false, nil
	}

	process, err := findProcessFunc(info.PID)
	if err != nil || process == nil {
		return info, false, nil
	}
	return info, strings.HasPrefix(process.Executable(), constants.AppName), nil
}

// Release removes the lock if it still belongs to this session.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info, err := parseInfo(string(content)); err == nil && info.PID != l.info.PID {
		return nil
	}
	return os.Remove(l.path)
}
