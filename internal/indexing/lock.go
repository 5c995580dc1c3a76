package indexing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	lockTimeout   = 5 * time.Second // Max time to wait for lock
	lockRetryWait = 500 * time.Millisecond
)

// Lock is an inter-process lock file holding the owner's PID. It keeps the
// indexer CLI and a running server from rebuilding the same outputs at once.
type Lock struct {
	path    string
	timeout time.Duration
	retry   time.Duration
	log     zerolog.Logger
}

// NewLock creates a lock backed by the file at path
func NewLock(path string, log zerolog.Logger) *Lock {
	return &Lock{
		path:    path,
		timeout: lockTimeout,
		retry:   lockRetryWait,
		log:     log,
	}
}

// Path returns the lock file location
func (l *Lock) Path() string {
	return l.path
}

// isProcessRunning is implemented in platform-specific files:
// - lock_unix.go for Unix/Linux/macOS
// - lock_windows.go for Windows

// cleanStale removes the lock file if the owning process is dead
func (l *Lock) cleanStale() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No lock file, nothing to clean
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		// Created but the owner has not written its PID yet
		if info, err := os.Stat(l.path); err == nil && time.Since(info.ModTime()) < l.timeout {
			return fmt.Errorf("lock is being created by another process")
		}
	}

	pid, err := strconv.Atoi(content)
	if err != nil {
		l.log.Warn().Str("lock", l.path).Msg("Corrupted lock file (invalid PID), removing")
		return os.Remove(l.path)
	}

	if isProcessRunning(pid) {
		return fmt.Errorf("lock held by running process %d", pid)
	}

	l.log.Info().Int("pid", pid).Msg("Stale lock detected, cleaning")
	return os.Remove(l.path)
}

// Acquire takes the lock, waiting while another live process holds it
func (l *Lock) Acquire() error {
	ourPID := os.Getpid()

	if data, err := os.ReadFile(l.path); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && pid == ourPID {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	startTime := time.Now()
	for {
		err := l.cleanStale()
		if err == nil {
			err = l.create(ourPID)
			if err == nil {
				l.log.Debug().Int("pid", ourPID).Msg("✓ Index lock acquired")
				return nil
			}
			if !errors.Is(err, os.ErrExist) {
				return err
			}
			// Another process created the lock between cleanup and create
		}

		elapsed := time.Since(startTime)
		if elapsed >= l.timeout {
			return fmt.Errorf("timeout waiting for index lock after %v: %w", elapsed.Round(time.Millisecond), err)
		}
		l.log.Info().
			Dur("elapsed", elapsed.Round(100*time.Millisecond)).
			Msg("Index locked by another process, waiting...")
		time.Sleep(l.retry)
	}
}

// create writes the lock file only if it does not exist yet. An existing
// lock is reported as os.ErrExist.
func (l *Lock) create(pid int) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	if _, err := f.WriteString(strconv.Itoa(pid)); err != nil {
		f.Close()
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	return nil
}

// Release removes the lock file if this process owns it
func (l *Lock) Release() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Lock already removed
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err == nil && pid != os.Getpid() {
		l.log.Warn().
			Int("owner", pid).
			Int("pid", os.Getpid()).
			Msg("Lock file contains different PID, not removing")
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	l.log.Debug().Msg("✓ Index lock released")
	return nil
}
