// Package backup keeps a single overwritable copy of the task file.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mark3labs/kaam/internal/logger"
)

// ErrNoBackup is returned by Restore when the backup slot is empty.
var ErrNoBackup = errors.New("no backup found")

// Manager copies a file to and from one backup path. There is no
// versioning: every Save replaces the previous copy.
type Manager struct {
	Path     string
	Disabled bool
}

// New returns a manager for the slot at path.
func New(path string, disabled bool) *Manager {
	return &Manager{Path: path, Disabled: disabled}
}

// Enabled reports whether destructive operations should back up first.
func (m *Manager) Enabled() bool {
	return !m.Disabled
}

// Exists reports whether the slot currently holds a backup.
func (m *Manager) Exists() bool {
	info, err := os.Stat(m.Path)
	return err == nil && info.Mode().IsRegular()
}

// Save copies src into the slot.
func (m *Manager) Save(src string) error {
	if err := copyFile(src, m.Path); err != nil {
		return fmt.Errorf("backing up %s: %w", src, err)
	}
	logger.Info("Backed up %s to %s", src, m.Path)
	return nil
}

// Restore copies the slot over dst. The slot is left in place.
func (m *Manager) Restore(dst string) error {
	if !m.Exists() {
		return fmt.Errorf("%w at %s", ErrNoBackup, m.Path)
	}
	if err := copyFile(m.Path, dst); err != nil {
		return fmt.Errorf("restoring %s: %w", dst, err)
	}
	logger.Info("Restored %s from %s", dst, m.Path)
	return nil
}

// copyFile writes src to a temporary file beside dst and renames it into
// place, so dst is either the old content or the complete copy. A symlinked
// dst keeps its link and the target receives the copy.
func copyFile(src, dst string) error {
	if target, err := filepath.EvalSymlinks(dst); err == nil {
		dst = target
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, in); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil && !errors.Is(err, fs.ErrPermission) {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
