package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRestore(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kaam.txt")
	content := []byte("[ ] a\n[*] b\n")
	require.NoError(t, os.WriteFile(src, content, 0600))

	m := New(filepath.Join(dir, "bak", "kaam_bak"), false)
	assert.False(t, m.Exists())

	require.NoError(t, m.Save(src))
	assert.True(t, m.Exists())

	saved, err := os.ReadFile(m.Path)
	require.NoError(t, err)
	assert.Equal(t, content, saved)

	info, err := os.Stat(m.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.Remove(src))
	require.NoError(t, m.Restore(src))

	restored, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, content, restored)
	assert.True(t, m.Exists(), "restore must not consume the slot")
}

func TestSaveOverwritesPreviousBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kaam.txt")
	m := New(filepath.Join(dir, "kaam_bak"), false)

	require.NoError(t, os.WriteFile(src, []byte("[ ] first\n"), 0644))
	require.NoError(t, m.Save(src))
	require.NoError(t, os.WriteFile(src, []byte("[ ] second\n"), 0644))
	require.NoError(t, m.Save(src))

	saved, err := os.ReadFile(m.Path)
	require.NoError(t, err)
	assert.Equal(t, "[ ] second\n", string(saved))
}

func TestRestoreWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "missing"), false)

	err := m.Restore(filepath.Join(dir, "kaam.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoBackup))

	_, statErr := os.Stat(filepath.Join(dir, "kaam.txt"))
	assert.True(t, os.IsNotExist(statErr), "restore must not create the task file")
}

func TestSaveMissingSource(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "kaam_bak"), false)

	assert.Error(t, m.Save(filepath.Join(dir, "nope")))
	assert.False(t, m.Exists())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kaam.txt")
	require.NoError(t, os.WriteFile(src, []byte("[ ] a\n"), 0644))

	bakDir := filepath.Join(dir, "bak")
	m := New(filepath.Join(bakDir, "kaam_bak"), false)
	require.NoError(t, m.Save(src))

	entries, err := os.ReadDir(bakDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kaam_bak", entries[0].Name())
}

func TestEnabled(t *testing.T) {
	assert.True(t, New("x", false).Enabled())
	assert.False(t, New("x", true).Enabled())
}

func TestRestoreKeepsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dotfiles-kaam")
	link := filepath.Join(dir, "kaam.txt")
	require.NoError(t, os.WriteFile(target, []byte("[ ] new\n"), 0644))
	require.NoError(t, os.Symlink(target, link))

	m := New(filepath.Join(dir, "kaam_bak"), false)
	require.NoError(t, os.WriteFile(m.Path, []byte("[ ] old\n"), 0644))
	require.NoError(t, m.Restore(link))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "restore should write through the link")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "[ ] old\n", string(data))
}
