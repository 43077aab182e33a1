package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points HOME and the XDG dirs at a fresh temp dir, moves into it,
// and clears every kaam variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Chdir(dir)

	for _, name := range []string{
		EnvPath, EnvBackup, EnvNoBackup, EnvLogLevel, EnvLogFile,
		legacyEnvPath, legacyEnvBackup, legacyEnvNoBackup,
	} {
		unsetEnv(t, name)
	}
	return dir
}

func unsetEnv(t *testing.T, name string) {
	t.Helper()
	if old, ok := os.LookupEnv(name); ok {
		t.Cleanup(func() { _ = os.Setenv(name, old) })
	}
	_ = os.Unsetenv(name)
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "kaam", "kaam.txt"), cfg.Path)
	assert.Equal(t, DefaultBackupPath(), cfg.BackupPath)
	assert.False(t, cfg.NoBackup)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_LegacyPathWins(t *testing.T) {
	dir := isolate(t)
	legacy := filepath.Join(dir, ".kaam")
	require.NoError(t, os.WriteFile(legacy, []byte("[ ] old\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, legacy, cfg.Path)
}

func TestLoad_DefaultWithoutXDG(t *testing.T) {
	dir := isolate(t)
	unsetEnv(t, "XDG_DATA_HOME")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".local", "share", "kaam", "kaam.txt"), cfg.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvPath, filepath.Join(dir, "tasks"))
	t.Setenv(EnvBackup, filepath.Join(dir, "tasks.bak"))
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tasks"), cfg.Path)
	assert.Equal(t, filepath.Join(dir, "tasks.bak"), cfg.BackupPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	dir := isolate(t)
	t.Setenv(legacyEnvPath, filepath.Join(dir, "old-style"))
	t.Setenv(legacyEnvBackup, filepath.Join(dir, "old-style.bak"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "old-style"), cfg.Path)
	assert.Equal(t, filepath.Join(dir, "old-style.bak"), cfg.BackupPath)
}

func TestLoad_NoBackupPresence(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"empty value", EnvNoBackup, ""},
		{"false is still present", EnvNoBackup, "false"},
		{"non-bool value", EnvNoBackup, "yes please"},
		{"legacy name", legacyEnvNoBackup, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.True(t, cfg.NoBackup)
		})
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, WriteGlobal(&Config{
		Path:       "~/global.txt",
		BackupPath: "~/global.bak",
		LogLevel:   "warn",
	}))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("path: ./project.txt\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./project.txt", cfg.Path)
	assert.Equal(t, filepath.Join(dir, "global.bak"), cfg.BackupPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("path: from-file\nno_backup: false\n"), 0644))
	t.Setenv(EnvPath, filepath.Join(dir, "from-env"))
	t.Setenv(EnvNoBackup, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-env"), cfg.Path)
	assert.True(t, cfg.NoBackup)
}

func TestLoad_BadConfigFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("path: [unterminated\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestGlobalPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "config", "kaam", "kaam.yml"), GlobalPath())

	unsetEnv(t, "XDG_CONFIG_HOME")
	assert.Equal(t, filepath.Join(dir, ".config", "kaam", "kaam.yml"), GlobalPath())
}

func TestExists(t *testing.T) {
	isolate(t)
	assert.False(t, Exists(ProjectPath()))
	assert.False(t, Exists(GlobalPath()))

	require.NoError(t, WriteProject(&Config{Path: "x"}))
	assert.True(t, Exists(ProjectPath()))
	assert.False(t, Exists(GlobalPath()))
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Path:       "/tmp/kaam.txt",
		BackupPath: "/tmp/kaam_bak",
		NoBackup:   true,
		LogLevel:   "debug",
		LogFile:    "/tmp/kaam.log",
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)

	var got Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, *cfg, got)
}

func TestExpandHome(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "a", "b"), expandHome("~/a/b"))
	assert.Equal(t, dir, expandHome("~"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
