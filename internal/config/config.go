// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variables. The lower-case spellings are still honored for
// existing setups.
const (
	EnvPath     = "KAAM_PATH"
	EnvBackup   = "KAAM_BAK_DIR"
	EnvNoBackup = "KAAM_NO_BACKUP"
	EnvLogLevel = "KAAM_LOG_LEVEL"
	EnvLogFile  = "KAAM_LOG_FILE"

	legacyEnvPath     = "kaam_PATH"
	legacyEnvBackup   = "kaam_BAK_DIR"
	legacyEnvNoBackup = "kaam_NO_BACKUP"
)

// Config holds all configuration values for kaam.
type Config struct {
	Path       string `mapstructure:"path" yaml:"path"`
	BackupPath string `mapstructure:"backup_path" yaml:"backup_path"`
	NoBackup   bool   `mapstructure:"no_backup" yaml:"no_backup"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
// The returned Path and BackupPath are always resolved.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("kaam")

	v.SetDefault("path", "")
	v.SetDefault("backup_path", DefaultBackupPath())
	v.SetDefault("no_backup", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Only explicit bindings: KAAM_NO_BACKUP may hold any value and must
	// never reach the bool decoder.
	bindings := map[string][]string{
		"path":        {EnvPath, legacyEnvPath},
		"backup_path": {EnvBackup, legacyEnvBackup},
		"log_level":   {EnvLogLevel},
		"log_file":    {EnvLogFile},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if Exists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if Exists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Presence alone disables backups; the value is never parsed.
	if envPresent(EnvNoBackup) || envPresent(legacyEnvNoBackup) {
		cfg.NoBackup = true
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	c.Path = expandHome(strings.TrimSpace(c.Path))
	if c.Path == "" {
		p, err := ResolveTaskPath()
		if err != nil {
			return err
		}
		c.Path = p
	}

	c.BackupPath = expandHome(strings.TrimSpace(c.BackupPath))
	if c.BackupPath == "" {
		c.BackupPath = DefaultBackupPath()
	}
	c.LogFile = expandHome(c.LogFile)
	return nil
}

// ResolveTaskPath picks the task file when none is configured: the legacy
// ~/.kaam if it exists, otherwise DefaultTaskPath.
func ResolveTaskPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating task file: %w", err)
	}
	if legacy := LegacyTaskPath(home); Exists(legacy) {
		return legacy, nil
	}
	return DefaultTaskPath(home), nil
}

// LegacyTaskPath returns ~/.kaam.
func LegacyTaskPath(home string) string {
	return filepath.Join(home, ".kaam")
}

// DefaultTaskPath returns $XDG_DATA_HOME/kaam/kaam.txt or
// ~/.local/share/kaam/kaam.txt.
func DefaultTaskPath(home string) string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "kaam", "kaam.txt")
	}
	return filepath.Join(home, ".local", "share", "kaam", "kaam.txt")
}

// DefaultBackupPath returns the single backup slot in the temp directory.
func DefaultBackupPath() string {
	return filepath.Join(os.TempDir(), "kaam_bak")
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GlobalPath returns ~/.config/kaam/kaam.yml or $XDG_CONFIG_HOME/kaam/kaam.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kaam", "kaam.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kaam", "kaam.yml")
}

// ProjectPath returns ./kaam.yml.
func ProjectPath() string {
	return "kaam.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func envPresent(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}
