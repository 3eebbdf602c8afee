// Package config handles the global project-cli configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/project-cli/internal/shortcut"
)

const (
	// AppName names the config and data directories.
	AppName = "project-cli"

	// EnvConfig overrides the config file path.
	EnvConfig = "PROJECT_CLI_CONFIG"
	// EnvData overrides the store file path.
	EnvData = "PROJECT_CLI_DATA"

	// DefaultLockTimeout bounds how long mutating commands wait for the store lock.
	DefaultLockTimeout = 2 * time.Second
)

// Config represents the global configuration.
type Config struct {
	// DataFile is the JSON store (default: ~/.project-cli/projects.json).
	DataFile string `toml:"data_file"`

	// Opener is the command URLs are handed to (default: open / xdg-open).
	// It may contain arguments, e.g. "open -a Firefox".
	Opener string `toml:"opener"`

	// CloneRoot is where 'project clone' puts repositories (default: ~/repo).
	CloneRoot string `toml:"clone_root"`

	// JenkinsURL is the default Jenkins domain for 'project jenkins-url'.
	JenkinsURL string `toml:"jenkins_url"`

	// LockTimeout is a duration string such as "2s".
	LockTimeout string `toml:"lock_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// LoadFrom loads the configuration from a specific path.
// A missing file yields the default (empty) config.
func LoadFrom(path string) (*Config, error) {
	cfg, err := LoadUnvalidated(path)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.GetLockTimeout(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadUnvalidated parses path without checking field values, so that a
// config with a bad value can still be loaded and repaired.
func LoadUnvalidated(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveConfigPath resolves the effective config path: explicit flag,
// then $PROJECT_CLI_CONFIG, then DefaultPath.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return expandPath(explicitConfigPath)
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return expandPath(env)
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/project-cli/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", AppName, "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, AppName, "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// DefaultDataFile returns ~/.project-cli/projects.json.
func DefaultDataFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+AppName, "projects.json")
	}
	return filepath.Join("."+AppName, "projects.json")
}

// ResolveDataPath resolves the store path with precedence:
//  1. explicitDataPath flag
//  2. $PROJECT_CLI_DATA
//  3. data_file from config.toml (relative to the config dir when not absolute)
//  4. DefaultDataFile
func ResolveDataPath(explicitDataPath, configPath string, cfg *Config) string {
	if strings.TrimSpace(explicitDataPath) != "" {
		return expandPath(explicitDataPath)
	}
	if env := strings.TrimSpace(os.Getenv(EnvData)); env != "" {
		return expandPath(env)
	}
	if cfg != nil {
		if fromConfig := strings.TrimSpace(cfg.DataFile); fromConfig != "" {
			p := expandPath(fromConfig)
			if filepath.IsAbs(p) {
				return filepath.Clean(p)
			}
			return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), p)
		}
	}
	return DefaultDataFile()
}

// LockPath returns the advisory lock file guarding dataPath.
func LockPath(dataPath string) string {
	return dataPath + ".lock"
}

// GetOpener returns the URL opener command.
func (c *Config) GetOpener() string {
	if c != nil && strings.TrimSpace(c.Opener) != "" {
		return strings.TrimSpace(c.Opener)
	}
	return shortcut.DefaultOpenerCommand()
}

// GetCloneRoot returns the expanded clone root.
func (c *Config) GetCloneRoot() string {
	if c != nil && strings.TrimSpace(c.CloneRoot) != "" {
		return expandPath(c.CloneRoot)
	}
	return expandPath("~/repo")
}

// GetLockTimeout parses lock_timeout, defaulting to DefaultLockTimeout.
func (c *Config) GetLockTimeout() (time.Duration, error) {
	if c == nil || strings.TrimSpace(c.LockTimeout) == "" {
		return DefaultLockTimeout, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.LockTimeout))
	if err != nil {
		return 0, fmt.Errorf("lock_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("lock_timeout must be positive, got %s", d)
	}
	return d, nil
}

func expandPath(p string) string {
	return shortcut.Expander{}.Expand(strings.TrimSpace(p))
}

// DefaultContent is written by CreateDefault.
const DefaultContent = `# project-cli configuration

# JSON store holding projects and shortcuts
# data_file = "~/.project-cli/projects.json"

# Command URLs are opened with (defaults to "open" on macOS, "xdg-open" elsewhere)
# opener = "open -a Firefox"

# Where 'project clone' puts repositories
# clone_root = "~/repo"

# Default Jenkins domain for 'project jenkins-url'
# jenkins_url = "https://jenkins.example.com"

# How long mutating commands wait for the store lock
# lock_timeout = "2s"

# debug, info, warn, error
# log_level = "warn"

# Optional UI accent color (ANSI 0-255 or #RRGGBB)
# [ui]
# accent = "39"
`

// CreateDefault writes a commented default config to path if none exists.
// It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultContent), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
