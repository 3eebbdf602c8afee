package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/project-cli/internal/atomicfile"
)

type persistedConfig struct {
	DataFile    *string              `toml:"data_file,omitempty"`
	Opener      *string              `toml:"opener,omitempty"`
	CloneRoot   *string              `toml:"clone_root,omitempty"`
	JenkinsURL  *string              `toml:"jenkins_url,omitempty"`
	LockTimeout *string              `toml:"lock_timeout,omitempty"`
	LogLevel    *string              `toml:"log_level,omitempty"`
	UI          *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Encode renders cfg as TOML, omitting unset keys.
func Encode(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DataFile:    nonEmptyPtr(cfg.DataFile),
		Opener:      nonEmptyPtr(cfg.Opener),
		CloneRoot:   nonEmptyPtr(cfg.CloneRoot),
		JenkinsURL:  nonEmptyPtr(cfg.JenkinsURL),
		LockTimeout: nonEmptyPtr(cfg.LockTimeout),
		LogLevel:    nonEmptyPtr(cfg.LogLevel),
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFileMkdir(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
