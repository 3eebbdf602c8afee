// Package testutil provides reusable helpers for project CLI integration tests.
// Commands run in-process through cli.Run against a temporary home directory,
// store file and working directory.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestEnv is a temporary environment for one test.
type TestEnv struct {
	Root       string // temp root
	Home       string // fake home directory
	Cwd        string // working directory seen by commands
	DataPath   string // store file
	ConfigPath string // config file (may not exist)

	t      *testing.T
	env    map[string]string
	mu     sync.Mutex
	opened []string

	// OpenErr, when set, is returned by the fake opener.
	OpenErr error
	// Clones records (url, dir) pairs passed to the fake cloner.
	Clones [][2]string
	// CloneErr, when set, is returned by the fake cloner.
	CloneErr error
}

// NewTestEnv creates the temporary directories. The store file is not
// created until WithStore or a mutating command writes it.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	root := t.TempDir()
	e := &TestEnv{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		Cwd:        filepath.Join(root, "work"),
		DataPath:   filepath.Join(root, "home", ".project-cli", "projects.json"),
		ConfigPath: filepath.Join(root, "home", ".config", "project-cli", "config.toml"),
		t:          t,
		env:        make(map[string]string),
	}
	for _, dir := range []string{e.Home, e.Cwd} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return e
}

// WithStore writes raw store content.
func (e *TestEnv) WithStore(content string) *TestEnv {
	e.t.Helper()
	e.writeFile(e.DataPath, content)
	return e
}

// WithConfig writes config.toml content.
func (e *TestEnv) WithConfig(content string) *TestEnv {
	e.t.Helper()
	e.writeFile(e.ConfigPath, content)
	return e
}

// WithDir creates a directory relative to Root and returns its absolute path.
func (e *TestEnv) WithDir(rel string) string {
	e.t.Helper()
	p := filepath.Join(e.Root, rel)
	if err := os.MkdirAll(p, 0o755); err != nil {
		e.t.Fatalf("failed to create directory %s: %v", p, err)
	}
	return p
}

// Setenv sets a variable visible to path expansion in commands.
func (e *TestEnv) Setenv(key, value string) *TestEnv {
	e.env[key] = value
	return e
}

// ReadStore returns the store file content.
func (e *TestEnv) ReadStore() string {
	e.t.Helper()
	content, err := os.ReadFile(e.DataPath)
	if err != nil {
		e.t.Fatalf("failed to read store %s: %v", e.DataPath, err)
	}
	return string(content)
}

// StoreExists reports whether the store file has been written.
func (e *TestEnv) StoreExists() bool {
	_, err := os.Stat(e.DataPath)
	return err == nil
}

// Opened returns the targets handed to the fake opener.
func (e *TestEnv) Opened() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.opened...)
}

func (e *TestEnv) open(_ context.Context, target string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened = append(e.opened, target)
	return e.OpenErr
}

type fakeCloner struct{ env *TestEnv }

func (c fakeCloner) Clone(_ context.Context, url, dir string, _ io.Writer) error {
	c.env.Clones = append(c.env.Clones, [2]string{url, dir})
	if c.env.CloneErr != nil {
		return c.env.CloneErr
	}
	return os.MkdirAll(filepath.Join(dir, ".git"), 0o755)
}

func (e *TestEnv) writeFile(path, content string) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write file %s: %v", path, err)
	}
}
