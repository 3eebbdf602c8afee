// Package engine implements the project and shortcut commands as transforms
// over a *store.Store. Functions validate before they mutate, so a returned
// error always means the store is untouched. Persisting is the caller's job
// and only needed when Result.Changed is true.
package engine

import (
	"strings"

	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
)

// Result is the outcome of a command.
type Result struct {
	// Message is the one-line confirmation shown to the user.
	Message string
	// Changed is true when the store differs from before the call.
	Changed bool
}

// Env carries the collaborators used to normalize shortcut values.
type Env struct {
	Expander shortcut.Expander
	// Cwd is the directory relative paths are resolved against.
	Cwd string
}

// Normalize returns the value persisted for a shortcut.
func (e Env) Normalize(value string) string {
	return e.Expander.Normalize(value, e.Cwd)
}

// ValidateProjectName rejects names that cannot be stored or typed back.
func ValidateProjectName(name string) error {
	switch {
	case name == "":
		return store.InvalidName("project name must not be empty")
	case name == store.ActiveKey:
		return store.InvalidName("%q is reserved and cannot be a project name", store.ActiveKey)
	case strings.TrimSpace(name) != name:
		return store.InvalidName("project name %q has leading or trailing whitespace", name)
	case strings.HasPrefix(name, "-"):
		return store.InvalidName("project name %q must not start with '-'", name)
	}
	return nil
}

// ValidateShortcutKey rejects empty keys.
func ValidateShortcutKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return store.InvalidName("shortcut key must not be empty")
	}
	return nil
}

func activeName(s *store.Store) string {
	if s.Active == "" {
		return "<none>"
	}
	return s.Active
}

func noSuchProject(name string) error {
	return store.NotFound("no such project: %s", name)
}

func noSuchShortcut(key string) error {
	return store.NotFound("no such shortcut: %s", key)
}

func projectExists(name string) error {
	return store.AlreadyExists("Use --force to overwrite", "project '%s' already exists", name)
}
