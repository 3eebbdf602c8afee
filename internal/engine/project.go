package engine

import (
	"fmt"

	"github.com/aidanlsb/project-cli/internal/store"
)

// AddProject creates name with an empty shortcut set and makes it active.
// With force, an existing project keeps its shortcuts and is only selected.
func AddProject(s *store.Store, name string, force bool) (Result, error) {
	if err := ValidateProjectName(name); err != nil {
		return Result{}, err
	}
	exists := s.HasProject(name)
	if exists && !force {
		return Result{}, projectExists(name)
	}

	changed := s.Active != name
	if !exists {
		s.PutProject(name, store.NewShortcutSet())
		changed = true
	}
	s.Active = name

	return Result{
		Message: fmt.Sprintf("Added project '%s'. Active = %s", name, name),
		Changed: changed,
	}, nil
}

// SelectProject makes name the active project.
func SelectProject(s *store.Store, name string) (Result, error) {
	if !s.HasProject(name) {
		return Result{}, noSuchProject(name)
	}
	changed := s.Active != name
	s.Active = name
	return Result{
		Message: fmt.Sprintf("Selected active project: %s", name),
		Changed: changed,
	}, nil
}

// RenameProject moves the shortcuts of old under new. An existing new is
// only replaced with force. The active selection follows the rename.
func RenameProject(s *store.Store, old, new string, force bool) (Result, error) {
	if !s.HasProject(old) {
		return Result{}, noSuchProject(old)
	}
	if err := ValidateProjectName(new); err != nil {
		return Result{}, err
	}
	if old == new {
		return Result{Message: fmt.Sprintf("Renamed '%s' -> '%s'", old, new)}, nil
	}
	if s.HasProject(new) && !force {
		return Result{}, projectExists(new)
	}

	set, _ := s.Project(old)
	delete(s.Projects, old)
	s.PutProject(new, set)
	if s.Active == old {
		s.Active = new
	}

	return Result{
		Message: fmt.Sprintf("Renamed '%s' -> '%s'", old, new),
		Changed: true,
	}, nil
}

// CheckRemovable reports whether RemoveProject would succeed, so callers can
// validate before asking for confirmation.
func CheckRemovable(s *store.Store, name string) error {
	if !s.HasProject(name) {
		return noSuchProject(name)
	}
	return nil
}

// RemoveProject deletes name and its shortcuts. If it was active, the first
// remaining project in sorted order becomes active (or none).
func RemoveProject(s *store.Store, name string) (Result, error) {
	if err := CheckRemovable(s, name); err != nil {
		return Result{}, err
	}
	s.DeleteProject(name)
	return Result{
		Message: fmt.Sprintf("Removed '%s'. Active = %s", name, activeName(s)),
		Changed: true,
	}, nil
}

// ProjectListing is the outcome of ListProjects.
type ProjectListing struct {
	// Filter is the key filter as given, including a leading '!'.
	Filter string `json:"filter,omitempty"`
	// Projects is set when no filter was given.
	Projects []store.ProjectSummary `json:"projects,omitempty"`
	// Names is set when a filter was given.
	Names []string `json:"names,omitempty"`
	Count int      `json:"count"`
}

// ListProjects lists every project, or with keyFilter only those whose
// shortcut set contains that key ("!key" inverts the match).
func ListProjects(s *store.Store, keyFilter string) ProjectListing {
	if keyFilter == "" {
		rows := s.ListProjects()
		return ProjectListing{Projects: rows, Count: len(rows)}
	}
	names := s.ProjectsWithKey(keyFilter)
	return ProjectListing{Filter: keyFilter, Names: names, Count: len(names)}
}
