// Package store holds the in-memory project store and its persistence.
//
// The store has two explicit parts: the set of projects (each owning an
// ordered set of shortcuts) and an optional reference to the active project.
// On disk both share one JSON object where the active reference sits under
// the reserved key "active-project"; that key is never a valid project name.
package store

import (
	"sort"
	"strings"

	"github.com/aidanlsb/project-cli/internal/shortcut"
)

// ActiveKey is the reserved top-level key holding the active project name.
const ActiveKey = "active-project"

// Store is the root persisted value.
type Store struct {
	// Active is the selected project name, or "" when none is selected.
	Active   string
	Projects map[string]*ShortcutSet
}

// New returns an empty store, the initial state.
func New() *Store {
	return &Store{Projects: make(map[string]*ShortcutSet)}
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	out := &Store{Active: s.Active, Projects: make(map[string]*ShortcutSet, len(s.Projects))}
	for name, set := range s.Projects {
		out.Projects[name] = set.Clone()
	}
	return out
}

// HasProject reports whether name is a project.
func (s *Store) HasProject(name string) bool {
	_, ok := s.Projects[name]
	return ok
}

// Project returns the shortcut set of name. Stores built by New, Decode and
// PutProject never hold a nil set.
func (s *Store) Project(name string) (*ShortcutSet, bool) {
	set, ok := s.Projects[name]
	return set, ok
}

// EnsureActive returns the active project name. It fails when no project is
// selected or when the selection no longer names a project (possible only
// after manual edits of the store file).
func (s *Store) EnsureActive() (string, error) {
	if s.Active == "" {
		return "", &Error{
			Kind:    ErrNoActiveProject,
			Message: "no active project",
			Hint:    "Select one with 'project <name>' or create one with 'project add <name>'",
		}
	}
	if !s.HasProject(s.Active) {
		return "", &Error{
			Kind:    ErrNoActiveProject,
			Message: "active project '" + s.Active + "' is missing",
			Hint:    "Select another with 'project <name>'",
		}
	}
	return s.Active, nil
}

// ProjectNames returns all project names sorted lexicographically.
func (s *Store) ProjectNames() []string {
	names := make([]string, 0, len(s.Projects))
	for name := range s.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProjectSummary is one row of ListProjects.
type ProjectSummary struct {
	Name      string `json:"name"`
	Shortcuts int    `json:"shortcuts"`
	Active    bool   `json:"active"`
}

// ListProjects returns every project sorted by name.
func (s *Store) ListProjects() []ProjectSummary {
	names := s.ProjectNames()
	out := make([]ProjectSummary, 0, len(names))
	for _, name := range names {
		out = append(out, ProjectSummary{
			Name:      name,
			Shortcuts: s.Projects[name].Len(),
			Active:    name == s.Active,
		})
	}
	return out
}

// ProjectsWithKey returns the sorted names of projects whose shortcut set
// contains key. A leading '!' on key inverts the match.
func (s *Store) ProjectsWithKey(key string) []string {
	key, inverted := strings.CutPrefix(key, "!")
	var out []string
	for _, name := range s.ProjectNames() {
		if s.Projects[name].Has(key) != inverted {
			out = append(out, name)
		}
	}
	return out
}

// Filter restricts ListShortcuts by classification.
type Filter int

const (
	FilterAll Filter = iota
	FilterURL
	FilterDir
)

// ParseFilter accepts "", "url" and "dir".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FilterAll, nil
	case "url":
		return FilterURL, nil
	case "dir":
		return FilterDir, nil
	default:
		return FilterAll, InvalidName("invalid filter %q (expected url or dir)", s)
	}
}

// Entry is one shortcut of a listing.
type Entry struct {
	Key   string        `json:"key"`
	Value string        `json:"value"`
	Kind  shortcut.Kind `json:"kind"`
}

// ListShortcuts returns the shortcuts of project restricted to f. With
// FilterAll, URLs come first and directories second; insertion order is kept
// inside each block.
func (s *Store) ListShortcuts(project string, f Filter) ([]Entry, error) {
	set, ok := s.Project(project)
	if !ok {
		return nil, NotFound("no such project: %s", project)
	}

	var urls, dirs []Entry
	set.Each(func(key, value string) {
		e := Entry{Key: key, Value: value, Kind: shortcut.Classify(value)}
		if e.Kind == shortcut.KindURL {
			urls = append(urls, e)
		} else {
			dirs = append(dirs, e)
		}
	})

	switch f {
	case FilterURL:
		return urls, nil
	case FilterDir:
		return dirs, nil
	default:
		return append(urls, dirs...), nil
	}
}

// Validate checks the structural invariants of a decoded store.
func (s *Store) Validate() error {
	if _, ok := s.Projects[ActiveKey]; ok {
		return InvalidName("%q is reserved and cannot be a project name", ActiveKey)
	}
	for name := range s.Projects {
		if name == "" {
			return InvalidName("project names must not be empty")
		}
	}
	return nil
}

// PutProject stores set under name, replacing any existing set.
func (s *Store) PutProject(name string, set *ShortcutSet) {
	if s.Projects == nil {
		s.Projects = make(map[string]*ShortcutSet)
	}
	if set == nil {
		set = NewShortcutSet()
	}
	s.Projects[name] = set
}

// DeleteProject removes name. When it was active, the first remaining project
// in sorted order becomes active, or the selection is cleared.
func (s *Store) DeleteProject(name string) {
	delete(s.Projects, name)
	if s.Active != name {
		return
	}
	s.Active = ""
	if names := s.ProjectNames(); len(names) > 0 {
		s.Active = names[0]
	}
}
