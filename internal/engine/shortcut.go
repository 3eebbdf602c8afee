package engine

import (
	"context"
	"fmt"

	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
)

// activeSet returns the active project and its shortcut set.
func activeSet(s *store.Store) (string, *store.ShortcutSet, error) {
	project, err := s.EnsureActive()
	if err != nil {
		return "", nil, err
	}
	set, _ := s.Project(project)
	return project, set, nil
}

// AddShortcut stores key in the active project, overwriting an existing value.
// URLs are stored verbatim; directories as absolute, home-expanded paths.
func AddShortcut(s *store.Store, env Env, key, value string) (Result, error) {
	project, set, err := activeSet(s)
	if err != nil {
		return Result{}, err
	}
	if err := ValidateShortcutKey(key); err != nil {
		return Result{}, err
	}

	stored := env.Normalize(value)
	prev, existed := set.Get(key)
	set.Set(key, stored)

	return Result{
		Message: fmt.Sprintf("[%s] set '%s' -> %s", project, key, stored),
		Changed: !existed || prev != stored,
	}, nil
}

// UpdateShortcut replaces the value of an existing key in the active project.
func UpdateShortcut(s *store.Store, env Env, key, value string) (Result, error) {
	project, set, err := activeSet(s)
	if err != nil {
		return Result{}, err
	}
	prev, ok := set.Get(key)
	if !ok {
		return Result{}, noSuchShortcut(key)
	}

	stored := env.Normalize(value)
	set.Set(key, stored)

	return Result{
		Message: fmt.Sprintf("[%s] updated '%s' -> %s", project, key, stored),
		Changed: prev != stored,
	}, nil
}

// RenameShortcut moves old to new in the active project. Unlike project
// rename, an existing new key is overwritten without a force flag.
func RenameShortcut(s *store.Store, old, new string) (Result, error) {
	project, set, err := activeSet(s)
	if err != nil {
		return Result{}, err
	}
	if !set.Has(old) {
		return Result{}, noSuchShortcut(old)
	}
	if err := ValidateShortcutKey(new); err != nil {
		return Result{}, err
	}

	set.Rename(old, new)
	return Result{
		Message: fmt.Sprintf("[%s] renamed '%s' -> '%s'", project, old, new),
		Changed: old != new,
	}, nil
}

// RemoveShortcut deletes key from the active project.
func RemoveShortcut(s *store.Store, key string) (Result, error) {
	project, set, err := activeSet(s)
	if err != nil {
		return Result{}, err
	}
	if !set.Delete(key) {
		return Result{}, noSuchShortcut(key)
	}
	return Result{
		Message: fmt.Sprintf("[%s] removed '%s'", project, key),
		Changed: true,
	}, nil
}

// ShortcutListing is the outcome of ListShortcuts.
type ShortcutListing struct {
	Project string        `json:"project"`
	Filter  string        `json:"filter,omitempty"`
	Entries []store.Entry `json:"entries"`
	// Total is the size of the project's whole set, regardless of filter.
	Total int `json:"total"`
}

// ListShortcuts lists the active project's shortcuts; filter is "", "url" or "dir".
func ListShortcuts(s *store.Store, filter string) (ShortcutListing, error) {
	f, err := store.ParseFilter(filter)
	if err != nil {
		return ShortcutListing{}, err
	}
	project, set, err := activeSet(s)
	if err != nil {
		return ShortcutListing{}, err
	}
	entries, err := s.ListShortcuts(project, f)
	if err != nil {
		return ShortcutListing{}, err
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	return ShortcutListing{Project: project, Filter: filter, Entries: entries, Total: set.Len()}, nil
}

// ShortcutKeys returns the active project's keys in insertion order.
func ShortcutKeys(s *store.Store) ([]string, error) {
	_, set, err := activeSet(s)
	if err != nil {
		return nil, err
	}
	return set.Keys(), nil
}

// HasKey returns the stored value of key in the active project.
func HasKey(s *store.Store, key string) (string, bool, error) {
	_, set, err := activeSet(s)
	if err != nil {
		return "", false, err
	}
	value, ok := set.Get(key)
	return value, ok, nil
}

// GotoResult is the outcome of Goto.
type GotoResult struct {
	Project    string
	Key        string
	Value      string
	Resolution shortcut.Resolution
}

// Goto resolves key in the active project. URLs are opened through the
// resolver's opener; an opener failure is reported on the result and is not
// an error. Directories must exist.
func Goto(ctx context.Context, s *store.Store, r *shortcut.Resolver, key string) (GotoResult, error) {
	project, set, err := activeSet(s)
	if err != nil {
		return GotoResult{}, err
	}
	value, ok := set.Get(key)
	if !ok {
		return GotoResult{}, noSuchShortcut(key)
	}

	res := r.Resolve(ctx, value)
	out := GotoResult{Project: project, Key: key, Value: value, Resolution: res}
	if res.Kind == shortcut.KindDirectory && !res.Exists {
		return out, store.ResolutionFailed("directory not found: %s", res.Target)
	}
	return out, nil
}
