// Package alfred renders project and shortcut listings in the Alfred script
// filter format: {"items": [{"title", "subtitle", "arg", "autocomplete"}]}.
package alfred

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/store"
)

// Item is one row in the launcher.
type Item struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Arg          string `json:"arg"`
	Autocomplete string `json:"autocomplete"`
}

// Feedback is the document Alfred reads.
type Feedback struct {
	Items []Item `json:"items"`
}

func nameItem(name, subtitle string) Item {
	return Item{Title: name, Subtitle: subtitle, Arg: name, Autocomplete: name}
}

// Projects lists projects, optionally restricted by a key filter ("key" or "!key").
func Projects(s *store.Store, keyFilter string) Feedback {
	listing := engine.ListProjects(s, keyFilter)
	fb := Feedback{Items: []Item{}}
	if keyFilter != "" {
		for _, name := range listing.Names {
			fb.Items = append(fb.Items, nameItem(name, ""))
		}
		return fb
	}
	for _, p := range listing.Projects {
		fb.Items = append(fb.Items, nameItem(p.Name, shortcutCount(p.Shortcuts)))
	}
	return fb
}

func shortcutCount(n int) string {
	if n == 1 {
		return "1 shortcut"
	}
	return fmt.Sprintf("%d shortcuts", n)
}

// Shortcuts lists the active project's shortcuts; filter is "", "url" or "dir".
func Shortcuts(s *store.Store, filter string) (Feedback, error) {
	listing, err := engine.ListShortcuts(s, filter)
	if err != nil {
		return Feedback{}, err
	}
	fb := Feedback{Items: make([]Item, 0, len(listing.Entries))}
	for _, e := range listing.Entries {
		fb.Items = append(fb.Items, nameItem(e.Key, e.Value))
	}
	return fb, nil
}

// NotCloned lists projects that have a repo shortcut but no dir shortcut.
func NotCloned(s *store.Store) Feedback {
	withoutDir := make(map[string]bool)
	for _, name := range s.ProjectsWithKey("!" + engine.DirKey) {
		withoutDir[name] = true
	}
	fb := Feedback{Items: []Item{}}
	for _, name := range s.ProjectsWithKey(engine.RepoKey) {
		if withoutDir[name] {
			repo, _ := s.Projects[name].Get(engine.RepoKey)
			fb.Items = append(fb.Items, nameItem(name, repo))
		}
	}
	return fb
}

// Write encodes fb as indented JSON without escaping non-ASCII or HTML characters.
func Write(w io.Writer, fb Feedback) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(fb)
}
