package engine

import (
	"fmt"

	"github.com/aidanlsb/project-cli/internal/bitbucket"
	"github.com/aidanlsb/project-cli/internal/store"
)

// Well-known shortcut keys used by the repository helpers.
const (
	RepoKey = "repo"
	DirKey  = "dir"
)

// ImportReport summarizes ImportRepos.
type ImportReport struct {
	Created []string          `json:"created"`
	Updated []string          `json:"updated"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

// ImportRepos sets the repo shortcut of the project derived from each URL.
// Unknown projects are created when create is true and skipped otherwise.
// Invalid URLs are skipped. With no active project, the first created one
// becomes active.
func ImportRepos(s *store.Store, urls []string, create bool) (ImportReport, bool) {
	report := ImportReport{Created: []string{}, Updated: []string{}}
	skip := func(url, reason string) {
		if report.Skipped == nil {
			report.Skipped = make(map[string]string)
		}
		report.Skipped[url] = reason
	}

	changed := false
	for _, raw := range urls {
		repoURL := bitbucket.TrimBrowse(raw)
		name, err := bitbucket.ProjectName(repoURL)
		if err != nil {
			skip(raw, err.Error())
			continue
		}
		if err := ValidateProjectName(name); err != nil {
			skip(raw, err.Error())
			continue
		}

		set, ok := s.Project(name)
		if !ok {
			if !create {
				skip(raw, fmt.Sprintf("no such project: %s", name))
				continue
			}
			set = store.NewShortcutSet()
			s.PutProject(name, set)
			report.Created = append(report.Created, name)
			changed = true
		} else {
			report.Updated = append(report.Updated, name)
		}

		if prev, had := set.Get(RepoKey); !had || prev != repoURL {
			set.Set(RepoKey, repoURL)
			changed = true
		}
	}

	if s.Active == "" && len(report.Created) > 0 {
		s.Active = report.Created[0]
	}
	return report, changed
}

// CloneTarget checks that name has a repo shortcut and no dir shortcut and
// returns the git clone URL of the repository.
func CloneTarget(s *store.Store, name string) (string, error) {
	set, ok := s.Project(name)
	if !ok {
		return "", noSuchProject(name)
	}
	if dir, ok := set.Get(DirKey); ok && dir != "" {
		return "", store.AlreadyExists("", "project '%s' already has a %s shortcut: %s", name, DirKey, dir)
	}
	repo, ok := set.Get(RepoKey)
	if !ok || repo == "" {
		return "", store.NotFound("project '%s' has no %s shortcut", name, RepoKey)
	}
	return bitbucket.CloneURL(repo), nil
}

// RecordClone selects name and stores its dir shortcut.
func RecordClone(s *store.Store, name, dir string) (Result, error) {
	set, ok := s.Project(name)
	if !ok {
		return Result{}, noSuchProject(name)
	}
	set.Set(DirKey, dir)
	s.Active = name
	return Result{
		Message: fmt.Sprintf("[%s] set '%s' -> %s", name, DirKey, dir),
		Changed: true,
	}, nil
}
