// Package bitbucket converts Bitbucket Server repository URLs into the
// related Jenkins job and git clone URLs, and derives project names from them.
//
// Repository browse URLs look like:
//
//	https://host/projects/<workspace>/repos/<repo>/browse
package bitbucket

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Repo identifies a repository on a Bitbucket Server.
type Repo struct {
	Scheme    string
	Host      string
	Workspace string
	Name      string
}

// Parse extracts the workspace and repository from a browse URL.
func Parse(raw string) (Repo, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Repo{}, fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	ws := segmentAfter(parts, "projects")
	name := segmentAfter(parts, "repos")
	if ws == "" || name == "" {
		return Repo{}, fmt.Errorf("bitbucket URL must look like https://host/projects/<workspace>/repos/<repo>/browse, got %q", raw)
	}
	return Repo{Scheme: u.Scheme, Host: u.Host, Workspace: ws, Name: name}, nil
}

func segmentAfter(parts []string, marker string) string {
	for i, p := range parts {
		if p == marker && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// JenkinsURL returns the builds page of the Jenkins job mirroring the
// repository: <domain>/job/<workspace>/job/<repo>/view/default/builds.
func JenkinsURL(bitbucketURL, jenkinsDomain string) (string, error) {
	domain := strings.TrimRight(strings.TrimSpace(jenkinsDomain), "/")
	if domain == "" {
		return "", fmt.Errorf("jenkins domain is required")
	}
	repo, err := Parse(bitbucketURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/job/%s/job/%s/view/default/builds", domain, repo.Workspace, repo.Name), nil
}

// TrimBrowse drops a trailing "/browse" (and slashes) from a repository URL.
func TrimBrowse(raw string) string {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	s = strings.TrimSuffix(s, "/browse")
	return strings.TrimRight(s, "/")
}

// CloneURL turns a repository URL into its git clone URL:
// /projects/ becomes /scm/, /repos/ becomes /, and ".git" is appended.
func CloneURL(repoURL string) string {
	s := TrimBrowse(repoURL)
	s = strings.Replace(s, "/projects/", "/scm/", 1)
	s = strings.Replace(s, "/repos/", "/", 1)
	if !strings.HasSuffix(s, ".git") {
		s += ".git"
	}
	return s
}

// ProjectName derives a project name from the repository segment of a URL.
func ProjectName(repoURL string) (string, error) {
	repo, err := Parse(repoURL)
	if err != nil {
		return "", err
	}
	name := goslug.Make(repo.Name)
	if name == "" {
		return "", fmt.Errorf("cannot derive a project name from %q", repoURL)
	}
	return name, nil
}

// ReadURLs reads one URL per line, skipping blank lines and '#' comments.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
