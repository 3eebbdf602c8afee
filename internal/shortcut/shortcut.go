// Package shortcut classifies stored shortcut values and resolves them.
//
// A stored value is a URL when it starts with "http://" or "https://" and a
// filesystem directory otherwise. Directories are normalized to an absolute,
// home-expanded path when they are stored. Environment references are
// expanded when they are resolved.
package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind is the classification of a stored shortcut value.
type Kind int

const (
	// KindURL is a value opened with the OS default handler.
	KindURL Kind = iota
	// KindDirectory is a value printed as a path for shell consumption.
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindDirectory:
		return "dir"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind as "url" or "dir".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify returns the kind of a stored value. The match is a case-sensitive
// prefix check, not URI scheme parsing.
func Classify(value string) Kind {
	if IsURL(value) {
		return KindURL
	}
	return KindDirectory
}

// IsURL reports whether value is stored as a URL.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// Expander expands home and environment references in directory values.
// The zero value uses the process environment and home directory.
type Expander struct {
	HomeDir   func() (string, error)
	LookupEnv func(string) (string, bool)
}

func (e Expander) homeDir() (string, error) {
	if e.HomeDir != nil {
		return e.HomeDir()
	}
	return os.UserHomeDir()
}

func (e Expander) lookupEnv(key string) (string, bool) {
	if e.LookupEnv != nil {
		return e.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandEnv replaces $VAR and ${VAR} references to set variables. Unset
// references and any other '$' text are left as written.
func (e Expander) ExpandEnv(p string) string {
	return envRef.ReplaceAllStringFunc(p, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := e.lookupEnv(name); ok {
			return v
		}
		return ref
	})
}

// ExpandHome replaces a leading "~" or "~/" with the home directory.
func (e Expander) ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := e.homeDir()
		if err != nil || home == "" {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}

// Expand applies ExpandEnv then ExpandHome, so a variable holding "~/x" is
// still home-expanded.
func (e Expander) Expand(p string) string {
	return e.ExpandHome(e.ExpandEnv(p))
}

// Normalize returns the value to persist for a shortcut. URLs are stored
// verbatim. Directories are home-expanded and made absolute against cwd;
// environment references are kept and expanded at resolution. A value that
// starts with one is stored as typed.
func (e Expander) Normalize(value, cwd string) string {
	if IsURL(value) {
		return value
	}
	if strings.HasPrefix(value, "$") {
		return value
	}
	p := e.ExpandHome(value)
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return filepath.Clean(p)
}
