package shortcut

import (
	"context"
	"os"
	"path/filepath"
)

// Resolution is the outcome of resolving a stored value.
type Resolution struct {
	Kind Kind
	// Target is the URL that was opened, or the absolute directory path.
	Target string
	// Exists is false when a directory target is missing on disk.
	Exists bool
	// OpenErr is set when the opener failed on a URL. This is a soft
	// failure: the resolution itself still succeeded.
	OpenErr error
}

// Resolver turns stored values into actions.
type Resolver struct {
	Expander Expander
	Opener   Opener
	// Stat defaults to os.Stat.
	Stat func(string) (os.FileInfo, error)
}

func (r *Resolver) stat(p string) (os.FileInfo, error) {
	if r.Stat != nil {
		return r.Stat(p)
	}
	return os.Stat(p)
}

// Resolve classifies value and acts on it. URLs are handed to the opener.
// Directories are expanded and checked for existence; nothing is opened.
func (r *Resolver) Resolve(ctx context.Context, value string) Resolution {
	if IsURL(value) {
		res := Resolution{Kind: KindURL, Target: value, Exists: true}
		if r.Opener != nil {
			res.OpenErr = r.Opener.Open(ctx, value)
		}
		return res
	}

	dir := r.Expander.Expand(value)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	res := Resolution{Kind: KindDirectory, Target: dir}
	if info, err := r.stat(dir); err == nil && info.IsDir() {
		res.Exists = true
	}
	return res
}
