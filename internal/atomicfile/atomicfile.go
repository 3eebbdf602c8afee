// Package atomicfile replaces files without ever exposing a half-written copy.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically (best-effort cross-platform).
//
// The data goes to a temporary sibling file which is synced and then renamed
// over path. Readers observe either the old content or the new content.
//
// perm is applied to the new file. If perm is 0 the existing file's mode is
// kept when there is one, otherwise 0644 is used.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Some filesystems reject chmod; the default CreateTemp mode (0600) is fine then.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// WriteFileMkdir is WriteFile after creating path's parent directories.
func WriteFileMkdir(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return WriteFile(path, data, perm)
}

func rename(from, to string) error {
	err := os.Rename(from, to)
	if err == nil {
		return nil
	}
	// Windows refuses to rename over an existing file; remove first (not atomic).
	_ = os.Remove(to)
	if err2 := os.Rename(from, to); err2 != nil {
		return err
	}
	return nil
}

// syncDir flushes the directory entry so the rename survives a crash.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
