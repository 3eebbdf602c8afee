package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/project-cli/internal/atomicfile"
)

// Load reads the store at path. A missing file yields an empty store. A file
// that cannot be decoded yields ErrCorruptStore; it is never repaired.
// The containing directory is created if needed.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	s, err := Decode(data)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			se.Message = fmt.Sprintf("%s is not a valid store", path)
			se.Hint = "Fix or delete the file by hand; it is never repaired automatically"
		}
		return nil, err
	}
	return s, nil
}

// Save writes s to path through a temporary sibling file and a rename, so
// the store file is never observed half-written.
func Save(path string, s *Store) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("store path is required")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := atomicfile.WriteFileMkdir(path, data, 0); err != nil {
		return fmt.Errorf("failed to write store %s: %w", path, err)
	}
	return nil
}
