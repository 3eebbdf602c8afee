package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the store in its on-disk shape: the active reference
// first (omitted when unset), then projects in sorted order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	sep := func() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
	}

	if s.Active != "" {
		sep()
		if err := writeMember(&buf, ActiveKey, nil, s.Active); err != nil {
			return nil, err
		}
	}

	for _, name := range s.ProjectNames() {
		set, _ := s.Project(name)
		raw, err := set.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode project %q: %w", name, err)
		}
		sep()
		if err := writeMember(&buf, name, raw, ""); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the on-disk shape. "active-project" may be a string
// or null; every other member must be an object of string values.
func (s *Store) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return fmt.Errorf("top-level value must be an object")
	}

	out := New()
	for name, raw := range top {
		if name == ActiveKey {
			var active *string
			if err := json.Unmarshal(raw, &active); err != nil {
				return fmt.Errorf("%s must be a string: %w", ActiveKey, err)
			}
			if active != nil {
				out.Active = *active
			}
			continue
		}

		set := NewShortcutSet()
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := set.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("project %q: %w", name, err)
			}
		}
		out.Projects[name] = set
	}

	*s = *out
	return nil
}

// Encode returns the indented document written to disk, with a trailing
// newline. It bypasses encoding/json's HTML escaping.
func Encode(s *Store) ([]byte, error) {
	compact, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Decode parses a store document. Any failure is reported as ErrCorruptStore.
func Decode(data []byte) (*Store, error) {
	s := New()
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, &Error{Kind: ErrCorruptStore, Message: "store is not valid JSON", Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &Error{Kind: ErrCorruptStore, Message: "store is invalid", Err: err}
	}
	return s, nil
}
