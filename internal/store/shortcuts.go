package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ShortcutSet maps shortcut keys to stored values, keeping insertion order.
// Overwriting an existing key keeps its position.
type ShortcutSet struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewShortcutSet returns an empty set.
func NewShortcutSet() *ShortcutSet {
	return &ShortcutSet{m: orderedmap.New[string, string]()}
}

func (s *ShortcutSet) entries() *orderedmap.OrderedMap[string, string] {
	if s.m == nil {
		s.m = orderedmap.New[string, string]()
	}
	return s.m
}

// Len returns the number of shortcuts.
func (s *ShortcutSet) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Get returns the stored value for key.
func (s *ShortcutSet) Get(key string) (string, bool) {
	if s == nil || s.m == nil {
		return "", false
	}
	return s.m.Get(key)
}

// Has reports whether key is present.
func (s *ShortcutSet) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set inserts or overwrites key.
func (s *ShortcutSet) Set(key, value string) {
	s.entries().Set(key, value)
}

// Delete removes key and reports whether it was present.
func (s *ShortcutSet) Delete(key string) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m.Delete(key)
	return ok
}

// Rename moves the value stored under old to new, overwriting new.
func (s *ShortcutSet) Rename(old, new string) bool {
	value, ok := s.Get(old)
	if !ok {
		return false
	}
	if old == new {
		return true
	}
	s.m.Delete(old)
	s.m.Set(new, value)
	return true
}

// Keys returns the keys in insertion order.
func (s *ShortcutSet) Keys() []string {
	keys := make([]string, 0, s.Len())
	s.Each(func(key, _ string) {
		keys = append(keys, key)
	})
	return keys
}

// Each calls fn for every shortcut in insertion order.
func (s *ShortcutSet) Each(fn func(key, value string)) {
	if s == nil || s.m == nil {
		return
	}
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns a deep copy.
func (s *ShortcutSet) Clone() *ShortcutSet {
	out := NewShortcutSet()
	s.Each(out.Set)
	return out
}

// MarshalJSON encodes the set as an object in insertion order without HTML
// escaping, so URLs containing '&' stay readable in the store file.
func (s *ShortcutSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var encErr error
	s.Each(func(key, value string) {
		if encErr != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		encErr = writeMember(&buf, key, []byte(nil), value)
	})
	if encErr != nil {
		return nil, encErr
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of string values, preserving key order.
// A null value is rejected like any other non-string.
func (s *ShortcutSet) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, *string]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("shortcuts must be an object of strings: %w", err)
	}
	m := orderedmap.New[string, string]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			return fmt.Errorf("shortcut %q must be a string, got null", pair.Key)
		}
		m.Set(pair.Key, *pair.Value)
	}
	s.m = m
	return nil
}

// writeMember writes `"key":value` where value is either raw (already
// encoded JSON) or, when raw is nil, the string str.
func writeMember(buf *bytes.Buffer, key string, raw []byte, str string) error {
	k, err := encodeString(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	if raw != nil {
		buf.Write(raw)
		return nil
	}
	v, err := encodeString(str)
	if err != nil {
		return err
	}
	buf.Write(v)
	return nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
