package store

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// MarshalYAML encodes the set as a mapping in insertion order.
func (s *ShortcutSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	s.Each(func(key, value string) {
		node.Content = append(node.Content, scalarNode(key), scalarNode(value))
	})
	return node, nil
}

// MarshalYAML encodes the store in the same shape as its JSON document.
func (s *Store) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if s.Active != "" {
		node.Content = append(node.Content, scalarNode(ActiveKey), scalarNode(s.Active))
	}
	for _, name := range s.ProjectNames() {
		set, _ := s.Project(name)
		value, err := set.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(name), value.(*yaml.Node))
	}
	return node, nil
}

// EncodeYAML renders s as a YAML document with two-space indentation.
func EncodeYAML(s *Store) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
