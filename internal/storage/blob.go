package storage

import (
	"encoding/base64"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Blob is raw binary data (custom creature photos) that serializes as a
// YAML !!binary scalar instead of a list of integers.
type Blob []byte

// MarshalYAML implements yaml.Marshaler.
func (b Blob) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!binary",
		Value: base64.StdEncoding.EncodeToString(b),
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Blob) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("blob: expected scalar, got kind %d", n.Kind)
	}
	clean := strings.Join(strings.Fields(n.Value), "")
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return fmt.Errorf("blob: %w", err)
	}
	*b = data
	return nil
}
