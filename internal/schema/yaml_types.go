package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML reads a type name from a plain string
func (t *TypeName) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: type name must be a string", node.Line)
	}

	*t = ParseTypeName(strings.TrimSpace(node.Value))

	return nil
}

// MarshalYAML writes the dotted type name
func (t TypeName) MarshalYAML() (any, error) {
	return t.Full(), nil
}
