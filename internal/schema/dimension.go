package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=DimensionMode -trimprefix=Dimension -output=dimensionmode_string.go

// DimensionMode tells how the element count of an array dimension is known
type DimensionMode int

const (
	// DimensionFixed has a literal size known when the schema is compiled
	DimensionFixed DimensionMode = iota
	// DimensionDynamic is sized at runtime by an earlier sibling member
	DimensionDynamic
)

// Dimension is one array level of a member
type Dimension struct {
	Mode DimensionMode
	// Size is the integer literal for fixed dimensions and the sizing
	// member's name for dynamic ones.
	Size string
}

// ParseDimension classifies a size string: integer literals are fixed, anything else
// names the member that carries the count.
func ParseDimension(size string) Dimension {
	size = strings.TrimSpace(size)
	if _, err := strconv.ParseInt(size, 0, 64); err == nil {
		return Dimension{Mode: DimensionFixed, Size: size}
	}

	return Dimension{Mode: DimensionDynamic, Size: size}
}

// FixedLen returns the element count of a fixed dimension
func (d Dimension) FixedLen() (int, error) {
	if d.Mode != DimensionFixed {
		return 0, fmt.Errorf("dimension %q is not fixed", d.Size)
	}

	n, err := strconv.ParseInt(d.Size, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fixed dimension %q: %w", d.Size, err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative fixed dimension %q", d.Size)
	}

	return int(n), nil
}

// UnmarshalYAML accepts either a bare size ("3", "num_ranges") or a mapping
// with explicit mode and size.
func (d *Dimension) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = ParseDimension(node.Value)

		return nil

	case yaml.MappingNode:
		var raw struct {
			Mode string `yaml:"mode"`
			Size string `yaml:"size"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		mode, err := parseMode(raw.Mode)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*d = Dimension{Mode: mode, Size: strings.TrimSpace(raw.Size)}

		return nil

	default:
		return fmt.Errorf("line %d: expected size or {mode, size}, got %v", node.Line, node.Kind)
	}
}

func parseMode(s string) (DimensionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "const":
		return DimensionFixed, nil
	case "dynamic", "var":
		return DimensionDynamic, nil
	default:
		return 0, fmt.Errorf("unknown dimension mode %q", s)
	}
}

// Literal returns the size of a fixed dimension in decimal, so that
// base prefixes never reach a target language that reads them differently.
// Dynamic and invalid sizes are returned unchanged.
func (d Dimension) Literal() string {
	n, err := d.FixedLen()
	if err != nil {
		return d.Size
	}

	return strconv.Itoa(n)
}
