package schema

import (
	"sort"
	"strings"
)

// Model is the root of a loaded message schema: an ordered set of packages
type Model struct {
	Packages []*Package `yaml:"packages"`
}

// Package groups the structs that share a dotted namespace
type Package struct {
	Name    string    `yaml:"name"`
	Structs []*Struct `yaml:"structs"`
}

// Struct represents a single message type
type Struct struct {
	Name      TypeName    `yaml:"name"`
	Members   []Member    `yaml:"members"`
	Constants []Constant  `yaml:"constants"`
	Hash      Fingerprint `yaml:"hash"`
	Comment   string      `yaml:"comment"`
}

// Member represents a field of a struct. Declaration order is wire order.
type Member struct {
	Name       string      `yaml:"name"`
	Type       TypeName    `yaml:"type"`
	Dimensions []Dimension `yaml:"dims"`
	Comment    string      `yaml:"comment"`
}

// Constant is a struct-scoped named literal. Constants are not encoded.
type Constant struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Value   string `yaml:"value"`
	Comment string `yaml:"comment"`
}

// TypeName identifies a primitive or a struct, e.g. "int32_t" or "exlcm.example_t"
type TypeName struct {
	Package string
	Short   string
}

// ParseTypeName splits a possibly qualified type name at its last dot.
func ParseTypeName(s string) TypeName {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return TypeName{Package: s[:i], Short: s[i+1:]}
	}

	return TypeName{Short: s}
}

// Full returns the dotted name of the type
func (t TypeName) Full() string {
	if t.Package == "" {
		return t.Short
	}

	return t.Package + "." + t.Short
}

// String implements fmt.Stringer
func (t TypeName) String() string {
	return t.Full()
}

// IsPrimitive reports whether the type is one of the built-in primitives
func (t TypeName) IsPrimitive() bool {
	return t.Package == "" && IsPrimitive(t.Short)
}

// IsScalar reports whether the member has no dimensions
func (m *Member) IsScalar() bool {
	return len(m.Dimensions) == 0
}

// Member returns the member with the given name, or nil
func (s *Struct) Member(name string) *Member {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return &s.Members[i]
		}
	}

	return nil
}

// SizingMembers returns the names of members referenced by a dynamic dimension,
// in declaration order.
func (s *Struct) SizingMembers() []string {
	seen := make(map[string]bool)
	for _, m := range s.Members {
		for _, d := range m.Dimensions {
			if d.Mode == DimensionDynamic {
				seen[d.Size] = true
			}
		}
	}

	var names []string
	for _, m := range s.Members {
		if seen[m.Name] {
			names = append(names, m.Name)
		}
	}

	return names
}

// Peers returns the sorted names of the other packages whose structs the
// members of p reference.
func (p *Package) Peers() []string {
	seen := make(map[string]bool)
	for _, s := range p.Structs {
		for _, m := range s.Members {
			if !m.Type.IsPrimitive() && m.Type.Package != p.Name {
				seen[m.Type.Package] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Package returns the package with the given name, or nil
func (m *Model) Package(name string) *Package {
	for _, p := range m.Packages {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Struct looks up a struct by type name
func (m *Model) Struct(t TypeName) *Struct {
	p := m.Package(t.Package)
	if p == nil {
		return nil
	}

	for _, s := range p.Structs {
		if s.Name.Short == t.Short {
			return s
		}
	}

	return nil
}
