package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFiles reads one or more serialized models and merges them into a single
// checked Model. Packages sharing a name are merged in the order they are seen.
func LoadFiles(paths ...string) (*Model, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}

	model := &Model{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
		}

		part, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		model.Merge(part)
	}

	if err := Validate(model); err != nil {
		return nil, err
	}

	return model, nil
}

// Parse decodes one serialized model and resolves unqualified type names
// against their enclosing package. It does not validate.
func Parse(data []byte) (*Model, error) {
	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	resolve(&model)

	return &model, nil
}

// Merge appends the packages of other to m, folding same-named packages together.
func (m *Model) Merge(other *Model) {
	for _, p := range other.Packages {
		if existing := m.Package(p.Name); existing != nil {
			existing.Structs = append(existing.Structs, p.Structs...)
			continue
		}

		m.Packages = append(m.Packages, p)
	}
}

// resolve qualifies struct names and unqualified, non-primitive member types
// with the enclosing package name.
func resolve(m *Model) {
	for _, p := range m.Packages {
		for _, s := range p.Structs {
			s.Name.Package = p.Name

			for i := range s.Members {
				t := &s.Members[i].Type
				if t.Package == "" && !IsPrimitive(t.Short) {
					t.Package = p.Name
				}
			}
		}
	}
}
