package schema

import (
	"errors"
	"fmt"
)

// Validate checks the structural assumptions code generation relies on.
// All problems are reported together.
func Validate(m *Model) error {
	var errs []error

	seen := make(map[string]bool)

	for _, p := range m.Packages {
		for _, s := range p.Structs {
			name := s.Name.Full()
			if seen[name] {
				errs = append(errs, fmt.Errorf("%s: duplicate struct", name))
			}

			seen[name] = true

			errs = append(errs, validateStruct(m, s)...)
		}
	}

	return errors.Join(errs...)
}

func validateStruct(m *Model, s *Struct) []error {
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{s.Name.Full()}, args...)...))
	}

	if IsPrimitive(s.Name.Short) {
		fail("struct name shadows a primitive type")
	}

	members := make(map[string]int)

	for i, mem := range s.Members {
		if mem.Name == "" {
			fail("member %d has no name", i)
		}

		if _, dup := members[mem.Name]; dup {
			fail("duplicate member %q", mem.Name)
		}

		members[mem.Name] = i

		if !mem.Type.IsPrimitive() && m.Struct(mem.Type) == nil {
			fail("member %q: unknown type %s", mem.Name, mem.Type.Full())
		}

		selfRef := mem.Type == s.Name
		hasDynamic := false

		for _, d := range mem.Dimensions {
			switch d.Mode {
			case DimensionFixed:
				if _, err := d.FixedLen(); err != nil {
					fail("member %q: %v", mem.Name, err)
				}

			case DimensionDynamic:
				hasDynamic = true

				idx, ok := members[d.Size]
				if !ok || idx >= i {
					fail("member %q: size %q must name an earlier member", mem.Name, d.Size)
					continue
				}

				sizer := s.Members[idx]
				if !sizer.IsScalar() || !sizer.Type.IsPrimitive() || !IsInteger(sizer.Type.Short) {
					fail("member %q: size member %q must be a scalar integer", mem.Name, d.Size)
				}

			default:
				fail("member %q: invalid dimension mode %v", mem.Name, d.Mode)
			}
		}

		if selfRef && !hasDynamic {
			fail("member %q: self reference requires a dynamic dimension", mem.Name)
		}
	}

	for _, c := range s.Constants {
		if !IsConstType(c.Type) {
			fail("constant %q: type %q cannot be a constant", c.Name, c.Type)
		}

		if c.Value == "" {
			fail("constant %q has no value", c.Name)
		}
	}

	return errs
}
