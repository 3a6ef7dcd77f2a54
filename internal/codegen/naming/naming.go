// Package naming holds the identifier conventions shared by the backends.
// Every function here is pure and returns a freshly built string.
package naming

import (
	"path"
	"strings"
	"unicode"
)

// NameMapper translates schema identifiers into target-language spellings.
// Emitters only go through this interface so that an alternate convention
// can be swapped in without touching them.
type NameMapper interface {
	// TypeNameOf converts a struct's short name into a type identifier.
	TypeNameOf(id string) string
	// FieldNameOf converts a member name into a field identifier.
	FieldNameOf(member string) string
	// PrimitiveTypeOf returns the target spelling of a primitive type name.
	PrimitiveTypeOf(name string) (string, bool)
	// ModuleImportPath maps a dotted package name to the path used in import statements.
	ModuleImportPath(pkg string) string
}

// MapType returns the primitive spelling of name, or its struct type name.
func MapType(m NameMapper, name string) string {
	if t, ok := m.PrimitiveTypeOf(name); ok {
		return t
	}

	return m.TypeNameOf(name)
}

// CamelCase converts snake_case to UpperCamelCase. Underscores mark word
// boundaries and every other letter is lower-cased.
func CamelCase(id string) string {
	var sb strings.Builder

	sb.Grow(len(id))

	upper := true

	for _, r := range id {
		if r == '_' {
			upper = true
			continue
		}

		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}

// TypeName is CamelCase plus the C convention of dropping a "_t" suffix:
// a trailing 'T' is removed when the result is longer than two characters.
func TypeName(id string) string {
	name := CamelCase(id)
	if len(name) > 2 && strings.HasSuffix(name, "T") {
		name = name[:len(name)-1]
	}

	return name
}

// NestedPath joins the segments of a dotted package name with sep.
func NestedPath(pkg, sep string) string {
	return strings.ReplaceAll(pkg, ".", sep)
}

// PackageDir is the slash-separated directory of a package below the output root.
func PackageDir(pkg string) string {
	return path.Clean("/" + NestedPath(pkg, "/"))[1:]
}

// LastSegment returns the final component of a dotted package name.
func LastSegment(pkg string) string {
	if i := strings.LastIndexByte(pkg, '.'); i >= 0 {
		return pkg[i+1:]
	}

	return pkg
}
