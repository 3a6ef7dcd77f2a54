package golang

import (
	"go/token"
	"strings"

	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// primitive is the Go spelling of a schema primitive and the suffix of its
// lcm runtime codec functions (lcm.Write<Codec>, lcm.Read<Codec>, lcm.Size<Codec>).
type primitive struct {
	goType string
	codec  string
}

var primitives = map[string]primitive{
	schema.TypeBoolean: {"bool", "Bool"},
	schema.TypeString:  {"string", "String"},
	schema.TypeByte:    {"byte", "Byte"},
	schema.TypeInt8:    {"int8", "Int8"},
	schema.TypeInt16:   {"int16", "Int16"},
	schema.TypeInt32:   {"int32", "Int32"},
	schema.TypeInt64:   {"int64", "Int64"},
	schema.TypeUint8:   {"uint8", "Uint8"},
	schema.TypeUint16:  {"uint16", "Uint16"},
	schema.TypeUint32:  {"uint32", "Uint32"},
	schema.TypeUint64:  {"uint64", "Uint64"},
	schema.TypeFloat:   {"float32", "Float32"},
	schema.TypeDouble:  {"float64", "Float64"},
}

// methodNames are the identifiers every generated struct defines as methods,
// so no field may use them.
var methodNames = map[string]bool{
	"Encode":      true,
	"Decode":      true,
	"Size":        true,
	"Fingerprint": true,
}

// Mapper is the Go naming convention
type Mapper struct {
	// ImportPrefix is the import path of the output root directory.
	ImportPrefix string
}

var _ naming.NameMapper = Mapper{}

func (Mapper) TypeNameOf(id string) string {
	return naming.TypeName(id)
}

// FieldNameOf exports a member name. Names that would shadow a generated
// method get a trailing underscore.
func (Mapper) FieldNameOf(member string) string {
	name := naming.CamelCase(member)
	if methodNames[name] {
		name += "_"
	}

	return name
}

func (Mapper) PrimitiveTypeOf(name string) (string, bool) {
	p, ok := primitives[name]
	return p.goType, ok
}

func (m Mapper) ModuleImportPath(pkg string) string {
	dir := naming.PackageDir(pkg)
	if dir == "" {
		return m.ImportPrefix
	}

	if m.ImportPrefix == "" {
		return dir
	}

	return strings.TrimSuffix(m.ImportPrefix, "/") + "/" + dir
}

// PackageName is the package clause used for a schema package: its last
// segment, with an underscore appended to Go keywords. The unnamed schema
// package uses def.
func PackageName(pkg, def string) string {
	if pkg == "" {
		return def
	}

	return identifier(naming.LastSegment(pkg))
}

func identifier(s string) string {
	if token.IsKeyword(s) {
		return s + "_"
	}

	return s
}

func codecOf(t schema.TypeName) (string, bool) {
	if !t.IsPrimitive() {
		return "", false
	}

	return primitives[t.Short].codec, true
}
