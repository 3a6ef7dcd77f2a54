package rust

import (
	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/schema"
)

var primitives = map[string]string{
	schema.TypeBoolean: "bool",
	schema.TypeString:  "String",
	schema.TypeByte:    "u8",
	schema.TypeInt8:    "i8",
	schema.TypeInt16:   "i16",
	schema.TypeInt32:   "i32",
	schema.TypeInt64:   "i64",
	schema.TypeUint8:   "u8",
	schema.TypeUint16:  "u16",
	schema.TypeUint32:  "u32",
	schema.TypeUint64:  "u64",
	schema.TypeFloat:   "f32",
	schema.TypeDouble:  "f64",
}

// keywords that cannot be used as plain identifiers (2018 edition and later)
var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "fn": true, "for": true, "if": true, "impl": true, "in": true,
	"let": true, "loop": true, "match": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "return": true, "static": true,
	"struct": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "abstract": true, "become": true,
	"box": true, "do": true, "final": true, "macro": true, "override": true,
	"priv": true, "typeof": true, "unsized": true, "virtual": true, "yield": true,
	"try": true, "gen": true,
}

// Mapper is the Rust naming convention
type Mapper struct{}

var _ naming.NameMapper = Mapper{}

func (Mapper) TypeNameOf(id string) string {
	return naming.TypeName(id)
}

// FieldNameOf keeps member names as they are, escaping keywords as raw identifiers.
func (Mapper) FieldNameOf(member string) string {
	if keywords[member] {
		return "r#" + member
	}

	return member
}

func (Mapper) PrimitiveTypeOf(name string) (string, bool) {
	t, ok := primitives[name]
	return t, ok
}

func (Mapper) ModuleImportPath(pkg string) string {
	return naming.NestedPath(pkg, "::")
}
