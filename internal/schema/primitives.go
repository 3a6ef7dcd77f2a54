package schema

// Primitive type names understood by every backend
const (
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeByte    = "byte"
	TypeInt8    = "int8_t"
	TypeInt16   = "int16_t"
	TypeInt32   = "int32_t"
	TypeInt64   = "int64_t"
	TypeUint8   = "uint8_t"
	TypeUint16  = "uint16_t"
	TypeUint32  = "uint32_t"
	TypeUint64  = "uint64_t"
	TypeFloat   = "float"
	TypeDouble  = "double"
)

var primitives = map[string]bool{
	TypeBoolean: true,
	TypeString:  true,
	TypeByte:    true,
	TypeInt8:    true,
	TypeInt16:   true,
	TypeInt32:   true,
	TypeInt64:   true,
	TypeUint8:   true,
	TypeUint16:  true,
	TypeUint32:  true,
	TypeUint64:  true,
	TypeFloat:   true,
	TypeDouble:  true,
}

var integers = map[string]bool{
	TypeByte:   true,
	TypeInt8:   true,
	TypeInt16:  true,
	TypeInt32:  true,
	TypeInt64:  true,
	TypeUint8:  true,
	TypeUint16: true,
	TypeUint32: true,
	TypeUint64: true,
}

// IsPrimitive reports whether name is a primitive type name
func IsPrimitive(name string) bool {
	return primitives[name]
}

// IsInteger reports whether name is an integer primitive, i.e. usable as an array size
func IsInteger(name string) bool {
	return integers[name]
}

// IsConstType reports whether a constant may be declared with the given type
func IsConstType(name string) bool {
	return integers[name] || name == TypeFloat || name == TypeDouble
}
