package codegen

import "github.com/okra-platform/lcmgen/internal/schema"

// Backend is the interface that all language-specific code generators must implement.
// Output for a package is assembled by the Aggregator: one Header, then the
// Declaration of every struct, then the Behavior of every struct.
type Backend interface {
	// Language returns the name of the target language (e.g., "go", "rust")
	Language() string

	// FileName returns the name of the aggregate file written for each package (e.g., "mod.rs")
	FileName() string

	// Header returns the preamble of a package file: disclaimer and imports
	Header(pkg *schema.Package) ([]byte, error)

	// Declaration returns the type declaration of a struct
	Declaration(pkg *schema.Package, s *schema.Struct) ([]byte, error)

	// Behavior returns the constants and marshalling routines of a struct
	Behavior(pkg *schema.Package, s *schema.Struct) ([]byte, error)
}

// Formatter is implemented by backends that can normalize a finished file
type Formatter interface {
	Format(path string, src []byte) ([]byte, error)
}

// Options contains common options for code generation
type Options struct {
	// FileName overrides the backend's aggregate file name
	FileName string

	// GoImportPrefix is the Go import path of the output root
	GoImportPrefix string

	// GoRuntimeImport is the import path of the lcm runtime package
	GoRuntimeImport string

	// GoDefaultPackage is the package clause used for structs outside any package
	GoDefaultPackage string
}
