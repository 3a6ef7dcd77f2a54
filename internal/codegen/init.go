package codegen

import (
	"github.com/okra-platform/lcmgen/internal/codegen/golang"
	"github.com/okra-platform/lcmgen/internal/codegen/rust"
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "go"

// DefaultRegistry is the global registry instance with pre-registered backends
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register("go", func(opts Options) Backend {
		return golang.NewGenerator(golang.Config{
			ImportPrefix:   opts.GoImportPrefix,
			RuntimeImport:  opts.GoRuntimeImport,
			FileName:       opts.FileName,
			DefaultPackage: opts.GoDefaultPackage,
		})
	})

	DefaultRegistry.Register("rust", func(opts Options) Backend {
		return rust.NewGenerator(rust.Config{FileName: opts.FileName})
	})

	// Register rs as an alias for rust
	DefaultRegistry.Register("rs", func(opts Options) Backend {
		return rust.NewGenerator(rust.Config{FileName: opts.FileName})
	})
}
