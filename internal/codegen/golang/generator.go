package golang

import (
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

const (
	// DefaultFileName is the aggregate file written into every package directory
	DefaultFileName = "lcm_types.go"
	// DefaultPackage is the package clause for structs without a schema package
	DefaultPackage = "lcmtypes"
	// DefaultRuntimeImport is the import path of the runtime generated code depends on
	DefaultRuntimeImport = "github.com/okra-platform/lcmgen/lcm"
)

// Config holds the Go backend settings
type Config struct {
	// ImportPrefix is the import path that corresponds to the output root.
	ImportPrefix   string
	RuntimeImport  string
	FileName       string
	DefaultPackage string
}

// Generator generates Go message types from a schema model
type Generator struct {
	cfg    Config
	mapper Mapper
}

// NewGenerator creates a new Go code generator. Empty settings take their defaults.
func NewGenerator(cfg Config) *Generator {
	if cfg.RuntimeImport == "" {
		cfg.RuntimeImport = DefaultRuntimeImport
	}

	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}

	if cfg.DefaultPackage == "" {
		cfg.DefaultPackage = DefaultPackage
	}

	return &Generator{
		cfg:    cfg,
		mapper: Mapper{ImportPrefix: cfg.ImportPrefix},
	}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "go"
}

// FileName returns the name of the per-package aggregate file
func (g *Generator) FileName() string {
	return g.cfg.FileName
}

// Header renders the generated-code disclaimer, package clause and the
// imports needed by every struct of pkg.
func (g *Generator) Header(pkg *schema.Package) ([]byte, error) {
	w := writer.NewWriter("\t", "//")

	w.WriteLine("// Code generated by lcmgen. DO NOT EDIT.")
	w.BlankLine()
	w.WriteLinef("package %s", PackageName(pkg.Name, g.cfg.DefaultPackage))
	w.BlankLine()

	w.WriteBlock("import (", ")", func() {
		for _, line := range g.writeImports(g.resolveImports(pkg)) {
			if line == "" {
				w.Newline()
				continue
			}
			w.WriteLine(line)
		}
	})

	return w.Bytes(), nil
}

// Declaration renders the struct type of s
func (g *Generator) Declaration(pkg *schema.Package, s *schema.Struct) ([]byte, error) {
	set := g.resolveImports(pkg)
	name := g.mapper.TypeNameOf(s.Name.Short)
	w := writer.NewWriter("\t", "//")

	w.Newline()
	w.WriteDocComment(s.Comment)
	w.WriteBlock(fmt.Sprintf("type %s struct {", name), "}", func() {
		for i := range s.Members {
			m := &s.Members[i]
			w.WriteDocComment(m.Comment)
			w.WriteLinef("%s %s", g.mapper.FieldNameOf(m.Name), g.renderType(set, m.Type, m.Dimensions))
		}
	})

	return w.Bytes(), nil
}

// Behavior renders the constants of s and its lcm.Message implementation
func (g *Generator) Behavior(pkg *schema.Package, s *schema.Struct) ([]byte, error) {
	set := g.resolveImports(pkg)
	name := g.mapper.TypeNameOf(s.Name.Short)
	w := writer.NewWriter("\t", "//")

	w.Newline()
	if len(s.Constants) > 0 {
		g.writeConstants(w, s, name)
		w.BlankLine()
	}

	w.WriteLinef("var _ lcm.Message = (*%s)(nil)", name)
	w.BlankLine()
	g.writeFingerprint(w, s, name)
	w.BlankLine()
	g.writeEncode(w, s, name)
	w.BlankLine()
	g.writeDecode(w, set, s, name)
	w.BlankLine()
	g.writeSize(w, s, name)

	return w.Bytes(), nil
}

// Format runs the generated file through goimports without touching its
// import set.
func (g *Generator) Format(path string, src []byte) ([]byte, error) {
	out, err := imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", path, err)
	}

	return out, nil
}
