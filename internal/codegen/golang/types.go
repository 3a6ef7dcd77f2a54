package golang

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// runtimeAlias is the name generated code uses for the lcm runtime package
const runtimeAlias = "lcm"

// locals are the identifiers generated methods declare; an import alias
// equal to one of them would be shadowed inside the method body.
var locals = map[string]bool{
	"io": true, runtimeAlias: true,
	"p": true, "v": true, "r": true, "w": true, "err": true, "size": true,
}

// generatedLocal matches loop indices (i0), decoded elements (e0) and
// counts of sizing members (nRows).
var generatedLocal = regexp.MustCompile(`^([ie][0-9]+|n[A-Z].*)$`)

func reserved(alias string) bool {
	return locals[alias] || generatedLocal.MatchString(alias)
}

// importSpec is one import line of a generated file
type importSpec struct {
	Alias string
	Path  string
}

// importSet holds the imports of one generated package and the alias chosen
// for every peer schema package it references.
type importSet struct {
	pkg     string
	specs   []importSpec
	aliases map[string]string
}

// resolveImports collects one import per distinct peer package referenced by
// any struct of pkg. Peers are visited in sorted order so aliases are stable.
func (g *Generator) resolveImports(pkg *schema.Package) *importSet {
	set := &importSet{pkg: pkg.Name, aliases: make(map[string]string)}

	taken := make(map[string]bool)
	unavailable := func(alias string) bool { return taken[alias] || reserved(alias) }

	for _, peer := range pkg.Peers() {
		alias := PackageName(peer, g.cfg.DefaultPackage)
		if unavailable(alias) {
			alias = identifier(naming.NestedPath(peer, "_"))
		}

		for base, i := alias, 2; unavailable(alias); i++ {
			alias = fmt.Sprintf("%s%d", base, i)
		}

		taken[alias] = true
		set.aliases[peer] = alias
		set.specs = append(set.specs, importSpec{Alias: alias, Path: g.mapper.ModuleImportPath(peer)})
	}

	sort.Slice(set.specs, func(i, j int) bool { return set.specs[i].Path < set.specs[j].Path })

	return set
}

// qualify returns the Go spelling of a member's element type as seen from
// the package the import set was built for.
func (set *importSet) qualify(m Mapper, t schema.TypeName) string {
	name := naming.MapType(m, t.Short)
	if t.IsPrimitive() || t.Package == set.pkg {
		return name
	}

	return set.aliases[t.Package] + "." + name
}

// RenderFieldType renders a member's Go type: one array or slice layer per
// dimension, outermost first.
func (g *Generator) RenderFieldType(pkg *schema.Package, m *schema.Member) string {
	return g.renderType(g.resolveImports(pkg), m.Type, m.Dimensions)
}

func (g *Generator) renderType(set *importSet, t schema.TypeName, dims []schema.Dimension) string {
	var sb strings.Builder

	for _, d := range dims {
		switch d.Mode {
		case schema.DimensionFixed:
			sb.WriteString("[" + d.Literal() + "]")
		case schema.DimensionDynamic:
			sb.WriteString("[]")
		}
	}

	sb.WriteString(set.qualify(g.mapper, t))

	return sb.String()
}

// writeImports renders the import block of a generated file
func (g *Generator) writeImports(set *importSet) []string {
	lines := []string{`"io"`, ""}

	runtime := fmt.Sprintf("%q", g.cfg.RuntimeImport)
	if path.Base(g.cfg.RuntimeImport) != runtimeAlias {
		runtime = runtimeAlias + " " + runtime
	}
	lines = append(lines, runtime)

	for _, spec := range set.specs {
		line := fmt.Sprintf("%q", spec.Path)
		if path.Base(spec.Path) != spec.Alias {
			line = spec.Alias + " " + line
		}
		lines = append(lines, line)
	}

	return lines
}
