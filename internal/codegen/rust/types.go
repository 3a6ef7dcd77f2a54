package rust

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// useDecl is one `use` line bringing a peer struct into scope
type useDecl struct {
	Path  string
	Name  string
	Local string
}

func (u useDecl) String() string {
	if u.Local == u.Name {
		return fmt.Sprintf("use %s::%s;", u.Path, u.Name)
	}

	return fmt.Sprintf("use %s::%s as %s;", u.Path, u.Name, u.Local)
}

// useSet holds the deduplicated imports of one module and the local name of
// every referenced type.
type useSet struct {
	pkg   string
	decls []useDecl
	local map[schema.TypeName]string
}

// resolveUses builds one `use` per distinct (package, type) pair referenced
// from another package. Paths are relative to the module of pkg.
func (g *Generator) resolveUses(pkg *schema.Package) *useSet {
	set := &useSet{pkg: pkg.Name, local: make(map[schema.TypeName]string)}

	taken := make(map[string]bool)
	for _, s := range pkg.Structs {
		taken[g.mapper.TypeNameOf(s.Name.Short)] = true
	}

	var refs []schema.TypeName
	seen := make(map[schema.TypeName]bool)
	for _, s := range pkg.Structs {
		for _, m := range s.Members {
			if m.Type.IsPrimitive() || m.Type.Package == pkg.Name || seen[m.Type] {
				continue
			}
			seen[m.Type] = true
			refs = append(refs, m.Type)
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Full() < refs[j].Full() })

	up := superPrefix(pkg.Name)
	for _, ref := range refs {
		name := g.mapper.TypeNameOf(ref.Short)
		local := name
		if taken[local] {
			local = naming.CamelCase(naming.NestedPath(ref.Package, "_")) + name
		}
		taken[local] = true

		set.local[ref] = local
		set.decls = append(set.decls, useDecl{
			Path:  up + g.mapper.ModuleImportPath(ref.Package),
			Name:  name,
			Local: local,
		})
	}

	return set
}

// superPrefix climbs from the module of pkg back to the output root
func superPrefix(pkg string) string {
	if pkg == "" {
		return "self::"
	}

	return strings.Repeat("super::", strings.Count(pkg, ".")+1)
}

func (set *useSet) qualify(m Mapper, t schema.TypeName) string {
	if local, ok := set.local[t]; ok {
		return local
	}

	return naming.MapType(m, t.Short)
}

// RenderFieldType renders a member's Rust type: [T; N] for fixed dimensions
// and Vec<T> for dynamic ones, outermost first.
func (g *Generator) RenderFieldType(pkg *schema.Package, m *schema.Member) string {
	return g.renderType(g.resolveUses(pkg), m)
}

func (g *Generator) renderType(set *useSet, m *schema.Member) string {
	var sb strings.Builder

	for _, d := range m.Dimensions {
		switch d.Mode {
		case schema.DimensionFixed:
			sb.WriteString("[")
		case schema.DimensionDynamic:
			sb.WriteString("Vec<")
		}
	}

	sb.WriteString(set.qualify(g.mapper, m.Type))

	for i := len(m.Dimensions) - 1; i >= 0; i-- {
		d := m.Dimensions[i]
		switch d.Mode {
		case schema.DimensionFixed:
			fmt.Fprintf(&sb, "; %s]", d.Literal())
		case schema.DimensionDynamic:
			sb.WriteString(">")
		}
	}

	return sb.String()
}
