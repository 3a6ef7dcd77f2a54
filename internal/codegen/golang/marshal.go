package golang

import (
	"fmt"

	"github.com/okra-platform/lcmgen/internal/codegen/naming"
	"github.com/okra-platform/lcmgen/internal/codegen/walk"
	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// loop opens a range loop over the collection of a step and returns the
// element expression.
func loop(w *writer.Writer, s walk.Step) string {
	i := walk.Index(s.Depth)
	w.WriteLinef("for %s := range %s {", i, s.Expr)
	w.Indent()

	return fmt.Sprintf("%s[%s]", s.Expr, i)
}

func closeBlock(w *writer.Writer, _ walk.Step) {
	w.Dedent()
	w.WriteLine("}")
}

func returnOnError(w *writer.Writer, cond string) {
	w.WriteBlock("if "+cond+"; err != nil {", "}", func() {
		w.WriteLine("return err")
	})
}

// countVar names the local holding the validated count of a sizing member
func countVar(field string) string {
	return "n" + field
}

type encodeVisitor struct {
	mapper Mapper
}

func (v encodeVisitor) Enter(w *writer.Writer, s walk.Step) string {
	if s.Dim.Mode == schema.DimensionDynamic {
		returnOnError(w, fmt.Sprintf("err := lcm.CheckLen(%q, len(%s), p.%s)",
			s.Member.Name, s.Expr, v.mapper.FieldNameOf(s.Dim.Size)))
	}

	return loop(w, s)
}

func (encodeVisitor) Exit(w *writer.Writer, s walk.Step) { closeBlock(w, s) }

func (encodeVisitor) Leaf(w *writer.Writer, m *schema.Member, expr string) {
	if codec, ok := codecOf(m.Type); ok {
		returnOnError(w, fmt.Sprintf("err := lcm.Write%s(w, %s)", codec, expr))
		return
	}

	returnOnError(w, fmt.Sprintf("err := %s.Encode(w)", expr))
}

// decodeVisitor fills fixed levels in place and grows dynamic levels one
// decoded element at a time, so the announced count alone never sizes an
// allocation beyond lcm.Capacity.
type decodeVisitor struct {
	g   *Generator
	set *importSet
}

// elemVar names the local holding one element of a dynamic level
func elemVar(depth int) string {
	return fmt.Sprintf("e%d", depth)
}

func (v decodeVisitor) Enter(w *writer.Writer, s walk.Step) string {
	if s.Dim.Mode != schema.DimensionDynamic {
		return loop(w, s)
	}

	count := countVar(v.g.mapper.FieldNameOf(s.Dim.Size))
	elem := v.g.renderType(v.set, s.Member.Type, s.Remaining()[1:])

	w.WriteLinef("%s = make(%s, 0, lcm.Capacity[%s](%s))", s.Expr,
		v.g.renderType(v.set, s.Member.Type, s.Remaining()), elem, count)
	w.WriteLinef("for range %s {", count)
	w.Indent()
	w.WriteLinef("var %s %s", elemVar(s.Depth), elem)

	return elemVar(s.Depth)
}

func (decodeVisitor) Exit(w *writer.Writer, s walk.Step) {
	if s.Dim.Mode == schema.DimensionDynamic {
		w.WriteLinef("%s = append(%s, %s)", s.Expr, s.Expr, elemVar(s.Depth))
	}

	closeBlock(w, s)
}

func (decodeVisitor) Leaf(w *writer.Writer, m *schema.Member, expr string) {
	if codec, ok := codecOf(m.Type); ok {
		returnOnError(w, fmt.Sprintf("%s, err = lcm.Read%s(r)", expr, codec))
		return
	}

	returnOnError(w, fmt.Sprintf("err = %s.Decode(r)", expr))
}

type sizeVisitor struct{}

func (sizeVisitor) Enter(w *writer.Writer, s walk.Step) string { return loop(w, s) }

func (sizeVisitor) Exit(w *writer.Writer, s walk.Step) { closeBlock(w, s) }

func (sizeVisitor) Leaf(w *writer.Writer, m *schema.Member, expr string) {
	if codec, ok := codecOf(m.Type); ok {
		w.WriteLinef("size += lcm.Size%s(%s)", codec, expr)
		return
	}

	w.WriteLinef("size += %s.Size()", expr)
}

func (g *Generator) writeFingerprint(w *writer.Writer, s *schema.Struct, name string) {
	w.WriteLinef("// Fingerprint returns the rotated schema hash of %s.", s.Name.Full())
	w.WriteBlock(fmt.Sprintf("func (*%s) Fingerprint() uint64 {", name), "}", func() {
		w.WriteLinef("return 0x%016x", s.Hash.Rotated())
	})
}

func (g *Generator) writeEncode(w *writer.Writer, s *schema.Struct, name string) {
	visitor := encodeVisitor{mapper: g.mapper}

	w.WriteLinef("// Encode writes the wire form of %s, without fingerprint.", name)
	w.WriteBlock(fmt.Sprintf("func (p *%s) Encode(w io.Writer) error {", name), "}", func() {
		for i := range s.Members {
			m := &s.Members[i]
			walk.Walk(w, m, "p."+g.mapper.FieldNameOf(m.Name), visitor)
		}

		w.WriteLine("return nil")
	})
}

// writeDecode fills a local value and only assigns the receiver once every
// member decoded.
func (g *Generator) writeDecode(w *writer.Writer, set *importSet, s *schema.Struct, name string) {
	visitor := decodeVisitor{g: g, set: set}
	sizing := make(map[string]bool)
	for _, n := range s.SizingMembers() {
		sizing[n] = true
	}

	w.WriteLinef("// Decode reads the wire form of %s. The receiver is unchanged on error.", name)
	w.WriteBlock(fmt.Sprintf("func (p *%s) Decode(r io.Reader) (err error) {", name), "}", func() {
		w.WriteLinef("var v %s", name)

		for i := range s.Members {
			m := &s.Members[i]
			field := g.mapper.FieldNameOf(m.Name)
			walk.Walk(w, m, "v."+field, visitor)

			if sizing[m.Name] {
				w.WriteLinef("%s, err := lcm.Count(%q, v.%s)", countVar(field), m.Name, field)
				w.WriteBlock("if err != nil {", "}", func() {
					w.WriteLine("return err")
				})
			}
		}

		w.WriteLine("*p = v")
		w.WriteLine("return nil")
	})
}

func (g *Generator) writeSize(w *writer.Writer, s *schema.Struct, name string) {
	w.WriteLine("// Size returns the number of bytes Encode writes.")
	w.WriteBlock(fmt.Sprintf("func (p *%s) Size() int {", name), "}", func() {
		w.WriteLine("size := 0")

		for i := range s.Members {
			m := &s.Members[i]
			walk.Walk(w, m, "p."+g.mapper.FieldNameOf(m.Name), sizeVisitor{})
		}

		w.WriteLine("return size")
	})
}

func (g *Generator) writeConstants(w *writer.Writer, s *schema.Struct, name string) {
	if len(s.Constants) == 0 {
		return
	}

	w.WriteBlock("const (", ")", func() {
		for _, c := range s.Constants {
			goType, _ := g.mapper.PrimitiveTypeOf(c.Type)
			w.WriteDocComment(c.Comment)
			w.WriteLinef("%s%s %s = %s", name, naming.CamelCase(c.Name), goType, c.Value)
		}
	})
}
