package rust

import (
	"fmt"
	"strings"

	"github.com/okra-platform/lcmgen/internal/codegen/walk"
	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// iterVisitor walks nested collections by shadowing `item` at every level.
// Encode and size differ only in their leaf statement.
type iterVisitor struct {
	leaf string
}

func (iterVisitor) Enter(w *writer.Writer, s walk.Step) string {
	w.WriteLinef("for item in %s.iter() {", s.Expr)
	w.Indent()

	return "item"
}

func (iterVisitor) Exit(w *writer.Writer, _ walk.Step) {
	w.Dedent()
	w.WriteLine("}")
}

func (v iterVisitor) Leaf(w *writer.Writer, _ *schema.Member, expr string) {
	w.WriteLinef(v.leaf, expr)
}

func (g *Generator) writeHash(w *writer.Writer, s *schema.Struct) {
	w.WriteBlock("fn hash() -> u64 {", "}", func() {
		w.WriteLinef("0x%016x", s.Hash.Rotated())
	})
}

func (g *Generator) writeEncode(w *writer.Writer, s *schema.Struct) {
	if len(s.Members) == 0 {
		w.WriteBlock("fn encode(&self, _: &mut dyn Write) -> Result<()> {", "}", func() {
			w.WriteLine("Ok(())")
		})
		return
	}

	visitor := iterVisitor{leaf: "%s.encode(&mut buffer)?;"}
	w.WriteBlock("fn encode(&self, mut buffer: &mut dyn Write) -> Result<()> {", "}", func() {
		for i := range s.Members {
			m := &s.Members[i]
			w.WriteLinef("let item = &self.%s;", g.mapper.FieldNameOf(m.Name))
			walk.Walk(w, m, "item", visitor)
		}
		w.WriteLine("Ok(())")
	})
}

// readerName is the decode parameter: "buffer", prefixed with underscores
// while a member of s already uses the name as a local.
func (g *Generator) readerName(s *schema.Struct) string {
	name := "buffer"
	for {
		clash := false
		for i := range s.Members {
			if g.mapper.FieldNameOf(s.Members[i].Name) == name {
				clash = true
				break
			}
		}

		if !clash {
			return name
		}

		name = "_" + name
	}
}

func (g *Generator) writeDecode(w *writer.Writer, s *schema.Struct, name string) {
	reader := g.readerName(s)

	param := "mut " + reader
	if len(s.Members) == 0 {
		param = "_"
	}

	w.WriteBlock(fmt.Sprintf("fn decode(%s: &mut dyn Read) -> Result<Self> {", param), "}", func() {
		fields := make([]string, 0, len(s.Members))
		for i := range s.Members {
			m := &s.Members[i]
			field := g.mapper.FieldNameOf(m.Name)
			fields = append(fields, field)

			w.Writef("let %s = ", field)
			g.writeDecodeExpr(w, m, reader, 0)
			w.WriteLine(";")
		}

		if len(fields) == 0 {
			w.WriteLinef("Ok(%s {})", name)
			return
		}

		w.WriteBlock(fmt.Sprintf("Ok(%s {", name), "})", func() {
			for _, f := range fields {
				w.WriteLinef("%s,", f)
			}
		})
	})
}

// writeDecodeExpr writes the value expression of a member from dimension
// depth inward. Fixed levels unroll into array literals since no length is on
// the wire; dynamic levels collect the announced count of elements. Every
// failure propagates with `?`.
func (g *Generator) writeDecodeExpr(w *writer.Writer, m *schema.Member, reader string, depth int) {
	leaf := fmt.Sprintf("Message::decode(&mut %s)", reader)

	if depth == len(m.Dimensions) {
		w.Write(leaf + "?")
		return
	}

	d := m.Dimensions[depth]
	switch d.Mode {
	case schema.DimensionFixed:
		n, _ := d.FixedLen()
		w.Write("[")
		w.Newline()
		w.Indent()
		for range n {
			g.writeDecodeExpr(w, m, reader, depth+1)
			w.WriteLine(",")
		}
		w.Dedent()
		w.Write("]")

	case schema.DimensionDynamic:
		w.Writef("(0..%s).map(|_| ", g.mapper.FieldNameOf(d.Size))
		if depth+1 == len(m.Dimensions) {
			w.Write(leaf)
		} else {
			w.Write("Ok(")
			g.writeDecodeExpr(w, m, reader, depth+1)
			w.Write(")")
		}
		w.Write(").collect::<Result<Vec<_>>>()?")
	}
}

func (g *Generator) writeSize(w *writer.Writer, s *schema.Struct) {
	w.WriteBlock("fn size(&self) -> usize {", "}", func() {
		if len(s.Members) == 0 {
			w.WriteLine("0")
			return
		}

		visitor := iterVisitor{leaf: "size += %s.size();"}
		w.WriteLine("let mut size = 0;")
		for i := range s.Members {
			m := &s.Members[i]
			w.WriteLinef("let item = &self.%s;", g.mapper.FieldNameOf(m.Name))
			walk.Walk(w, m, "item", visitor)
		}
		w.WriteLine("size")
	})
}

// constValue makes integral float constants valid Rust float literals
func constValue(c schema.Constant) string {
	if c.Type != schema.TypeFloat && c.Type != schema.TypeDouble {
		return c.Value
	}

	if strings.ContainsAny(c.Value, ".eEx") {
		return c.Value
	}

	return c.Value + ".0"
}

func (g *Generator) writeConstants(w *writer.Writer, s *schema.Struct, name string) {
	if len(s.Constants) == 0 {
		return
	}

	w.WriteLinef("impl %s {", name)
	w.Indent()
	for i, c := range s.Constants {
		if i > 0 {
			w.BlankLine()
		}

		rustType, _ := g.mapper.PrimitiveTypeOf(c.Type)
		w.WriteDocComment(c.Comment)
		w.WriteLine("#[allow(non_snake_case)]")
		w.WriteBlock(fmt.Sprintf("pub fn %s() -> %s {", c.Name, rustType), "}", func() {
			w.WriteLine(constValue(c))
		})
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}
