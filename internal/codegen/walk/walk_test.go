package walk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// traceVisitor records the traversal as pseudo code
type traceVisitor struct{}

func (traceVisitor) Enter(w *writer.Writer, s Step) string {
	w.WriteLinef("for %s in %s (%s %s) {", Index(s.Depth), s.Expr, s.Dim.Mode, s.Dim.Size)
	w.Indent()

	return fmt.Sprintf("%s[%s]", s.Expr, Index(s.Depth))
}

func (traceVisitor) Exit(w *writer.Writer, _ Step) {
	w.Dedent()
	w.WriteLine("}")
}

func (traceVisitor) Leaf(w *writer.Writer, m *schema.Member, expr string) {
	w.WriteLinef("leaf %s %s", m.Type, expr)
}

func TestWalk_Scalar(t *testing.T) {
	w := writer.NewWriter("  ", "//")
	m := &schema.Member{Name: "x", Type: schema.TypeName{Short: "int32_t"}}

	Walk(w, m, "p.X", traceVisitor{})

	assert.Equal(t, "leaf int32_t p.X\n", w.String())
}

func TestWalk_NestedDimensions(t *testing.T) {
	w := writer.NewWriter("  ", "//")
	m := &schema.Member{
		Name: "grid",
		Type: schema.TypeName{Short: "double"},
		Dimensions: []schema.Dimension{
			schema.ParseDimension("rows"),
			schema.ParseDimension("2"),
			schema.ParseDimension("cols"),
		},
	}

	Walk(w, m, "p.Grid", traceVisitor{})

	expected := `for i0 in p.Grid (Dynamic rows) {
  for i1 in p.Grid[i0] (Fixed 2) {
    for i2 in p.Grid[i0][i1] (Dynamic cols) {
      leaf double p.Grid[i0][i1][i2]
    }
  }
}
`
	assert.Equal(t, expected, w.String())
}

func TestStep_Remaining(t *testing.T) {
	m := &schema.Member{
		Dimensions: []schema.Dimension{schema.ParseDimension("3"), schema.ParseDimension("n")},
	}

	outer := Step{Member: m, Depth: 0, Dim: m.Dimensions[0]}
	inner := Step{Member: m, Depth: 1, Dim: m.Dimensions[1]}

	assert.Len(t, outer.Remaining(), 2)
	assert.False(t, outer.Innermost())
	assert.Equal(t, []schema.Dimension{{Mode: schema.DimensionDynamic, Size: "n"}}, inner.Remaining())
	assert.True(t, inner.Innermost())
}
