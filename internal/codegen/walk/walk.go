// Package walk is the dimension traversal shared by every marshalling routine.
//
// Encode, decode and size code all iterate a member's dimensions
// outermost-first and act on each element at the innermost level. Walk owns
// that recursion; a Visitor only decides what a single level looks like in
// the target language, so the three routines cannot drift apart.
package walk

import (
	"fmt"

	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// Step describes one dimension level of a member being walked
type Step struct {
	Member *schema.Member
	// Depth is the index of Dim in Member.Dimensions.
	Depth int
	Dim   schema.Dimension
	// Expr is the target expression of the collection at this level.
	Expr string
}

// Remaining returns the dimensions nested inside this level, this level included.
func (s Step) Remaining() []schema.Dimension {
	return s.Member.Dimensions[s.Depth:]
}

// Innermost reports whether this is the last dimension before the leaf
func (s Step) Innermost() bool {
	return s.Depth == len(s.Member.Dimensions)-1
}

// Visitor renders the per-level pieces of a traversal.
type Visitor interface {
	// Enter opens a level, typically a loop header, and returns the
	// expression naming one element of Expr.
	Enter(w *writer.Writer, s Step) string
	// Exit closes what Enter opened.
	Exit(w *writer.Writer, s Step)
	// Leaf acts on a single element once all dimensions are consumed.
	Leaf(w *writer.Writer, m *schema.Member, expr string)
}

// Walk emits the traversal of m rooted at expr
func Walk(w *writer.Writer, m *schema.Member, expr string, v Visitor) {
	walk(w, m, 0, expr, v)
}

func walk(w *writer.Writer, m *schema.Member, depth int, expr string, v Visitor) {
	if depth == len(m.Dimensions) {
		v.Leaf(w, m, expr)
		return
	}

	s := Step{Member: m, Depth: depth, Dim: m.Dimensions[depth], Expr: expr}
	elem := v.Enter(w, s)
	walk(w, m, depth+1, elem, v)
	v.Exit(w, s)
}

// Index is the loop variable used for the given depth
func Index(depth int) string {
	return fmt.Sprintf("i%d", depth)
}
