package golang

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/lcmgen/internal/schema"
)

const testSchema = `
packages:
  - name: exlcm
    structs:
      - name: example_t
        hash: 0x1bbf5d2a6e8a0c5f
        comment: "Sensor sample.\nUnits are SI."
        constants:
          - {name: YES, type: int32_t, value: "1"}
          - {name: MAX_RANGE, type: double, value: "25.5", comment: Longest range}
        members:
          - {name: timestamp, type: int64_t}
          - {name: position, type: double, dims: [3]}
          - {name: num_ranges, type: int32_t}
          - {name: ranges, type: int16_t, dims: [num_ranges], comment: Raw ranges}
          - {name: size, type: string}
          - {name: origin, type: geometry.point3d_t}
          - {name: path, type: geometry.point3d_t, dims: [num_ranges]}
      - name: grid_t
        hash: 0x9a3e5f7c11d2b804
        members:
          - {name: rows, type: int32_t}
          - {name: cols, type: uint8_t}
          - {name: cells, type: float, dims: [rows, cols]}
          - {name: labels, type: string, dims: [2, cols]}
          - {name: samples, type: example_t, dims: [rows]}
      - name: node_t
        hash: 0x0c1d2e3f40516273
        members:
          - {name: num_children, type: int32_t}
          - {name: children, type: node_t, dims: [num_children]}
  - name: geometry
    structs:
      - name: point3d_t
        hash: 0x573f2a1b9c8d7e6f
        comment: A point.
        members:
          - {name: x, type: double}
          - {name: y, type: double}
          - {name: z, type: double}
`

func loadModel(t *testing.T, src string) *schema.Model {
	t.Helper()

	model, err := schema.Parse([]byte(src))
	require.NoError(t, err)
	require.NoError(t, schema.Validate(model))

	return model
}

// render assembles a package file the way the aggregator does
func render(t *testing.T, g *Generator, pkg *schema.Package) string {
	t.Helper()

	var sb strings.Builder

	header, err := g.Header(pkg)
	require.NoError(t, err)
	sb.Write(header)

	for _, s := range pkg.Structs {
		decl, err := g.Declaration(pkg, s)
		require.NoError(t, err)
		sb.Write(decl)
	}

	for _, s := range pkg.Structs {
		body, err := g.Behavior(pkg, s)
		require.NoError(t, err)
		sb.Write(body)
	}

	return sb.String()
}

func newTestGenerator() *Generator {
	return NewGenerator(Config{ImportPrefix: "example.com/gen"})
}

func TestGenerator_Defaults(t *testing.T) {
	g := NewGenerator(Config{})

	assert.Equal(t, "go", g.Language())
	assert.Equal(t, DefaultFileName, g.FileName())
	assert.Equal(t, "lcm_types.go", g.FileName())
	assert.Equal(t, "lcmtypes", g.cfg.DefaultPackage)
	assert.Equal(t, DefaultRuntimeImport, g.cfg.RuntimeImport)
}

func TestRenderFieldType(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")
	example := exlcm.Structs[0]
	grid := exlcm.Structs[1]

	tests := []struct {
		member *schema.Member
		want   string
	}{
		{example.Member("timestamp"), "int64"},
		{example.Member("position"), "[3]float64"},
		{example.Member("ranges"), "[]int16"},
		{example.Member("size"), "string"},
		{example.Member("origin"), "geometry.Point3d"},
		{example.Member("path"), "[]geometry.Point3d"},
		{grid.Member("cells"), "[][]float32"},
		{grid.Member("labels"), "[2][]string"},
		{grid.Member("samples"), "[]Example"},
		{exlcm.Structs[2].Member("children"), "[]Node"},
	}

	for _, tt := range tests {
		t.Run(tt.member.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.RenderFieldType(exlcm, tt.member))
		})
	}
}

func TestHeader(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()

	header, err := g.Header(model.Package("exlcm"))
	require.NoError(t, err)

	expected := `// Code generated by lcmgen. DO NOT EDIT.

package exlcm

import (
	"io"

	"github.com/okra-platform/lcmgen/lcm"
	"example.com/gen/geometry"
)
`
	assert.Equal(t, expected, string(header))
}

func TestHeader_NoPeerImports(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()

	header, err := g.Header(model.Package("geometry"))
	require.NoError(t, err)

	assert.NotContains(t, string(header), "example.com/gen")
	assert.Contains(t, string(header), "package geometry\n")
}

func TestHeader_AliasCollisions(t *testing.T) {
	src := `
packages:
  - name: app
    structs:
      - name: msg_t
        members:
          - {name: a, type: net.io.packet_t}
          - {name: b, type: sys.io.packet_t}
          - {name: c, type: ext.lcm.packet_t}
  - name: net.io
    structs:
      - {name: packet_t, members: [{name: x, type: byte}]}
  - name: sys.io
    structs:
      - {name: packet_t, members: [{name: x, type: byte}]}
  - name: ext.lcm
    structs:
      - {name: packet_t, members: [{name: x, type: byte}]}
`
	model := loadModel(t, src)
	g := newTestGenerator()
	app := model.Package("app")

	header, err := g.Header(app)
	require.NoError(t, err)

	assert.Contains(t, string(header), `ext_lcm "example.com/gen/ext/lcm"`)
	assert.Contains(t, string(header), `net_io "example.com/gen/net/io"`)
	assert.Contains(t, string(header), `sys_io "example.com/gen/sys/io"`)

	msg := app.Structs[0]
	assert.Equal(t, "net_io.Packet", g.RenderFieldType(app, msg.Member("a")))
	assert.Equal(t, "sys_io.Packet", g.RenderFieldType(app, msg.Member("b")))
	assert.Equal(t, "ext_lcm.Packet", g.RenderFieldType(app, msg.Member("c")))
}

func TestHeader_NumericAliasSuffix(t *testing.T) {
	src := `
packages:
  - name: app
    structs:
      - name: msg_t
        members:
          - {name: a, type: a_b.cell_t}
          - {name: b, type: a.b.cell_t}
  - name: a_b
    structs:
      - {name: cell_t, members: [{name: x, type: byte}]}
  - name: a.b
    structs:
      - {name: cell_t, members: [{name: x, type: byte}]}
`
	model := loadModel(t, src)
	g := newTestGenerator()
	app := model.Package("app")

	// "a.b" sorts first and takes "b"; "a_b" takes its own last segment.
	msg := app.Structs[0]
	assert.Equal(t, "b.Cell", g.RenderFieldType(app, msg.Member("b")))
	assert.Equal(t, "a_b.Cell", g.RenderFieldType(app, msg.Member("a")))

	src = `
packages:
  - name: app
    structs:
      - name: msg_t
        members:
          - {name: a, type: x.io.cell_t}
          - {name: b, type: x_io.cell_t}
  - name: x.io
    structs:
      - {name: cell_t, members: [{name: x, type: byte}]}
  - name: x_io
    structs:
      - {name: cell_t, members: [{name: x, type: byte}]}
`
	model = loadModel(t, src)
	app = model.Package("app")
	msg = app.Structs[0]

	assert.Equal(t, "x_io.Cell", g.RenderFieldType(app, msg.Member("a")))
	assert.Equal(t, "x_io2.Cell", g.RenderFieldType(app, msg.Member("b")))
}

func TestHeader_AliasAvoidsMethodLocals(t *testing.T) {
	src := `
packages:
  - name: app
    structs:
      - name: route_t
        members:
          - {name: n, type: int32_t}
          - {name: pts, type: msgs.v.point_t, dims: [n]}
          - {name: e, type: msgs.err.point_t}
          - {name: i, type: msgs.i0.point_t}
  - name: msgs.v
    structs:
      - {name: point_t, members: [{name: x, type: double}]}
  - name: msgs.err
    structs:
      - {name: point_t, members: [{name: x, type: double}]}
  - name: msgs.i0
    structs:
      - {name: point_t, members: [{name: x, type: double}]}
`
	model := loadModel(t, src)
	g := newTestGenerator()
	app := model.Package("app")

	header, err := g.Header(app)
	require.NoError(t, err)
	assert.Contains(t, string(header), `msgs_v "example.com/gen/msgs/v"`)
	assert.Contains(t, string(header), `msgs_err "example.com/gen/msgs/err"`)
	assert.Contains(t, string(header), `msgs_i0 "example.com/gen/msgs/i0"`)

	out := render(t, g, app)
	assert.Contains(t, out, "v.Pts = make([]msgs_v.Point, 0, lcm.Capacity[msgs_v.Point](nN))\n")
	assert.Contains(t, out, "\tE msgs_err.Point\n")

	_, err = parser.ParseFile(token.NewFileSet(), g.FileName(), out, parser.ParseComments)
	require.NoError(t, err, out)
}

func TestDeclaration(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	geometry := model.Package("geometry")

	decl, err := g.Declaration(geometry, geometry.Structs[0])
	require.NoError(t, err)

	expected := `
// A point.
type Point3d struct {
	X float64
	Y float64
	Z float64
}
`
	assert.Equal(t, expected, string(decl))
}

func TestDeclaration_CommentsAndFieldNames(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	decl, err := g.Declaration(exlcm, exlcm.Structs[0])
	require.NoError(t, err)

	out := string(decl)
	assert.Contains(t, out, "// Sensor sample.\n// Units are SI.\ntype Example struct {\n")
	assert.Contains(t, out, "\t// Raw ranges\n\tRanges []int16\n")
	assert.Contains(t, out, "\tSize_ string\n")
	assert.Contains(t, out, "\tPath []geometry.Point3d\n")
}

func TestBehavior_Fingerprint(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	tests := []struct {
		s    *schema.Struct
		want string
	}{
		// top bit clear
		{exlcm.Structs[0], "return 0x377eba54dd1418be"},
		// top bit set
		{exlcm.Structs[1], "return 0x347cbef823a57009"},
	}

	for _, tt := range tests {
		t.Run(tt.s.Name.Full(), func(t *testing.T) {
			body, err := g.Behavior(exlcm, tt.s)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestBehavior_Constants(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	body, err := g.Behavior(exlcm, exlcm.Structs[0])
	require.NoError(t, err)

	expected := `const (
	ExampleYes int32 = 1
	// Longest range
	ExampleMaxRange float64 = 25.5
)
`
	assert.Contains(t, string(body), expected)

	body, err = g.Behavior(exlcm, exlcm.Structs[2])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "const (")
}

func TestBehavior_Encode(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	body, err := g.Behavior(exlcm, exlcm.Structs[0])
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, "func (p *Example) Encode(w io.Writer) error {\n")
	assert.Contains(t, out, "\tif err := lcm.WriteInt64(w, p.Timestamp); err != nil {\n\t\treturn err\n\t}\n")
	assert.Contains(t, out, "\tfor i0 := range p.Position {\n\t\tif err := lcm.WriteFloat64(w, p.Position[i0]); err != nil {\n")
	assert.Contains(t, out, "\tif err := lcm.CheckLen(\"ranges\", len(p.Ranges), p.NumRanges); err != nil {\n")
	assert.Contains(t, out, "\tif err := lcm.WriteString(w, p.Size_); err != nil {\n")
	assert.Contains(t, out, "\tif err := p.Origin.Encode(w); err != nil {\n")
	assert.Contains(t, out, "\t\tif err := p.Path[i0].Encode(w); err != nil {\n")
}

func TestBehavior_Decode(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	body, err := g.Behavior(exlcm, exlcm.Structs[1])
	require.NoError(t, err)
	out := string(body)

	expected := `func (p *Grid) Decode(r io.Reader) (err error) {
	var v Grid
	if v.Rows, err = lcm.ReadInt32(r); err != nil {
		return err
	}
	nRows, err := lcm.Count("rows", v.Rows)
	if err != nil {
		return err
	}
	if v.Cols, err = lcm.ReadUint8(r); err != nil {
		return err
	}
	nCols, err := lcm.Count("cols", v.Cols)
	if err != nil {
		return err
	}
	v.Cells = make([][]float32, 0, lcm.Capacity[[]float32](nRows))
	for range nRows {
		var e0 []float32
		e0 = make([]float32, 0, lcm.Capacity[float32](nCols))
		for range nCols {
			var e1 float32
			if e1, err = lcm.ReadFloat32(r); err != nil {
				return err
			}
			e0 = append(e0, e1)
		}
		v.Cells = append(v.Cells, e0)
	}
	for i0 := range v.Labels {
		v.Labels[i0] = make([]string, 0, lcm.Capacity[string](nCols))
		for range nCols {
			var e1 string
			if e1, err = lcm.ReadString(r); err != nil {
				return err
			}
			v.Labels[i0] = append(v.Labels[i0], e1)
		}
	}
	v.Samples = make([]Example, 0, lcm.Capacity[Example](nRows))
	for range nRows {
		var e0 Example
		if err = e0.Decode(r); err != nil {
			return err
		}
		v.Samples = append(v.Samples, e0)
	}
	*p = v
	return nil
}
`
	assert.Contains(t, out, expected)
}

func TestBehavior_Size(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()
	exlcm := model.Package("exlcm")

	body, err := g.Behavior(exlcm, exlcm.Structs[2])
	require.NoError(t, err)

	expected := `func (p *Node) Size() int {
	size := 0
	size += lcm.SizeInt32(p.NumChildren)
	for i0 := range p.Children {
		size += p.Children[i0].Size()
	}
	return size
}
`
	assert.Contains(t, string(body), expected)
	assert.Contains(t, string(body), "var _ lcm.Message = (*Node)(nil)\n")
}

func TestGenerate_ValidGo(t *testing.T) {
	model := loadModel(t, testSchema)
	g := newTestGenerator()

	for _, pkg := range model.Packages {
		t.Run(pkg.Name, func(t *testing.T) {
			src := render(t, g, pkg)

			_, err := parser.ParseFile(token.NewFileSet(), g.FileName(), src, parser.ParseComments)
			require.NoError(t, err, src)

			formatted, err := g.Format(g.FileName(), []byte(src))
			require.NoError(t, err)
			assert.Contains(t, string(formatted), "// Code generated by lcmgen. DO NOT EDIT.")
		})
	}
}

func TestGenerate_EmptyStruct(t *testing.T) {
	src := `
packages:
  - name: ""
    structs:
      - {name: empty_t, hash: 1}
`
	model := loadModel(t, src)
	g := newTestGenerator()
	pkg := model.Packages[0]

	out := render(t, g, pkg)

	assert.Contains(t, out, "package lcmtypes\n")
	assert.Contains(t, out, "type Empty struct {\n}\n")
	assert.Contains(t, out, "return 0x0000000000000002")

	_, err := g.Format(g.FileName(), []byte(out))
	require.NoError(t, err)
}

func TestFormat_InvalidSource(t *testing.T) {
	g := newTestGenerator()

	_, err := g.Format("broken.go", []byte("package x\nfunc {"))
	assert.Error(t, err)
}
