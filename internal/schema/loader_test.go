package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleSchema = `
packages:
  - name: exlcm
    structs:
      - name: example_t
        hash: 0x1bbf5d2a6e8a0c5f
        comment: "An example message"
        constants:
          - {name: YES, type: int32_t, value: "1"}
        members:
          - {name: timestamp, type: int64_t}
          - {name: position, type: double, dims: [3]}
          - {name: num_ranges, type: int32_t}
          - {name: ranges, type: int16_t, dims: [num_ranges]}
          - {name: pose, type: pose_t}
      - name: pose_t
        hash: "0x8000000000000001"
        members:
          - {name: xyz, type: double, dims: [{mode: fixed, size: "3"}]}
`

func TestParse_Example(t *testing.T) {
	// Test: a serialized model decodes and unqualified names are resolved
	m, err := Parse([]byte(exampleSchema))
	require.NoError(t, err)
	require.Len(t, m.Packages, 1)

	want := &Struct{
		Name:    TypeName{Package: "exlcm", Short: "example_t"},
		Hash:    0x1bbf5d2a6e8a0c5f,
		Comment: "An example message",
		Constants: []Constant{
			{Name: "YES", Type: "int32_t", Value: "1"},
		},
		Members: []Member{
			{Name: "timestamp", Type: TypeName{Short: "int64_t"}},
			{Name: "position", Type: TypeName{Short: "double"}, Dimensions: []Dimension{{Mode: DimensionFixed, Size: "3"}}},
			{Name: "num_ranges", Type: TypeName{Short: "int32_t"}},
			{Name: "ranges", Type: TypeName{Short: "int16_t"}, Dimensions: []Dimension{{Mode: DimensionDynamic, Size: "num_ranges"}}},
			{Name: "pose", Type: TypeName{Package: "exlcm", Short: "pose_t"}},
		},
	}

	if diff := cmp.Diff(want, m.Packages[0].Structs[0]); diff != "" {
		t.Errorf("example_t mismatch (-want +got):\n%s", diff)
	}

	pose := m.Packages[0].Structs[1]
	assert.Equal(t, Fingerprint(0x8000000000000001), pose.Hash)
	assert.Equal(t, []Dimension{{Mode: DimensionFixed, Size: "3"}}, pose.Members[0].Dimensions)
}

func TestParse_InvalidYAML(t *testing.T) {
	// Test: malformed documents report a parse error
	_, err := Parse([]byte("packages: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema")
}

func TestParse_InvalidFingerprint(t *testing.T) {
	_, err := Parse([]byte(`
packages:
  - name: a
    structs:
      - name: s_t
        hash: nothex
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fingerprint")
}

func TestLoadFiles_MergesPackages(t *testing.T) {
	// Test: structs of the same package spread over files end up in one package, in order
	dir := t.TempDir()
	first := filepath.Join(dir, "a.yaml")
	second := filepath.Join(dir, "b.yaml")

	require.NoError(t, os.WriteFile(first, []byte(`
packages:
  - name: geo
    structs:
      - {name: point_t, hash: 1, members: [{name: x, type: double}]}
`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`
packages:
  - name: nav
    structs:
      - {name: path_t, hash: 2, members: [{name: n, type: int32_t}, {name: pts, type: geo.point_t, dims: [n]}]}
  - name: geo
    structs:
      - {name: line_t, hash: 3, members: [{name: ends, type: point_t, dims: [2]}]}
`), 0o644))

	m, err := LoadFiles(first, second)
	require.NoError(t, err)
	require.Len(t, m.Packages, 2)

	assert.Equal(t, "geo", m.Packages[0].Name)
	require.Len(t, m.Packages[0].Structs, 2)
	assert.Equal(t, "point_t", m.Packages[0].Structs[0].Name.Short)
	assert.Equal(t, "line_t", m.Packages[0].Structs[1].Name.Short)
	assert.Equal(t, "nav", m.Packages[1].Name)

	assert.NotNil(t, m.Struct(TypeName{Package: "geo", Short: "line_t"}))
	assert.Nil(t, m.Struct(TypeName{Package: "geo", Short: "missing_t"}))
}

func TestLoadFiles_Errors(t *testing.T) {
	_, err := LoadFiles()
	require.Error(t, err)

	_, err = LoadFiles(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}

func TestStruct_SizingMembers(t *testing.T) {
	m, err := Parse([]byte(exampleSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"num_ranges"}, m.Packages[0].Structs[0].SizingMembers())
	assert.Empty(t, m.Packages[0].Structs[1].SizingMembers())
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		in        string
		want      TypeName
		primitive bool
	}{
		{"int32_t", TypeName{Short: "int32_t"}, true},
		{"string", TypeName{Short: "string"}, true},
		{"point_t", TypeName{Short: "point_t"}, false},
		{"a.b.point_t", TypeName{Package: "a.b", Short: "point_t"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseTypeName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.Full())
			assert.Equal(t, tt.primitive, got.IsPrimitive())
		})
	}
}
