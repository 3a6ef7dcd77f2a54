package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackage_Peers(t *testing.T) {
	m, err := Parse([]byte(`
packages:
  - name: app
    structs:
      - name: a_t
        members:
          - {name: x, type: int32_t}
          - {name: self, type: b_t}
          - {name: p, type: geo.point_t}
      - name: b_t
        members:
          - {name: q, type: geo.point_t}
          - {name: r, type: cfg.limits_t}
  - name: geo
    structs:
      - {name: point_t, members: [{name: x, type: double}]}
  - name: cfg
    structs:
      - {name: limits_t, members: [{name: x, type: double}]}
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"cfg", "geo"}, m.Package("app").Peers())
	assert.Empty(t, m.Package("geo").Peers())
}
