package schema

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fingerprint is the 64-bit schema hash computed upstream for a struct
type Fingerprint uint64

// Rotated returns the value every backend emits and compares on the wire:
// (hash << 1) | ((hash >> 63) & 1).
func (f Fingerprint) Rotated() uint64 {
	return bits.RotateLeft64(uint64(f), 1)
}

// String renders the fingerprint as a 16 digit hex literal
func (f Fingerprint) String() string {
	return fmt.Sprintf("0x%016x", uint64(f))
}

// UnmarshalYAML accepts an integer or a string in any base understood by strconv.
func (f *Fingerprint) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: fingerprint must be a scalar", node.Line)
	}

	v, err := strconv.ParseUint(strings.TrimSpace(node.Value), 0, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid fingerprint %q: %w", node.Line, node.Value, err)
	}

	*f = Fingerprint(v)

	return nil
}

// MarshalYAML renders the fingerprint as a hex string
func (f Fingerprint) MarshalYAML() (any, error) {
	return f.String(), nil
}
