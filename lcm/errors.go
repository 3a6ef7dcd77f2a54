package lcm

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a message is structurally invalid, e.g. a
	// string whose length or terminator is wrong.
	ErrMalformed = errors.New("lcm: malformed message")

	// ErrNegativeLength is returned when a sizing member holds a negative count.
	ErrNegativeLength = errors.New("lcm: negative length")

	// ErrTooLarge is returned when a count or string exceeds what the codec accepts.
	ErrTooLarge = errors.New("lcm: length too large")
)

// LengthError reports a dynamic array whose length disagrees with its sizing member.
type LengthError struct {
	Field string
	Len   int
	Want  uint64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("lcm: field %s has %d elements but its size member says %d", e.Field, e.Len, e.Want)
}

// FingerprintError is returned by Unmarshal when the leading fingerprint does
// not belong to the target message type.
type FingerprintError struct {
	Want uint64
	Got  uint64
}

func (e *FingerprintError) Error() string {
	return fmt.Sprintf("lcm: fingerprint mismatch: want 0x%016x, got 0x%016x", e.Want, e.Got)
}
