package lcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unsafe"
)

// MaxElements bounds the element count a decoder accepts for a single
// dynamic dimension and the byte length of a single string.
var MaxElements = 1 << 24

// Integer is the set of types a sizing member may have
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int | ~uint
}

// Count validates a decoded sizing member and returns it as an element count.
func Count[N Integer](name string, n N) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%s: %w: %d", name, ErrNegativeLength, n)
	}

	if uint64(n) > uint64(MaxElements) {
		return 0, fmt.Errorf("%s: %w: %d > %d", name, ErrTooLarge, n, MaxElements)
	}

	return int(n), nil
}

// CheckLen verifies that a dynamic array holds exactly the number of elements
// its sizing member announces.
func CheckLen[N Integer](name string, got int, want N) error {
	if want < 0 {
		return fmt.Errorf("%s: %w: %d", name, ErrNegativeLength, want)
	}

	if uint64(want) != uint64(got) {
		return &LengthError{Field: name, Len: got, Want: uint64(want)}
	}

	return nil
}

// PreallocBytes bounds the memory a decoder reserves for a dynamic dimension
// before its elements arrive. Beyond it slices grow as elements decode, so a
// hostile count costs no more memory than the input actually carries.
var PreallocBytes = 64 << 10

// Capacity returns the initial capacity for a slice of n elements of T:
// n, limited to what fits in PreallocBytes.
func Capacity[T any](n int) int {
	var zero T

	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return n
	}

	return min(n, max(PreallocBytes/size, 1))
}

func write(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// read fills b completely. A short read is always io.ErrUnexpectedEOF since
// any decode call happens inside a message.
func read(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	return nil
}

// WriteBool writes a boolean as one byte, 1 for true.
func WriteBool(w io.Writer, v bool) error {
	var b [1]byte
	if v {
		b[0] = 1
	}

	return write(w, b[:])
}

// ReadBool reads a one-byte boolean. Any non-zero byte is true.
func ReadBool(r io.Reader) (bool, error) {
	var b [1]byte
	if err := read(r, b[:]); err != nil {
		return false, err
	}

	return b[0] != 0, nil
}

// SizeBool is the wire size of a boolean.
func SizeBool(bool) int { return 1 }

// WriteByte writes a single byte.
func WriteByte(w io.Writer, v byte) error {
	return write(w, []byte{v})
}

// ReadByte reads a single byte.
func ReadByte(r io.Reader) (byte, error) {
	var b [1]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}

	return b[0], nil
}

// SizeByte is the wire size of a byte.
func SizeByte(byte) int { return 1 }

// WriteUint8 writes a single byte.
func WriteUint8(w io.Writer, v uint8) error { return WriteByte(w, v) }

// ReadUint8 reads a single byte.
func ReadUint8(r io.Reader) (uint8, error) { return ReadByte(r) }

// SizeUint8 is the wire size of a uint8.
func SizeUint8(uint8) int { return 1 }

// WriteInt8 writes a signed byte.
func WriteInt8(w io.Writer, v int8) error { return WriteByte(w, byte(v)) }

// WriteInt16 writes a big-endian int16.
func WriteInt16(w io.Writer, v int16) error { return WriteUint16(w, uint16(v)) }

// WriteInt32 writes a big-endian int32.
func WriteInt32(w io.Writer, v int32) error { return WriteUint32(w, uint32(v)) }

// WriteInt64 writes a big-endian int64.
func WriteInt64(w io.Writer, v int64) error { return WriteUint64(w, uint64(v)) }

// Wire sizes of the fixed-width primitives. The argument is ignored; it
// lets generated code call every Size function the same way.
func SizeInt8(int8) int       { return 1 }
func SizeInt16(int16) int     { return 2 }
func SizeInt32(int32) int     { return 4 }
func SizeInt64(int64) int     { return 8 }
func SizeUint16(uint16) int   { return 2 }
func SizeUint32(uint32) int   { return 4 }
func SizeUint64(uint64) int   { return 8 }
func SizeFloat32(float32) int { return 4 }
func SizeFloat64(float64) int { return 8 }

// ReadInt8 reads a signed byte.
func ReadInt8(r io.Reader) (int8, error) {
	v, err := ReadByte(r)
	return int8(v), err
}

// ReadInt16 reads a big-endian int16.
func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

// ReadInt32 reads a big-endian int32.
func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

// ReadInt64 reads a big-endian int64.
func ReadInt64(r io.Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

// WriteUint16 writes a big-endian uint16.
func WriteUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)

	return write(w, b[:])
}

// ReadUint16 reads a big-endian uint16.
func ReadUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b[:]), nil
}

// WriteUint32 writes a big-endian uint32.
func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)

	return write(w, b[:])
}

// ReadUint32 reads a big-endian uint32.
func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b[:]), nil
}

// WriteUint64 writes a big-endian uint64.
func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)

	return write(w, b[:])
}

// ReadUint64 reads a big-endian uint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := read(r, b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b[:]), nil
}

// WriteFloat32 writes an IEEE-754 float32 in big-endian order.
func WriteFloat32(w io.Writer, v float32) error {
	return WriteUint32(w, math.Float32bits(v))
}

// ReadFloat32 reads an IEEE-754 float32 in big-endian order.
func ReadFloat32(r io.Reader) (float32, error) {
	v, err := ReadUint32(r)
	return math.Float32frombits(v), err
}

// WriteFloat64 writes an IEEE-754 float64 in big-endian order.
func WriteFloat64(w io.Writer, v float64) error {
	return WriteUint64(w, math.Float64bits(v))
}

// ReadFloat64 reads an IEEE-754 float64 in big-endian order.
func ReadFloat64(r io.Reader) (float64, error) {
	v, err := ReadUint64(r)
	return math.Float64frombits(v), err
}

// WriteString writes an int32 length that counts the terminating NUL,
// the bytes of s and the NUL.
func WriteString(w io.Writer, s string) error {
	if len(s) >= math.MaxInt32 {
		return fmt.Errorf("%w: string of %d bytes", ErrTooLarge, len(s))
	}

	if err := WriteInt32(w, int32(len(s)+1)); err != nil {
		return err
	}

	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	b = append(b, 0)

	return write(w, b)
}

// ReadString reads a string written by WriteString. The announced length is
// not trusted for allocation: the buffer grows as bytes actually arrive.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadInt32(r)
	if err != nil {
		return "", err
	}

	if n < 1 {
		return "", fmt.Errorf("%w: string length %d", ErrMalformed, n)
	}

	if int64(n) > int64(MaxElements) {
		return "", fmt.Errorf("%w: string length %d", ErrTooLarge, n)
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}

		return "", err
	}

	b := buf.Bytes()
	if b[n-1] != 0 {
		return "", fmt.Errorf("%w: string is not NUL terminated", ErrMalformed)
	}

	return string(b[:n-1]), nil
}

// SizeString is the wire size of s: length prefix, bytes and NUL.
func SizeString(s string) int { return 4 + len(s) + 1 }
