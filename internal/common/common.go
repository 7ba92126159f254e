package common

import (
	"encoding/binary"
	"math"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Number is every Go numeric kind a fixed-width field can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

var fixedSizes = [...]int{
	reflect.Bool:    1,
	reflect.Int8:    1,
	reflect.Uint8:   1,
	reflect.Int16:   2,
	reflect.Uint16:  2,
	reflect.Int32:   4,
	reflect.Uint32:  4,
	reflect.Float32: 4,
	reflect.Int64:   8,
	reflect.Uint64:  8,
	reflect.Float64: 8,
}

// FixedSize is the byte width of a fixed-width primitive kind, or 0 for
// every other kind (int, uint and uintptr included).
func FixedSize(k reflect.Kind) int {
	if int(k) < len(fixedSizes) {
		return fixedSizes[k]
	}
	return 0
}

// AlignTo rounds off up to the next multiple of align.
func AlignTo(off, align int) int {
	if align <= 1 {
		return off
	}
	return (off + align - 1) / align * align
}

// Put writes v into b in the given byte order, using the width of T.
func Put[T constraints.Integer](order binary.ByteOrder, b []byte, v T) {
	switch unsafe.Sizeof(v) {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	default:
		order.PutUint64(b, uint64(v))
	}
}

// Get reads a T from b in the given byte order.
func Get[T constraints.Integer](order binary.ByteOrder, b []byte) T {
	var r T
	switch unsafe.Sizeof(r) {
	case 1:
		return T(b[0])
	case 2:
		return T(order.Uint16(b))
	case 4:
		return T(order.Uint32(b))
	default:
		return T(order.Uint64(b))
	}
}

// PutBits writes the low width bytes of v. width must be 1, 2, 4 or 8.
func PutBits(order binary.ByteOrder, b []byte, width int, v uint64) {
	switch width {
	case 1:
		Put(order, b, uint8(v))
	case 2:
		Put(order, b, uint16(v))
	case 4:
		Put(order, b, uint32(v))
	default:
		Put(order, b, v)
	}
}

// GetBits reads width bytes as an unsigned value.
func GetBits(order binary.ByteOrder, b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(Get[uint8](order, b))
	case 2:
		return uint64(Get[uint16](order, b))
	case 4:
		return uint64(Get[uint32](order, b))
	default:
		return Get[uint64](order, b)
	}
}

// SignExtend interprets the low width bytes of v as a two's complement
// signed value.
func SignExtend(v uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(v<<shift) >> shift
}

// PutFloat writes f as an IEEE 754 value of width 4 or 8.
func PutFloat(order binary.ByteOrder, b []byte, width int, f float64) {
	if width == 4 {
		order.PutUint32(b, math.Float32bits(float32(f)))
		return
	}
	order.PutUint64(b, math.Float64bits(f))
}

// GetFloat reads an IEEE 754 value of width 4 or 8.
func GetFloat(order binary.ByteOrder, b []byte, width int) float64 {
	if width == 4 {
		return float64(math.Float32frombits(order.Uint32(b)))
	}
	return math.Float64frombits(order.Uint64(b))
}

// IsNative reports whether order lays out multi-byte values the same way
// the host does.
func IsNative(order binary.ByteOrder) bool {
	var a, b [2]byte
	order.PutUint16(a[:], 0x0102)
	binary.NativeEndian.PutUint16(b[:], 0x0102)
	return a == b
}
