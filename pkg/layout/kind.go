package layout

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	fserrors "github.com/rawbytedev/fstruct/errors"
)

// Kind is a layout scalar kind.
type Kind uint8

const (
	Invalid Kind = iota
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Bool
	Ptr
)

var kindTags = [...]string{
	Invalid: "invalid",
	U8:      "u8",
	I8:      "i8",
	U16:     "u16",
	I16:     "i16",
	U32:     "u32",
	I32:     "i32",
	U64:     "u64",
	I64:     "i64",
	F32:     "f32",
	F64:     "f64",
	Bool:    "bool",
	Ptr:     "ptr",
}

var kindSizes = [...]int{
	U8: 1, I8: 1, Bool: 1,
	U16: 2, I16: 2,
	U32: 4, I32: 4, F32: 4,
	U64: 8, I64: 8, F64: 8, Ptr: 8,
}

var tagKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTags))
	for k, tag := range kindTags {
		if Kind(k) != Invalid {
			m[tag] = Kind(k)
		}
	}
	return m
}()

// KindOf returns the kind for a scalar tag such as "u16".
func KindOf(tag string) (Kind, bool) {
	k, ok := tagKinds[tag]
	return k, ok
}

func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Size is the byte width of one value.
func (k Kind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

// Align is the natural alignment, equal to the width capped at 8.
func (k Kind) Align() int {
	return min(k.Size(), 8)
}

// IsUnsigned reports whether k is u8, u16, u32 or u64. Ptr is not.
func (k Kind) IsUnsigned() bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	}
	return false
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

// IsInteger reports whether k is a signed or unsigned integer kind.
func (k Kind) IsInteger() bool { return k.IsUnsigned() || k.IsSigned() }

// IsFloat reports whether k is f32 or f64.
func (k Kind) IsFloat() bool { return k == F32 || k == F64 }

// ReflectKind maps k to the Go kind a value of k decodes to. Ptr maps to
// reflect.Uint64.
func (k Kind) ReflectKind() reflect.Kind {
	switch k {
	case U8:
		return reflect.Uint8
	case I8:
		return reflect.Int8
	case U16:
		return reflect.Uint16
	case I16:
		return reflect.Int16
	case U32:
		return reflect.Uint32
	case I32:
		return reflect.Int32
	case U64, Ptr:
		return reflect.Uint64
	case I64:
		return reflect.Int64
	case F32:
		return reflect.Float32
	case F64:
		return reflect.Float64
	case Bool:
		return reflect.Bool
	}
	return reflect.Invalid
}

// Type is a parsed layout type tag: a scalar, or an array of Count scalars
// when Array is set.
type Type struct {
	Kind  Kind
	Count int
	Array bool
}

// Size is the byte size of the whole field.
func (t Type) Size() int {
	if t.Array {
		return t.Kind.Size() * t.Count
	}
	return t.Kind.Size()
}

// Align is the element alignment.
func (t Type) Align() int {
	return t.Kind.Align()
}

func (t Type) String() string {
	if t.Array {
		return t.Kind.String() + "[" + strconv.Itoa(t.Count) + "]"
	}
	return t.Kind.String()
}

var arrayRe = regexp.MustCompile(`^([a-z0-9]+)\[([0-9A-Za-z]+)\]$`)

// maxCount keeps Count*8 within an int32.
const maxCount = 1<<28 - 1

// ParseType parses a scalar tag ("u32", "ptr") or an array tag
// ("u8[16]", "f64[0x10]").
func ParseType(tag string) (Type, error) {
	if k, ok := KindOf(tag); ok {
		return Type{Kind: k}, nil
	}
	m := arrayRe.FindStringSubmatch(tag)
	if m == nil {
		if strings.Count(tag, "[") > 1 {
			return Type{}, fserrors.InvalidFieldType("", tag, "nested arrays are not supported")
		}
		return Type{}, fserrors.InvalidFieldType("", tag, "unknown type")
	}
	k, ok := KindOf(m[1])
	if !ok {
		return Type{}, fserrors.InvalidFieldType("", tag, "unknown element type "+strconv.Quote(m[1]))
	}
	n, err := parseCount(m[2])
	if err != nil {
		return Type{}, fserrors.InvalidFieldType("", tag, "invalid array length "+strconv.Quote(m[2]))
	}
	return Type{Kind: k, Count: n, Array: true}, nil
}

func parseCount(s string) (int, error) {
	base := 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	if n > maxCount {
		return 0, strconv.ErrRange
	}
	return int(n), nil
}
