package overlay

import (
	"encoding/binary"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
	"github.com/rawbytedev/fstruct/pkg/layout"
)

// Pointer is an opaque pointer-width handle. It is stored and returned
// unchanged and never dereferenced.
type Pointer uint64

// family groups the kinds served by one typed accessor.
type family uint8

const (
	famUint family = iota
	famInt
	famFloat
	famBool
	famPointer
)

var familyNames = [...]string{
	famUint:    "unsigned integer",
	famInt:     "signed integer",
	famFloat:   "float",
	famBool:    "bool",
	famPointer: "pointer",
}

func (f family) has(k layout.Kind) bool {
	switch f {
	case famUint:
		return k.IsUnsigned()
	case famInt:
		return k.IsSigned()
	case famFloat:
		return k.IsFloat()
	case famBool:
		return k == layout.Bool
	case famPointer:
		return k == layout.Ptr
	}
	return false
}

func (f family) check(name string, k layout.Kind) error {
	if f.has(k) {
		return nil
	}
	e := fserrors.TypeMismatch(name, familyNames[f], nil)
	e.Detail = k.String() + " field is not a " + familyNames[f]
	return e
}

// load decodes one value of kind k from b.
func load(order binary.ByteOrder, k layout.Kind, b []byte) any {
	switch k {
	case layout.U8:
		return b[0]
	case layout.I8:
		return int8(b[0])
	case layout.U16:
		return common.Get[uint16](order, b)
	case layout.I16:
		return common.Get[int16](order, b)
	case layout.U32:
		return common.Get[uint32](order, b)
	case layout.I32:
		return common.Get[int32](order, b)
	case layout.U64:
		return common.Get[uint64](order, b)
	case layout.I64:
		return common.Get[int64](order, b)
	case layout.F32:
		return float32(common.GetFloat(order, b, 4))
	case layout.F64:
		return common.GetFloat(order, b, 8)
	case layout.Bool:
		return b[0] != 0
	case layout.Ptr:
		return Pointer(common.Get[uint64](order, b))
	}
	return nil
}

// store encodes v into b using the shared conversion table. Integers wrap
// to the field width.
func store(order binary.ByteOrder, k layout.Kind, b []byte, v any) error {
	switch {
	case k.IsFloat():
		f, ok := common.ToFloat(v)
		if !ok {
			return fserrors.TypeMismatch("", k.String(), v)
		}
		common.PutFloat(order, b, k.Size(), f)
	case k == layout.Bool:
		t, ok := common.Truthy(v)
		if !ok {
			return fserrors.TypeMismatch("", k.String(), v)
		}
		b[0] = 0
		if t {
			b[0] = 1
		}
	default:
		bits, ok := common.ToBits(v)
		if !ok {
			return fserrors.TypeMismatch("", k.String(), v)
		}
		common.PutBits(order, b, k.Size(), bits)
	}
	return nil
}

func loadBits(order binary.ByteOrder, k layout.Kind, b []byte) uint64 {
	return common.GetBits(order, b, k.Size())
}

func loadInt(order binary.ByteOrder, k layout.Kind, b []byte) int64 {
	return common.SignExtend(common.GetBits(order, b, k.Size()), k.Size())
}
