// Package fstruct packs and unpacks fixed-width binary records described
// by struct format strings such as "<3sbhilHIL".
package fstruct

import (
	"encoding/binary"
	"strconv"
	"strings"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
	"github.com/rawbytedev/fstruct/pkg/format"
)

// Struct is a compiled format string. It is immutable and can be reused
// for any number of Pack and Unpack calls.
type Struct struct {
	desc  *format.Descriptor
	order binary.ByteOrder
}

// Compile parses format once.
func Compile(fmtStr string) (*Struct, error) {
	d, err := format.Parse(fmtStr)
	if err != nil {
		return nil, err
	}
	return &Struct{desc: d, order: d.Order.ByteOrder()}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(fmtStr string) *Struct {
	s, err := Compile(fmtStr)
	if err != nil {
		panic(err)
	}
	return s
}

// Size is the number of bytes Pack produces.
func (s *Struct) Size() int {
	return s.desc.Size
}

// Descriptor returns the parsed format.
func (s *Struct) Descriptor() *format.Descriptor {
	return s.desc
}

// Pack encodes values into a new buffer of Size bytes. Pad bytes consume
// no value. Extra values are ignored.
func (s *Struct) Pack(values ...any) ([]byte, error) {
	buf := make([]byte, s.desc.Size)
	if err := s.encode(buf, values); err != nil {
		return nil, err
	}
	return buf, nil
}

// PackInto encodes values into the first Size bytes of dst. dst is left
// untouched on error.
func (s *Struct) PackInto(dst []byte, values ...any) error {
	if len(dst) < s.desc.Size {
		return fserrors.BufferTooSmall(s.desc.Size, len(dst))
	}
	tmp := make([]byte, s.desc.Size)
	if err := s.encode(tmp, values); err != nil {
		return err
	}
	copy(dst, tmp)
	return nil
}

func (s *Struct) encode(buf []byte, values []any) error {
	idx := 0
	offset := 0
	for _, f := range s.desc.Fields {
		size := f.Size()
		if f.Code == format.Pad {
			offset += size
			continue
		}
		if idx >= len(values) {
			return fserrors.MissingValue(idx, s.desc.Values(), len(values))
		}
		if err := s.put(buf[offset:offset+size], f, values[idx]); err != nil {
			if fe, ok := err.(*fserrors.Error); ok && fe.Field == "" {
				fe.Field = strconv.Itoa(idx) + ":" + f.String()
			}
			return err
		}
		idx++
		offset += size
	}
	return nil
}

func (s *Struct) put(b []byte, f format.Field, v any) error {
	switch {
	case f.Code.IsInteger():
		bits, ok := common.ToBits(v)
		if !ok {
			return fserrors.TypeMismatch("", "integer", v)
		}
		common.PutBits(s.order, b, f.Code.Width(), bits)
	case f.Code.IsFloat():
		fv, ok := common.ToFloat(v)
		if !ok {
			return fserrors.TypeMismatch("", "float", v)
		}
		common.PutFloat(s.order, b, f.Code.Width(), fv)
	case f.Code == format.Bool:
		t, ok := common.Truthy(v)
		if !ok {
			return fserrors.TypeMismatch("", "bool", v)
		}
		if t {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case f.Code == format.Char:
		c, ok := common.CharByte(v)
		if !ok {
			return fserrors.TypeMismatch("", "char", v)
		}
		b[0] = c
	case f.Code == format.String:
		var raw []byte
		switch x := v.(type) {
		case string:
			raw = []byte(x)
		case []byte:
			raw = x
		default:
			return fserrors.TypeMismatch("", "string", v)
		}
		if len(raw) != f.Len {
			return fserrors.SizeMismatch("", f.Len, len(raw))
		}
		copy(b, raw)
	}
	return nil
}

// Unpack decodes one value per non-pad field from the first Size bytes of
// b. Integer codes decode to the fixed-width Go integer of matching
// signedness, c and s to string, ? to bool.
func (s *Struct) Unpack(b []byte) ([]any, error) {
	if len(b) < s.desc.Size {
		return nil, fserrors.BufferTooSmall(s.desc.Size, len(b))
	}
	out := make([]any, 0, s.desc.Values())
	offset := 0
	for _, f := range s.desc.Fields {
		size := f.Size()
		if f.Code != format.Pad {
			out = append(out, s.get(b[offset:offset+size], f))
		}
		offset += size
	}
	return out, nil
}

func (s *Struct) get(b []byte, f format.Field) any {
	switch f.Code {
	case format.Char:
		return string(rune(b[0]))
	case format.Bool:
		return b[0] != 0
	case format.String:
		return strings.ToValidUTF8(string(b), "\uFFFD")
	case format.Uint8:
		return b[0]
	case format.Int8:
		return int8(b[0])
	case format.Uint16:
		return common.Get[uint16](s.order, b)
	case format.Int16:
		return common.Get[int16](s.order, b)
	case format.Uint32:
		return common.Get[uint32](s.order, b)
	case format.Int32:
		return common.Get[int32](s.order, b)
	case format.Uint64:
		return common.Get[uint64](s.order, b)
	case format.Int64:
		return common.Get[int64](s.order, b)
	case format.Float32:
		return float32(common.GetFloat(s.order, b, 4))
	case format.Float64:
		return common.GetFloat(s.order, b, 8)
	}
	return nil
}
