// Package overlay exposes named, typed accessors over a byte buffer laid
// out by package layout.
//
// A View never copies or resizes its buffer: values are decoded from and
// encoded into the buffer on every access, so a buffer shared with other
// code (for example memory owned by a foreign caller) always reflects the
// latest writes from either side.
package overlay

import (
	"encoding/binary"
	"reflect"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
	"github.com/rawbytedev/fstruct/pkg/layout"
)

// View is a typed overlay. It is not safe for concurrent mutation.
type View struct {
	layout *layout.Layout
	order  binary.ByteOrder
	buf    []byte
}

// Option configures a View.
type Option func(*View)

// WithByteOrder sets the byte order of multi-byte fields. The default is
// the host order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(v *View) {
		if order != nil {
			v.order = order
		}
	}
}

// New creates a view of l over buf. A nil buf allocates a zeroed buffer;
// otherwise len(buf) must equal l.Size.
func New(l *layout.Layout, buf []byte, opts ...Option) (*View, error) {
	if buf == nil {
		buf = make([]byte, l.Size)
	} else if len(buf) != l.Size {
		return nil, fserrors.SizeMismatch("", l.Size, len(buf))
	}
	v := &View{layout: l, order: binary.NativeEndian, buf: buf}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Bytes returns the underlying buffer.
func (v *View) Bytes() []byte { return v.buf }

// Layout returns the plan the view was built from.
func (v *View) Layout() *layout.Layout { return v.layout }

// ByteOrder returns the byte order of multi-byte fields.
func (v *View) ByteOrder() binary.ByteOrder { return v.order }

// Reset zero-fills the buffer.
func (v *View) Reset() { clear(v.buf) }

func (v *View) field(name string) (layout.Field, []byte, error) {
	f, ok := v.layout.Field(name)
	if !ok {
		return layout.Field{}, nil, fserrors.UnknownField(name)
	}
	return f, v.buf[f.Offset:f.End():f.End()], nil
}

func (v *View) scalar(name string, fam family) (layout.Kind, []byte, error) {
	f, b, err := v.field(name)
	if err != nil {
		return 0, nil, err
	}
	if f.Type.Array {
		e := fserrors.TypeMismatch(name, familyNames[fam], nil)
		e.Detail = "array field " + f.Type.String() + " has no scalar value"
		return 0, nil, e
	}
	if err := fam.check(name, f.Type.Kind); err != nil {
		return 0, nil, err
	}
	return f.Type.Kind, b, nil
}

// Get decodes a field. Scalars decode to the Go type of their kind
// (u8 to uint8, f64 to float64, bool to bool, ptr to Pointer); arrays
// return a live *Array over the field's bytes.
func (v *View) Get(name string) (any, error) {
	f, b, err := v.field(name)
	if err != nil {
		return nil, err
	}
	if f.Type.Array {
		return newArray(name, f.Type, v.order, b), nil
	}
	return load(v.order, f.Type.Kind, b), nil
}

// Set encodes val into a field. Scalars go through the shared conversion
// table and wrap to the field width. Arrays take a Go slice whose element
// kind matches the field, or an *Array of the same kind, with exactly Count
// elements; the elements are copied into the buffer.
func (v *View) Set(name string, val any) error {
	f, b, err := v.field(name)
	if err != nil {
		return err
	}
	if f.Type.Array {
		return setArray(name, f.Type, v.order, b, val)
	}
	if err := store(v.order, f.Type.Kind, b, val); err != nil {
		if fe, ok := err.(*fserrors.Error); ok {
			fe.Field = name
		}
		return err
	}
	return nil
}

// Uint reads an unsigned integer field.
func (v *View) Uint(name string) (uint64, error) {
	k, b, err := v.scalar(name, famUint)
	if err != nil {
		return 0, err
	}
	return loadBits(v.order, k, b), nil
}

// Int reads a signed integer field.
func (v *View) Int(name string) (int64, error) {
	k, b, err := v.scalar(name, famInt)
	if err != nil {
		return 0, err
	}
	return loadInt(v.order, k, b), nil
}

// Float reads an f32 or f64 field.
func (v *View) Float(name string) (float64, error) {
	k, b, err := v.scalar(name, famFloat)
	if err != nil {
		return 0, err
	}
	return common.GetFloat(v.order, b, k.Size()), nil
}

// Bool reads a bool field. Any non-zero byte is true.
func (v *View) Bool(name string) (bool, error) {
	_, b, err := v.scalar(name, famBool)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// Pointer reads a ptr field.
func (v *View) Pointer(name string) (Pointer, error) {
	k, b, err := v.scalar(name, famPointer)
	if err != nil {
		return 0, err
	}
	return Pointer(loadBits(v.order, k, b)), nil
}

// SetUint writes the low bits of x to an unsigned integer field.
func (v *View) SetUint(name string, x uint64) error {
	k, b, err := v.scalar(name, famUint)
	if err != nil {
		return err
	}
	return store(v.order, k, b, x)
}

// SetInt writes the low bits of x to a signed integer field.
func (v *View) SetInt(name string, x int64) error {
	k, b, err := v.scalar(name, famInt)
	if err != nil {
		return err
	}
	return store(v.order, k, b, x)
}

// SetFloat writes x to an f32 or f64 field.
func (v *View) SetFloat(name string, x float64) error {
	k, b, err := v.scalar(name, famFloat)
	if err != nil {
		return err
	}
	return store(v.order, k, b, x)
}

// SetBool writes 0 or 1 to a bool field.
func (v *View) SetBool(name string, x bool) error {
	k, b, err := v.scalar(name, famBool)
	if err != nil {
		return err
	}
	return store(v.order, k, b, x)
}

// SetPointer writes a ptr field.
func (v *View) SetPointer(name string, p Pointer) error {
	k, b, err := v.scalar(name, famPointer)
	if err != nil {
		return err
	}
	return store(v.order, k, b, uint64(p))
}

func setArray(name string, t layout.Type, order binary.ByteOrder, b []byte, val any) error {
	if a, ok := val.(*Array); ok {
		if a.kind != t.Kind {
			return fserrors.TypeMismatch(name, t.String(), val)
		}
		if a.n != t.Count {
			return fserrors.LengthMismatch(name, t.Count, a.n)
		}
		if sameOrder(a.order, order) {
			copy(b, a.b)
			return nil
		}
		sz := t.Kind.Size()
		for i := 0; i < a.n; i++ {
			if err := store(order, t.Kind, b[i*sz:(i+1)*sz], load(a.order, a.kind, a.b[i*sz:])); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fserrors.TypeMismatch(name, t.String(), val)
	}
	if rv.Type().Elem().Kind() != t.Kind.ReflectKind() {
		return fserrors.TypeMismatch(name, t.String(), val)
	}
	if rv.Len() != t.Count {
		return fserrors.LengthMismatch(name, t.Count, rv.Len())
	}
	if raw, ok := val.([]byte); ok {
		copy(b, raw)
		return nil
	}
	sz := t.Kind.Size()
	for i := 0; i < t.Count; i++ {
		if err := store(order, t.Kind, b[i*sz:(i+1)*sz], rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func sameOrder(a, b binary.ByteOrder) bool {
	var x, y [2]byte
	a.PutUint16(x[:], 0x0102)
	b.PutUint16(y[:], 0x0102)
	return x == y
}
