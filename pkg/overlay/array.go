package overlay

import (
	"encoding/binary"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
	"github.com/rawbytedev/fstruct/pkg/layout"
)

// Array is a live view over an array field. Reads and writes go straight
// to the view's buffer, so changes are visible in both directions.
type Array struct {
	name  string
	kind  layout.Kind
	n     int
	order binary.ByteOrder
	b     []byte
}

func newArray(name string, t layout.Type, order binary.ByteOrder, b []byte) *Array {
	return &Array{name: name, kind: t.Kind, n: t.Count, order: order, b: b}
}

// Len is the element count.
func (a *Array) Len() int { return a.n }

// Kind is the element kind.
func (a *Array) Kind() layout.Kind { return a.kind }

// Bytes returns the field's bytes. The slice aliases the view's buffer.
func (a *Array) Bytes() []byte { return a.b }

func (a *Array) at(i int, fam family) ([]byte, error) {
	if err := fam.check(a.name, a.kind); err != nil {
		return nil, err
	}
	return a.elem(i)
}

func (a *Array) elem(i int) ([]byte, error) {
	if i < 0 || i >= a.n {
		return nil, fserrors.OutOfBounds(a.name, i, a.n)
	}
	sz := a.kind.Size()
	return a.b[i*sz : (i+1)*sz], nil
}

// Get decodes element i to the Go type of the element kind.
func (a *Array) Get(i int) (any, error) {
	b, err := a.elem(i)
	if err != nil {
		return nil, err
	}
	return load(a.order, a.kind, b), nil
}

// Set encodes v into element i through the shared conversion table.
func (a *Array) Set(i int, v any) error {
	b, err := a.elem(i)
	if err != nil {
		return err
	}
	if err := store(a.order, a.kind, b, v); err != nil {
		if fe, ok := err.(*fserrors.Error); ok {
			fe.Field = a.name
			fe.Index = i
		}
		return err
	}
	return nil
}

// Values copies every element out of the buffer.
func (a *Array) Values() []any {
	out := make([]any, a.n)
	sz := a.kind.Size()
	for i := range out {
		out[i] = load(a.order, a.kind, a.b[i*sz:(i+1)*sz])
	}
	return out
}

// Uint reads element i of an unsigned integer array.
func (a *Array) Uint(i int) (uint64, error) {
	b, err := a.at(i, famUint)
	if err != nil {
		return 0, err
	}
	return loadBits(a.order, a.kind, b), nil
}

// Int reads element i of a signed integer array.
func (a *Array) Int(i int) (int64, error) {
	b, err := a.at(i, famInt)
	if err != nil {
		return 0, err
	}
	return loadInt(a.order, a.kind, b), nil
}

// Float reads element i of an f32 or f64 array.
func (a *Array) Float(i int) (float64, error) {
	b, err := a.at(i, famFloat)
	if err != nil {
		return 0, err
	}
	return common.GetFloat(a.order, b, a.kind.Size()), nil
}

// Bool reads element i of a bool array. Any non-zero byte is true.
func (a *Array) Bool(i int) (bool, error) {
	b, err := a.at(i, famBool)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// Pointer reads element i of a ptr array.
func (a *Array) Pointer(i int) (Pointer, error) {
	b, err := a.at(i, famPointer)
	if err != nil {
		return 0, err
	}
	return Pointer(loadBits(a.order, a.kind, b)), nil
}

// SetUint writes the low bits of x to element i.
func (a *Array) SetUint(i int, x uint64) error {
	b, err := a.at(i, famUint)
	if err != nil {
		return err
	}
	return store(a.order, a.kind, b, x)
}

// SetInt writes the low bits of x to element i.
func (a *Array) SetInt(i int, x int64) error {
	b, err := a.at(i, famInt)
	if err != nil {
		return err
	}
	return store(a.order, a.kind, b, x)
}

// SetFloat writes x to element i of an f32 or f64 array.
func (a *Array) SetFloat(i int, x float64) error {
	b, err := a.at(i, famFloat)
	if err != nil {
		return err
	}
	return store(a.order, a.kind, b, x)
}

// SetBool writes 0 or 1 to element i.
func (a *Array) SetBool(i int, x bool) error {
	b, err := a.at(i, famBool)
	if err != nil {
		return err
	}
	return store(a.order, a.kind, b, x)
}

// SetPointer writes element i of a ptr array.
func (a *Array) SetPointer(i int, p Pointer) error {
	b, err := a.at(i, famPointer)
	if err != nil {
		return err
	}
	return store(a.order, a.kind, b, uint64(p))
}
