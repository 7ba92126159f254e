package overlay

import (
	"reflect"
	"unsafe"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
)

// Slice returns a []T aliasing the bytes of an array field, without
// copying. Writes through the slice are writes to the view's buffer.
//
// The view must use the host byte order, T must have the element's kind
// (Pointer or uint64 for ptr arrays), and the field's address must be
// aligned for T. Pointer satisfies the constraint through its uint64
// underlying type. The slice is valid for as long as the buffer is.
func Slice[T common.Number](v *View, name string) ([]T, error) {
	f, b, err := v.field(name)
	if err != nil {
		return nil, err
	}
	var zero T
	rk := reflect.TypeOf(zero).Kind()
	if !f.Type.Array || rk != f.Type.Kind.ReflectKind() || common.FixedSize(rk) != f.Type.Kind.Size() {
		return nil, fserrors.TypeMismatch(name, "[]"+f.Type.Kind.String(), []T(nil))
	}
	if !common.IsNative(v.order) {
		e := fserrors.TypeMismatch(name, "[]"+f.Type.Kind.String(), []T(nil))
		e.Detail = "zero-copy slices need the host byte order"
		return nil, e
	}
	if f.Type.Count == 0 {
		return []T{}, nil
	}
	if !aligned(b, int(unsafe.Alignof(zero))) {
		return nil, fserrors.Unaligned(name, int(unsafe.Alignof(zero)))
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), f.Type.Count), nil
}

func aligned(b []byte, align int) bool {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return addr%uintptr(align) == 0
}
