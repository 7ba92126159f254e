package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesKind(t *testing.T) {
	err := BufferTooSmall(10, 3)
	require.ErrorIs(t, err, ErrBufferTooSmall)
	require.NotErrorIs(t, err, ErrSizeMismatch)
	require.False(t, stderrors.Is(err, io.EOF))
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{MalformedFormat('z', 3, "invalid token"), `malformed_format: character 'z' at position 3: invalid token`},
		{MissingValue(2, 5, 2), `missing_value at index 2: not enough values to pack (expected 5, got 2)`},
		{SizeMismatch("0:3s", 3, 2), `size_mismatch at field 0:3s (expected 3, got 2)`},
		{BufferTooSmall(8, 7), `buffer_too_small (expected 8, got 7)`},
		{LengthMismatch("vals", 3, 1), `length_mismatch at field vals (expected 3, got 1)`},
		{InvalidFieldType("b", "u9", "unknown type"), `invalid_field_type at field b: "u9": unknown type`},
		{TypeMismatch("n", "integer", "x"), `type_mismatch at field n: cannot use string as integer`},
		{UnknownField("q"), `unknown_field at field q`},
		{OutOfBounds("vals", 4, 3), `out_of_bounds at field vals: index 4, length 3`},
		{Unaligned("ids", 4), `unaligned at field ids: address not aligned to 4 bytes`},
	}
	for _, test := range tests {
		require.Equal(t, test.want, test.err.Error())
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(KindInvalidFieldType, io.ErrUnexpectedEOF, "reading declarations")
	require.ErrorIs(t, err, ErrInvalidFieldType)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Contains(t, err.Error(), "caused by: unexpected EOF")

	var fe *Error
	require.True(t, stderrors.As(err, &fe))
	require.Equal(t, KindInvalidFieldType, fe.Kind)
	require.Equal(t, -1, fe.Index)
}
