// Package errors defines the error taxonomy shared by the format parser,
// the codec, the layout planner and the overlay view.
//
// Every error is an *Error carrying a Kind plus enough context (offending
// character and position, field name, expected and actual sizes) to
// diagnose the failure without re-parsing. Errors compare equal under
// errors.Is when their kinds match, so callers test against the sentinels:
//
//	if errors.Is(err, fserrors.ErrBufferTooSmall) { ... }
package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	KindMalformedFormat  Kind = "malformed_format"
	KindInvalidFieldType Kind = "invalid_field_type"
	KindMissingValue     Kind = "missing_value"
	KindSizeMismatch     Kind = "size_mismatch"
	KindBufferTooSmall   Kind = "buffer_too_small"
	KindLengthMismatch   Kind = "length_mismatch"
	KindTypeMismatch     Kind = "type_mismatch"
	KindUnknownField     Kind = "unknown_field"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindUnaligned        Kind = "unaligned"
)

// Sentinels for errors.Is.
var (
	ErrMalformedFormat  = &Error{Kind: KindMalformedFormat, Index: -1}
	ErrInvalidFieldType = &Error{Kind: KindInvalidFieldType, Index: -1}
	ErrMissingValue     = &Error{Kind: KindMissingValue, Index: -1}
	ErrSizeMismatch     = &Error{Kind: KindSizeMismatch, Index: -1}
	ErrBufferTooSmall   = &Error{Kind: KindBufferTooSmall, Index: -1}
	ErrLengthMismatch   = &Error{Kind: KindLengthMismatch, Index: -1}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch, Index: -1}
	ErrUnknownField     = &Error{Kind: KindUnknownField, Index: -1}
	ErrOutOfBounds      = &Error{Kind: KindOutOfBounds, Index: -1}
	ErrUnaligned        = &Error{Kind: KindUnaligned, Index: -1}
)

// Error is the structured error type used throughout the module.
// Pos is 1-based; zero means no position. Index is -1 when unset.
type Error struct {
	Kind     Kind
	Detail   string
	Field    string
	Char     rune
	Pos      int
	Index    int
	Expected int
	Actual   int
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" at field ")
		b.WriteString(e.Field)
	}
	if e.Index >= 0 && e.Kind == KindMissingValue {
		fmt.Fprintf(&b, " at index %d", e.Index)
	}
	if e.Pos > 0 {
		fmt.Fprintf(&b, ": character %q at position %d", e.Char, e.Pos)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Expected != 0 || e.Actual != 0 {
		fmt.Fprintf(&b, " (expected %d, got %d)", e.Expected, e.Actual)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Index: -1}
}

// MalformedFormat reports an offending character at a 1-based position.
func MalformedFormat(ch rune, pos int, detail string) *Error {
	e := newError(KindMalformedFormat, detail)
	e.Char = ch
	e.Pos = pos
	return e
}

// InvalidFieldType reports an unknown or ill-formed layout type tag.
func InvalidFieldType(field, tag, detail string) *Error {
	e := newError(KindInvalidFieldType, fmt.Sprintf("%q: %s", tag, detail))
	e.Field = field
	return e
}

// MissingValue reports that pack ran out of input values at index.
func MissingValue(index, expected, actual int) *Error {
	e := newError(KindMissingValue, "not enough values to pack")
	e.Index = index
	e.Expected = expected
	e.Actual = actual
	return e
}

// SizeMismatch reports a value or buffer whose length differs from the
// declared one.
func SizeMismatch(field string, expected, actual int) *Error {
	e := newError(KindSizeMismatch, "")
	e.Field = field
	e.Expected = expected
	e.Actual = actual
	return e
}

// BufferTooSmall reports a buffer shorter than the format requires.
func BufferTooSmall(expected, actual int) *Error {
	e := newError(KindBufferTooSmall, "")
	e.Expected = expected
	e.Actual = actual
	return e
}

// LengthMismatch reports an array assignment with the wrong element count.
func LengthMismatch(field string, expected, actual int) *Error {
	e := newError(KindLengthMismatch, "")
	e.Field = field
	e.Expected = expected
	e.Actual = actual
	return e
}

// TypeMismatch reports a Go value that cannot be stored in a field.
func TypeMismatch(field string, want string, got any) *Error {
	e := newError(KindTypeMismatch, fmt.Sprintf("cannot use %T as %s", got, want))
	e.Field = field
	return e
}

// UnknownField reports access to a field the layout does not declare.
func UnknownField(field string) *Error {
	e := newError(KindUnknownField, "")
	e.Field = field
	return e
}

// OutOfBounds reports an array index outside [0, length).
func OutOfBounds(field string, index, length int) *Error {
	e := newError(KindOutOfBounds, fmt.Sprintf("index %d, length %d", index, length))
	e.Field = field
	return e
}

// Unaligned reports a region whose address is not aligned for zero-copy
// access.
func Unaligned(field string, align int) *Error {
	e := newError(KindUnaligned, fmt.Sprintf("address not aligned to %d bytes", align))
	e.Field = field
	return e
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, cause error, detail string) *Error {
	e := newError(kind, detail)
	e.Cause = cause
	return e
}
