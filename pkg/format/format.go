package format

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Code is a single type code of the format alphabet.
type Code byte

const (
	Pad     Code = 'x'
	Char    Code = 'c'
	Uint8   Code = 'b'
	Int8    Code = 'B'
	Uint16  Code = 'h'
	Int16   Code = 'H'
	Uint32  Code = 'i'
	Int32   Code = 'I'
	Uint64  Code = 'l'
	Int64   Code = 'L'
	Float32 Code = 'f'
	Float64 Code = 'd'
	String  Code = 's'
	Bool    Code = '?'
)

// widths is indexed by code; zero marks a byte outside the alphabet.
var widths = [256]int{
	Pad:     1,
	Char:    1,
	Uint8:   1,
	Int8:    1,
	Uint16:  2,
	Int16:   2,
	Uint32:  4,
	Int32:   4,
	Uint64:  8,
	Int64:   8,
	Float32: 4,
	Float64: 8,
	String:  1,
	Bool:    1,
}

// Valid reports whether c belongs to the format alphabet.
func (c Code) Valid() bool {
	return widths[c] != 0
}

// Width is the byte width of one field of this code. For String it is the
// width of one byte of the string.
func (c Code) Width() int {
	return widths[c]
}

// IsInteger reports whether c is one of the integer codes.
func (c Code) IsInteger() bool {
	switch c {
	case Uint8, Int8, Uint16, Int16, Uint32, Int32, Uint64, Int64:
		return true
	}
	return false
}

// Signed reports whether c is a signed integer code.
func (c Code) Signed() bool {
	switch c {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsFloat reports whether c is f or d.
func (c Code) IsFloat() bool {
	return c == Float32 || c == Float64
}

func (c Code) String() string {
	return string(rune(c))
}

// Field is one entry of a parsed format. Len is the declared length of a
// String field and 1 for every other code.
type Field struct {
	Code Code
	Len  int
}

// Size is the number of bytes the field occupies.
func (f Field) Size() int {
	if f.Code == String {
		return f.Len
	}
	return f.Code.Width()
}

func (f Field) String() string {
	if f.Code == String {
		return strconv.Itoa(f.Len) + "s"
	}
	return f.Code.String()
}

// Endianness selects the byte order of multi-byte fields.
type Endianness uint8

const (
	BigEndian Endianness = iota
	LittleEndian
)

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (e Endianness) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// Descriptor is a parsed format string. It is not modified after Parse
// returns and can be shared by any number of pack and unpack calls.
type Descriptor struct {
	Order  Endianness
	Size   int
	Fields []Field
}

// Values is the number of values Pack consumes and Unpack produces.
func (d *Descriptor) Values() int {
	n := 0
	for _, f := range d.Fields {
		if f.Code != Pad {
			n++
		}
	}
	return n
}

// String renders d as a canonical format string. Runs of the same scalar
// code are collapsed into a repeat count.
func (d *Descriptor) String() string {
	var b strings.Builder
	if d.Order == LittleEndian {
		b.WriteByte('<')
	} else {
		b.WriteByte('>')
	}
	for i := 0; i < len(d.Fields); {
		f := d.Fields[i]
		if f.Code == String {
			b.WriteString(f.String())
			i++
			continue
		}
		run := 1
		for i+run < len(d.Fields) && d.Fields[i+run].Code == f.Code {
			run++
		}
		if run > 1 {
			b.WriteString(strconv.Itoa(run))
		}
		b.WriteByte(byte(f.Code))
		i += run
	}
	return b.String()
}
