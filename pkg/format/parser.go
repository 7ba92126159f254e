package format

import (
	"math"
	"unicode/utf8"

	fserrors "github.com/rawbytedev/fstruct/errors"
)

const (
	// MaxFields bounds the number of fields a format expands to.
	MaxFields = 1 << 20
	// MaxSize bounds the total byte size of a format.
	MaxSize = math.MaxInt32
)

// Parse parses a struct format string.
//
// Grammar:
//
//	format = [ "<" | ">" | "!" | "@" | "=" ] { [ count ] code | separator }
//	code   = "x" | "c" | "b" | "B" | "h" | "H" | "i" | "I" | "l" | "L" | "f" | "d" | "s" | "?"
//
// "<" selects little-endian; every other marker, and no marker, selects
// big-endian. A count before s is the length of one byte string field;
// before any other code it repeats the code. Separators are space and
// comma. Errors report the offending character and its 1-based position in
// format.
func Parse(format string) (*Descriptor, error) {
	p := &parser{
		src: format,
		d:   &Descriptor{Order: BigEndian},
	}
	return p.run()
}

// CalcSize returns the number of bytes described by format.
func CalcSize(format string) (int, error) {
	d, err := Parse(format)
	if err != nil {
		return 0, err
	}
	return d.Size, nil
}

type parser struct {
	src string
	d   *Descriptor

	count    int
	hasCount bool
	countAt  int // byte offset of the first digit of count
}

func (p *parser) run() (*Descriptor, error) {
	start, end := 0, len(p.src)
	if end > 0 {
		switch p.src[0] {
		case '<':
			p.d.Order = LittleEndian
			start = 1
		case '>', '!', '@', '=':
			start = 1
		}
	}
	for start < end && isSpace(p.src[start]) {
		start++
	}
	for end > start && isSpace(p.src[end-1]) {
		end--
	}

	for i := start; i < end; {
		ch, w := utf8.DecodeRuneInString(p.src[i:])
		switch {
		case ch >= '0' && ch <= '9':
			if err := p.digit(i, int(ch-'0')); err != nil {
				return nil, err
			}
		case ch == ' ' || ch == ',':
			if p.hasCount {
				return nil, p.errAt(p.countAt, "repeat count without type code")
			}
		case ch < utf8.RuneSelf && Code(ch).Valid():
			if err := p.emit(i, Code(ch)); err != nil {
				return nil, err
			}
		default:
			return nil, p.errAt(i, "invalid token")
		}
		i += w
	}
	if p.hasCount {
		return nil, p.errAt(p.countAt, "repeat count without type code")
	}
	return p.d, nil
}

func (p *parser) digit(at, v int) error {
	if !p.hasCount {
		p.hasCount = true
		p.count = 0
		p.countAt = at
	}
	if p.count > (MaxSize-v)/10 {
		return p.errAt(p.countAt, "repeat count too large")
	}
	p.count = p.count*10 + v
	return nil
}

func (p *parser) emit(at int, c Code) error {
	n := 1
	if p.hasCount {
		n = p.count
	}
	p.hasCount = false
	p.count = 0

	if c == String {
		if p.d.Size > MaxSize-n || len(p.d.Fields) >= MaxFields {
			return p.errAt(at, "format too large")
		}
		p.d.Fields = append(p.d.Fields, Field{Code: String, Len: n})
		p.d.Size += n
		return nil
	}

	w := c.Width()
	if n > MaxFields-len(p.d.Fields) || p.d.Size > MaxSize-n*w {
		return p.errAt(at, "format too large")
	}
	for i := 0; i < n; i++ {
		p.d.Fields = append(p.d.Fields, Field{Code: c, Len: 1})
	}
	p.d.Size += n * w
	return nil
}

// errAt builds a MalformedFormat error for the rune starting at byte
// offset at.
func (p *parser) errAt(at int, detail string) error {
	ch, _ := utf8.DecodeRuneInString(p.src[at:])
	pos := utf8.RuneCountInString(p.src[:at]) + 1
	return fserrors.MalformedFormat(ch, pos, detail)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
