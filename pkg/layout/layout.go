// Package layout plans C-compatible struct layouts: every field is placed
// at the next offset aligned to its natural alignment and the total size is
// padded to the largest alignment in the struct.
package layout

import (
	"fmt"
	"strings"
	"text/tabwriter"

	fserrors "github.com/rawbytedev/fstruct/errors"
	"github.com/rawbytedev/fstruct/internal/common"
)

// Decl declares one field: a name and its type tag.
type Decl struct {
	Name string
	Type string
}

// Field is a planned field.
type Field struct {
	Name   string
	Type   Type
	Size   int
	Align  int
	Offset int
}

// End is the first byte past the field.
func (f Field) End() int { return f.Offset + f.Size }

// Layout is an immutable plan. Offsets are computed once in Plan.
type Layout struct {
	Size   int
	Align  int
	Fields []Field

	index map[string]int
}

// Plan lays out decls in declaration order.
func Plan(decls ...Decl) (*Layout, error) {
	l := &Layout{
		Align:  1,
		Fields: make([]Field, 0, len(decls)),
		index:  make(map[string]int, len(decls)),
	}
	off := 0
	for _, d := range decls {
		if d.Name == "" {
			return nil, fserrors.InvalidFieldType("", d.Type, "empty field name")
		}
		if _, dup := l.index[d.Name]; dup {
			return nil, fserrors.InvalidFieldType(d.Name, d.Type, "duplicate field name")
		}
		t, err := ParseType(d.Type)
		if err != nil {
			if fe, ok := err.(*fserrors.Error); ok {
				fe.Field = d.Name
			}
			return nil, err
		}
		align := t.Align()
		off = common.AlignTo(off, align)
		l.index[d.Name] = len(l.Fields)
		l.Fields = append(l.Fields, Field{
			Name:   d.Name,
			Type:   t,
			Size:   t.Size(),
			Align:  align,
			Offset: off,
		})
		off += t.Size()
		l.Align = max(l.Align, align)
	}
	l.Size = common.AlignTo(off, l.Align)
	return l, nil
}

// MustPlan is Plan that panics on error.
func MustPlan(decls ...Decl) *Layout {
	l, err := Plan(decls...)
	if err != nil {
		panic(err)
	}
	return l
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.Fields[i], true
}

// Names returns the field names in declaration order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// String renders the offset table.
func (l *Layout) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tSIZE\tALIGN\tNAME\tTYPE")
	for _, f := range l.Fields {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", f.Offset, f.Size, f.Align, f.Name, f.Type)
	}
	w.Flush()
	fmt.Fprintf(&b, "size %d, align %d\n", l.Size, l.Align)
	return b.String()
}
