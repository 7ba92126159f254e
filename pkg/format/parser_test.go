package format

import (
	"testing"
	"testing/quick"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"

	fserrors "github.com/rawbytedev/fstruct/errors"
)

func codes(d *Descriptor) string {
	var s string
	for _, f := range d.Fields {
		s += f.String() + " "
	}
	return s
}

func TestParseExamples(t *testing.T) {
	d, err := Parse("<bhhih")
	require.NoError(t, err)
	require.Equal(t, LittleEndian, d.Order)
	require.Equal(t, 11, d.Size)
	require.Equal(t, "b h h i h ", codes(d))

	d, err = Parse("hhhhbx")
	require.NoError(t, err)
	require.Equal(t, BigEndian, d.Order)
	require.Equal(t, 10, d.Size)
	require.Equal(t, "h h h h b x ", codes(d))
	require.Equal(t, 5, d.Values())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		order Endianness
		size  int
		want  []Field
	}{
		{"empty", "", BigEndian, 0, nil},
		{"marker only", "<", LittleEndian, 0, nil},
		{"repeat", "4h", BigEndian, 8, []Field{{Uint16, 1}, {Uint16, 1}, {Uint16, 1}, {Uint16, 1}}},
		{"string keeps length", "3s", BigEndian, 3, []Field{{String, 3}}},
		{"string default length", "s", BigEndian, 1, []Field{{String, 1}}},
		{"zero length string", "0s", BigEndian, 0, []Field{{String, 0}}},
		{"zero repeat", "0hb", BigEndian, 1, []Field{{Uint8, 1}}},
		{"digits after string start next token", "3s2h", BigEndian, 7, []Field{{String, 3}, {Uint16, 1}, {Uint16, 1}}},
		{"separators", "> b, h  ,i", BigEndian, 7, []Field{{Uint8, 1}, {Uint16, 1}, {Uint32, 1}}},
		{"network marker", "!d", BigEndian, 8, []Field{{Float64, 1}}},
		{"native marker", "@?", BigEndian, 1, []Field{{Bool, 1}}},
		{"standard marker", "=c", BigEndian, 1, []Field{{Char, 1}}},
		{"trimmed", "<  lL\t", LittleEndian, 16, []Field{{Uint64, 1}, {Int64, 1}}},
		{"multi digit", "12x", BigEndian, 12, []Field{
			{Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1},
			{Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1}, {Pad, 1},
		}},
		{"all codes", "xcbBhHiIlLfd2s?", BigEndian, 1 + 1 + 1 + 1 + 2 + 2 + 4 + 4 + 8 + 8 + 4 + 8 + 2 + 1, []Field{
			{Pad, 1}, {Char, 1}, {Uint8, 1}, {Int8, 1}, {Uint16, 1}, {Int16, 1}, {Uint32, 1},
			{Int32, 1}, {Uint64, 1}, {Int64, 1}, {Float32, 1}, {Float64, 1}, {String, 2}, {Bool, 1},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(test.in)
			require.NoError(t, err)
			want := &Descriptor{Order: test.order, Size: test.size, Fields: test.want}
			if diff := pretty.Compare(want, d); diff != "" {
				t.Errorf("Parse(%q): -want/+got:\n%s", test.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		char rune
		pos  int
	}{
		{"hz", 'z', 2},
		{"<h#", '#', 3},
		{"3 h", '3', 1},
		{"h,3,", '3', 3},
		{"<12 ", '1', 2},
		{"h3", '3', 2},
		{" <h", '<', 2},
		{"h\nh", '\n', 2},
		{"bé", 'é', 2},
		{"99999999999h", '9', 1},
		{"2000000h", 'h', 8},
	}
	for _, test := range tests {
		_, err := Parse(test.in)
		require.ErrorIs(t, err, fserrors.ErrMalformedFormat, test.in)
		var fe *fserrors.Error
		require.ErrorAs(t, err, &fe)
		require.Equal(t, test.char, fe.Char, test.in)
		require.Equal(t, test.pos, fe.Pos, test.in)
	}
}

func TestCalcSize(t *testing.T) {
	n, err := CalcSize("<3sbhilHIL")
	require.NoError(t, err)
	require.Equal(t, 3+1+2+4+8+2+4+8, n)

	_, err = CalcSize("q")
	require.ErrorIs(t, err, fserrors.ErrMalformedFormat)
}

func TestDescriptorString(t *testing.T) {
	for _, in := range []string{"<bhhih", "hhhhbx", "3s2h?", "<0s4x", "", "dfdf"} {
		d, err := Parse(in)
		require.NoError(t, err)
		again, err := Parse(d.String())
		require.NoError(t, err)
		if diff := pretty.Compare(d, again); diff != "" {
			t.Errorf("Parse(%q).String() = %q does not round trip:\n%s", in, d.String(), diff)
		}
	}
	d, err := Parse("<hhhb3s")
	require.NoError(t, err)
	require.Equal(t, "<3hb3s", d.String())
}

// size law: Size equals the sum of every field width.
func TestSizeLaw(t *testing.T) {
	alphabet := []byte("xcbBhHiIlLfds?")
	condition := func(picks []uint8, counts []uint8) bool {
		var in []byte
		for i, p := range picks {
			if i < len(counts) {
				in = append(in, []byte(itoa(int(counts[i]%20)))...)
			}
			in = append(in, alphabet[int(p)%len(alphabet)])
		}
		d, err := Parse(string(in))
		if err != nil {
			return false
		}
		sum := 0
		for _, f := range d.Fields {
			sum += f.Size()
		}
		return sum == d.Size
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"<bhhih", "hhhhbx", "3sbhilHIL", "> 2h, 4s", "1x2", "??"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		d, err := Parse(in)
		if err != nil {
			require.ErrorIs(t, err, fserrors.ErrMalformedFormat)
			return
		}
		sum := 0
		for _, fl := range d.Fields {
			sum += fl.Size()
		}
		require.Equal(t, d.Size, sum)
		again, err := Parse(d.String())
		require.NoError(t, err)
		require.Equal(t, d.Size, again.Size)
		require.Equal(t, d.Order, again.Order)
	})
}
