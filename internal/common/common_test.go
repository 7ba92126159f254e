package common

import (
	"encoding/binary"
	"math"
	"math/big"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

type celsius float32
type level uint8

func TestFixedSize(t *testing.T) {
	require.Equal(t, 1, FixedSize(reflect.Bool))
	require.Equal(t, 2, FixedSize(reflect.Int16))
	require.Equal(t, 8, FixedSize(reflect.Float64))
	require.Equal(t, 0, FixedSize(reflect.Int))
	require.Equal(t, 0, FixedSize(reflect.Slice))
	require.Equal(t, 0, FixedSize(reflect.UnsafePointer))
}

func TestAlignTo(t *testing.T) {
	require.Equal(t, 0, AlignTo(0, 8))
	require.Equal(t, 8, AlignTo(1, 8))
	require.Equal(t, 8, AlignTo(8, 8))
	require.Equal(t, 5, AlignTo(5, 1))
	require.Equal(t, 6, AlignTo(5, 2))
}

func TestPutGet(t *testing.T) {
	b := make([]byte, 8)
	Put(binary.BigEndian, b, uint32(0x01020304))
	require.Equal(t, []byte{1, 2, 3, 4}, b[:4])
	require.Equal(t, uint32(0x01020304), Get[uint32](binary.BigEndian, b))
	require.Equal(t, int16(0x0102), Get[int16](binary.BigEndian, b))

	PutBits(binary.LittleEndian, b, 2, 0xaabbcc)
	require.Equal(t, []byte{0xcc, 0xbb}, b[:2])
	require.Equal(t, uint64(0xbbcc), GetBits(binary.LittleEndian, b, 2))
	require.Equal(t, int64(-0x4434), SignExtend(0xbbcc, 2))
	require.Equal(t, int64(0x7f), SignExtend(0x7f, 1))
	require.Equal(t, int64(-1), SignExtend(math.MaxUint64, 8))

	PutFloat(binary.LittleEndian, b, 4, 1.5)
	require.Equal(t, 1.5, GetFloat(binary.LittleEndian, b, 4))
	PutFloat(binary.BigEndian, b, 8, math.E)
	require.Equal(t, math.E, GetFloat(binary.BigEndian, b, 8))

	require.NotEqual(t, IsNative(binary.LittleEndian), IsNative(binary.BigEndian))
	require.True(t, IsNative(binary.NativeEndian))
}

func TestToBits(t *testing.T) {
	tests := []struct {
		in   any
		want uint64
		ok   bool
	}{
		{-1, math.MaxUint64, true},
		{int8(-2), math.MaxUint64 - 1, true},
		{uint16(7), 7, true},
		{3.9, 3, true},
		{-3.9, math.MaxUint64 - 2, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
		{true, 1, true},
		{level(9), 9, true},
		{celsius(2.5), 2, true},
		{new(big.Int).Lsh(big.NewInt(1), 64), 0, true},
		{big.NewInt(-1), math.MaxUint64, true},
		{"1", 0, false},
		{nil, 0, false},
		{(*big.Int)(nil), 0, false},
	}
	for _, test := range tests {
		got, ok := ToBits(test.in)
		require.Equal(t, test.ok, ok, "%#v", test.in)
		require.Equal(t, test.want, got, "%#v", test.in)
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(celsius(2.5))
	require.True(t, ok)
	require.Equal(t, 2.5, f)
	f, ok = ToFloat(big.NewInt(1 << 40))
	require.True(t, ok)
	require.Equal(t, float64(1<<40), f)
	_, ok = ToFloat("2.5")
	require.False(t, ok)
}

func TestCharByte(t *testing.T) {
	c, ok := CharByte("A")
	require.True(t, ok)
	require.Equal(t, byte('A'), c)
	c, ok = CharByte("")
	require.True(t, ok)
	require.Equal(t, byte(0), c)
	c, ok = CharByte('é')
	require.True(t, ok)
	require.Equal(t, byte(0xe9), c)
	_, ok = CharByte([]byte("x"))
	require.False(t, ok)
}

// wrap law: storing then loading at any width keeps exactly the low bits.
func TestWrapLaw(t *testing.T) {
	condition := func(v int64, w uint8) bool {
		width := []int{1, 2, 4, 8}[w%4]
		bits, ok := ToBits(v)
		if !ok {
			return false
		}
		b := make([]byte, 8)
		PutBits(binary.BigEndian, b, width, bits)
		got := GetBits(binary.BigEndian, b, width)
		mask := uint64(math.MaxUint64)
		if width < 8 {
			mask = 1<<(8*width) - 1
		}
		return got == uint64(v)&mask && SignExtend(got, width) == int64(uint64(v)<<(64-8*width))>>(64-8*width)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}
