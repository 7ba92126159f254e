package common

import (
	"math"
	"math/big"
	"reflect"
)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// ToBits converts an integer-like Go value to the two's complement bit
// pattern of a 64-bit integer. Floats truncate toward zero (NaN and
// infinities become 0), bools become 0 or 1 and *big.Int values wrap
// modulo 2^64. Named types fall back to their reflect kind.
func ToBits(v any) (uint64, bool) {
	switch x := v.(type) {
	case int:
		return uint64(x), true
	case int8:
		return uint64(x), true
	case int16:
		return uint64(x), true
	case int32:
		return uint64(x), true
	case int64:
		return uint64(x), true
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uintptr:
		return uint64(x), true
	case float32:
		return floatBits(float64(x)), true
	case float64:
		return floatBits(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		return new(big.Int).And(x, maxUint64).Uint64(), true
	case nil:
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return floatBits(rv.Float()), true
	case reflect.Bool:
		return ToBits(rv.Bool())
	}
	return 0, false
}

func floatBits(f float64) uint64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= 0:
		return uint64(math.Trunc(f))
	default:
		return uint64(int64(math.Trunc(f)))
	}
}

// ToFloat converts any numeric Go value to float64.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	case nil:
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		return ToFloat(rv.Bool())
	}
	return 0, false
}

// Truthy applies the boolean conversion table:
//
//	*big.Int  zero -> false, otherwise true
//	numbers   0    -> false, otherwise true (NaN is true)
//	string    "0"  -> false, otherwise true
//	bool      unchanged
//
// Any other type is rejected.
func Truthy(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		return x != "0", true
	case *big.Int:
		if x == nil {
			return false, false
		}
		return x.Sign() != 0, true
	case float32:
		return x != 0, true
	case float64:
		return x != 0, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String() != "0", true
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, true
	}
	if bits, ok := ToBits(v); ok {
		return bits != 0, true
	}
	return false, false
}

// CharByte converts v to the single byte stored by a char field. Strings
// contribute their first rune truncated to one byte; an empty string is 0.
func CharByte(v any) (byte, bool) {
	if s, ok := v.(string); ok {
		for _, r := range s {
			return byte(r), true
		}
		return 0, true
	}
	if b, ok := ToBits(v); ok {
		return byte(b), true
	}
	return 0, false
}
