package number

import (
	"math"
	"strconv"
)

// Float64 is the IEEE double-precision instantiation of Num. Division by
// zero follows IEEE semantics (±Inf, NaN); there is no special casing in
// the grammar.
type Float64 float64

var _ Num[Float64] = Float64(0)

func (f Float64) Parse(s string) (Float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Float64(v), nil
}

func (f Float64) Add(o Float64) Float64 { return f + o }
func (f Float64) Sub(o Float64) Float64 { return f - o }
func (f Float64) Mul(o Float64) Float64 { return f * o }
func (f Float64) Div(o Float64) Float64 { return f / o }
func (f Float64) Neg() Float64 { return -f }

func (f Float64) Cmp(o Float64) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float64) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// Float32 narrows the value to single precision. A finite value whose
// magnitude exceeds the float32 range yields a *ConversionError;
// infinities and NaN pass through unchanged, as they represent themselves
// in the narrower type.
func (f Float64) Float32() (Float32, error) {
	v := float64(f)
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
		return 0, &ConversionError{Value: f.String(), Target: "float32"}
	}
	return Float32(v), nil
}

// Float32 is the IEEE single-precision instantiation of Num.
type Float32 float32

var _ Num[Float32] = Float32(0)

func (f Float32) Parse(s string) (Float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return Float32(v), nil
}

func (f Float32) Add(o Float32) Float32 { return f + o }
func (f Float32) Sub(o Float32) Float32 { return f - o }
func (f Float32) Mul(o Float32) Float32 { return f * o }
func (f Float32) Div(o Float32) Float32 { return f / o }
func (f Float32) Neg() Float32 { return -f }

func (f Float32) Cmp(o Float32) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float32) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
