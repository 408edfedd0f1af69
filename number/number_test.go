package number

import (
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) Decimal {
	t.Helper()

	d, err := Decimal{}.Parse(s)
	assert.NoError(t, err)
	return d
}

func TestDecimal_Parse(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{"123.45", true},
		{"-0.001", true},
		{".5", true},
		{"", false},
		{"abc", false},
		{"1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Decimal{}.Parse(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecimal_Arithmetic(t *testing.T) {
	a := mustDecimal(t, "0.1")
	b := mustDecimal(t, "0.2")

	// Exact, unlike floats.
	assert.True(t, a.Add(b).Equal(mustDecimal(t, "0.3")))
	assert.True(t, b.Sub(a).Equal(mustDecimal(t, "0.1")))
	assert.True(t, a.Mul(b).Equal(mustDecimal(t, "0.02")))
	assert.True(t, b.Div(a).Equal(mustDecimal(t, "2")))
	assert.True(t, a.Neg().Equal(mustDecimal(t, "-0.1")))
}

func TestDecimal_Cmp(t *testing.T) {
	assert.Equal(t, -1, mustDecimal(t, "1").Cmp(mustDecimal(t, "2")))
	assert.Equal(t, 0, mustDecimal(t, "1.50").Cmp(mustDecimal(t, "1.5")))
	assert.Equal(t, 1, mustDecimal(t, "-1").Cmp(mustDecimal(t, "-2")))
}

func TestDecimal_Narrowing(t *testing.T) {
	f64, err := mustDecimal(t, "123.45").Float64()
	assert.NoError(t, err)
	assert.Equal(t, Float64(123.45), f64)

	f32, err := mustDecimal(t, "2.5").Float32()
	assert.NoError(t, err)
	assert.Equal(t, Float32(2.5), f32)

	// A value far beyond the float32 range fails loudly.
	huge := NewDecimal(decimal.New(1, 100)) // 1e100
	_, err = huge.Float32()
	assert.Error(t, err)

	var convErr *ConversionError
	assert.True(t, errors.As(err, &convErr))
	assert.Equal(t, "float32", convErr.Target)
}

func TestFloat64_ParseAndArithmetic(t *testing.T) {
	v, err := Float64(0).Parse("37.45")
	assert.NoError(t, err)
	assert.Equal(t, Float64(37.45), v)

	_, err = Float64(0).Parse("nope")
	assert.Error(t, err)

	assert.Equal(t, Float64(5), Float64(2).Add(3))
	assert.Equal(t, Float64(-1), Float64(2).Sub(3))
	assert.Equal(t, Float64(6), Float64(2).Mul(3))
	assert.Equal(t, Float64(2), Float64(6).Div(3))
	assert.Equal(t, Float64(-2), Float64(2).Neg())

	assert.Equal(t, -1, Float64(1).Cmp(2))
	assert.Equal(t, 0, Float64(1).Cmp(1))
	assert.Equal(t, 1, Float64(2).Cmp(1))
}

func TestFloat64_DivisionByZero(t *testing.T) {
	assert.True(t, math.IsInf(float64(Float64(1).Div(0)), 1))
	assert.True(t, math.IsInf(float64(Float64(-1).Div(0)), -1))
	assert.True(t, math.IsNaN(float64(Float64(0).Div(0))))
}

func TestFloat64_Float32(t *testing.T) {
	f32, err := Float64(1.5).Float32()
	assert.NoError(t, err)
	assert.Equal(t, Float32(1.5), f32)

	_, err = Float64(math.MaxFloat64).Float32()
	assert.Error(t, err)

	// Infinities represent themselves in the narrower type.
	f32, err = Float64(math.Inf(1)).Float32()
	assert.NoError(t, err)
	assert.True(t, math.IsInf(float64(f32), 1))
}

func TestFloat32_Parse(t *testing.T) {
	v, err := Float32(0).Parse("2.5")
	assert.NoError(t, err)
	assert.Equal(t, Float32(2.5), v)

	_, err = Float32(0).Parse("")
	assert.Error(t, err)
}

func TestConversionError_Message(t *testing.T) {
	err := &ConversionError{Value: "1e100", Target: "float32"}
	assert.Equal(t, "value 1e100 does not fit in float32", err.Error())
}
