package number

import (
	"math"

	"github.com/shopspring/decimal"
)

// Decimal is the fixed-point instantiation of Num, backed by
// shopspring/decimal. This is the representation ledger tooling should
// normally use; the float types exist for callers that trade exactness
// for speed.
type Decimal struct {
	d decimal.Decimal
}

var _ Num[Decimal] = Decimal{}

// NewDecimal wraps a shopspring decimal value.
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{d: d} }

// Decimal returns the underlying shopspring value.
func (n Decimal) Decimal() decimal.Decimal { return n.d }

func (n Decimal) Parse(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d: d}, nil
}

func (n Decimal) Add(o Decimal) Decimal { return Decimal{d: n.d.Add(o.d)} }
func (n Decimal) Sub(o Decimal) Decimal { return Decimal{d: n.d.Sub(o.d)} }
func (n Decimal) Mul(o Decimal) Decimal { return Decimal{d: n.d.Mul(o.d)} }

// Div divides with shopspring/decimal's default precision. Like the
// underlying library, it panics on a zero divisor; float instantiations
// produce IEEE infinities instead.
func (n Decimal) Div(o Decimal) Decimal { return Decimal{d: n.d.Div(o.d)} }

func (n Decimal) Neg() Decimal { return Decimal{d: n.d.Neg()} }
func (n Decimal) Cmp(o Decimal) int { return n.d.Cmp(o.d) }
func (n Decimal) Equal(o Decimal) bool { return n.d.Equal(o.d) }

func (n Decimal) String() string { return n.d.String() }

// Float64 narrows the value to an IEEE double. A magnitude beyond the
// float64 range yields a *ConversionError.
func (n Decimal) Float64() (Float64, error) {
	f, _ := n.d.Float64()
	if math.IsInf(f, 0) {
		return 0, &ConversionError{Value: n.d.String(), Target: "float64"}
	}
	return Float64(f), nil
}

// Float32 narrows the value to an IEEE single. A magnitude beyond the
// float32 range yields a *ConversionError.
func (n Decimal) Float32() (Float32, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, &ConversionError{Value: n.d.String(), Target: "float32"}
	}
	return f.Float32()
}
