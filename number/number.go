// Package number defines the pluggable numeric representation used for
// amounts throughout the parser.
//
// The grammar itself is agnostic about how numbers are stored and computed:
// it only needs to parse a decimal literal into a value and combine values
// with the four arithmetic operators. The Num constraint captures exactly
// that, so a single parser instantiation covers fixed-point decimals as
// well as IEEE floats without duplicating the grammar per type.
//
// Three instantiations are provided:
//
//	Decimal  fixed-point arithmetic backed by shopspring/decimal
//	Float64  IEEE 754 double precision
//	Float32  IEEE 754 single precision
package number

import "fmt"

// Num is the capability a numeric representation must provide to drive the
// grammar. All methods are pure; values are copied, never mutated.
//
// Parse is called on the zero value of D and builds a new value from a
// decimal literal such as "10", "-3.25" or ".5".
type Num[D any] interface {
	Parse(s string) (D, error)
	Add(o D) D
	Sub(o D) D
	Mul(o D) D
	Div(o D) D
	Neg() D
	Cmp(o D) int
}

// ConversionError reports that a value could not be represented in a
// narrower numeric type. It is returned by the narrowing conversions
// (e.g. Float64.Float32) and is unrelated to parse errors.
type ConversionError struct {
	Value  string // decimal rendering of the source value
	Target string // name of the type it would not fit
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("value %s does not fit in %s", e.Value, e.Target)
}
