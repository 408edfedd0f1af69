// Package beancount parses beancount plain-text ledger documents.
//
// The package is a thin facade over the parser package, binding the
// grammar to the provided numeric representations. Use Parse for exact
// decimal arithmetic, or the float variants where speed matters more
// than exactness:
//
//	file, err := beancount.Parse(src)
//	if err != nil {
//		return err
//	}
//	for _, dir := range file.Directives {
//		...
//	}
//
// For streaming consumption of large documents, or to parse with a
// custom numeric type, use parser.New directly.
package beancount

import (
	"github.com/jcornaz/beancount-parser-sub000/ast"
	"github.com/jcornaz/beancount-parser-sub000/number"
	"github.com/jcornaz/beancount-parser-sub000/parser"
)

// Parse parses a document with arbitrary-precision decimal amounts.
func Parse(source []byte) (*ast.File[number.Decimal], error) {
	return parser.Parse[number.Decimal](source)
}

// ParseFloat64 parses a document with float64 amounts.
func ParseFloat64(source []byte) (*ast.File[number.Float64], error) {
	return parser.Parse[number.Float64](source)
}

// ParseFloat32 parses a document with float32 amounts.
func ParseFloat32(source []byte) (*ast.File[number.Float32], error) {
	return parser.Parse[number.Float32](source)
}
