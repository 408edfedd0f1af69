// Package ast declares the types produced by parsing a beancount
// document: dates, accounts, amounts, postings, transactions and the
// directive union. Values are plain data; the package performs no I/O
// and no bookkeeping arithmetic.
//
// Amount-bearing types are generic over the numeric representation D so
// the same tree shape serves fixed-point decimals and IEEE floats. See
// the number package for the available instantiations.
package ast

import "golang.org/x/exp/slices"

// File is the result of eagerly parsing a whole document. Directives
// appear in source order.
type File[D any] struct {
	Directives []*Directive[D]
}

// SortByDate reorders directives chronologically. The sort is stable, so
// directives sharing a date keep their source order, and undated
// directives (zero date) sort first. Parsing never sorts; this is a
// convenience for callers that want a chronological view.
func SortByDate[D any](directives []*Directive[D]) {
	if isSortedByDate(directives) {
		return
	}
	slices.SortStableFunc(directives, func(a, b *Directive[D]) int {
		return a.Date.Compare(b.Date)
	})
}

func isSortedByDate[D any](directives []*Directive[D]) bool {
	for i := 1; i < len(directives); i++ {
		if directives[i].Date.Before(directives[i-1].Date) {
			return false
		}
	}
	return true
}
