package ast

// Open declares the opening of an account, optionally constraining the
// currencies it may hold. Duplicate currencies in the constraint list
// collapse into the set.
//
//	2014-05-01 open Assets:US:BofA:Checking USD
//	2014-05-01 open Assets:Brokerage USD, EUR
type Open struct {
	Account    Account
	Currencies map[Currency]struct{}
}

// Close declares the end of an account's lifetime.
//
//	2015-09-23 close Assets:US:BofA:Checking
type Close struct {
	Account Account
}

// Balance asserts an account's balance at the beginning of the date.
// Verifying the assertion against booked postings is a downstream
// concern; the parser only records it.
//
//	2014-08-09 balance Assets:US:BofA:Checking 562.00 USD
type Balance[D any] struct {
	Account Account
	Amount  Amount[D]
}

// Pad requests an automatic balancing transaction from Source into
// Account, sized by the next balance assertion.
//
//	2014-01-01 pad Assets:Checking Equity:Opening-Balances
type Pad struct {
	Account Account
	Source  Account
}

// Price records the market price of a currency in terms of another.
//
//	2014-07-09 price USD 1.08 CAD
type Price[D any] struct {
	Currency Currency
	Amount   Amount[D]
}

// Commodity declares a currency or commodity used in the ledger.
//
//	2014-01-01 commodity USD
type Commodity struct {
	Currency Currency
}

// Event records a named value taking effect at the date.
//
//	2014-07-09 event "location" "New York, USA"
type Event struct {
	Name  string
	Value string
}

// Option sets a ledger-wide configuration value. Option lines are
// undated; the directive carries the zero Date.
//
//	option "operating_currency" "USD"
type Option struct {
	Name  string
	Value string
}

// Include surfaces the path of another ledger file. Resolving and
// reading that file is the caller's job; include lines are undated.
//
//	include "accounts.beancount"
type Include struct {
	Path string
}

// Directive is one top-level unit of a ledger document. Exactly one of
// the content pointers is non-nil. Every directive records the 1-based
// source line of its header; dated directives also carry their date.
type Directive[D any] struct {
	Date     Date
	Line     int
	Metadata map[string]MetadataValue[D]

	Transaction *Transaction[D]
	Open        *Open
	Close       *Close
	Balance     *Balance[D]
	Pad         *Pad
	Price       *Price[D]
	Commodity   *Commodity
	Event       *Event
	Option      *Option
	Include     *Include
}

// Kind names the directive's variant, e.g. "transaction" or "open".
func (d *Directive[D]) Kind() string {
	switch {
	case d.Transaction != nil:
		return "transaction"
	case d.Open != nil:
		return "open"
	case d.Close != nil:
		return "close"
	case d.Balance != nil:
		return "balance"
	case d.Pad != nil:
		return "pad"
	case d.Price != nil:
		return "price"
	case d.Commodity != nil:
		return "commodity"
	case d.Event != nil:
		return "event"
	case d.Option != nil:
		return "option"
	case d.Include != nil:
		return "include"
	default:
		return "unknown"
	}
}
