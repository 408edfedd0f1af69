package ast

import (
	"fmt"
	"strings"
)

// Date is a calendar date as written in the source, with no calendar
// validation beyond the range checks performed by the parser (month 1..12,
// day 1..31). It deliberately does not wrap time.Time: the standard
// library normalizes impossible dates such as February 30, which must
// round-trip here untouched.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Compare orders dates lexicographically by (year, month, day).
// Returns -1 if d < o, 0 if equal, 1 if d > o.
func (d Date) Compare(o Date) int {
	if d.Year != o.Year {
		if d.Year < o.Year {
			return -1
		}
		return 1
	}
	if d.Month != o.Month {
		if d.Month < o.Month {
			return -1
		}
		return 1
	}
	if d.Day != o.Day {
		if d.Day < o.Day {
			return -1
		}
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// IsZero reports whether the date is unset. Undated directives
// (option, include) carry the zero date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Flag marks the completion state of a transaction or posting.
// The zero value means no flag was written (the "txn" keyword form).
type Flag byte

const (
	FlagCompleted  Flag = '*'
	FlagIncomplete Flag = '!'
)

func (f Flag) String() string {
	if f == 0 {
		return ""
	}
	return string(rune(f))
}

// Account is a validated account name: one of the five root categories,
// optionally followed by colon-separated segments. Equality and ordering
// are plain string comparison.
//
//	Assets
//	Assets:Bank:Checking
//	Liabilities:CreditCard
type Account string

// Root returns the account's category segment.
func (a Account) Root() string {
	if i := strings.IndexByte(string(a), ':'); i >= 0 {
		return string(a[:i])
	}
	return string(a)
}

// Segments returns the segments after the root, in order.
func (a Account) Segments() []string {
	i := strings.IndexByte(string(a), ':')
	if i < 0 {
		return nil
	}
	return strings.Split(string(a[i+1:]), ":")
}

// IsValidAccount reports whether s is a well-formed account name:
// Root(:Segment)* with the root one of the five categories and every
// segment an uppercase letter followed by alphanumerics or '-'.
func IsValidAccount(s string) bool {
	parts := strings.Split(s, ":")
	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return false
	}
	for _, seg := range parts[1:] {
		if !isValidAccountSegment(seg) {
			return false
		}
	}
	return true
}

func isValidAccountSegment(seg string) bool {
	if len(seg) == 0 || seg[0] < 'A' || seg[0] > 'Z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		ok := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-'
		if !ok {
			return false
		}
	}
	return true
}

// Currency is a commodity code: an uppercase letter, then any run of
// uppercase letters, digits and '-_.'", with the final character an
// uppercase letter ("USD", "AIR-MILES", "USD'42-CHF_EUR.PLN").
type Currency string

// IsValidCurrency reports whether s is a well-formed currency code.
func IsValidCurrency(s string) bool {
	if len(s) == 0 || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		ok := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '-' || c == '_' || c == '.' || c == '\''
		if !ok {
			return false
		}
	}
	last := s[len(s)-1]
	return last >= 'A' && last <= 'Z'
}

// Amount is an evaluated numeric value paired with its currency.
type Amount[D any] struct {
	Value    D
	Currency Currency
}

// Cost is the {...} annotation on a posting, recording the acquisition
// amount and/or date of a lot. Both fields are optional; an empty {} is
// legal and selects nothing. A label written inside the braces is
// recognized by the grammar and discarded.
type Cost[D any] struct {
	Amount *Amount[D]
	Date   *Date
}

// PostingPrice is the @ / @@ annotation on a posting. Total is false for
// the per-unit form (@) and true for the total form (@@).
type PostingPrice[D any] struct {
	Amount Amount[D]
	Total  bool
}

// MetadataValue is one of a string, a number or a currency. Exactly one
// pointer field is non-nil.
type MetadataValue[D any] struct {
	String   *string
	Number   *D
	Currency *Currency
}

// Kind names the variant held by the value.
func (m MetadataValue[D]) Kind() string {
	switch {
	case m.String != nil:
		return "string"
	case m.Number != nil:
		return "number"
	case m.Currency != nil:
		return "currency"
	default:
		return "unknown"
	}
}

// Posting is one leg of a transaction. Amount is nil when the account is
// written bare, meaning "balance the remainder here"; enforcing that at
// most one posting per transaction does so is a downstream concern.
type Posting[D any] struct {
	Flag     Flag
	Account  Account
	Amount   *Amount[D]
	Cost     *Cost[D]
	Price    *PostingPrice[D]
	Comment  string
	Metadata map[string]MetadataValue[D]
}

// Transaction is the header line plus its indented postings. Tags holds
// both the header's #tags and the tag-stack snapshot active when the
// transaction was yielded.
type Transaction[D any] struct {
	Flag      Flag
	Payee     string
	Narration string
	Tags      map[string]struct{}
	Links     map[string]struct{}
	Postings  []Posting[D]
}
