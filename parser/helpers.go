package parser

import (
	"strings"

	"github.com/jcornaz/beancount-parser-sub000/ast"
)

// Shared leaf parsers used by every directive grammar, plus token
// navigation. Each of these runs after its unit has committed: a failure
// here is fatal for the whole unit, never a "try another alternative".

// parseDate parses a DATE token. The lexer only produces DATE for an
// exact NNNN-NN-NN digit/dash skeleton, so by the time we are here the
// shape is committed; out-of-range month or day is a fatal error, not a
// soft mismatch.
func (p *Parser[D]) parseDate() (ast.Date, error) {
	tok := p.peek()
	if tok.Type != DATE {
		return ast.Date{}, p.fatal()
	}
	p.advance()

	text := tok.Bytes(p.source)
	date := ast.Date{
		Year:  digits(text[0:4]),
		Month: digits(text[5:7]),
		Day:   digits(text[8:10]),
	}

	if date.Month < 1 || date.Month > 12 || date.Day < 1 || date.Day > 31 {
		return ast.Date{}, p.fatal()
	}

	return date, nil
}

// digits converts a run of ASCII digits; the lexer guarantees the input.
func digits(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

// parseAccount parses an account name: an ACCOUNT token, or an IDENT that
// is a bare root such as "Assets". The name is interned.
func (p *Parser[D]) parseAccount() (ast.Account, error) {
	tok := p.peek()
	if tok.Type != ACCOUNT && tok.Type != IDENT {
		return "", p.fatal()
	}

	name := p.interner.InternBytes(tok.Bytes(p.source))
	if !ast.IsValidAccount(name) {
		return "", p.fatal()
	}

	p.advance()
	return ast.Account(name), nil
}

// parseCurrency parses a currency code. The lexer's IDENT charset is a
// superset of the currency grammar, so the stricter rule (must end in an
// uppercase letter) is enforced here.
func (p *Parser[D]) parseCurrency() (ast.Currency, error) {
	tok := p.peek()
	if tok.Type != IDENT {
		return "", p.fatal()
	}

	code := p.interner.InternBytes(tok.Bytes(p.source))
	if !ast.IsValidCurrency(code) {
		return "", p.fatal()
	}

	p.advance()
	return ast.Currency(code), nil
}

// parseString parses a quoted string token and resolves its escapes.
func (p *Parser[D]) parseString() (string, error) {
	tok := p.peek()
	if tok.Type != STRING {
		return "", p.fatal()
	}

	s, ok := unescapeString(tok.String(p.source))
	if !ok {
		return "", p.fatal()
	}

	p.advance()
	return s, nil
}

// unescapeString strips the surrounding quotes and resolves the escapes
// \\ \" \n \t. Any other backslash sequence passes through verbatim.
// Returns false for an unterminated string.
func unescapeString(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	body := raw[1 : len(raw)-1]

	if !strings.ContainsRune(body, '\\') {
		return body, true
	}

	var buf strings.Builder
	buf.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			buf.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case '\\':
			buf.WriteByte('\\')
		case '"':
			buf.WriteByte('"')
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		default:
			buf.WriteByte('\\')
			buf.WriteByte(body[i])
		}
	}
	return buf.String(), true
}

// parseAmount parses `expression currency` and evaluates the expression.
// The whole amount must sit on the given line; an expression or currency
// spilling onto the next line is fatal, not absorbed.
func (p *Parser[D]) parseAmount(line int) (ast.Amount[D], error) {
	expr, err := p.parseExpression(line)
	if err != nil {
		return ast.Amount[D]{}, err
	}

	if !p.onLine(line) {
		return ast.Amount[D]{}, p.fatal()
	}
	currency, err := p.parseCurrency()
	if err != nil {
		return ast.Amount[D]{}, err
	}

	return ast.Amount[D]{Value: expr.Evaluate(), Currency: currency}, nil
}

// parseCost parses a cost annotation: { [amount] [, date] [, "label"] }.
// Amount and date may appear in either order, alone, together or not at
// all; a label is recognized and discarded. The opening brace commits the
// annotation, so duplicates and junk inside the braces are fatal.
func (p *Parser[D]) parseCost(line int) (*ast.Cost[D], error) {
	if !p.match(LBRACE) {
		return nil, p.fatal()
	}

	cost := &ast.Cost[D]{}

	for !p.check(RBRACE) {
		// The annotation may not continue on the next line.
		if !p.onLine(line) {
			return nil, p.fatal()
		}

		tok := p.peek()
		switch {
		case tok.Type == DATE:
			if cost.Date != nil {
				return nil, p.fatal()
			}
			date, err := p.parseDate()
			if err != nil {
				return nil, err
			}
			cost.Date = &date

		case tok.Type == STRING:
			// Lot label, accepted and dropped.
			if _, err := p.parseString(); err != nil {
				return nil, err
			}

		case p.isExpressionStart():
			if cost.Amount != nil {
				return nil, p.fatal()
			}
			amount, err := p.parseAmount(line)
			if err != nil {
				return nil, err
			}
			cost.Amount = &amount

		default:
			return nil, p.fatal()
		}

		if !p.match(COMMA) {
			break
		}
	}

	if !p.onLine(line) || !p.match(RBRACE) {
		return nil, p.fatal()
	}

	return cost, nil
}

// parsePostingPrice parses `@ amount` or `@@ amount`. The marker commits:
// it must be followed by whitespace and an amount on the same line, so
// `@2` and a dangling `@` are both fatal.
func (p *Parser[D]) parsePostingPrice(line int) (*ast.PostingPrice[D], error) {
	marker := p.peek()
	if marker.Type != AT && marker.Type != ATAT {
		return nil, p.fatal()
	}
	p.advance()

	if p.peek().Start == marker.End {
		return nil, p.fatal()
	}

	amount, err := p.parseAmount(line)
	if err != nil {
		return nil, err
	}

	return &ast.PostingPrice[D]{Amount: amount, Total: marker.Type == ATAT}, nil
}

// atMetadataKey reports whether the current token starts an indented
// `key: value` metadata line: a lowercase-initial word (keywords
// included, "price:" is a fine key) with the colon attached.
func (p *Parser[D]) atMetadataKey() bool {
	tok := p.peek()
	if tok.Column <= 1 {
		return false
	}
	if tok.Type != IDENT && !isKeywordToken(tok.Type) {
		return false
	}
	if b := tok.Bytes(p.source); len(b) == 0 || b[0] < 'a' || b[0] > 'z' {
		return false
	}
	colon := p.peekAhead(1)
	return colon.Type == COLON && colon.Start == tok.End
}

func isKeywordToken(typ TokenType) bool {
	switch typ {
	case TXN, BALANCE, OPEN, CLOSE, COMMODITY, PAD,
		PRICE, EVENT, OPTION, INCLUDE, PUSHTAG, POPTAG:
		return true
	default:
		return false
	}
}

// parseMetadata consumes consecutive indented metadata lines and returns
// them as a map. Once a key and its colon are matched the line is
// committed; a malformed value is fatal.
func (p *Parser[D]) parseMetadata() (map[string]ast.MetadataValue[D], error) {
	var meta map[string]ast.MetadataValue[D]

	for p.atMetadataKey() {
		keyTok := p.advance()
		p.advance() // colon

		key := p.interner.InternBytes(keyTok.Bytes(p.source))

		value, err := p.parseMetadataValue(keyTok.Line)
		if err != nil {
			return nil, err
		}

		if err := p.requireEndOfLine(keyTok.Line); err != nil {
			return nil, err
		}

		if meta == nil {
			meta = make(map[string]ast.MetadataValue[D])
		}
		meta[key] = value
	}

	return meta, nil
}

// parseMetadataValue parses the value of a metadata line: a quoted
// string, a numeric literal (optionally negative) or a currency code. The
// value must follow its key on the same line.
func (p *Parser[D]) parseMetadataValue(line int) (ast.MetadataValue[D], error) {
	if !p.onLine(line) {
		return ast.MetadataValue[D]{}, p.fatal()
	}

	tok := p.peek()

	switch {
	case tok.Type == STRING:
		s, err := p.parseString()
		if err != nil {
			return ast.MetadataValue[D]{}, err
		}
		return ast.MetadataValue[D]{String: &s}, nil

	case tok.Type == NUMBER || tok.Type == MINUS:
		negative := p.match(MINUS)
		numTok := p.peek()
		if numTok.Type != NUMBER || numTok.Line != line {
			return ast.MetadataValue[D]{}, p.fatal()
		}
		p.advance()

		var zero D
		value, err := zero.Parse(numTok.String(p.source))
		if err != nil {
			return ast.MetadataValue[D]{}, p.fatal()
		}
		if negative {
			value = value.Neg()
		}
		return ast.MetadataValue[D]{Number: &value}, nil

	case tok.Type == IDENT:
		currency, err := p.parseCurrency()
		if err != nil {
			return ast.MetadataValue[D]{}, err
		}
		return ast.MetadataValue[D]{Currency: &currency}, nil

	default:
		return ast.MetadataValue[D]{}, p.fatal()
	}
}

// requireEndOfLine checks that nothing but an optional comment remains on
// line. Trailing junk after a committed unit is fatal.
func (p *Parser[D]) requireEndOfLine(line int) error {
	if p.peek().Type == COMMENT && p.peek().Line == line {
		p.advance()
	}
	if tok := p.peek(); tok.Type != EOF && tok.Line == line {
		return p.fatal()
	}
	return nil
}

// Token navigation.

// onLine reports whether the next token sits on the given line.
func (p *Parser[D]) onLine(line int) bool {
	tok := p.peek()
	return tok.Type != EOF && tok.Line == line
}

func (p *Parser[D]) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser[D]) peekAhead(n int) Token {
	pos := p.pos + n
	if pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[pos]
}

func (p *Parser[D]) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser[D]) check(typ TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser[D]) match(typ TokenType) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser[D]) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

// skipLine advances past every token on the current line. Used for lines
// the driver classifies as comments or unrecognized text.
func (p *Parser[D]) skipLine() {
	line := p.peek().Line
	for !p.isAtEnd() && p.peek().Line == line {
		p.advance()
	}
}

// fatal builds the committed-failure error for the unit being parsed.
func (p *Parser[D]) fatal() error {
	return errorAt(p.unitLine)
}
