package parser

import "github.com/jcornaz/beancount-parser-sub000/ast"

// Directive grammars. A dated directive is `date keyword ...`; once the
// date skeleton and the keyword have both matched, the rest of the
// structure is required and any failure is fatal for the run.

// parseDated parses one dated directive starting at the current DATE
// token, including any indented metadata block below it.
func (p *Parser[D]) parseDated() (*ast.Directive[D], error) {
	p.unitLine = p.peek().Line

	date, err := p.parseDate()
	if err != nil {
		return nil, err
	}

	// The keyword must follow the date on the same line.
	if !p.onUnitLine() {
		return nil, p.fatal()
	}

	dir := &ast.Directive[D]{Date: date, Line: p.unitLine}

	switch p.peek().Type {
	case OPEN:
		err = p.parseOpen(dir)
	case CLOSE:
		err = p.parseClose(dir)
	case BALANCE:
		err = p.parseBalance(dir)
	case PAD:
		err = p.parsePad(dir)
	case PRICE:
		err = p.parsePrice(dir)
	case COMMODITY:
		err = p.parseCommodity(dir)
	case EVENT:
		err = p.parseEvent(dir)
	case TXN, ASTERISK, EXCLAIM:
		err = p.parseTransaction(dir)
	default:
		err = p.fatal()
	}
	if err != nil {
		return nil, err
	}

	return dir, nil
}

// onUnitLine reports whether the next token still sits on the directive's
// header line. Required arguments may not spill onto the next line.
func (p *Parser[D]) onUnitLine() bool {
	return p.onLine(p.unitLine)
}

// parseOpen parses: DATE open ACCOUNT [CURRENCY (, CURRENCY)*]
func (p *Parser[D]) parseOpen(dir *ast.Directive[D]) error {
	p.advance() // keyword

	if !p.onUnitLine() {
		return p.fatal()
	}
	account, err := p.parseAccount()
	if err != nil {
		return err
	}

	open := &ast.Open{Account: account}

	// Optional constraint currencies; duplicates collapse into the set.
	if p.check(IDENT) && p.onUnitLine() {
		open.Currencies = make(map[ast.Currency]struct{}, 2)
		for {
			currency, err := p.parseCurrency()
			if err != nil {
				return err
			}
			open.Currencies[currency] = struct{}{}
			if !p.match(COMMA) {
				break
			}
			// A trailing comma commits to another currency on this line.
			if !p.onUnitLine() {
				return p.fatal()
			}
		}
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Open = open
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parseClose parses: DATE close ACCOUNT
func (p *Parser[D]) parseClose(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	account, err := p.parseAccount()
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Close = &ast.Close{Account: account}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parseBalance parses: DATE balance ACCOUNT AMOUNT
func (p *Parser[D]) parseBalance(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	account, err := p.parseAccount()
	if err != nil {
		return err
	}

	amount, err := p.parseAmount(p.unitLine)
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Balance = &ast.Balance[D]{Account: account, Amount: amount}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parsePad parses: DATE pad ACCOUNT SOURCE_ACCOUNT
func (p *Parser[D]) parsePad(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	account, err := p.parseAccount()
	if err != nil {
		return err
	}

	if !p.onUnitLine() {
		return p.fatal()
	}
	source, err := p.parseAccount()
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Pad = &ast.Pad{Account: account, Source: source}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parsePrice parses: DATE price CURRENCY AMOUNT
func (p *Parser[D]) parsePrice(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	currency, err := p.parseCurrency()
	if err != nil {
		return err
	}

	amount, err := p.parseAmount(p.unitLine)
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Price = &ast.Price[D]{Currency: currency, Amount: amount}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parseCommodity parses: DATE commodity CURRENCY
func (p *Parser[D]) parseCommodity(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	currency, err := p.parseCurrency()
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Commodity = &ast.Commodity{Currency: currency}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parseEvent parses: DATE event STRING STRING
func (p *Parser[D]) parseEvent(dir *ast.Directive[D]) error {
	p.advance()

	if !p.onUnitLine() {
		return p.fatal()
	}
	name, err := p.parseString()
	if err != nil {
		return err
	}

	if !p.onUnitLine() {
		return p.fatal()
	}
	value, err := p.parseString()
	if err != nil {
		return err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	dir.Event = &ast.Event{Name: name, Value: value}
	dir.Metadata, err = p.parseMetadata()
	return err
}

// parseOption parses the undated line: option STRING STRING
func (p *Parser[D]) parseOption() (*ast.Directive[D], error) {
	p.unitLine = p.peek().Line
	p.advance()

	if !p.onUnitLine() {
		return nil, p.fatal()
	}
	name, err := p.parseString()
	if err != nil {
		return nil, err
	}

	if !p.onUnitLine() {
		return nil, p.fatal()
	}
	value, err := p.parseString()
	if err != nil {
		return nil, err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return nil, err
	}

	return &ast.Directive[D]{
		Line:   p.unitLine,
		Option: &ast.Option{Name: name, Value: value},
	}, nil
}

// parseInclude parses the undated line: include STRING. The path is
// surfaced as-is; resolving and reading it is the caller's job.
func (p *Parser[D]) parseInclude() (*ast.Directive[D], error) {
	p.unitLine = p.peek().Line
	p.advance()

	if !p.onUnitLine() {
		return nil, p.fatal()
	}
	path, err := p.parseString()
	if err != nil {
		return nil, err
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return nil, err
	}

	return &ast.Directive[D]{
		Line:    p.unitLine,
		Include: &ast.Include{Path: path},
	}, nil
}

// parseTagControl parses a pushtag or poptag control line and returns the
// bare tag name.
func (p *Parser[D]) parseTagControl() (string, error) {
	p.unitLine = p.peek().Line
	p.advance() // pushtag / poptag

	tok := p.peek()
	if tok.Type != TAG || tok.Line != p.unitLine || tok.Len() < 2 {
		return "", p.fatal()
	}
	p.advance()

	// Skip the sigil; the lexer guarantees #[A-Za-z0-9_-]+.
	name := p.interner.InternBytes(tok.Bytes(p.source)[1:])

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return "", err
	}

	return name, nil
}
