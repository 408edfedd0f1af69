package parser

import (
	"strings"

	"github.com/jcornaz/beancount-parser-sub000/ast"
)

// Transaction parsing: the header line plus its indented continuation
// lines (metadata and postings). This is the only multi-line directive.

// parseTransaction parses, after the already-consumed date:
//
//	('txn' | '*' | '!') [STRING [STRING]] (TAG | LINK)*
//	  KEY: VALUE*
//	  [FLAG] ACCOUNT [AMOUNT [COST] [PRICE]] [; COMMENT]*
//
// One header string is the narration; two are payee then narration. The
// active tag stack is folded into the transaction's tag set here, at the
// moment it is produced.
func (p *Parser[D]) parseTransaction(dir *ast.Directive[D]) error {
	txn := &ast.Transaction[D]{
		Tags:  make(map[string]struct{}),
		Links: make(map[string]struct{}),
	}

	switch p.advance().Type {
	case TXN:
		// Keyword form, no flag.
	case ASTERISK:
		txn.Flag = ast.FlagCompleted
	case EXCLAIM:
		txn.Flag = ast.FlagIncomplete
	}

	if p.check(STRING) && p.onUnitLine() {
		first, err := p.parseString()
		if err != nil {
			return err
		}

		if p.check(STRING) && p.onUnitLine() {
			second, err := p.parseString()
			if err != nil {
				return err
			}
			txn.Payee = first
			txn.Narration = second
		} else {
			txn.Narration = first
		}
	}

	// Tags and links may interleave freely after the narration.
	for p.onUnitLine() && (p.check(TAG) || p.check(LINK)) {
		tok := p.advance()
		if tok.Len() < 2 {
			return p.fatal()
		}
		name := p.interner.InternBytes(tok.Bytes(p.source)[1:])
		if tok.Type == TAG {
			txn.Tags[name] = struct{}{}
		} else {
			txn.Links[name] = struct{}{}
		}
	}

	if err := p.requireEndOfLine(p.unitLine); err != nil {
		return err
	}

	for _, tag := range p.tags {
		txn.Tags[tag] = struct{}{}
	}

	var err error
	dir.Metadata, err = p.parseMetadata()
	if err != nil {
		return err
	}

	if err := p.parsePostings(txn); err != nil {
		return err
	}

	dir.Transaction = txn
	return nil
}

// parsePostings consumes the transaction's indented posting lines. An
// unindented token ends the transaction; indented comment lines are
// skipped.
func (p *Parser[D]) parsePostings(txn *ast.Transaction[D]) error {
	for !p.isAtEnd() {
		tok := p.peek()

		if tok.Column <= 1 {
			break
		}

		if tok.Type == COMMENT {
			p.advance()
			continue
		}

		if !p.atPostingStart(tok) {
			break
		}

		posting, err := p.parsePosting()
		if err != nil {
			return err
		}

		txn.Postings = append(txn.Postings, posting)
	}

	return nil
}

// atPostingStart reports whether an indented token can begin a posting:
// a flag, a colon-separated account, or a bare account root ("Assets").
func (p *Parser[D]) atPostingStart(tok Token) bool {
	switch tok.Type {
	case ASTERISK, EXCLAIM, ACCOUNT:
		return true
	case IDENT:
		return ast.IsValidAccount(tok.String(p.source))
	default:
		return false
	}
}

// parsePosting parses a single posting line and any metadata lines
// indented below it.
func (p *Parser[D]) parsePosting() (ast.Posting[D], error) {
	line := p.peek().Line

	var posting ast.Posting[D]

	if p.check(ASTERISK) {
		p.advance()
		posting.Flag = ast.FlagCompleted
	} else if p.check(EXCLAIM) {
		p.advance()
		posting.Flag = ast.FlagIncomplete
	}

	// The account must follow its flag on the same line.
	if tok := p.peek(); tok.Type == EOF || tok.Line != line {
		return posting, p.fatal()
	}

	account, err := p.parseAccount()
	if err != nil {
		return posting, err
	}
	posting.Account = account

	// A bare account means "balance the remainder here"; cost and price
	// only make sense behind an amount.
	if p.isExpressionStart() && p.peek().Line == line {
		amount, err := p.parseAmount(line)
		if err != nil {
			return posting, err
		}
		posting.Amount = &amount

		if p.check(LBRACE) && p.peek().Line == line {
			cost, err := p.parseCost(line)
			if err != nil {
				return posting, err
			}
			posting.Cost = cost
		}

		if (p.check(AT) || p.check(ATAT)) && p.peek().Line == line {
			price, err := p.parsePostingPrice(line)
			if err != nil {
				return posting, err
			}
			posting.Price = price
		}
	}

	if tok := p.peek(); tok.Type == COMMENT && tok.Line == line {
		p.advance()
		posting.Comment = strings.TrimSpace(tok.String(p.source)[1:])
	}

	if err := p.requireEndOfLine(line); err != nil {
		return posting, err
	}

	posting.Metadata, err = p.parseMetadata()
	if err != nil {
		return posting, err
	}

	return posting, nil
}
