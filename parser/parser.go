// Package parser implements a streaming parser for beancount documents.
//
// The input is a single in-memory buffer; the package never performs
// I/O. A Parser scans the buffer once and produces directives lazily:
// each Next call advances past exactly one recognized unit and returns
// it. Lines that are neither directives nor pushtag/poptag control lines
// are skipped as comments.
//
// Errors come in two classes. While classifying a line, a mismatch is
// soft: the next alternative is tried without consuming input. Once a
// discriminating token has been consumed (a date skeleton, a directive
// keyword, an opening '{' or a price marker), any further failure is
// fatal: Next returns a *Error carrying the 1-based line where the unit
// started, and the run terminates. Subsequent Next calls return the same
// error; there is no resuming past a fatal error, which would risk an
// inconsistent tag stack.
//
// The grammar is generic over the numeric representation D; see the
// number package for the provided instantiations.
package parser

import (
	"io"

	"github.com/jcornaz/beancount-parser-sub000/ast"
	"github.com/jcornaz/beancount-parser-sub000/number"
)

// Parser produces the directives of one document, in source order. It is
// single-use: create one per parse run. A Parser is not safe for
// concurrent use, but independent Parsers share nothing.
type Parser[D number.Num[D]] struct {
	source   []byte
	tokens   []Token
	pos      int
	interner *Interner

	// Active tag stack, mutated only by pushtag/poptag control lines.
	// Its snapshot is folded into every transaction as it is yielded.
	tags []string

	// Line where the unit currently being parsed started; fatal errors
	// report this line.
	unitLine int

	err  error // sticky fatal error
	done bool
}

// New creates a parser over the given document. The buffer is scanned
// into tokens up front; directives are still only assembled on demand.
func New[D number.Num[D]](source []byte) *Parser[D] {
	lex := NewLexer(source)
	tokens := lex.ScanAll()

	return &Parser[D]{
		source:   source,
		tokens:   tokens,
		interner: lex.Interner(),
	}
}

// Next returns the next directive of the document. It returns io.EOF
// once the input is exhausted. A fatal syntax error is returned as a
// *Error and ends the run: every later call returns the same error.
func (p *Parser[D]) Next() (*ast.Directive[D], error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.done {
		return nil, io.EOF
	}

	for {
		switch p.peek().Type {
		case EOF:
			p.done = true
			return nil, io.EOF

		case COMMENT:
			p.advance()

		case DATE:
			dir, err := p.parseDated()
			if err != nil {
				p.err = err
				return nil, err
			}
			return dir, nil

		case OPTION:
			dir, err := p.parseOption()
			if err != nil {
				p.err = err
				return nil, err
			}
			return dir, nil

		case INCLUDE:
			dir, err := p.parseInclude()
			if err != nil {
				p.err = err
				return nil, err
			}
			return dir, nil

		case PUSHTAG:
			name, err := p.parseTagControl()
			if err != nil {
				p.err = err
				return nil, err
			}
			p.tags = append(p.tags, name)

		case POPTAG:
			name, err := p.parseTagControl()
			if err != nil {
				p.err = err
				return nil, err
			}
			p.popTag(name)

		default:
			// Blank space never reaches the token stream; anything else
			// that doesn't open a unit is free-form text, skipped like a
			// comment.
			p.skipLine()
		}
	}
}

// popTag removes the most recent occurrence of name from the tag stack.
// Popping a tag that was never pushed is a no-op.
func (p *Parser[D]) popTag(name string) {
	for i := len(p.tags) - 1; i >= 0; i-- {
		if p.tags[i] == name {
			p.tags = append(p.tags[:i], p.tags[i+1:]...)
			return
		}
	}
}

// Parse eagerly parses a whole document. It fails atomically: the first
// fatal error is returned and no directives with it.
func Parse[D number.Num[D]](source []byte) (*ast.File[D], error) {
	p := New[D](source)

	file := &ast.File[D]{}
	for {
		dir, err := p.Next()
		if err == io.EOF {
			return file, nil
		}
		if err != nil {
			return nil, err
		}
		file.Directives = append(file.Directives, dir)
	}
}
