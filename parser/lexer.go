package parser

// Lexer implements a zero-copy scanner for beancount documents.
//
// Tokens store byte offsets into the source buffer rather than copies of
// their text; line and column are tracked per token so the parser can
// reconstruct the document's line structure (postings and metadata are
// indented continuation lines) without newline tokens.

import (
	"bytes"
)

// Lexer tokenizes beancount source text.
type Lexer struct {
	source   []byte
	pos      int     // Current byte position
	line     int     // Current line (1-indexed)
	column   int     // Current column (1-indexed)
	tokens   []Token // Token buffer (pre-allocated)
	interner *Interner
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte) *Lexer {
	// Roughly one token per 20 bytes of ledger text; pre-allocating
	// avoids most slice growth.
	estimatedTokens := len(source)/20 + 64

	internerCap := len(source) / 40
	if internerCap < 256 {
		internerCap = 256
	}

	return &Lexer{
		source:   source,
		line:     1,
		column:   1,
		tokens:   make([]Token, 0, estimatedTokens),
		interner: NewInterner(internerCap),
	}
}

// Interner returns the string interning pool shared with the parser.
func (l *Lexer) Interner() *Interner {
	return l.interner
}

// ScanAll lexes the entire source and returns all tokens, terminated by
// an EOF token. Single pass, no backtracking.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		tok := l.scanToken()
		l.tokens = append(l.tokens, tok)
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	ch := l.advance()

	switch {
	// Dates first: the YYYY-MM-DD skeleton wins over a plain number.
	case ch >= '0' && ch <= '9':
		if l.isDatePattern(start) {
			return l.scanDate(start, startLine, startCol)
		}
		return l.scanNumber(start, startLine, startCol)
	case ch == '.' && l.peekIsDigit():
		return l.scanNumber(start, startLine, startCol)

	case ch == '"':
		return l.scanString(start, startLine, startCol)

	case ch == ';':
		return l.scanComment(start, startLine, startCol)

	case ch == '#':
		return l.scanNameAfterSigil(TAG, start, startLine, startCol)

	case ch == '^':
		return l.scanNameAfterSigil(LINK, start, startLine, startCol)

	// Accounts and currency-like identifiers start with a capital.
	case ch >= 'A' && ch <= 'Z':
		return l.scanAccountOrIdent(start, startLine, startCol)

	// Keywords and metadata keys start with a lowercase letter.
	case ch >= 'a' && ch <= 'z':
		return l.scanKeywordOrIdent(start, startLine, startCol)

	case ch == '*':
		return Token{ASTERISK, start, l.pos, startLine, startCol}
	case ch == '!':
		return Token{EXCLAIM, start, l.pos, startLine, startCol}
	case ch == ':':
		return Token{COLON, start, l.pos, startLine, startCol}
	case ch == ',':
		return Token{COMMA, start, l.pos, startLine, startCol}
	case ch == '{':
		return Token{LBRACE, start, l.pos, startLine, startCol}
	case ch == '}':
		return Token{RBRACE, start, l.pos, startLine, startCol}
	case ch == '(':
		return Token{LPAREN, start, l.pos, startLine, startCol}
	case ch == ')':
		return Token{RPAREN, start, l.pos, startLine, startCol}
	case ch == '+':
		return Token{PLUS, start, l.pos, startLine, startCol}
	case ch == '-':
		return Token{MINUS, start, l.pos, startLine, startCol}
	case ch == '/':
		return Token{SLASH, start, l.pos, startLine, startCol}

	// @ or @@
	case ch == '@':
		if l.peek() == '@' {
			l.advance()
			return Token{ATAT, start, l.pos, startLine, startCol}
		}
		return Token{AT, start, l.pos, startLine, startCol}

	default:
		return Token{ILLEGAL, start, l.pos, startLine, startCol}
	}
}

// isDatePattern checks whether the position starts the digit/dash
// skeleton NNNN-NN-NN.
func (l *Lexer) isDatePattern(start int) bool {
	if start+10 > len(l.source) {
		return false
	}

	src := l.source[start:]
	return isDigit(src[0]) && isDigit(src[1]) && isDigit(src[2]) && isDigit(src[3]) &&
		src[4] == '-' &&
		isDigit(src[5]) && isDigit(src[6]) &&
		src[7] == '-' &&
		isDigit(src[8]) && isDigit(src[9])
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// scanDate scans a date: exactly 10 characters, first digit already
// consumed.
func (l *Lexer) scanDate(start, line, col int) Token {
	for i := 0; i < 9; i++ {
		l.advance()
	}
	return Token{DATE, start, l.pos, line, col}
}

// scanNumber scans an unsigned numeric literal: digits, an optional dot,
// more digits. The sign is always a separate MINUS token so that
// expressions like "3 - 2 - 1" keep their operators. A dot is consumed
// only when a digit follows, so a bare "." never becomes a number.
func (l *Lexer) scanNumber(start, line, col int) Token {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.advance()
	}

	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		if l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]) {
			l.advance() // consume '.'
			for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
				l.advance()
			}
		}
	}

	return Token{NUMBER, start, l.pos, line, col}
}

// scanString scans a quoted string including both quotes. An unterminated
// string (newline or end of input before the closing quote) produces a
// token without the closing quote; the parser reports it as an error.
func (l *Lexer) scanString(start, line, col int) Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\n' {
			break
		}
		if ch == '\\' && l.pos+1 < len(l.source) && l.source[l.pos+1] != '\n' {
			l.advance() // backslash
			l.advance() // escaped char
		} else {
			l.advance()
		}
	}

	return Token{STRING, start, l.pos, line, col}
}

// scanComment scans from ';' to the end of the line.
func (l *Lexer) scanComment(start, line, col int) Token {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
	return Token{COMMENT, start, l.pos, line, col}
}

// scanNameAfterSigil scans the [A-Za-z0-9_-]* name of a tag or link; the
// sigil is already consumed.
func (l *Lexer) scanNameAfterSigil(typ TokenType, start, line, col int) Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		ok := (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') ||
			isDigit(ch) || ch == '_' || ch == '-'
		if !ok {
			break
		}
		l.advance()
	}

	return Token{typ, start, l.pos, line, col}
}

// scanAccountOrIdent scans a word starting with a capital letter. Words
// containing a colon are ACCOUNT candidates (Assets:Bank:Checking),
// words without are IDENT (currency codes and bare account roots). The
// character set is the union of what accounts and currencies may
// contain; the parser validates the stricter per-use grammar.
func (l *Lexer) scanAccountOrIdent(start, line, col int) Token {
	hasColon := false

	for l.pos < len(l.source) {
		ch := l.source[l.pos]

		isLetter := (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
		isSpecial := ch == ':' || ch == '-' || ch == '_' || ch == '.' || ch == '\''

		if !isLetter && !isDigit(ch) && !isSpecial {
			break
		}

		if ch == ':' {
			hasColon = true
		}
		l.advance()
	}

	if hasColon {
		return Token{ACCOUNT, start, l.pos, line, col}
	}

	return Token{IDENT, start, l.pos, line, col}
}

// scanKeywordOrIdent scans a word starting with a lowercase letter.
func (l *Lexer) scanKeywordOrIdent(start, line, col int) Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		if !isLetter && !isDigit(ch) && ch != '_' && ch != '-' {
			break
		}
		l.advance()
	}

	word := l.source[start:l.pos]
	return Token{l.keywordType(word), start, l.pos, line, col}
}

// keywordType returns the token type for a keyword, or IDENT if the word
// is not a keyword. Byte comparison avoids allocating strings.
func (l *Lexer) keywordType(word []byte) TokenType {
	switch {
	case bytes.Equal(word, []byte("txn")):
		return TXN
	case bytes.Equal(word, []byte("balance")):
		return BALANCE
	case bytes.Equal(word, []byte("open")):
		return OPEN
	case bytes.Equal(word, []byte("close")):
		return CLOSE
	case bytes.Equal(word, []byte("commodity")):
		return COMMODITY
	case bytes.Equal(word, []byte("pad")):
		return PAD
	case bytes.Equal(word, []byte("price")):
		return PRICE
	case bytes.Equal(word, []byte("event")):
		return EVENT
	case bytes.Equal(word, []byte("option")):
		return OPTION
	case bytes.Equal(word, []byte("include")):
		return INCLUDE
	case bytes.Equal(word, []byte("pushtag")):
		return PUSHTAG
	case bytes.Equal(word, []byte("poptag")):
		return POPTAG
	default:
		return IDENT
	}
}

// skipWhitespace skips whitespace and updates line/column tracking.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		if ch == '\n' {
			l.line++
			l.column = 1
			l.pos++
		} else {
			l.column++
			l.pos++
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekIsDigit() bool {
	return l.pos < len(l.source) && isDigit(l.source[l.pos])
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}
