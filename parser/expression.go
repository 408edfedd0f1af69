package parser

import "github.com/jcornaz/beancount-parser-sub000/number"

// Arithmetic expressions in amounts.
//
// Grammar (two precedence levels, both left-associative):
//
//	expression  → term (('+' | '-') term)*
//	term        → factor (('*' | '/') factor)*
//	factor      → NUMBER | '-' factor | '(' expression ')'
//
// Parsing builds an expression tree; Evaluate reduces it post-order with
// the numeric type's own operators. Division carries no special casing:
// floats yield IEEE ±Inf/NaN on a zero divisor, the decimal type keeps
// shopspring's behavior.
//
//	2 + 3 * 4     → 14
//	(2 + 3) * 4   → 20
//	6 / 3 / 2     → 1

// Expr is a parsed arithmetic expression over the numeric type D.
type Expr[D number.Num[D]] interface {
	// Evaluate reduces the expression to a single value.
	Evaluate() D
}

type exprOp uint8

const (
	opAdd exprOp = iota
	opSubtract
	opMultiply
	opDivide
)

type literal[D number.Num[D]] struct {
	value D
}

func (l literal[D]) Evaluate() D { return l.value }

type negation[D number.Num[D]] struct {
	expr Expr[D]
}

func (n negation[D]) Evaluate() D { return n.expr.Evaluate().Neg() }

type binary[D number.Num[D]] struct {
	op    exprOp
	left  Expr[D]
	right Expr[D]
}

func (b binary[D]) Evaluate() D {
	l := b.left.Evaluate()
	r := b.right.Evaluate()
	switch b.op {
	case opAdd:
		return l.Add(r)
	case opSubtract:
		return l.Sub(r)
	case opMultiply:
		return l.Mul(r)
	default:
		return l.Div(r)
	}
}

// parseExpression parses the lowest precedence level: + and -. An
// expression never spans lines: line is the line the unit sits on, and a
// token beyond it ends the expression (or is fatal where one is required).
func (p *Parser[D]) parseExpression(line int) (Expr[D], error) {
	left, err := p.parseTerm(line)
	if err != nil {
		return nil, err
	}

	for p.onLine(line) {
		op := p.peek().Type
		if op != PLUS && op != MINUS {
			break
		}

		p.advance()

		right, err := p.parseTerm(line)
		if err != nil {
			return nil, err
		}

		kind := opAdd
		if op == MINUS {
			kind = opSubtract
		}
		left = binary[D]{op: kind, left: left, right: right}
	}

	return left, nil
}

// parseTerm parses the higher precedence level: * and /.
func (p *Parser[D]) parseTerm(line int) (Expr[D], error) {
	left, err := p.parseFactor(line)
	if err != nil {
		return nil, err
	}

	for p.onLine(line) {
		op := p.peek().Type
		if op != ASTERISK && op != SLASH {
			break
		}

		p.advance()

		right, err := p.parseFactor(line)
		if err != nil {
			return nil, err
		}

		kind := opMultiply
		if op == SLASH {
			kind = opDivide
		}
		left = binary[D]{op: kind, left: left, right: right}
	}

	return left, nil
}

// parseFactor parses a numeric literal, a unary minus or a parenthesized
// sub-expression.
func (p *Parser[D]) parseFactor(line int) (Expr[D], error) {
	if !p.onLine(line) {
		return nil, p.fatal()
	}

	tok := p.peek()

	switch tok.Type {
	case NUMBER:
		p.advance()
		var zero D
		value, err := zero.Parse(tok.String(p.source))
		if err != nil {
			return nil, p.fatal()
		}
		return literal[D]{value: value}, nil

	case MINUS:
		p.advance()
		expr, err := p.parseFactor(line)
		if err != nil {
			return nil, err
		}
		return negation[D]{expr: expr}, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression(line)
		if err != nil {
			return nil, err
		}
		if !p.onLine(line) || !p.match(RPAREN) {
			return nil, p.fatal()
		}
		return expr, nil

	default:
		return nil, p.fatal()
	}
}

// isExpressionStart reports whether the current token can begin an
// expression. Used to decide whether a posting carries an amount.
func (p *Parser[D]) isExpressionStart() bool {
	switch p.peek().Type {
	case NUMBER, MINUS, LPAREN:
		return true
	default:
		return false
	}
}
