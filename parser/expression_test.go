package parser

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/jcornaz/beancount-parser-sub000/number"
)

// Helper to parse and evaluate an expression from a string.
func evalExpression(t *testing.T, input string) (number.Decimal, error) {
	t.Helper()

	p := New[number.Decimal]([]byte(input))
	p.unitLine = 1

	expr, err := p.parseExpression(1)
	if err != nil {
		return number.Decimal{}, err
	}
	return expr.Evaluate(), nil
}

func assertDecimal(t *testing.T, got number.Decimal, want string) {
	t.Helper()

	w, err := decimal.NewFromString(want)
	assert.NoError(t, err)
	assert.True(t, got.Equal(number.NewDecimal(w)), "got %s, want %s", got.String(), want)
}

func TestParseExpression_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3", "5"},
		{"1.5 + 2.5", "4"},
		{"5 - 3", "2"},
		{"100.00 - 25.50", "74.5"},
		{"2 * 3", "6"},
		{"10.00 * 3.5", "35"},
		{"6 / 2", "3"},
		{"40.00 / 3", "13.3333333333333333"}, // shopspring/decimal default precision
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalExpression(t, tt.input)
			assert.NoError(t, err)
			assertDecimal(t, got, tt.want)
		})
	}
}

func TestParseExpression_OperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3 * 4", "14"},
		{"10 - 2 * 3", "4"},
		{"20 / 4 + 5", "10"},
		{"1 + 6 / 2", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalExpression(t, tt.input)
			assert.NoError(t, err)
			assertDecimal(t, got, tt.want)
		})
	}
}

func TestParseExpression_LeftAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3 - 2 - 1", "0"},
		{"6 / 3 / 2", "1"},
		{"10 - 2 + 3", "11"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalExpression(t, tt.input)
			assert.NoError(t, err)
			assertDecimal(t, got, tt.want)
		})
	}
}

func TestParseExpression_Parentheses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(2 + 3) * 4", "20"},
		{"2 * (3 + 4)", "14"},
		{"((1 + 1))", "2"},
		{"(10 - 2) / (2 + 2)", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalExpression(t, tt.input)
			assert.NoError(t, err)
			assertDecimal(t, got, tt.want)
		})
	}
}

func TestParseExpression_UnaryMinus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-5", "-5"},
		{"--5", "5"},
		{"-(2 + 3)", "-5"},
		{"10 + -2", "8"},
		{"-2 * 3", "-6"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evalExpression(t, tt.input)
			assert.NoError(t, err)
			assertDecimal(t, got, tt.want)
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []string{
		"2 +",
		"(2 + 3",
		"* 3",
		"/ 2",
		"()",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := evalExpression(t, input)
			assert.Error(t, err)
		})
	}
}

func TestParseExpression_FloatDivisionByZero(t *testing.T) {
	p := New[number.Float64]([]byte("1 / 0"))
	p.unitLine = 1

	expr, err := p.parseExpression(1)
	assert.NoError(t, err)
	assert.True(t, math.IsInf(float64(expr.Evaluate()), 1))
}
