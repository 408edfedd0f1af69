package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/jcornaz/beancount-parser-sub000/ast"
)

func TestParseTransaction_HeaderForms(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		flag      ast.Flag
		payee     string
		narration string
	}{
		{
			name:      "completed with narration",
			input:     "2014-05-05 * \"Lamb tagine\"\n",
			flag:      ast.FlagCompleted,
			narration: "Lamb tagine",
		},
		{
			name:      "payee and narration",
			input:     "2014-05-05 * \"Cafe Mogador\" \"Lamb tagine\"\n",
			flag:      ast.FlagCompleted,
			payee:     "Cafe Mogador",
			narration: "Lamb tagine",
		},
		{
			name:      "incomplete",
			input:     "2014-05-05 ! \"Lamb tagine\"\n",
			flag:      ast.FlagIncomplete,
			narration: "Lamb tagine",
		},
		{
			name:      "keyword form has no flag",
			input:     "2014-05-05 txn \"Lamb tagine\"\n",
			narration: "Lamb tagine",
		},
		{
			name:  "bare header",
			input: "2014-05-05 *\n",
			flag:  ast.FlagCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := parseOne(t, tt.input)

			txn := dir.Transaction
			assert.NotZero(t, txn)
			assert.Equal(t, tt.flag, txn.Flag)
			assert.Equal(t, tt.payee, txn.Payee)
			assert.Equal(t, tt.narration, txn.Narration)
			assert.Equal(t, 0, len(txn.Postings))
		})
	}
}

func TestParseTransaction_TagsAndLinks(t *testing.T) {
	dir := parseOne(t, "2014-05-05 * \"Dinner\" #trip #dinner ^order-446 #paid\n")

	txn := dir.Transaction
	assert.Equal(t,
		map[string]struct{}{"trip": {}, "dinner": {}, "paid": {}},
		txn.Tags)
	assert.Equal(t, map[string]struct{}{"order-446": {}}, txn.Links)
}

func TestParseTransaction_Postings(t *testing.T) {
	dir := parseOne(t, `2014-05-05 * "Dinner"
  Liabilities:CreditCard -37.45 USD
  ! Expenses:Restaurant 35.00 USD
  Expenses:Tips 2.45 USD
  Assets:Cash
`)

	postings := dir.Transaction.Postings
	assert.Equal(t, 4, len(postings))

	assert.Equal(t, ast.Account("Liabilities:CreditCard"), postings[0].Account)
	assertDecimal(t, postings[0].Amount.Value, "-37.45")
	assert.Equal(t, ast.Currency("USD"), postings[0].Amount.Currency)

	assert.Equal(t, ast.FlagIncomplete, postings[1].Flag)
	assertDecimal(t, postings[1].Amount.Value, "35.00")

	assert.Zero(t, postings[2].Flag)

	// Bare account: amount left for downstream balancing.
	assert.Equal(t, ast.Account("Assets:Cash"), postings[3].Account)
	assert.Zero(t, postings[3].Amount)
}

func TestParseTransaction_PostingExpressions(t *testing.T) {
	dir := parseOne(t, `2014-05-05 * "Split three ways"
  Expenses:Dinner 112.50 / 3 USD
  Assets:Cash
`)

	assertDecimal(t, dir.Transaction.Postings[0].Amount.Value, "37.50")
}

func TestParseTransaction_Cost(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAmount string
		wantDate   *ast.Date
	}{
		{
			name:       "amount only",
			input:      "  Assets:Invest 10 VACHR {1.10 USD}\n",
			wantAmount: "1.10",
		},
		{
			name:     "date only",
			input:    "  Assets:Invest 10 VACHR {2014-05-05}\n",
			wantDate: &ast.Date{Year: 2014, Month: 5, Day: 5},
		},
		{
			name:       "amount and date",
			input:      "  Assets:Invest 10 VACHR {1.10 USD, 2014-05-05}\n",
			wantAmount: "1.10",
			wantDate:   &ast.Date{Year: 2014, Month: 5, Day: 5},
		},
		{
			name:       "date before amount",
			input:      "  Assets:Invest 10 VACHR {2014-05-05, 1.10 USD}\n",
			wantAmount: "1.10",
			wantDate:   &ast.Date{Year: 2014, Month: 5, Day: 5},
		},
		{
			name:  "empty",
			input: "  Assets:Invest 10 VACHR {}\n",
		},
		{
			name:       "label is discarded",
			input:      "  Assets:Invest 10 VACHR {1.10 USD, \"first-lot\"}\n",
			wantAmount: "1.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := parseOne(t, "2014-05-05 * \"Vacation hours\"\n"+tt.input)

			cost := dir.Transaction.Postings[0].Cost
			assert.NotZero(t, cost)

			if tt.wantAmount == "" {
				assert.Zero(t, cost.Amount)
			} else {
				assertDecimal(t, cost.Amount.Value, tt.wantAmount)
				assert.Equal(t, ast.Currency("USD"), cost.Amount.Currency)
			}
			assert.Equal(t, tt.wantDate, cost.Date)
		})
	}
}

func TestParseTransaction_Price(t *testing.T) {
	t.Run("per unit", func(t *testing.T) {
		dir := parseOne(t, `2014-05-05 * "Exchange"
  Assets:CHF 100 CHF @ 1.15 USD
  Assets:USD
`)

		price := dir.Transaction.Postings[0].Price
		assert.NotZero(t, price)
		assert.False(t, price.Total)
		assertDecimal(t, price.Amount.Value, "1.15")
		assert.Equal(t, ast.Currency("USD"), price.Amount.Currency)
	})

	t.Run("total", func(t *testing.T) {
		dir := parseOne(t, `2014-05-05 * "Exchange"
  Assets:CHF 100 CHF @@ 115.00 USD
  Assets:USD
`)

		price := dir.Transaction.Postings[0].Price
		assert.True(t, price.Total)
		assertDecimal(t, price.Amount.Value, "115.00")
	})

	t.Run("cost and price together", func(t *testing.T) {
		dir := parseOne(t, `2014-05-05 * "Sell shares"
  Assets:Shares -10 HOOL {1.10 USD} @ 1.15 USD
  Assets:Cash
`)

		posting := dir.Transaction.Postings[0]
		assert.NotZero(t, posting.Cost)
		assert.NotZero(t, posting.Price)
		assertDecimal(t, posting.Cost.Amount.Value, "1.10")
		assertDecimal(t, posting.Price.Amount.Value, "1.15")
	})
}

func TestParseTransaction_PostingComment(t *testing.T) {
	dir := parseOne(t, `2014-05-05 * "Dinner"
  Expenses:Restaurant 37.45 USD ; including tip
  Assets:Cash
`)

	assert.Equal(t, "including tip", dir.Transaction.Postings[0].Comment)
	assert.Equal(t, "", dir.Transaction.Postings[1].Comment)
}

func TestParseTransaction_Metadata(t *testing.T) {
	dir := parseOne(t, `2014-05-05 * "Dinner"
  receipt: "r-2014-446"
  Expenses:Restaurant 37.45 USD
    category: "food"
  Assets:Cash
`)

	assert.Equal(t, "r-2014-446", *dir.Metadata["receipt"].String)

	postings := dir.Transaction.Postings
	assert.Equal(t, 2, len(postings))
	assert.Equal(t, "food", *postings[0].Metadata["category"].String)
	assert.Zero(t, postings[1].Metadata)
}

func TestParseTransaction_IndentedCommentsSkipped(t *testing.T) {
	dir := parseOne(t, `2014-05-05 * "Dinner"
  ; paid in cash
  Expenses:Restaurant 37.45 USD
  Assets:Cash
`)

	assert.Equal(t, 2, len(dir.Transaction.Postings))
}

func TestParseTransaction_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "price marker without whitespace",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD @2 EUR
`,
		},
		{
			name: "dangling price marker",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD @
`,
		},
		{
			name: "unclosed cost",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD {2 EUR
`,
		},
		{
			name: "duplicate cost amount",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD {2 EUR, 3 EUR}
`,
		},
		{
			name: "duplicate cost date",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD {2014-01-01, 2014-01-02}
`,
		},
		{
			name: "flag without account",
			input: `2014-05-05 * "Dinner"
  !
  Assets:Cash
`,
		},
		{
			name: "amount without currency",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10
`,
		},
		{
			name: "price amount on next line",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD @
  1.15 EUR
`,
		},
		{
			name: "currency on next line",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10
  - 5 USD
`,
		},
		{
			name: "cost closed on next line",
			input: `2014-05-05 * "Dinner"
  Assets:Cash 10 USD {2 EUR
  }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDoc(t, tt.input)
			assert.EqualError(t, err, "invalid syntax at line: 1")
		})
	}
}
