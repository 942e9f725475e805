package dicer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dicer.dev/internal/test"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func lit(v int64) *LiteralExpr {
	return &LiteralExpr{Value: v}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect Expr
	}{
		{
			[]Token{
				{TokenNumber, "5", nil},
			},
			false,
			lit(5),
		},
		{
			[]Token{
				{TokenNumber, "2", nil},
				{TokenDot, ".", nil},
				{TokenDice, "d", nil},
				{TokenNumber, "5", nil},
				{TokenMulti, "*", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "1", nil},
			},
			false,
			&BinaryExpr{
				Operation: BinaryMultiplication,
				Op1:       &DiceExpr{Count: lit(2), Sides: 5},
				Op2: &UnaryExpr{
					Operation: UnaryNegative,
					Operand:   lit(1),
				},
			},
		},
		{
			[]Token{
				{TokenDice, "d", nil},
				{TokenNumber, "20", nil},
			},
			false,
			&DiceExpr{Sides: 20},
		},
		{
			[]Token{
				{TokenMinus, "-", nil},
				{TokenNumber, "2", nil},
				{TokenDot, ".", nil},
				{TokenDice, "d", nil},
				{TokenNumber, "6", nil},
			},
			false,
			&UnaryExpr{
				Operation: UnaryNegative,
				Operand:   &DiceExpr{Count: lit(2), Sides: 6},
			},
		},
		{
			[]Token{
				{TokenNumber, "2", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenMulti, "*", nil},
				{TokenNumber, "4", nil},
			},
			false,
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1:       lit(2),
				Op2: &BinaryExpr{
					Operation: BinaryMultiplication,
					Op1:       lit(3),
					Op2:       lit(4),
				},
			},
		},
		{
			[]Token{
				{TokenNumber, "10", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "2", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "3", nil},
			},
			false,
			&BinaryExpr{
				Operation: BinarySubtraction,
				Op1: &BinaryExpr{
					Operation: BinarySubtraction,
					Op1:       lit(10),
					Op2:       lit(2),
				},
				Op2: lit(3),
			},
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "2", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenDot, ".", nil},
				{TokenDice, "d", nil},
				{TokenNumber, "6", nil},
			},
			false,
			&DiceExpr{
				Count: &BinaryExpr{
					Operation: BinaryAddition,
					Op1:       lit(1),
					Op2:       lit(2),
				},
				Sides: 6,
			},
		},
		{
			// 2.d
			[]Token{
				{TokenNumber, "2", nil},
				{TokenDot, ".", nil},
				{TokenDice, "d", nil},
			},
			true,
			nil,
		},
		{
			// 2.5
			[]Token{
				{TokenNumber, "2", nil},
				{TokenDot, ".", nil},
				{TokenNumber, "5", nil},
			},
			true,
			nil,
		},
		{
			// (1 + 2
			[]Token{
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "2", nil},
			},
			true,
			nil,
		},
		{
			// 1 + 2)
			[]Token{
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "2", nil},
				{TokenCloseParentheses, ")", nil},
			},
			true,
			nil,
		},
		{
			// 1 2
			[]Token{
				{TokenNumber, "1", nil},
				{TokenNumber, "2", nil},
			},
			true,
			nil,
		},
		{
			// * 3
			[]Token{
				{TokenMulti, "*", nil},
				{TokenNumber, "3", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenNumber, "99999999999999999999", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenError, "invalid symbol '@'", nil},
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		p := NewParser(NewBufferedTokenizerMocker(c.data))
		expr := p.Run()

		if c.fail {
			assert.True(t, hasBadExpr(expr), "expected a bad expression, got %s", expr)
			continue
		}

		assert.Equal(t, c.expect, expr)
	}
}

func TestParse(t *testing.T) {
	expr, err := Parse("2.d5 * -1")
	require.NoError(t, err)
	assert.Equal(t, "(2.d5 * -1)", expr.String())

	_, err = Parse("2.d")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, &Location{4}, perr.Loc)

	_, err = Parse("(1 + 2")
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "unbalanced parentheses")
	assert.Equal(t, &Location{1}, perr.Loc)

	// Dice ranges are not syntax errors
	_, err = Parse("2.d0")
	assert.NoError(t, err)
}

func TestParseString(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"5", "5"},
		{"d6", "d6"},
		{"2.D6", "2.d6"},
		{"(2).d6", "2.d6"},
		{"(1+1).d6", "(1 + 1).d6"},
		{"(-1).d6", "(-1).d6"},
		{"-2.d6", "-2.d6"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 - (2 - 3)", "(1 - (2 - 3))"},
		{"2+3*4", "(2 + (3 * 4))"},
		{"--d4", "--d4"},
	}

	for _, c := range cases {
		expr, err := Parse(c.data)
		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, expr.String(), c.data)

		// The canonical form parses back to the same tree
		again, err := Parse(expr.String())
		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, again.String(), c.data)
	}
}

func TestParseRandomExpressions(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		source := test.GetRandomExpression(r, 4)

		_, err := Parse(source)
		assert.NoError(t, err, source)
	}
}
