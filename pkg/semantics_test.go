package dicer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker(t *testing.T) {
	cases := []struct {
		data   Expr
		expect []error
	}{
		{
			&BinaryExpr{
				Operation: BinaryMultiplication,
				Op1:       &DiceExpr{Count: lit(2), Sides: 5},
				Op2:       &UnaryExpr{Operation: UnaryNegative, Operand: lit(1)},
			},
			nil,
		},
		{
			&DiceExpr{Count: lit(2), Sides: 0},
			[]error{ErrInvalidDiceSpec},
		},
		{
			&DiceExpr{Sides: 0},
			[]error{ErrInvalidDiceSpec},
		},
		{
			&DiceExpr{Count: lit(0), Sides: 6},
			[]error{ErrInvalidDiceSpec},
		},
		{
			&DiceExpr{Count: lit(11), Sides: 6},
			[]error{ErrTooManyDice},
		},
		{
			&DiceExpr{Count: lit(2), Sides: math.MaxInt64},
			[]error{ErrRollOverflow},
		},
		{
			// Computed counts are left to evaluation
			&DiceExpr{Count: &UnaryExpr{Operation: UnaryNegative, Operand: lit(1)}, Sides: 6},
			nil,
		},
		{
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1:       &BadExpr{Error: "unexpected '*'"},
				Op2:       &DiceExpr{Count: lit(1), Sides: 0},
			},
			[]error{&ParseError{Msg: "unexpected '*'"}, ErrInvalidDiceSpec},
		},
	}

	for _, c := range cases {
		errs := NewChecker(10).Do(c.data)
		if !assert.Len(t, errs, len(c.expect), c.data.String()) {
			continue
		}

		for i, want := range c.expect {
			var perr *ParseError
			if errors.As(want, &perr) {
				assert.Equal(t, want, errs[i])
				continue
			}

			var eerr *EvaluationError
			assert.ErrorAs(t, errs[i], &eerr)
			assert.ErrorIs(t, errs[i], want)
		}
	}
}

func TestCheckerWithoutLimit(t *testing.T) {
	errs := NewChecker(0).Do(&DiceExpr{Count: lit(1_000_000), Sides: 6})
	assert.Empty(t, errs)
}

func TestEvaluationErrorMessage(t *testing.T) {
	err := &EvaluationError{
		Loc:  &Location{2},
		Expr: "2.d0",
		Err:  ErrInvalidDiceSpec,
	}

	assert.EqualError(t, err, "evaluation error at col 2: 2.d0: dice must have positive sides and count")
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Msg: "unexpected end of input, expected number of sides"}
	assert.EqualError(t, err, "parse error at end of input: unexpected end of input, expected number of sides")
}
