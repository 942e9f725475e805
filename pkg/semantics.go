package dicer

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDiceSpec indicates a roll with no faces or no dice.
	ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

	// ErrTooManyDice indicates a roll over the evaluator's dice limit.
	ErrTooManyDice = errors.New("too many dice")

	// ErrDivisionByZero indicates a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrRollOverflow indicates a roll whose highest total does not fit an
	// int64.
	ErrRollOverflow = errors.New("roll total overflows int64")
)

// ParseError reports source that does not follow the dice grammar.
type ParseError struct {
	Loc *Location
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Loc, e.Msg)
}

// EvaluationError reports a well-formed expression that cannot be
// evaluated. Err is one of the sentinel errors of this package.
type EvaluationError struct {
	Loc  *Location
	Expr string
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error at %s: %s: %v", e.Loc, e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Checker finds the problems of a parsed expression that are visible
// without rolling: syntax errors and dice with literal counts or sides
// out of range.
type Checker struct {
	maxDice int64
	errs    []error
}

func NewChecker(maxDice int64) *Checker {
	return &Checker{maxDice: maxDice}
}

// Do returns every problem found in expr, in source order.
func (c *Checker) Do(expr Expr) []error {
	c.errs = nil

	Walk(expr, func(e Expr) bool {
		c.analyze(e)
		return true
	})

	return c.errs
}

func (c *Checker) analyze(expr Expr) {
	switch e := expr.(type) {
	case *BadExpr:
		c.errs = append(c.errs, &ParseError{Loc: e.Loc, Msg: e.Error})
	case *DiceExpr:
		count := int64(1) // computed counts are checked when rolled
		if lit, ok := e.Count.(*LiteralExpr); ok {
			count = lit.Value
		}

		if err := validateRoll(c.maxDice, count, e.Sides); err != nil {
			c.errs = append(c.errs, &EvaluationError{Loc: e.Loc, Expr: e.String(), Err: err})
		}
	}
}

func validateRoll(maxDice, count, sides int64) error {
	if count < 1 || sides < 1 {
		return ErrInvalidDiceSpec
	}

	if maxDice > 0 && count > maxDice {
		return fmt.Errorf("%w: %d > %d", ErrTooManyDice, count, maxDice)
	}

	if sides > math.MaxInt64/count {
		return fmt.Errorf("%w: %d.d%d", ErrRollOverflow, count, sides)
	}

	return nil
}

// firstParseError returns the first syntax error in expr, if any.
func firstParseError(expr Expr) error {
	for _, err := range NewChecker(0).Do(expr) {
		var perr *ParseError
		if errors.As(err, &perr) {
			return perr
		}
	}

	return nil
}
