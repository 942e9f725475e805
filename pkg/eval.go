package dicer

import (
	"fmt"
	"strings"
)

// DefaultMaxDice bounds the number of dice a single roll may throw.
const DefaultMaxDice = 1000

// DieRoll captures the results of one evaluated dice node.
type DieRoll struct {
	Count   int64
	Sides   int64
	Results []int64
	Total   int64
}

func (r DieRoll) String() string {
	return fmt.Sprintf("%d.d%d %v = %d", r.Count, r.Sides, r.Results, r.Total)
}

// Result is the outcome of one evaluation. Rolls appear in the order the
// dice were thrown, which is the left to right order of the source.
type Result struct {
	Value int64
	Rolls []DieRoll
}

func (r Result) String() string {
	var str strings.Builder
	for _, roll := range r.Rolls {
		str.WriteString(roll.String())
		str.WriteString("\n")
	}

	fmt.Fprintf(&str, "= %d", r.Value)
	return str.String()
}

type Option func(*Evaluator)

// WithRand makes the evaluator draw from r. r must be safe for concurrent
// use if the evaluator is shared.
func WithRand(r Roller) Option {
	return func(e *Evaluator) {
		e.rng = r
	}
}

// WithSeed makes the rolls of the evaluator reproducible.
func WithSeed(seed int64) Option {
	return WithRand(newLockedRand(seed))
}

// WithMaxDice sets the dice limit of a single roll. Zero or less disables
// the limit.
func WithMaxDice(n int64) Option {
	return func(e *Evaluator) {
		e.maxDice = n
	}
}

// Evaluator parses and evaluates dice expressions. It holds no state
// between calls other than its random source and is safe for concurrent
// use.
type Evaluator struct {
	rng     Roller
	maxDice int64
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxDice: DefaultMaxDice,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = newLockedRand(defaultSeed())
	}

	return e
}

// Evaluate parses source and evaluates it, returning the numeric result.
// Errors are either a *ParseError or an *EvaluationError.
func (e *Evaluator) Evaluate(source string) (int64, error) {
	res, err := e.EvaluateDetailed(source)
	if err != nil {
		return 0, err
	}

	return res.Value, nil
}

// EvaluateDetailed is Evaluate with every die result attached.
func (e *Evaluator) EvaluateDetailed(source string) (Result, error) {
	expr, err := e.Parse(source)
	if err != nil {
		return Result{}, err
	}

	return e.Eval(expr)
}

// Parse parses source and runs the static checks of the evaluator on it.
func (e *Evaluator) Parse(source string) (Expr, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}

	if errs := e.Check(expr); len(errs) != 0 {
		return nil, errs[0]
	}

	return expr, nil
}

// Check reports every problem of expr that is visible before rolling.
func (e *Evaluator) Check(expr Expr) []error {
	return NewChecker(e.maxDice).Do(expr)
}

// Eval evaluates a parsed expression. Every call rolls the dice again.
func (e *Evaluator) Eval(expr Expr) (Result, error) {
	v := &visitor{evaluator: e}

	value, err := v.eval(expr)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Value: value,
		Rolls: v.rolls,
	}, nil
}

// Roll throws count dice of the given sides.
func (e *Evaluator) Roll(count, sides int64) (DieRoll, error) {
	if err := validateRoll(e.maxDice, count, sides); err != nil {
		return DieRoll{}, err
	}

	results := make([]int64, count)
	total := int64(0)
	for i := range results {
		results[i] = e.rng.Int63n(sides) + 1
		total += results[i]
	}

	return DieRoll{
		Count:   count,
		Sides:   sides,
		Results: results,
		Total:   total,
	}, nil
}

type visitor struct {
	evaluator *Evaluator
	rolls     []DieRoll
}

func (v *visitor) eval(expr Expr) (int64, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *DiceExpr:
		return v.dice(e)
	case *UnaryExpr:
		return v.unary(e)
	case *BinaryExpr:
		return v.binary(e)
	case *BadExpr:
		return 0, &ParseError{Loc: e.Loc, Msg: e.Error}
	default:
		return 0, fmt.Errorf("unexpected expression %T", expr)
	}
}

func (v *visitor) dice(expr *DiceExpr) (int64, error) {
	count := int64(1)
	if expr.Count != nil {
		c, err := v.eval(expr.Count)
		if err != nil {
			return 0, err
		}

		count = c
	}

	roll, err := v.evaluator.Roll(count, expr.Sides)
	if err != nil {
		return 0, &EvaluationError{Loc: expr.Loc, Expr: expr.String(), Err: err}
	}

	v.rolls = append(v.rolls, roll)
	return roll.Total, nil
}

func (v *visitor) unary(expr *UnaryExpr) (int64, error) {
	operand, err := v.eval(expr.Operand)
	if err != nil {
		return 0, err
	}

	switch expr.Operation {
	case UnaryNegative:
		return -operand, nil
	default:
		return 0, fmt.Errorf("unexpected unary op: %s", expr.Operation)
	}
}

// binary evaluates both operands left to right. Division truncates toward
// zero.
func (v *visitor) binary(expr *BinaryExpr) (int64, error) {
	lhs, err := v.eval(expr.Op1)
	if err != nil {
		return 0, err
	}

	rhs, err := v.eval(expr.Op2)
	if err != nil {
		return 0, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return lhs + rhs, nil
	case BinarySubtraction:
		return lhs - rhs, nil
	case BinaryMultiplication:
		return lhs * rhs, nil
	case BinaryDivision:
		if rhs == 0 {
			return 0, &EvaluationError{Loc: expr.Loc, Expr: expr.String(), Err: ErrDivisionByZero}
		}

		return lhs / rhs, nil
	default:
		return 0, fmt.Errorf("unexpected binary op: %s", expr.Operation)
	}
}
