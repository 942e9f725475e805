// Package dicer evaluates dice notation expressions.
//
// An expression combines integer literals, dice rolls, unary minus and the
// four arithmetic operators, with parentheses for grouping:
//
//	2.d5 * -1     roll two five-sided dice, sum them, negate the sum
//	d20 + 3       roll a single twenty-sided die and add three
//	(1 + 2).d6    roll three six-sided dice
//
// Rolls and unary minus bind tighter than * and /, which bind tighter than
// + and -. Division truncates toward zero.
package dicer

import (
	"github.com/llir/llvm/ir"
)

var defaultEvaluator = NewEvaluator()

// Parse turns source into an expression tree. It only reports syntax
// errors; dice ranges are checked by Evaluator.Check and at evaluation.
func Parse(source string) (Expr, error) {
	expr := NewParser(NewLexerFromString(source)).Run()
	if err := firstParseError(expr); err != nil {
		return nil, err
	}

	return expr, nil
}

// Evaluate evaluates source with a shared evaluator using the default dice
// limit and a randomly seeded source. It is safe for concurrent use.
func Evaluate(source string) (int64, error) {
	return defaultEvaluator.Evaluate(source)
}

// EvaluateDetailed is Evaluate with every die result attached.
func EvaluateDetailed(source string) (Result, error) {
	return defaultEvaluator.EvaluateDetailed(source)
}

// Compile lowers source to an LLVM IR module using the default dice limit.
func Compile(source string) (*ir.Module, error) {
	return defaultEvaluator.Compile(source)
}

// Compile lowers source to an LLVM IR module. The module declares the
// runtime functions dicer_roll and dicer_div and defines eval and main.
func (e *Evaluator) Compile(source string) (*ir.Module, error) {
	expr, err := e.Parse(source)
	if err != nil {
		return nil, err
	}

	return NewLLVMIRBuilder().Build(expr), nil
}
