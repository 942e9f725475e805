package dicer

import (
	"fmt"
	"strconv"
)

// Expr is a node of a parsed dice expression. Nodes are never modified
// after parsing; evaluating the same tree twice rolls its dice again.
type Expr interface {
	fmt.Stringer
	GetLocation() *Location
}

type BadExpr struct {
	Loc   *Location
	Error string
}

func (e *BadExpr) GetLocation() *Location { return e.Loc }

func (e *BadExpr) String() string {
	return "<bad: " + e.Error + ">"
}

type LiteralExpr struct {
	Loc   *Location
	Value int64
}

func (e *LiteralExpr) GetLocation() *Location { return e.Loc }

func (e *LiteralExpr) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// DiceExpr rolls Count dice of Sides faces and sums them. Count is nil for
// the dS form, which rolls a single die.
type DiceExpr struct {
	Loc   *Location
	Count Expr
	Sides int64
}

func (e *DiceExpr) GetLocation() *Location { return e.Loc }

func (e *DiceExpr) String() string {
	sides := strconv.FormatInt(e.Sides, 10)

	switch c := e.Count.(type) {
	case nil:
		return "d" + sides
	case *LiteralExpr, *BinaryExpr:
		return c.String() + ".d" + sides
	default:
		return "(" + c.String() + ").d" + sides
	}
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

type BinaryExpr struct {
	Loc       *Location
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

func (e *BinaryExpr) GetLocation() *Location { return e.Loc }

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op1, e.Operation, e.Op2)
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Loc       *Location
	Operation UnaryOp
	Operand   Expr
}

func (e *UnaryExpr) GetLocation() *Location { return e.Loc }

func (e *UnaryExpr) String() string {
	return string(e.Operation) + e.Operand.String()
}

// Walk visits expr and its children depth-first, left to right. Children of
// a node are skipped when fn returns false for it.
func Walk(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}

	switch e := expr.(type) {
	case *DiceExpr:
		Walk(e.Count, fn)
	case *BinaryExpr:
		Walk(e.Op1, fn)
		Walk(e.Op2, fn)
	case *UnaryExpr:
		Walk(e.Operand, fn)
	}
}
