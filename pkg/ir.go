package dicer

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) value.Value {
	if val, ok := l.vals[id]; ok {
		return val
	}

	// Only runtime functions are looked up, all of them are defined by
	// defineBuiltins
	panic("undefined identifier: " + id)
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

// Build lowers a checked expression into the eval function of the module
// and adds a main that prints its result. BadExpr nodes must have been
// rejected before.
func (b *LLVMIRBuilder) Build(expr Expr) *ir.Module {
	f := b.mod.NewFunc(evalFuncName, types.I64)
	b.values.Set(evalFuncName, f)

	b.block = f.NewBlock("")
	b.block.NewRet(b.recursiveLoad(expr))

	defineMain(b)
	return b.mod
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr) value.Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return constant.NewInt(types.I64, e.Value)
	case *DiceExpr:
		return b.diceExpression(e)
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *UnaryExpr:
		return b.unaryExpression(e)
	default:
		panic(fmt.Sprintf("unexpected expression: %T", expr))
	}
}

func (b *LLVMIRBuilder) diceExpression(expr *DiceExpr) value.Value {
	var count value.Value = constant.NewInt(types.I64, 1)
	if expr.Count != nil {
		count = b.recursiveLoad(expr.Count)
	}

	sides := constant.NewInt(types.I64, expr.Sides)
	return b.block.NewCall(b.values.Get(rollFuncName), count, sides)
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) value.Value {
	v1 := b.recursiveLoad(expr.Op1)
	v2 := b.recursiveLoad(expr.Op2)

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewAdd(v1, v2)
	case BinarySubtraction:
		return b.block.NewSub(v1, v2)
	case BinaryMultiplication:
		return b.block.NewMul(v1, v2)
	case BinaryDivision:
		// sdiv is undefined for a zero divisor, the runtime checks it
		return b.block.NewCall(b.values.Get(divFuncName), v1, v2)
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}

func (b *LLVMIRBuilder) unaryExpression(expr *UnaryExpr) value.Value {
	v := b.recursiveLoad(expr.Operand)

	switch expr.Operation {
	case UnaryNegative:
		minusOne := constant.NewInt(types.I64, -1)
		return b.block.NewMul(v, minusOne)
	default:
		panic("unexpected unary op: " + expr.Operation)
	}
}
