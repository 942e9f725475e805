package dicer

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

const (
	evalFuncName = "eval"
	rollFuncName = "dicer_roll"
	divFuncName  = "dicer_div"
)

// defineBuiltins declares the runtime the generated code links against:
//
//	i64 dicer_roll(i64 count, i64 sides)  sum of count rolls, aborts on invalid dice
//	i64 dicer_div(i64 dividend, i64 divisor)  truncating division, aborts on zero
func defineBuiltins(b *LLVMIRBuilder) {
	declareRuntimeFunc(b, rollFuncName, ir.NewParam("count", types.I64), ir.NewParam("sides", types.I64))
	declareRuntimeFunc(b, divFuncName, ir.NewParam("dividend", types.I64), ir.NewParam("divisor", types.I64))
}

func declareRuntimeFunc(b *LLVMIRBuilder, name string, params ...*ir.Param) {
	f := b.mod.NewFunc(name, types.I64, params...)
	b.values.Set(name, f)
}

func defineMain(b *LLVMIRBuilder) *ir.Func {
	f := b.mod.NewFunc("main", types.I32)
	block := f.NewBlock("")

	printf := b.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	zero := constant.NewInt(types.I32, 0)

	const printFormat = "%lld\n\x00"
	format := constant.NewCharArrayFromString(printFormat)
	formatGlob := b.mod.NewGlobalDef("._printf_fmt", format)

	fmtAddr := constant.NewGetElementPtr(types.NewArray(uint64(len(printFormat)), types.I8), formatGlob, zero, zero)

	result := block.NewCall(b.values.Get(evalFuncName))
	block.NewCall(printf, fmtAddr, result)

	block.NewRet(zero)

	return f
}
