package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"
	dicer "go.dicer.dev/pkg"
)

const diceLibraryName = "dice"

// LuaEngine runs Lua scripts. Scripts reach the evaluator through the
// global dice table:
//
//	dice.eval(source)        value of a dice expression
//	dice.roll(count, sides)  total and the list of die results
//
// Invalid expressions and rolls raise Lua errors. Lua numbers are float64,
// so dice results outside (-2^53, 2^53) raise an error instead of being
// rounded. The value returned by the script chunk is the result of Eval.
type LuaEngine struct {
	mu        sync.Mutex
	state     *lua.State
	evaluator *dicer.Evaluator
}

func NewLuaEngine(evaluator *dicer.Evaluator) *LuaEngine {
	state := lua.NewState()
	lua.OpenLibraries(state)

	e := &LuaEngine{
		state:     state,
		evaluator: evaluator,
	}

	e.registerDiceLibrary()
	return e
}

func (e *LuaEngine) registerDiceLibrary() {
	e.state.NewTable()
	lua.SetFunctions(e.state, []lua.RegistryFunction{
		{Name: "eval", Function: e.diceEval},
		{Name: "roll", Function: e.diceRoll},
	}, 0)
	e.state.SetGlobal(diceLibraryName)
}

// Eval runs script and converts its first return value to int64 (integral
// numbers), float64, string, bool or nil. Globals set by a script stay
// visible to later scripts of the same engine.
func (e *LuaEngine) Eval(script string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	top := e.state.Top()
	defer e.state.SetTop(top)

	if err := lua.LoadString(e.state, script); err != nil {
		return nil, e.scriptError("load lua", err)
	}

	if err := e.state.ProtectedCall(0, 1, 0); err != nil {
		return nil, e.scriptError("run lua", err)
	}

	return toValue(e.state, -1)
}

// scriptError attaches the error message Lua left on the stack.
func (e *LuaEngine) scriptError(stage string, err error) error {
	if msg, ok := e.state.ToString(-1); ok && !strings.Contains(err.Error(), msg) {
		return fmt.Errorf("%s: %w: %s", stage, err, msg)
	}

	return fmt.Errorf("%s: %w", stage, err)
}

func (e *LuaEngine) diceEval(state *lua.State) int {
	source := lua.CheckString(state, 1)

	v, err := e.evaluator.Evaluate(source)
	if err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}

	if !pushExactInteger(state, v) {
		lua.Errorf(state, "%s = %d does not fit a lua number", source, v)
		return 0
	}

	return 1
}

func (e *LuaEngine) diceRoll(state *lua.State) int {
	count := lua.CheckInteger(state, 1)
	sides := lua.CheckInteger(state, 2)

	roll, err := e.evaluator.Roll(int64(count), int64(sides))
	if err != nil {
		lua.Errorf(state, "%d.d%d: %s", count, sides, err.Error())
		return 0
	}

	// Every result is at most the total, so only the total needs checking
	if !pushExactInteger(state, roll.Total) {
		lua.Errorf(state, "%d.d%d = %d does not fit a lua number", count, sides, roll.Total)
		return 0
	}

	state.NewTable()
	for i, r := range roll.Results {
		state.PushInteger(int(r))
		state.RawSetInt(-2, i+1)
	}

	return 2
}

// maxExactInteger bounds the integers a float64 holds without rounding.
const maxExactInteger = 1 << 53

func pushExactInteger(state *lua.State, v int64) bool {
	if v >= maxExactInteger || v <= -maxExactInteger {
		return false
	}

	state.PushInteger(int(v))
	return true
}

func toValue(state *lua.State, index int) (any, error) {
	switch state.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return nil, nil
	case lua.TypeBoolean:
		return state.ToBoolean(index), nil
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		if n == math.Trunc(n) && math.Abs(n) < maxExactInteger {
			return int64(n), nil
		}

		return n, nil
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported lua result type %s", lua.TypeNameOf(state, index))
	}
}
