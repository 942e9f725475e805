package engine

import (
	dicer "go.dicer.dev/pkg"
)

// DiceEngine evaluates each script as a single dice expression and returns
// its value as an int64.
type DiceEngine struct {
	evaluator *dicer.Evaluator
}

func NewDiceEngine(evaluator *dicer.Evaluator) *DiceEngine {
	return &DiceEngine{evaluator: evaluator}
}

func (e *DiceEngine) Eval(script string) (any, error) {
	v, err := e.evaluator.Evaluate(script)
	if err != nil {
		return nil, err
	}

	return v, nil
}
