// Package engine exposes dice evaluation through script engines looked up
// by name, the way an application embeds a scripting language.
package engine

import (
	"sort"
	"sync"

	dicer "go.dicer.dev/pkg"
)

const (
	// Dice evaluates raw dice expressions.
	Dice = "dice"
	// Lua runs Lua scripts with a dice library table.
	Lua = "lua"
)

// Engine evaluates script text and returns the resulting value.
type Engine interface {
	Eval(script string) (any, error)
}

// Factory creates an engine.
type Factory func() Engine

// Manager keeps the known engines by name.
type Manager struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewManager returns a manager with the dice and lua engines registered.
// Both share one evaluator built from opts.
func NewManager(opts ...dicer.Option) *Manager {
	m := &Manager{
		factories: make(map[string]Factory),
	}

	evaluator := dicer.NewEvaluator(opts...)
	m.Register(Dice, func() Engine { return NewDiceEngine(evaluator) })
	m.Register(Lua, func() Engine { return NewLuaEngine(evaluator) })

	return m
}

// Register adds or replaces the engine factory for name.
func (m *Manager) Register(name string, factory Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.factories[name] = factory
}

// GetEngineByName returns a new engine, or false if name is unknown.
func (m *Manager) GetEngineByName(name string) (Engine, bool) {
	m.mu.RLock()
	factory, ok := m.factories[name]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}

	return factory(), true
}

// Names lists the registered engines in alphabetical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
