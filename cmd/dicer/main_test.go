package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dicer.dev/internal/config"
	dicer "go.dicer.dev/pkg"
)

func TestRunExpr(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Config{Expr: "2+3*4", MaxDice: 10}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "14\n", out.String())
}

func TestRunExprError(t *testing.T) {
	err := run(context.Background(), config.Config{Expr: "11.d6", MaxDice: 10}, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, dicer.ErrTooManyDice)
}

func TestRunRolls(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Config{Expr: "3.d1 + 1", Rolls: true}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "3.d1 [1 1 1] = 3\n= 4\n", out.String())
}

func TestRunEmitIR(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Config{Expr: "d6", EmitIR: true}, nil, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "define i64 @eval()")
}

func TestRunLua(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roll.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return dice.eval("2.d1 * -1")`), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), config.Config{LuaFile: path}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "-2\n", out.String())
}

func TestRunLuaMissingFile(t *testing.T) {
	err := run(context.Background(), config.Config{LuaFile: filepath.Join(t.TempDir(), "missing.lua")}, nil, &bytes.Buffer{})
	assert.ErrorContains(t, err, "read lua script")
}

func TestRunShell(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Config{Seed: 1}, strings.NewReader("5 * 5\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "25\n", out.String())
}
