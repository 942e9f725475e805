// Package config parses dicer command configuration from the environment
// and command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	dicer "go.dicer.dev/pkg"
)

// Config holds dicer command configuration. Environment variables set the
// defaults, flags override them.
type Config struct {
	MaxDice int64  `env:"DICER_MAX_DICE" envDefault:"1000"`
	Seed    int64  `env:"DICER_SEED"`
	Prompt  string `env:"DICER_PROMPT" envDefault:"dicer> "`

	// Flag only
	Expr    string
	Rolls   bool
	EmitIR  bool
	LuaFile string
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Int64Var(&cfg.MaxDice, "max-dice", cfg.MaxDice, "Most dice a single roll may throw, 0 for no limit")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for reproducible rolls, 0 for a random seed")
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "The shell prompt")
	fs.StringVar(&cfg.Expr, "e", "", "Evaluate a dice expression and exit")
	fs.BoolVar(&cfg.Rolls, "rolls", false, "Print every die rolled by -e")
	fs.BoolVar(&cfg.EmitIR, "emit-ir", false, "Print the LLVM IR of -e instead of evaluating it")
	fs.StringVar(&cfg.LuaFile, "lua", "", "Run a Lua script and print its result")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.EmitIR && cfg.Expr == "" {
		return Config{}, errors.New("-emit-ir requires -e")
	}

	return cfg, nil
}

// EvaluatorOptions returns the evaluator options described by cfg.
func (c Config) EvaluatorOptions() []dicer.Option {
	opts := []dicer.Option{dicer.WithMaxDice(c.MaxDice)}
	if c.Seed != 0 {
		opts = append(opts, dicer.WithSeed(c.Seed))
	}

	return opts
}
