package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.dicer.dev/internal/config"
	"go.dicer.dev/internal/shell"
	dicer "go.dicer.dev/pkg"
	"go.dicer.dev/pkg/engine"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[DICER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	evaluator := dicer.NewEvaluator(cfg.EvaluatorOptions()...)

	switch {
	case cfg.LuaFile != "":
		script, err := os.ReadFile(cfg.LuaFile)
		if err != nil {
			return fmt.Errorf("read lua script: %w", err)
		}

		v, err := engine.NewLuaEngine(evaluator).Eval(string(script))
		if err != nil {
			return err
		}

		fmt.Fprintln(out, v)
	case cfg.EmitIR:
		mod, err := evaluator.Compile(cfg.Expr)
		if err != nil {
			return err
		}

		fmt.Fprint(out, mod)
	case cfg.Expr != "" && cfg.Rolls:
		res, err := evaluator.EvaluateDetailed(cfg.Expr)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, res)
	case cfg.Expr != "":
		v, err := evaluator.Evaluate(cfg.Expr)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, v)
	default:
		log.Printf("max dice %d, type :help for commands", cfg.MaxDice)

		err := shell.New(evaluator, in, out, shell.WithPrompt(cfg.Prompt)).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	}

	return nil
}
