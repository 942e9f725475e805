// Package shell implements the interactive dice shell.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	dicer "go.dicer.dev/pkg"
)

const helpText = `Enter a dice expression such as 2.d6 + 3 to roll it.
  :rolls <expr>  show every die rolled
  :ast <expr>    show the parsed expression
  :ir <expr>     show the LLVM IR of the expression
  :help          show this help
  exit, quit     leave the shell
`

type Option func(*Shell)

// WithPrompt sets the text printed before each line is read.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

type Shell struct {
	evaluator *dicer.Evaluator
	in        io.Reader
	out       io.Writer
	prompt    string
}

func New(evaluator *dicer.Evaluator, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		evaluator: evaluator,
		in:        in,
		out:       out,
		prompt:    "dicer> ",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Evaluate evaluates a single dice expression.
func (s *Shell) Evaluate(line string) (int64, error) {
	return s.evaluator.Evaluate(line)
}

// Run reads and evaluates lines until the input ends, an exit command is
// read or ctx is done. Evaluation errors are printed and do not stop the
// shell.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}

		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, s.prompt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}

			if s.handle(strings.TrimSpace(line)) {
				return nil
			}
		}
	}
}

// handle runs one line and reports whether the shell should stop.
func (s *Shell) handle(line string) bool {
	command, arg := line, ""
	if strings.HasPrefix(line, ":") {
		if i := strings.IndexFunc(line, isSpace); i >= 0 {
			command, arg = line[:i], strings.TrimSpace(line[i:])
		}
	}

	switch command {
	case "":
	case "exit", "quit":
		return true
	case ":help":
		fmt.Fprint(s.out, helpText)
	case ":rolls":
		res, err := s.evaluator.EvaluateDetailed(arg)
		if err != nil {
			s.printError(err)
			break
		}

		fmt.Fprintln(s.out, res)
	case ":ast":
		expr, err := s.evaluator.Parse(arg)
		if err != nil {
			s.printError(err)
			break
		}

		pretty.Fprintf(s.out, "%# v\n", expr)
	case ":ir":
		mod, err := s.evaluator.Compile(arg)
		if err != nil {
			s.printError(err)
			break
		}

		fmt.Fprint(s.out, mod)
	default:
		if strings.HasPrefix(command, ":") {
			fmt.Fprintf(s.out, "unknown command %s, try :help\n", command)
			break
		}

		v, err := s.Evaluate(line)
		if err != nil {
			s.printError(err)
			break
		}

		fmt.Fprintln(s.out, v)
	}

	return false
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
