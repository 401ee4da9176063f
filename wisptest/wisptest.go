// Package wisptest provides a test runner that evaluates source expressions
// against a fresh environment and compares printed results, in the style of
// a repl transcript.
package wisptest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/wisp-lang/wisp/lisp"
	"github.com/wisp-lang/wisp/parser"
)

// TestSuite is a set of named test sequences.
type TestSuite []TestDef

// TestDef binds a name to a sequence of expressions sharing one
// environment.
type TestDef struct {
	Name  string
	Tests TestSequence
}

// TestSequence is a sequence of expressions evaluated in order against a
// single environment.  Result is the readable rendering of the expression's
// value ("error: ..." for failures) and Output is the text the expression
// writes to stdout.
type TestSequence []TestLine

// TestLine is one expression in a TestSequence.
type TestLine struct {
	Expr   string
	Result string
	Output string
}

// Runner evaluates test suites.
type Runner struct {
	// Config supplies additional environment configuration applied after
	// the runner's own reader and output capture.
	Config []lisp.Config
}

// NewEnv returns a root environment with driver bindings installed and
// printed output directed at w.
func (r *Runner) NewEnv(w *bytes.Buffer) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config := append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(w),
	}, r.Config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize environment: %v", lisp.GoError(lerr))
	}
	lerr = lisp.InitializeDriverEnv(env, nil)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize driver bindings: %v", lisp.GoError(lerr))
	}
	return env, nil
}

// RunTestSuite runs every sequence in the suite, each against a fresh
// environment.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			r.runTestSequence(t, test.Tests)
		})
	}
}

func (r *Runner) runTestSequence(t *testing.T, seq TestSequence) {
	var out bytes.Buffer
	env, err := r.NewEnv(&out)
	if err != nil {
		t.Fatal(err)
	}
	for i, line := range seq {
		forms, complete, err := parser.Parse([]byte(line.Expr))
		if err != nil {
			t.Errorf("expr %d: parse error: %v", i, err)
			continue
		}
		if !complete {
			t.Errorf("expr %d: incomplete expression: %s", i, line.Expr)
			continue
		}
		result := "nil"
		for _, form := range forms {
			v := env.Eval(form)
			if v.Type == lisp.LError {
				result = fmt.Sprintf("error: %s", lisp.GoError(v))
				break
			}
			result = lisp.PrintString(v, true)
		}
		if result != line.Result {
			t.Errorf("expr %d: %s\n\tresult: %s\n\texpect: %s", i, line.Expr, result, line.Result)
		}
		if out.String() != line.Output {
			t.Errorf("expr %d: %s\n\toutput: %q\n\texpect: %q", i, line.Expr, out.String(), line.Output)
		}
		out.Reset()
	}
}
