// Package repl implements the interactive driver: it reads lines, parses
// them, evaluates against a persistent root environment, and prints results.
// Evaluation errors are reported and the loop continues.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/wisp-lang/wisp/lisp"
	"github.com/wisp-lang/wisp/parser"
)

// Run runs a repl against env until end of input.  Incomplete expressions
// continue onto the next line under an indented prompt; an interrupt
// discards the buffered input.
func Run(prompt string, env *lisp.LEnv) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		forms, complete, err := parser.Parse(line)
		if err != nil {
			errln(err)
			continue
		}
		if !complete {
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
			continue
		}
		for _, form := range forms {
			v := env.Eval(form)
			if v.Type == lisp.LError {
				errf("error: %s\n", lisp.GoError(v))
				break
			}
			fmt.Println(lisp.PrintString(v, true))
		}
	}
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
