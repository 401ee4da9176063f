package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wisp-lang/wisp/lisp"
	"github.com/wisp-lang/wisp/parser"
	"github.com/wisp-lang/wisp/repl"
)

var rootTrace bool

// rootCmd represents the base command.  With no arguments it starts an
// interactive repl; with a file argument it behaves like the run command,
// binding any remaining arguments to *ARGV*.
var rootCmd = &cobra.Command{
	Use:   "wisp [file [args...]]",
	Short: "The wisp interpreter",
	Long: `wisp is a small embeddable lisp.  Without arguments an interactive
repl is started.  With a file argument the file is loaded and any remaining
arguments are bound to *ARGV*.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			env, err := newRootEnv(nil)
			if err != nil {
				return err
			}
			return repl.Run("wisp> ", env)
		}
		return runFile(args[0], args[1:])
	},
}

// Execute runs the root command.  It exits non-zero when evaluation or
// command parsing fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootEnv builds the persistent root environment used by every driver
// mode: the builtin library and bootstrap definitions, the goparsec reader,
// and the driver bindings (eval, load-file, *ARGV*).
func newRootEnv(argv []string) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithTrace(rootTrace),
	)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize environment: %w", lisp.GoError(lerr))
	}
	lerr = lisp.InitializeDriverEnv(env, argv)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize driver bindings: %w", lisp.GoError(lerr))
	}
	return env, nil
}

func runFile(path string, argv []string) error {
	env, err := newRootEnv(argv)
	if err != nil {
		return err
	}
	lerr := env.LoadFile(path)
	if lerr.Type == lisp.LError {
		return errors.New(lisp.GoError(lerr).Error())
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Print evaluated expressions to stderr")
}
