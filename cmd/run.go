package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wisp-lang/wisp/lisp"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] file...",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runExpression {
			env, err := newRootEnv(nil)
			if err != nil {
				return err
			}
			for _, expr := range args {
				v := env.LoadString("command-line", expr)
				if v.Type == lisp.LError {
					return errors.New(lisp.GoError(v).Error())
				}
				if runPrint {
					fmt.Println(lisp.PrintString(v, true))
				}
			}
			return nil
		}
		return runFile(args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
