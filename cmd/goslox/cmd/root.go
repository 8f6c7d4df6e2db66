package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags), grounded on the teacher's
// cmd/dwscript/cmd/root.go version-variable pattern.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var (
	dumpAST bool
	trace   bool
)

// rootCmd implements spec §6's CLI contract directly: `goslox [script]` with
// no script enters the REPL, one script argument runs it, and more than one
// argument is a usage error. Cobra's Args hook can only check arity, so the
// "more than one argument" usage message (stdout, exit 1) is produced
// explicitly inside runRoot rather than via cobra.ExactArgs.
var rootCmd = &cobra.Command{
	Use:     "goslox [script]",
	Short:   "Interpreter for the Language",
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
}

func init() {
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the resolved AST before executing")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "trace user-function calls to stderr")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI, returning an error only to signal a non-zero exit;
// the error text itself is never printed (runRoot already wrote any
// diagnostics in the format spec §6/§7 mandates).
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func runRoot(c *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Println("Usage: goslox [script]")
		return errUsage
	}

	opts := runOptions{DumpAST: dumpAST, Trace: trace}

	if len(args) == 1 {
		return runFile(args[0], opts)
	}
	return runREPL(opts)
}

// errUsage is a sentinel; Execute only cares that it's non-nil so main can
// exit 1 without double-printing a message cobra would otherwise add.
var errUsage = fmt.Errorf("usage error")
