// Package cmd implements the erasure command-line driver: it reads a whole program off disk in a
// small JSON wire format, runs the usage (erasure) analyzer over it, and prints the result.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "erasure",
	Short: "Whole-program usage (erasure) analyzer",
	Long: `erasure decides, for every top-level function and data constructor in a whole program,
which argument positions are used at runtime and which symbols are reachable from the program's
entry point, so a downstream code generator can erase the rest.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+msg+"\n", args...)
	os.Exit(1)
}
