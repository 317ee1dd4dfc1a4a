// Command erasure is the standalone CLI for the whole-program usage (erasure) analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/lucent-lang/erasure/cmd/erasure/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
