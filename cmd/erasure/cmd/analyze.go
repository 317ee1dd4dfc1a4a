package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucent-lang/erasure"
	"github.com/lucent-lang/erasure/config"
)

var (
	_verbosity   int
	_concurrency int
	_format      string
	_cachePath   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [program.json]",
	Short: "Run the usage analyzer over a whole-program JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&_verbosity, "v", "v", 0, "log verbosity: 3=reachable names, 4=usage map, 5=residual edges")
	analyzeCmd.Flags().IntVar(&_concurrency, "concurrency", config.DefaultConcurrency, "number of definitions to analyze concurrently (1 = single-threaded)")
	analyzeCmd.Flags().StringVar(&_format, "format", "json", "output format: json or yaml")
	analyzeCmd.Flags().StringVar(&_cachePath, "cache", "", "write a compressed snapshot of the result (see package store) to this path")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var wp wireProgram
	if err := json.Unmarshal(raw, &wp); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	p, err := wp.decode()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	cfg := config.New()
	cfg.Verbosity = _verbosity
	cfg.Concurrency = _concurrency

	reachable, err := erasure.Analyze(p.ctx, p.entry, p.classes, p.primitives, p.inaccessible, p.callGraph, cfg)
	if err != nil {
		exitWithError("%v", err)
	}

	if _cachePath != "" {
		if err := writeCache(_cachePath, reachable, p.callGraph); err != nil {
			return fmt.Errorf("writing cache %s: %w", _cachePath, err)
		}
	}

	return writeReport(os.Stdout, buildReport(reachable, usedFromCallGraph(reachable, p.callGraph)), _format)
}
