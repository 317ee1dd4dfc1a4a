package config

import "flag"

// Config carries the knobs a caller may legitimately set per analyzer invocation. It is built
// around a flag.FlagSet in the idiom the teacher's own top-level driver uses to lift an
// analyzer's flags to the command line (see cmd/erasure, which registers these same flags on a
// Cobra command).
type Config struct {
	Flags *flag.FlagSet

	// Verbosity gates the leveled logging described in spec §6: 3 reachable names, 4 minimal
	// usage map, 5 residual dependency edges.
	Verbosity int
	// Concurrency is the worker-pool width graph.Build uses to analyze independent definitions
	// concurrently (spec §5, "permissible optimization"). 1 disables concurrency.
	Concurrency int
}

// New returns a Config with its flags registered but not yet parsed, and DefaultConcurrency /
// verbosity 0 as defaults.
func New() *Config {
	c := &Config{Flags: flag.NewFlagSet("erasure", flag.ContinueOnError)}
	c.Flags.IntVar(&c.Verbosity, "v", 0, "log verbosity: 3=reachable names, 4=usage map, 5=residual edges")
	c.Flags.IntVar(&c.Concurrency, "concurrency", DefaultConcurrency, "number of definitions to analyze concurrently (1 = single-threaded)")
	return c
}

// Parse parses args into c's flags.
func (c *Config) Parse(args []string) error {
	return c.Flags.Parse(args)
}
