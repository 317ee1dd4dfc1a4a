// Package config hosts the analyzer's tuning knobs: a small set of non-user-configurable
// development constants (this file), plus a flag-driven Config (config.go) for the knobs a
// caller legitimately wants to set per run.
package config

// This file hosts non-user-configurable parameters --- these are for development and testing
// purposes only.

// SolverRoundLimit bounds the number of outer iterations package solve's forward-chaining loop
// will run before logging a warning and returning whatever it has. Spec §4.3 / §9 already prove
// termination by strict shrinkage of the remaining keys/conditions on every iteration that makes
// progress, so this is purely a defensive belt-and-suspenders cap (adapted from the teacher's
// StableRoundLimit, which bounds a genuinely heuristic backpropagation loop) — for a well-formed
// Deps it is never reached. It is sized generously relative to any realistic whole-program
// argument count.
const SolverRoundLimit = 100000

// DefaultConcurrency is the worker-pool width graph.Build uses when the caller does not specify
// one: 1, i.e. the single-threaded default spec §5 describes.
const DefaultConcurrency = 1

// EntryPointNamespace and EntryPointName give the conventional entry point, Main.main (spec §6).
const (
	EntryPointNamespace = "Main"
	EntryPointName      = "main"
)
