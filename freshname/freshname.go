// Package freshname generates the synthetic variables eta-expansion needs (spec §4.2: "the
// builder synthesizes a fresh variable eta_i"). It is adapted from the teacher's nonce generator
// (guard.NonceGenerator), which mints unique tokens tied to an originating AST node; here the
// token is tied to the function being eta-expanded and the parameter index instead.
package freshname

import (
	"strconv"
	"sync/atomic"

	"github.com/lucent-lang/erasure/ir"
)

// Generator mints fresh machine-generated Names. Each name's text records the enclosing function
// and the parameter index it stands in for, and its tag comes from a counter shared by every call
// on the Generator, so no two calls ever return the same Name. The counter is atomic, so one
// Generator may be used from several goroutines at once (as graph.Builder does when it analyzes
// definitions concurrently).
type Generator struct {
	// tag is bumped on every call so that repeated eta-expansions of the same function (e.g.
	// across re-entrant analysis in tests) never collide.
	tag atomic.Int64
}

// NewGenerator returns a Generator ready to mint fresh names.
func NewGenerator() *Generator {
	return &Generator{}
}

// Eta returns the fresh variable name synthesized for parameter index i of fn during eta
// expansion.
func (g *Generator) Eta(fn ir.Name, i int) ir.Name {
	tag := g.tag.Add(1)
	return ir.MachineName(int(tag), fn.String()+".eta"+strconv.Itoa(i))
}
