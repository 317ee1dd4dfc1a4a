// Package postulate seeds the dependency graph with edges that cannot be derived from the
// program text alone: the entry point, the I/O runner, a handful of builtin constructors and
// primitives, and every other primitive the program actually references (spec §4.1).
package postulate

import (
	"github.com/lucent-lang/erasure/graph"
	"github.com/lucent-lang/erasure/ir"
)

// Names of the small, fixed set of builtins spec §4.1 calls out individually.
var (
	ioRunner  = ir.UserName("", "run__IO")
	mkPair    = ir.UserName("", "__MkPair")
	primFork  = ir.UserName("", "prim_fork")
	believeMe = ir.UserName("", "prim__believe_me")
)

// Seed returns the unconditional postulated edges for entry and for the builtins the program
// references, using referenced to decide which of the caller-supplied primitives are actually
// reachable (spec §4.1: "The set of primitives considered is the intersection of the language's
// builtin primitive table with the names actually referenced from the program."). referenced is
// typically the visited-name set produced by graph.Build.
func Seed(entry ir.Name, referenced map[ir.Name]bool, primitives ir.PrimitiveTable) *graph.Deps {
	deps := graph.NewDeps()
	trueCond := graph.TrueCond()

	// The entry point's result is always demanded.
	deps.AddNode(trueCond, graph.NewNode(entry, graph.Result))

	// The I/O runner: its result and its argument 0 are always used.
	if referenced[ioRunner] {
		deps.Add(trueCond, graph.NodesOf(
			graph.NewNode(ioRunner, graph.Result),
			graph.NewNode(ioRunner, graph.Arg(0)),
		))
	}

	// The builtin pair constructor: both fields are always used.
	if referenced[mkPair] {
		deps.Add(trueCond, graph.NodesOf(
			graph.NewNode(mkPair, graph.Arg(0)),
			graph.NewNode(mkPair, graph.Arg(1)),
		))
	}

	// The fork primitive: only its argument 0 (the forked action) is used.
	if referenced[primFork] {
		deps.AddNode(trueCond, graph.NewNode(primFork, graph.Arg(0)))
	}

	// The non-strict coercion primitive: only argument 2 is used at runtime; arguments 0 and 1
	// are erasable type witnesses.
	if referenced[believeMe] {
		deps.AddNode(trueCond, graph.NewNode(believeMe, graph.Arg(2)))
	}

	// Every other reachable primitive: all of its declared argument positions are used. The
	// special-cased builtins above are excluded since they have bespoke (sparser) usage, even if
	// they also happen to appear in the primitives table.
	for name, arity := range primitives {
		if name == ioRunner || name == mkPair || name == primFork || name == believeMe {
			continue
		}
		if !referenced[name] {
			continue
		}
		for i := 0; i < arity; i++ {
			deps.AddNode(trueCond, graph.NewNode(name, graph.Arg(i)))
		}
	}

	return deps
}
