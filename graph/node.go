// Package graph implements the conditional dependency graph builder: a whole-program traversal
// that, starting from the entry symbol, walks each definition's case tree and emits conditional
// dependency edges gated by conjunctions of "argument position is used" assumptions (spec §4.2).
// This is the hard part of the analyzer.
package graph

import (
	"fmt"

	"github.com/lucent-lang/erasure/ir"
)

// ArgPos identifies an argument position: either a concrete index or the distinguished Result
// tag (spec §3, "Argument position").
type ArgPos struct {
	// isResult is true for the distinguished Result tag, in which case Index is meaningless.
	isResult bool
	Index    int
}

// Arg builds the node tag for argument position i.
func Arg(i int) ArgPos { return ArgPos{Index: i} }

// Result is the distinguished tag meaning "the result of this symbol is demanded".
var Result = ArgPos{isResult: true}

// IsResult reports whether a is the distinguished Result tag.
func (a ArgPos) IsResult() bool { return a.isResult }

func (a ArgPos) String() string {
	if a.isResult {
		return "Result"
	}
	return fmt.Sprintf("Arg %d", a.Index)
}

// Node is a symbol paired with an argument position or the result tag: (f, Arg i) means
// "argument i of f is used", (f, Result) means "the result of f is demanded" (spec §3).
type Node struct {
	Sym Name
	Pos ArgPos
}

// Name is a local alias for ir.Name, spelled out so this package's public surface does not force
// every caller to also import ir for the common case of constructing a Node.
type Name = ir.Name

// NewNode builds the node (sym, pos).
func NewNode(sym Name, pos ArgPos) Node { return Node{Sym: sym, Pos: pos} }

func (n Node) String() string { return fmt.Sprintf("(%s, %s)", n.Sym, n.Pos) }

// Less gives Node a total order derived from Name's, so node sets can be iterated and hashed
// deterministically (see util/nodeset).
func (n Node) Less(other Node) bool {
	if n.Sym != other.Sym {
		return n.Sym.Less(other.Sym)
	}
	if n.Pos.isResult != other.Pos.isResult {
		return !n.Pos.isResult
	}
	return n.Pos.Index < other.Pos.Index
}
