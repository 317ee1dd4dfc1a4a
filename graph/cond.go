package graph

import "github.com/lucent-lang/erasure/util/nodeset"

// NodeSet is a deterministic set of Nodes, used both for Cond (a conjunction of assumptions) and
// for the conclusion side of a Deps entry.
type NodeSet = nodeset.Set[Node]

func nodeLess(a, b Node) bool { return a.Less(b) }

// EmptyNodeSet returns the empty NodeSet.
func EmptyNodeSet() NodeSet { return nodeset.New[Node](nodeLess) }

// NodesOf builds a NodeSet from the given nodes.
func NodesOf(nodes ...Node) NodeSet { return nodeset.Of[Node](nodeLess, nodes...) }

// Cond is a finite set of Nodes, interpreted as a conjunction of elementary assumptions (spec
// §3). The empty Cond is `true`.
type Cond = NodeSet

// TrueCond is the always-satisfied condition (the empty set).
func TrueCond() Cond { return EmptyNodeSet() }

// CondOf builds a Cond from the given nodes.
func CondOf(nodes ...Node) Cond { return NodesOf(nodes...) }
