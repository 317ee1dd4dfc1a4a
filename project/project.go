// Package project converts a solved node set into the two results spec §4.4 describes: the set
// of reachable symbols, and a per-symbol list of used argument indices.
package project

import (
	"sort"

	"github.com/lucent-lang/erasure/graph"
	"github.com/lucent-lang/erasure/ir"
)

// Project partitions u (spec §4.4, "Result projection"):
//   - (n, Result) ∈ u ⇒ n is reachable.
//   - (n, Arg i) ∈ u ⇒ position i of n is used, collected ascending per symbol.
//
// reachable is returned sorted by ir.Name.Less for deterministic output; used maps every symbol
// that has at least one used argument position to its ascending index list (a reachable symbol
// with no Arg nodes simply has no entry).
func Project(u graph.NodeSet) (reachable []ir.Name, used map[ir.Name][]int) {
	reachableSet := make(map[ir.Name]bool)
	used = make(map[ir.Name][]int)

	for _, node := range u.Items() {
		if node.Pos.IsResult() {
			reachableSet[node.Sym] = true
			continue
		}
		used[node.Sym] = append(used[node.Sym], node.Pos.Index)
	}

	for name, indices := range used {
		sort.Ints(indices)
		used[name] = indices
	}

	reachable = make([]ir.Name, 0, len(reachableSet))
	for name := range reachableSet {
		reachable = append(reachable, name)
	}
	sort.Slice(reachable, func(i, j int) bool { return reachable[i].Less(reachable[j]) })

	return reachable, used
}
