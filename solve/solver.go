// Package solve implements the fixed-point forward-chaining solver of spec §4.3: it consumes the
// conditional dependency graph the builder produces and extracts the minimal set of (symbol,
// argument/result) nodes that must be considered used if the entry point is used.
package solve

import (
	"github.com/lucent-lang/erasure/config"
	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/graph"
)

// Solve runs the forward-chaining algorithm of spec §4.3 to completion (or until the defensive
// round cap in config.SolverRoundLimit is hit — which a well-formed Deps never reaches, since the
// algorithm's own termination argument is by strict shrinkage of the remaining keys/conditions).
// It returns the minimal node set U implied by the empty condition, and the residual Deps: edges
// whose condition never fully discharged, kept around purely for level-5 debugging output (spec
// §6, "Logging").
//
//	repeat
//	  let T = deps[∅]            — nodes that are unconditionally used
//	  if T is absent: stop
//	  U := U ∪ T
//	  deps := deps with key ∅ removed, then
//	          for each remaining key C: rekey as (C ∖ T)    — unioning values on collisions
//	until no more progress
func Solve(deps *graph.Deps, logger *diagnostic.Logger) (graph.NodeSet, *graph.Deps) {
	working := deps.Clone()
	used := graph.EmptyNodeSet()
	trueCond := graph.TrueCond()

	for rounds := 0; ; rounds++ {
		discharged, ok := working.Get(trueCond)
		if !ok {
			break
		}
		used = used.Union(discharged)
		working.Delete(trueCond)
		working = rekey(working, discharged)

		if rounds+1 >= config.SolverRoundLimit {
			if logger != nil {
				logger.SolverRoundLimitExceeded(rounds + 1)
			}
			break
		}
	}

	return used, working
}

// rekey returns a new Deps with every entry's condition reduced by discharged (set difference),
// re-merging by set union wherever two conditions collapse onto the same reduced key. This is the
// "deps := ... for each remaining key C: rekey as (C ∖ T)" step of the algorithm; it must build a
// fresh Deps rather than mutate in place because a Cond's canonical key changes when the Cond
// itself changes.
func rekey(d *graph.Deps, discharged graph.NodeSet) *graph.Deps {
	out := graph.NewDeps()
	d.Range(func(cond graph.Cond, nodes graph.NodeSet) bool {
		out.Add(cond.Diff(discharged), nodes)
		return true
	})
	return out
}
