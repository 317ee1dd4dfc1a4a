package cmd

import (
	"os"

	"github.com/lucent-lang/erasure/ir"
	"github.com/lucent-lang/erasure/store"
)

// usedFromCallGraph reads back the ascending used-argument-index lists Analyze wrote into cg for
// every reachable symbol.
func usedFromCallGraph(reachable []ir.Name, cg ir.CallGraphTable) map[ir.Name][]int {
	out := make(map[ir.Name][]int, len(reachable))
	for _, n := range reachable {
		if entry, ok := cg[n]; ok {
			out[n] = entry.UsedArgs
		}
	}
	return out
}

// writeCache persists a compressed snapshot of the analysis result to path (see package store).
func writeCache(path string, reachable []ir.Name, cg ir.CallGraphTable) error {
	snap := store.NewSnapshot(reachable, usedFromCallGraph(reachable, cg))
	data, err := store.Encode(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
