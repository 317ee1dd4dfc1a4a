package project

import (
	"sort"

	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/ir"
)

// CheckAccessibility implements spec §4.5: for every symbol with used argument indices, it
// intersects those indices with the inaccessible set an earlier compiler pass recorded for that
// symbol. Any non-empty intersection is a hard error reporting the offending indices; the symbols
// are checked in a deterministic order so that, if more than one symbol has a violation, the
// reported error is reproducible across runs.
func CheckAccessibility(used map[ir.Name][]int, inaccessible ir.OptimizationAnnotations) error {
	names := make([]ir.Name, 0, len(used))
	for n := range used {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })

	for _, name := range names {
		bad := intersect(used[name], inaccessible[name])
		if len(bad) > 0 {
			return diagnostic.Inaccessible(name, bad)
		}
	}
	return nil
}

// intersect returns the sorted, ascending intersection of usedIdx and inaccessibleIdx.
func intersect(usedIdx, inaccessibleIdx []int) []int {
	if len(inaccessibleIdx) == 0 {
		return nil
	}
	blocked := make(map[int]bool, len(inaccessibleIdx))
	for _, i := range inaccessibleIdx {
		blocked[i] = true
	}
	var out []int
	for _, i := range usedIdx {
		if blocked[i] {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
