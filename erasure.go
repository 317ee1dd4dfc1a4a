// Package erasure implements the top-level analyzer that coordinates the whole-program usage
// (erasure) analysis: it retrieves the conditional dependency graph from the builder, solves it to
// a minimal used-node set, projects that into reachable symbols and used-argument indices, checks
// accessibility, and writes the result back into the caller's call-graph table.
package erasure

import (
	"sort"

	"github.com/lucent-lang/erasure/config"
	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/graph"
	"github.com/lucent-lang/erasure/ir"
	"github.com/lucent-lang/erasure/postulate"
	"github.com/lucent-lang/erasure/project"
	"github.com/lucent-lang/erasure/solve"
	"github.com/lucent-lang/erasure/util/result"
)

// Analyze runs the whole-program usage analysis described in spec §2 ("Data flow") end to end:
//
//	(symbol table + entry point) → builder → conditional graph → solver → node set
//	  → projection → (reachable set, used-argument map) → written back to symbol table
//
// ctx is the whole-program symbol table, entry the conventional entry point (config.EntryPoint*),
// classes the class-dictionary table, primitives the builtin primitive table, inaccessible the
// per-symbol statically-inaccessible argument indices recorded by an earlier pass, and callGraph
// the sink Analyze writes used-argument results into. It never panics: any internal panic is
// recovered and surfaced as a diagnostic.Error of kind Internal (spec §7).
func Analyze(
	ctx *ir.Context,
	entry ir.Name,
	classes ir.ClassTable,
	primitives ir.PrimitiveTable,
	inaccessible ir.OptimizationAnnotations,
	callGraph ir.CallGraphTable,
	cfg *config.Config,
) ([]ir.Name, error) {
	r := result.Run(func() ([]ir.Name, error) {
		return analyze(ctx, entry, classes, primitives, inaccessible, callGraph, cfg)
	})
	return r.Res, r.Err
}

func analyze(
	ctx *ir.Context,
	entry ir.Name,
	classes ir.ClassTable,
	primitives ir.PrimitiveTable,
	inaccessible ir.OptimizationAnnotations,
	callGraph ir.CallGraphTable,
	cfg *config.Config,
) ([]ir.Name, error) {
	// Special case — no entry point: spec §6, "If main is absent, return the empty list without
	// analysis (the translation unit is not being linked)." An ambiguous entry, by contrast, is a
	// genuine malformed-program error and falls through to the ordinary Resolve handling below.
	if _, res := ctx.Resolve(entry); res == ir.Unknown {
		return nil, nil
	}

	logger := diagnostic.NewLogger(cfg.Verbosity, nil)

	builder := graph.NewBuilder(ctx, classes, graph.WithConcurrency(cfg.Concurrency))
	deps, visited, err := builder.Build(entry)
	if err != nil {
		return nil, err
	}

	deps.Merge(postulate.Seed(entry, visited, primitives))

	used, residual := solve.Solve(deps, logger)
	logger.Residual(func() []string { return fmtResidual(residual) })

	reachable, usedArgs := project.Project(used)
	logger.Reachable(reachable)
	logger.UsageMap(usedArgs)

	if err := project.CheckAccessibility(usedArgs, inaccessible); err != nil {
		return nil, err
	}

	for _, name := range reachable {
		callGraph.Record(name, usedArgs[name])
	}

	return reachable, nil
}

// fmtResidual renders residual in the deterministic order graph.Deps.SortedConds gives, one line
// per condition, for level-5 logging (spec §6).
func fmtResidual(residual *graph.Deps) []string {
	conds := residual.SortedConds()
	lines := make([]string, 0, len(conds))
	for _, cond := range conds {
		nodes, _ := residual.Get(cond)
		lines = append(lines, fmtEntry(cond, nodes))
	}
	return lines
}

func fmtEntry(cond graph.Cond, nodes graph.NodeSet) string {
	condItems := cond.Items()
	nodeItems := nodes.Items()
	sort.Slice(condItems, func(i, j int) bool { return condItems[i].Less(condItems[j]) })
	sort.Slice(nodeItems, func(i, j int) bool { return nodeItems[i].Less(nodeItems[j]) })
	return renderNodes(condItems) + " -> " + renderNodes(nodeItems)
}

func renderNodes(nodes []graph.Node) string {
	if len(nodes) == 0 {
		return "{}"
	}
	out := "{"
	for i, n := range nodes {
		if i > 0 {
			out += ", "
		}
		out += n.String()
	}
	return out + "}"
}
