package graph_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lucent-lang/erasure/graph"
	"github.com/lucent-lang/erasure/ir"
	"github.com/lucent-lang/erasure/solve"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestBuildConcurrentMatchesSequential exercises the bounded worker-pool path (WithConcurrency >
// 1) against a frontier wide enough to need more than one batch, and checks its result against the
// sequential default (WithConcurrency not set). All fanN leaves share the same target, so a
// concurrent merge race would show up as a missing edge.
func TestBuildConcurrentMatchesSequential(t *testing.T) {
	const fanN = 12

	build := func(concurrency int) graph.NodeSet {
		main := ir.UserName("Main", "main")
		target := ir.UserName("", "Target")

		ctx := ir.NewContext()
		ctx.Declare(target, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})

		var args []ir.Term
		for i := 0; i < fanN; i++ {
			leaf := ir.UserName("fan", fmt.Sprintf("leaf%d", i))
			ctx.Declare(leaf, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
				Arity: 0,
				Tree:  ir.TermLeaf{Body: ir.App{Head: ir.Ref{Name: target}}},
			}})
			args = append(args, ir.App{Head: ir.Ref{Name: leaf}})
		}
		ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
			Arity: 0,
			Tree:  ir.TermLeaf{Body: ir.App{Head: ir.Ref{Name: target}, Args: args}},
		}})

		b := graph.NewBuilder(ctx, nil, graph.WithConcurrency(concurrency))
		deps, _, err := b.Build(main)
		require.NoError(t, err)

		deps.AddNode(graph.TrueCond(), graph.NewNode(main, graph.Result))
		used, _ := solve.Solve(deps, nil)
		return used
	}

	seq := build(1)
	conc := build(8)

	require.True(t, seq.Equal(conc))
	require.Greater(t, seq.Len(), 0)
}
