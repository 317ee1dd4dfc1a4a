package erasure_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucent-lang/erasure"
	"github.com/lucent-lang/erasure/config"
	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/ir"
)

func newConfig() *config.Config {
	cfg := config.New()
	return cfg
}

// TestAnalyzeNoEntryPoint is spec §6's special case: if Main.main is absent, Analyze returns the
// empty list without error (the translation unit is not being linked).
func TestAnalyzeNoEntryPoint(t *testing.T) {
	ctx := ir.NewContext()
	entry := ir.EntryPoint()

	reachable, err := erasure.Analyze(ctx, entry, nil, nil, nil, ir.CallGraphTable{}, newConfig())

	require.NoError(t, err)
	require.Empty(t, reachable)
}

// TestAnalyzeIdentity is spec scenario 2 run through the full pipeline: id x = x; main = id 0.
func TestAnalyzeIdentity(t *testing.T) {
	entry := ir.EntryPoint()
	id := ir.UserName("", "id")
	z := ir.UserName("", "Z")

	ctx := ir.NewContext()
	ctx.Declare(z, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
	ctx.Declare(id, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity:       1,
		BoundParams: []ir.Name{ir.UserName("", "x")},
		Tree:        ir.TermLeaf{Body: ir.Ref{Name: ir.UserName("", "x")}},
	}})
	ctx.Declare(entry, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Ref{Name: id},
			Args: []ir.Term{ir.App{Head: ir.Ref{Name: z}}},
		}},
	}})

	callGraph := ir.CallGraphTable{}
	reachable, err := erasure.Analyze(ctx, entry, nil, nil, nil, callGraph, newConfig())
	require.NoError(t, err)

	require.ElementsMatch(t, []ir.Name{entry, id, z}, reachable)
	require.Equal(t, []int{0}, callGraph[id].UsedArgs)
}

// TestAnalyzeUnknownReferenceIsFatal covers spec §7's "Unknown reference" error kind surfacing
// all the way out through Analyze.
func TestAnalyzeUnknownReferenceIsFatal(t *testing.T) {
	entry := ir.EntryPoint()
	missing := ir.UserName("", "doesNotExist")

	ctx := ir.NewContext()
	ctx.Declare(entry, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree:  ir.TermLeaf{Body: ir.Ref{Name: missing}},
	}})

	_, err := erasure.Analyze(ctx, entry, nil, nil, nil, ir.CallGraphTable{}, newConfig())
	require.Error(t, err)

	var derr *diagnostic.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, diagnostic.UnknownReference, derr.Kind())
}

// TestAnalyzeAmbiguousEntryIsFatal checks that an ambiguous *entry point* (unlike an absent one)
// is a genuine error, not the empty-program special case.
func TestAnalyzeAmbiguousEntryIsFatal(t *testing.T) {
	entry := ir.EntryPoint()

	ctx := ir.NewContext()
	ctx.Declare(entry, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{Arity: 0, Tree: ir.TermLeaf{Body: ir.Const{Repr: "1"}}}})
	ctx.Declare(entry, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{Arity: 0, Tree: ir.TermLeaf{Body: ir.Const{Repr: "2"}}}})

	_, err := erasure.Analyze(ctx, entry, nil, nil, nil, ir.CallGraphTable{}, newConfig())
	require.Error(t, err)

	var derr *diagnostic.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, diagnostic.AmbiguousReference, derr.Kind())
}

// TestAnalyzeAccessibilityViolation checks that a used-but-statically-inaccessible argument
// position is rejected (spec §4.5).
func TestAnalyzeAccessibilityViolation(t *testing.T) {
	entry := ir.EntryPoint()
	id := ir.UserName("", "id")
	z := ir.UserName("", "Z")

	ctx := ir.NewContext()
	ctx.Declare(z, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
	ctx.Declare(id, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity:       1,
		BoundParams: []ir.Name{ir.UserName("", "x")},
		Tree:        ir.TermLeaf{Body: ir.Ref{Name: ir.UserName("", "x")}},
	}})
	ctx.Declare(entry, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Ref{Name: id},
			Args: []ir.Term{ir.App{Head: ir.Ref{Name: z}}},
		}},
	}})

	inaccessible := ir.OptimizationAnnotations{id: {0}}

	_, err := erasure.Analyze(ctx, entry, nil, nil, inaccessible, ir.CallGraphTable{}, newConfig())
	require.Error(t, err)

	var derr *diagnostic.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, diagnostic.InaccessibleButUsed, derr.Kind())
}
