package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucent-lang/erasure/ir"
)

// TestLetBinderThreadsThroughBoundVar exercises the de Bruijn thunk stack directly: a case-tree
// leaf that lets a name stand for one parameter and then refers to it only through a BoundVar
// index, never by name. Only the let-bound parameter (y) should end up used; x is never
// referenced at all.
func TestLetBinderThreadsThroughBoundVar(t *testing.T) {
	t.Parallel()

	main := ir.UserName("Main", "main")
	f := ir.UserName("", "f")
	x, y := ir.UserName("", "x"), ir.UserName("", "y")

	ctx := ir.NewContext()
	ctx.Declare(f, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity:       2,
		BoundParams: []ir.Name{x, y},
		Tree: ir.TermLeaf{Body: ir.Bind{
			Kind:  ir.LetStrict,
			Name:  ir.UserName("", "tmp"),
			Value: ir.Ref{Name: y},
			Body:  ir.BoundVar{Index: 0},
		}},
	}})
	ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Ref{Name: f},
			Args: []ir.Term{ir.Const{Repr: "1"}, ir.Const{Repr: "2"}},
		}},
	}})

	used, _ := analyzeProgram(t, ctx, nil, nil, main)

	require.Equal(t, []int{1}, usedArgs(used, f))
}

// TestPartialEtaCaseOpUsesSyntheticTrailingParam exercises a CaseOp whose declared Arity exceeds
// len(BoundParams): the builder must synthesize an eta variable for the unbound trailing
// parameter and eta-expand the leaf body with it, so that applying the leaf's own bound parameter
// to the synthetic argument marks both positions used.
func TestPartialEtaCaseOpUsesSyntheticTrailingParam(t *testing.T) {
	t.Parallel()

	main := ir.UserName("Main", "main")
	apply := ir.UserName("", "apply")
	p := ir.UserName("", "p")

	ctx := ir.NewContext()
	ctx.Declare(apply, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity:       2,
		BoundParams: []ir.Name{p}, // only position 0 is bound; position 1 is left to eta expansion.
		Tree:        ir.TermLeaf{Body: ir.Ref{Name: p}},
	}})
	ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Ref{Name: apply},
			Args: []ir.Term{ir.Const{Repr: "1"}, ir.Const{Repr: "2"}},
		}},
	}})

	used, _ := analyzeProgram(t, ctx, nil, nil, main)

	require.ElementsMatch(t, []int{0, 1}, usedArgs(used, apply))
}

// TestAppliedLambdaRewriteGatesOnBoundVarUse checks the "(λn.body) x -> let n = x in body"
// rewrite: the applied argument only becomes reachable when the lambda body actually refers back
// to the bound variable (via BoundVar{0}), confirming the rewrite threads the argument through the
// de Bruijn stack rather than evaluating it eagerly.
func TestAppliedLambdaRewriteGatesOnBoundVarUse(t *testing.T) {
	t.Parallel()

	build := func(body ir.Term) (used func(ir.Name) bool) {
		main := ir.UserName("Main", "main")
		ctorA := ir.UserName("", "CtorA")

		ctx := ir.NewContext()
		ctx.Declare(ctorA, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
		ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
			Arity: 0,
			Tree: ir.TermLeaf{Body: ir.App{
				Head: ir.Bind{Kind: ir.Lambda, Name: ir.UserName("", "z"), Body: body},
				Args: []ir.Term{ir.App{Head: ir.Ref{Name: ctorA}}},
			}},
		}})

		u, _ := analyzeProgram(t, ctx, nil, nil, main)
		return func(n ir.Name) bool {
			for _, name := range reachableNames(u) {
				if name == n {
					return true
				}
			}
			return false
		}
	}

	t.Run("body references the bound variable", func(t *testing.T) {
		t.Parallel()
		isReachable := build(ir.BoundVar{Index: 0})
		require.True(t, isReachable(ir.UserName("", "CtorA")))
	})

	t.Run("body ignores the bound variable", func(t *testing.T) {
		t.Parallel()
		isReachable := build(ir.Const{Repr: "0"})
		require.False(t, isReachable(ir.UserName("", "CtorA")))
	})
}

// TestAppliedLetRewritePropagatesToBothHalves checks the "(let n = t in body) x ->
// let n = t in (body x)" rewrite: applying an applied-let expression pushes the argument into the
// rewritten body, exercising both the let thunk (via the rewritten body's de Bruijn head
// reference) and the unconditional argument analysis for a BoundVar-headed application.
func TestAppliedLetRewritePropagatesToBothHalves(t *testing.T) {
	t.Parallel()

	main := ir.UserName("Main", "main")
	ctorA := ir.UserName("", "CtorA")
	ctorB := ir.UserName("", "CtorB")

	ctx := ir.NewContext()
	ctx.Declare(ctorA, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
	ctx.Declare(ctorB, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
	ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Bind{
				Kind:  ir.LetStrict,
				Name:  ir.UserName("", "n"),
				Value: ir.App{Head: ir.Ref{Name: ctorB}},
				Body:  ir.BoundVar{Index: 0},
			},
			Args: []ir.Term{ir.App{Head: ir.Ref{Name: ctorA}}},
		}},
	}})

	used, _ := analyzeProgram(t, ctx, nil, nil, main)

	reachable := reachableNames(used)
	require.Contains(t, reachable, ctorA)
	require.Contains(t, reachable, ctorB)
}

// TestAppliedClassProjectionRule covers the class-dictionary-instance-projection rule: applying a
// class member projection (Proj{Target: Ref{cls}, Field: i}) to arguments must emit both
// (DictCtor, Arg i) and (cls, Result), per DESIGN.md's resolution that "n" in the rule names the
// class, not the projection's field.
func TestAppliedClassProjectionRule(t *testing.T) {
	t.Parallel()

	main := ir.UserName("Main", "main")
	cls := ir.UserName("", "Eq")
	dictCtor := ir.UserName("", "MkEqDict")
	arg := ir.UserName("", "Payload")

	classes := ir.ClassTable{cls: dictCtor}

	ctx := ir.NewContext()
	ctx.Declare(cls, ir.Def{Kind: ir.KindTyDecl})
	ctx.Declare(dictCtor, ir.Def{Kind: ir.KindDataConstructor, DataArity: 2})
	ctx.Declare(arg, ir.Def{Kind: ir.KindDataConstructor, DataArity: 0})
	ctx.Declare(main, ir.Def{Kind: ir.KindCaseOp, CaseOp: &ir.CaseOp{
		Arity: 0,
		Tree: ir.TermLeaf{Body: ir.App{
			Head: ir.Proj{Target: ir.Ref{Name: cls}, Field: 1},
			Args: []ir.Term{ir.App{Head: ir.Ref{Name: arg}}},
		}},
	}})

	used, _ := analyzeProgram(t, ctx, classes, nil, main)

	require.Equal(t, []int{1}, usedArgs(used, dictCtor))
	require.Contains(t, reachableNames(used), cls)
	require.Contains(t, reachableNames(used), arg)
}
