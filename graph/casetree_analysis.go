package graph

import (
	"fmt"

	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/ir"
)

// walker carries the state that is fixed for the whole traversal of a single definition: the
// symbol table and class table (read-only, whole-program), the definition currently being
// analyzed (fn), and the eta variables synthesized for it (spec §4.2, "Eta expansion"). Vars and
// the de Bruijn stack, by contrast, are scoped to a sub-term and threaded explicitly.
type walker struct {
	ctx     *ir.Context
	classes ir.ClassTable
	fn      ir.Name
	es      []ir.Name
}

// sc analyzes a case tree under vs, dispatching on its shape (spec §4.2, "Case-tree analysis").
func (w *walker) sc(vs Vars, tree ir.CaseTree) (*Deps, error) {
	switch t := tree.(type) {
	case ir.ImpossibleTree:
		return NewDeps(), nil
	case ir.UnmatchedTree:
		return NewDeps(), nil
	case ir.TermLeaf:
		term := etaExpand(w.es, t.Body)
		cd := CondOf(NewNode(w.fn, Result))
		return w.term(vs, nil, cd, term)
	case ir.CaseVar:
		return w.caseVar(vs, t)
	case ir.ProjectionCase:
		return nil, diagnostic.Unsupported(w.fn, "projection-case alternative")
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown case-tree shape %T", tree))
	}
}

// caseVar implements spec §4.2's "Case on variable x" rule: scrutinizing x makes x used, but only
// when fn's result is used, and each alternative recurses under a refined Vars environment.
func (w *walker) caseVar(vs Vars, cv ir.CaseVar) (*Deps, error) {
	casedVar, ok := vs.Lookup(cv.Var)
	if !ok {
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("case scrutinee %s is not bound", cv.Var))
	}

	deps := NewDeps()
	deps.Add(CondOf(NewNode(w.fn, Result)), casedVar)

	for _, alt := range cv.Alts {
		altVs, err := w.refine(vs, casedVar, alt)
		if err != nil {
			return nil, err
		}
		sub, err := w.sc(altVs, alt.Body)
		if err != nil {
			return nil, err
		}
		deps.Merge(sub)
	}
	return deps, nil
}

// refine computes the Vars environment an alternative's body is analyzed under, per spec §4.2's
// "Alternative handling" table.
func (w *walker) refine(vs Vars, casedVar NodeSet, alt ir.Alt) (Vars, error) {
	switch alt.Kind {
	case ir.AltConst, ir.AltDefault:
		return vs, nil
	case ir.AltSucc:
		if len(alt.Vars) != 1 {
			return nil, diagnostic.Unsupported(w.fn, "successor alternative without exactly one bound variable")
		}
		return vs.With(alt.Vars[0], casedVar), nil
	case ir.AltConstructor:
		out := vs
		for j, nj := range alt.Vars {
			out = out.With(nj, casedVar.Union(NodesOf(NewNode(alt.Ctor, Arg(j)))))
		}
		return out, nil
	case ir.AltFunction:
		return nil, diagnostic.Unsupported(w.fn, "function-case alternative")
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown alternative kind %d", alt.Kind))
	}
}

// etaExpand applies t to references to each of es in order, equivalent to appending eta_i
// arguments at every leaf term (spec §4.2, "Eta expansion"). A nil/empty es is a no-op.
func etaExpand(es []ir.Name, t ir.Term) ir.Term {
	if len(es) == 0 {
		return t
	}
	extra := make([]ir.Term, len(es))
	for i, e := range es {
		extra[i] = ir.Ref{Name: e}
	}
	if app, ok := t.(ir.App); ok {
		args := make([]ir.Term, 0, len(app.Args)+len(extra))
		args = append(args, app.Args...)
		args = append(args, extra...)
		return ir.App{Head: app.Head, Args: args}
	}
	return ir.App{Head: t, Args: extra}
}
