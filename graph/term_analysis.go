package graph

import (
	"fmt"

	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/ir"
)

// foreignWrapperNames are the variadic foreign-call builtins that drop their first argument (the
// compile-time-only type spec) and analyze the rest unconditionally (spec §4.2 point 4). Unlike
// the postulate injector's small builtin table, these are recognized purely by name at call
// sites, never seeded unconditionally (spec §4.1: "not seeded here; they are handled at call
// sites").
var foreignWrapperNames = map[ir.Name]bool{
	ir.UserName("", "mkForeign"):         true,
	ir.UserName("", "mkForeignPrim"):     true,
	ir.UserName("", "mkLazyForeignPrim"): true,
}

// term implements getDepsTerm: spec §4.2, "Term analysis".
func (w *walker) term(vs Vars, bs dbStack, cd Cond, t ir.Term) (*Deps, error) {
	switch tt := t.(type) {
	case ir.Ref:
		return w.ref(cd, vs, tt.Name)
	case ir.BoundVar:
		return bs.lookup(tt.Index)(cd)
	case ir.Bind:
		return w.bind(vs, bs, cd, tt)
	case ir.App:
		head, args := flattenApp(tt)
		return w.app(vs, bs, cd, head, args)
	case ir.Proj:
		// A standalone projection outside an application: spec §4.2 point 5, "recurse into t".
		return w.term(vs, bs, cd, tt.Target)
	case ir.Const:
		return NewDeps(), nil
	case ir.TypeUniverse:
		return NewDeps(), nil
	case ir.Erased:
		return NewDeps(), nil
	case ir.ImpossibleTerm:
		return NewDeps(), nil
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown term shape %T", t))
	}
}

// ref implements spec §4.2 point 1, "Local reference to n".
func (w *walker) ref(cd Cond, vs Vars, n ir.Name) (*Deps, error) {
	if deps, ok := vs.Lookup(n); ok {
		d := NewDeps()
		d.Add(cd, deps)
		return d, nil
	}
	if n.IsMachineGenerated() && !n.IsWhitelistedMachineName() {
		return nil, diagnostic.StrayVariable(n)
	}
	d := NewDeps()
	d.AddNode(cd, NewNode(n, Result))
	return d, nil
}

// bind implements spec §4.2 point 3, "Binder".
func (w *walker) bind(vs Vars, bs dbStack, cd Cond, b ir.Bind) (*Deps, error) {
	switch b.Kind {
	case ir.Lambda, ir.Pi:
		return w.term(vs, bs.push(emptyThunk), cd, b.Body)
	case ir.LetStrict, ir.LetLazy:
		value := b.Value
		letVs, letBs := vs, bs
		t := thunk(func(c Cond) (*Deps, error) {
			return w.term(letVs, letBs, c, value)
		})
		return w.term(vs, bs.push(t), cd, b.Body)
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown binder kind %d", b.Kind))
	}
}

// app implements spec §4.2 point 4, "Application", dispatching on the shape of the already
// flattened head.
func (w *walker) app(vs Vars, bs dbStack, cd Cond, head ir.Term, args []ir.Term) (*Deps, error) {
	switch h := head.(type) {
	case ir.Ref:
		return w.appRef(vs, bs, cd, h.Name, args)
	case ir.BoundVar:
		// "Head is a de Bruijn V i: union bs[i](cd) with the unconditional analysis of the
		// arguments."
		deps, err := bs.lookup(h.Index)(cd)
		if err != nil {
			return nil, err
		}
		argDeps, err := w.unconditional(vs, bs, cd, args)
		if err != nil {
			return nil, err
		}
		deps.Merge(argDeps)
		return deps, nil
	case ir.Bind:
		return w.appBind(vs, bs, cd, h, args)
	case ir.Proj:
		return w.appProj(vs, bs, cd, h, args)
	case ir.TypeUniverse, ir.Erased:
		// "Head is erased or type: empty / arguments-only." Arguments still need their own
		// dependencies recorded, unconditionally, for terms nested under an erased head.
		return w.unconditional(vs, bs, cd, args)
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown application head shape %T", head))
	}
}

// appRef handles an application whose head is a plain name reference: a bound local, a type
// constructor, a data constructor, a foreign-call wrapper, or an ordinary global call.
func (w *walker) appRef(vs Vars, bs dbStack, cd Cond, n ir.Name, args []ir.Term) (*Deps, error) {
	if deps, ok := vs.Lookup(n); ok {
		// "Head is any other name n: if n ∈ vs, emit cd ↦ vs[n] and analyze all arguments
		// unconditionally (the bound variable may itself be applied)."
		d := NewDeps()
		d.Add(cd, deps)
		argDeps, err := w.unconditional(vs, bs, cd, args)
		if err != nil {
			return nil, err
		}
		d.Merge(argDeps)
		return d, nil
	}

	if foreignWrapperNames[n] {
		// Drop the first argument (the compile-time type spec); analyze the rest unconditionally.
		rest := args
		if len(rest) > 0 {
			rest = rest[1:]
		}
		return w.unconditional(vs, bs, cd, rest)
	}

	def, res := w.ctx.Resolve(n)
	switch res {
	case ir.Unknown:
		return nil, diagnostic.Unknown(n)
	case ir.Ambiguous:
		return nil, diagnostic.AmbiguousRef(n)
	}

	if def.Kind == ir.KindTypeConstructor {
		// Unconditional: the head contributes nothing, arguments keep the ambient condition.
		return w.unconditional(vs, bs, cd, args)
	}

	// Data constructor or ordinary global call: both follow the "node" rule (spec §4.2, "The
	// 'node' rule"), keyed off n's (possibly zero) declared arity.
	return w.nodeRule(vs, bs, cd, n, args)
}

// appBind implements the two applied-binder rewrites of spec §4.2 point 4.
func (w *walker) appBind(vs Vars, bs dbStack, cd Cond, b ir.Bind, args []ir.Term) (*Deps, error) {
	if len(args) == 0 {
		return w.bind(vs, bs, cd, b)
	}
	switch b.Kind {
	case ir.Lambda, ir.Pi:
		// "(λn:τ. body) x" rewrites to "let n = x in body", leaving any remaining args applied to
		// body.
		rewritten := ir.Bind{
			Kind:  ir.LetStrict,
			Name:  b.Name,
			Value: args[0],
			Body:  applyExtra(b.Body, args[1:]),
		}
		return w.term(vs, bs, cd, rewritten)
	case ir.LetStrict, ir.LetLazy:
		// "(let n = t in body) x" rewrites to "let n = t in (body x)".
		rewritten := ir.Bind{
			Kind:  b.Kind,
			Name:  b.Name,
			Value: b.Value,
			Body:  applyExtra(b.Body, args),
		}
		return w.term(vs, bs, cd, rewritten)
	default:
		return nil, diagnostic.Unsupported(w.fn, fmt.Sprintf("unknown binder kind %d", b.Kind))
	}
}

// appProj implements the class-dictionary-instance-projection rule of spec §4.2 point 4: the one
// recognized applied-projection shape. Any other applied projection is fatal.
func (w *walker) appProj(vs Vars, bs dbStack, cd Cond, p ir.Proj, args []ir.Term) (*Deps, error) {
	clsRef, ok := p.Target.(ir.Ref)
	if !ok {
		return nil, diagnostic.Unsupported(w.fn, "applied projection of an unrecognized head")
	}
	ctor, ok := w.classes.DictCtor(clsRef.Name)
	if !ok {
		return nil, diagnostic.Unsupported(w.fn, "applied projection of an unrecognized head")
	}

	deps := NewDeps()
	deps.AddNode(cd, NewNode(ctor, Arg(p.Field)))
	deps.AddNode(cd, NewNode(clsRef.Name, Result))
	argDeps, err := w.unconditional(vs, bs, cd, args)
	if err != nil {
		return nil, err
	}
	deps.Merge(argDeps)
	return deps, nil
}

// nodeRule implements spec §4.2's "node" rule for a global call n(a0, ..., a(m-1)): n's result is
// used under cd, and each argument within n's declared arity is analyzed under cd strengthened by
// "position i of n is used"; extra arguments beyond the declared arity are analyzed under the
// unstrengthened cd.
func (w *walker) nodeRule(vs Vars, bs dbStack, cd Cond, n ir.Name, args []ir.Term) (*Deps, error) {
	deps := NewDeps()
	deps.AddNode(cd, NewNode(n, Result))

	arity := w.arity(n)
	for i, a := range args {
		argCond := cd
		if i < arity {
			argCond = cd.Union(CondOf(NewNode(n, Arg(i))))
		}
		sub, err := w.term(vs, bs, argCond, a)
		if err != nil {
			return nil, err
		}
		deps.Merge(sub)
	}
	return deps, nil
}

// arity returns the declared parameter count of n, as ir.Def.Arity gives it: a case-op's declared
// arity, a data constructor's field count, and 0 for opaque or unknown symbols.
func (w *walker) arity(n ir.Name) int {
	def, res := w.ctx.Resolve(n)
	if res != ir.Found {
		return 0
	}
	return def.Arity()
}

// unconditional analyzes every term in ts under the unchanged condition cd, merging the results.
func (w *walker) unconditional(vs Vars, bs dbStack, cd Cond, ts []ir.Term) (*Deps, error) {
	deps := NewDeps()
	for _, t := range ts {
		sub, err := w.term(vs, bs, cd, t)
		if err != nil {
			return nil, err
		}
		deps.Merge(sub)
	}
	return deps, nil
}

// flattenApp collects an (possibly nested) App's head and full argument spine, since spec §4.2
// requires dispatching on the head before walking arguments: App{App{h, a}, b} means h applied to
// a then b, i.e. head h with spine a++b.
func flattenApp(t ir.App) (ir.Term, []ir.Term) {
	head := t.Head
	args := append([]ir.Term(nil), t.Args...)
	for {
		inner, ok := head.(ir.App)
		if !ok {
			break
		}
		head = inner.Head
		args = append(append([]ir.Term(nil), inner.Args...), args...)
	}
	return head, args
}

// applyExtra applies t to the extra arguments remaining after an applied-binder rewrite consumed
// the first one, re-wrapping as an App only if there are any left.
func applyExtra(t ir.Term, extra []ir.Term) ir.Term {
	if len(extra) == 0 {
		return t
	}
	return ir.App{Head: t, Args: extra}
}
