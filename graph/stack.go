package graph

// thunk is a deferred analysis of a binder's contribution: given the condition under which the
// bound variable is referenced, it returns the Deps that reference contributes (spec §3, "De
// Bruijn stack": "an ordered sequence of thunks, one per enclosing binder, each of type
// Cond → Deps"). The error return lets a let-bound right-hand side's analysis failure (e.g. an
// unknown reference) surface through to the caller instead of being silently swallowed.
type thunk func(cond Cond) (*Deps, error)

// dbStack is the de Bruijn binder stack. Index 0 is the innermost (most recently pushed) binder,
// matching de Bruijn index 0 referring to the nearest enclosing binder. dbStack is treated as
// immutable: push returns a new stack, so that sibling branches of a case tree (which share the
// same enclosing binders but diverge below them) can each extend it independently.
type dbStack []thunk

// emptyThunk is pushed for Lambda/Pi binders, which carry no dependency of their own.
func emptyThunk(Cond) (*Deps, error) { return NewDeps(), nil }

// push returns a new stack with t as the new innermost binder.
func (bs dbStack) push(t thunk) dbStack {
	out := make(dbStack, 0, len(bs)+1)
	out = append(out, t)
	out = append(out, bs...)
	return out
}

// lookup returns the thunk for de Bruijn index i (spec §3: "Lookup of index i returns the
// i-th-from-top thunk").
func (bs dbStack) lookup(i int) thunk {
	return bs[i]
}
