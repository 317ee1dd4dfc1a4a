package graph

// Vars is the variable environment threaded through case-tree and term analysis: a mapping from
// a locally-bound name to the node set it carries (spec §3, "Variable environment"). For a formal
// parameter of function f at position i, this set is initially {(f, Arg i)}; pattern variables
// extend it per the alternative-handling rules in spec §4.2.
type Vars map[Name]NodeSet

// NewVars creates an empty Vars environment.
func NewVars() Vars { return make(Vars) }

// WithParam returns a copy of vs extending it with fn's formal parameter at position i, whose
// initial dependency set is {(fn, Arg i)}.
func (vs Vars) WithParam(fn Name, i int, name Name) Vars {
	return vs.With(name, NodesOf(NewNode(fn, Arg(i))))
}

// With returns a copy of vs extending it with name bound to deps. The original vs is left
// untouched, since Vars is scoped per-branch during traversal (spec §3, "Vars environment...
// scoped to a single definition's traversal") and siblings (e.g. two case alternatives) must not
// see each other's bindings.
func (vs Vars) With(name Name, deps NodeSet) Vars {
	out := make(Vars, len(vs)+1)
	for k, v := range vs {
		out[k] = v
	}
	out[name] = deps
	return out
}

// Lookup returns the node set bound to name, if name is locally bound.
func (vs Vars) Lookup(name Name) (NodeSet, bool) {
	deps, ok := vs[name]
	return deps, ok
}
