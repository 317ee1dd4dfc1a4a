package ir

import "sort"

// DefKind classifies a top-level definition, driving the builder's per-definition dispatch table
// (spec §4.2, "Per-definition dispatch").
type DefKind int

const (
	// KindTyDecl is a bare type declaration with no runtime body: empty dependencies.
	KindTyDecl DefKind = iota
	// KindOperator is an opaque (foreign/primitive/axiom) operator: empty dependencies.
	KindOperator
	// KindFunction is a function whose body has not yet been compiled to a case tree. Analyzing
	// it is a fatal error (spec §4.2): callers must compile bodies to case trees first.
	KindFunction
	// KindCaseOp is a fully compiled case-operator: the real case the builder analyzes.
	KindCaseOp
	// KindTypeConstructor marks a type constructor: applying it is unconditional, per the
	// application-head rule in spec §4.2 point 4. It has no runtime dependencies of its own.
	KindTypeConstructor
	// KindDataConstructor marks a data constructor: applying it gates argument i on (Ctor, Arg i)
	// via the "node" rule. DataArity gives its field count.
	KindDataConstructor
)

// CaseOp is the runtime-compiled representation of a function definition: its declared arity,
// the (possibly fewer) parameters actually bound by the case tree, and the tree itself.
type CaseOp struct {
	// Arity is the declared number of parameters (spec §4.2, "eta expansion": `tys`).
	Arity int
	// BoundParams are the tree's bound parameters in order, a prefix of the declared parameters
	// (spec §4.2: `vars`, with len(vars) <= len(tys) for partial eta form).
	BoundParams []Name
	// Tree is the runtime-compiled case tree over BoundParams.
	Tree CaseTree
}

// Def is one entry of the symbol table.
type Def struct {
	Kind DefKind
	// CaseOp is non-nil iff Kind == KindCaseOp.
	CaseOp *CaseOp
	// DataArity is the field count of a KindDataConstructor; unused otherwise.
	DataArity int
}

// Arity returns the number of declared parameters of d, or 0 if d is neither a CaseOp nor a data
// constructor (opaque symbols have no erasable positions from a caller's point of view, per spec
// §4.2's definition of `arity(n)`).
func (d Def) Arity() int {
	switch d.Kind {
	case KindCaseOp:
		return d.CaseOp.Arity
	case KindDataConstructor:
		return d.DataArity
	default:
		return 0
	}
}

// Resolution reports the outcome of looking a Name up in a Context.
type Resolution int

const (
	// Found means exactly one definition was located.
	Found Resolution = iota
	// Unknown means no definition was located (spec §7, "Unknown reference").
	Unknown
	// Ambiguous means more than one definition was located for the same Name (spec §7,
	// "Ambiguous reference").
	Ambiguous
)

// Context is the whole-program symbol table: every top-level definition, keyed by Name. It is
// built once by the caller (the elaborator) and is read-only from the analyzer's point of view.
type Context struct {
	entries map[Name][]Def
}

// NewContext creates an empty symbol table. Callers populate it with Declare before handing it to
// the analyzer; Context itself has no way to forbid later Declare calls.
func NewContext() *Context {
	return &Context{entries: make(map[Name][]Def)}
}

// Declare adds a definition for name. Declaring the same name twice is how a malformed input
// program expresses an ambiguous reference; Context does not reject it; Resolve does.
func (c *Context) Declare(name Name, def Def) {
	c.entries[name] = append(c.entries[name], def)
}

// Resolve looks name up, reporting whether it was found, missing, or ambiguous.
func (c *Context) Resolve(name Name) (Def, Resolution) {
	defs := c.entries[name]
	switch len(defs) {
	case 0:
		return Def{}, Unknown
	case 1:
		return defs[0], Found
	default:
		return Def{}, Ambiguous
	}
}

// Names returns every declared Name in a stable, deterministic order (sorted by Name.Less). It
// exists primarily for tests and for deterministic logging of whole-context dumps.
func (c *Context) Names() []Name {
	names := make([]Name, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })
	return names
}

// ClassTable maps a class name to the Name of its dictionary constructor. It is consulted by the
// builder's class-dictionary-instance-projection rule (spec §4.2, point 4, "Head is a projection
// of a class-dictionary instance constructor").
type ClassTable map[Name]Name

// DictCtor returns the dictionary constructor for cls, if cls is a known class.
func (t ClassTable) DictCtor(cls Name) (Name, bool) {
	ctor, ok := t[cls]
	return ctor, ok
}

// PrimitiveTable lists the language's builtin primitives together with their arities (spec §6,
// "Primitives table").
type PrimitiveTable map[Name]int

// OptimizationAnnotations carries, per symbol, the list of argument indices an earlier compiler
// pass proved statically inaccessible (spec §6, "Optimization annotations"; consumed by
// package project's accessibility check).
type OptimizationAnnotations map[Name][]int

// CallGraphEntry is the per-symbol record the analyzer writes usage information into. Call/SCC
// information is the concern of an earlier compiler pass; UsedArgs is the only field this
// analyzer populates.
type CallGraphEntry struct {
	UsedArgs []int
}

// CallGraphTable is the output sink described in spec §6: "For every reachable symbol, the
// ascending list of used argument indices is written into the call-graph entry (creating one
// with empty call/scc information if none existed, for pure data constructors)."
type CallGraphTable map[Name]*CallGraphEntry

// Record stores usedArgs (already ascending) for name, creating a fresh entry if none existed.
func (t CallGraphTable) Record(name Name, usedArgs []int) {
	entry, ok := t[name]
	if !ok {
		entry = &CallGraphEntry{}
		t[name] = entry
	}
	entry.UsedArgs = usedArgs
}
