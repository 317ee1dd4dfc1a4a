package ir

// Term is the small calculus that case-tree leaves and let-bindings are expressed in. It is a
// closed algebraic data type: every concrete term implements the unexported isTerm marker so that
// package graph can exhaustively type-switch over it.
type Term interface {
	isTerm()
}

// Ref is a reference by name: either to a variable bound by the enclosing case tree (a formal
// parameter, an eta variable, or a pattern variable, which graph looks up in its Vars
// environment) or to a top-level definition. Variables introduced by a Bind are referenced
// through BoundVar instead.
type Ref struct{ Name Name }

func (Ref) isTerm() {}

// BoundVar is a de Bruijn index into the enclosing binder stack (spec §3, "De Bruijn stack").
type BoundVar struct{ Index int }

func (BoundVar) isTerm() {}

// BinderKind distinguishes the three binder forms a Bind node may introduce.
type BinderKind int

const (
	// Lambda and Pi binders carry no dependency of their own; the de Bruijn stack pushes a
	// constant-empty thunk for them.
	Lambda BinderKind = iota
	Pi
	// LetStrict and LetLazy both push a thunk that, when invoked with a condition, analyzes the
	// bound term under that condition — only strictness-driven code generation downstream cares
	// about the Strict/Lazy distinction; the analyzer treats both identically.
	LetStrict
	LetLazy
)

// Bind introduces one new de Bruijn variable. For Lambda/Pi, Value is unused. For
// LetStrict/LetLazy, Value is the bound right-hand side.
type Bind struct {
	Kind  BinderKind
	Name  Name // for diagnostics only; binding is by position, not name
	Value Term // nil for Lambda/Pi
	Body  Term
}

func (Bind) isTerm() {}

// App is a (possibly over-applied) application. Head may itself be an App; package graph
// flattens nested applications into one head and one argument spine before analyzing them, since
// spec §4.2 requires dispatching on the shape of the head before walking the arguments. Package
// graph does that dispatch dynamically (by type-switching on Head and consulting
// Context/ClassTable), rather than the shape being pre-classified here.
type App struct {
	Head Term
	Args []Term
}

func (App) isTerm() {}

// Proj is a field projection t.i. It appears either standalone or as the Head of an App (graph's
// class-dictionary projection rule handles the latter).
type Proj struct {
	Target Term
	Field  int
}

func (Proj) isTerm() {}

// Const is a literal constant (an integer, string, or character constant); it has no
// dependencies of its own.
type Const struct{ Repr string }

func (Const) isTerm() {}

// TypeUniverse, Erased, and ImpossibleTerm are all dependency-free leaves.
type TypeUniverse struct{}

func (TypeUniverse) isTerm() {}

type Erased struct{}

func (Erased) isTerm() {}

type ImpossibleTerm struct{}

func (ImpossibleTerm) isTerm() {}
