package ir

// CaseTree is the decision tree compiled from a definition's pattern-matching equations: nested
// scrutiny of one variable at a time with one alternative per constructor/constant plus a
// default. This is always the runtime-compiled variant (nested case blocks already lifted to
// top-level functions), per spec §4.2.
type CaseTree interface {
	isCaseTree()
}

// ImpossibleTree marks a case the elaborator has proven can never be reached; it contributes no
// dependencies.
type ImpossibleTree struct{}

func (ImpossibleTree) isCaseTree() {}

// UnmatchedTree marks a case with no matching alternative at runtime (a partial function
// application left unmatched); like ImpossibleTree it contributes no dependencies.
type UnmatchedTree struct{}

func (UnmatchedTree) isCaseTree() {}

// TermLeaf is a case-tree leaf carrying the term to evaluate once all scrutinies on the path to
// this leaf have succeeded.
type TermLeaf struct{ Body Term }

func (TermLeaf) isCaseTree() {}

// CaseVar scrutinizes the bound variable at de Bruijn-free position Var (looked up in the
// traversal's Vars environment by name, per spec §4.2) and dispatches to one of Alts.
type CaseVar struct {
	Var  Name
	Alts []Alt
}

func (CaseVar) isCaseTree() {}

// ProjectionCase is a case tree that scrutinizes a tuple/record projection directly rather than a
// bound variable. Spec §4.2 marks this construct unsupported (fatal).
type ProjectionCase struct{}

func (ProjectionCase) isCaseTree() {}

// AltKind distinguishes the five alternative shapes spec §4.2 assigns different dependency rules
// to.
type AltKind int

const (
	// AltConst matches a literal constant; recurse with Vars unchanged.
	AltConst AltKind = iota
	// AltDefault is the catch-all; recurse with Vars unchanged.
	AltDefault
	// AltSucc matches the natural-number successor pattern `S n`; n inherits the scrutinee's
	// dependency set verbatim, with no additional dependency on the successor constructor itself
	// (treated as transparent).
	AltSucc
	// AltConstructor matches a data constructor pattern `C(n0, ..., nk-1)`; each nj's dependency
	// set is the scrutinee's set extended with (C, Arg j).
	AltConstructor
	// AltFunction is a function-case alternative. Spec §4.2 marks this unsupported (fatal).
	AltFunction
)

// Alt is one alternative of a CaseVar. Which fields are meaningful depends on Kind:
//   - AltConst: none beyond Body.
//   - AltDefault: none beyond Body.
//   - AltSucc: Vars[0] names the inner variable `n`.
//   - AltConstructor: Ctor names `C`; Vars are `n0..nk-1` in order.
//   - AltFunction: unsupported, present only so the builder can detect and reject it.
type Alt struct {
	Kind AltKind
	Ctor Name
	Vars []Name
	Body CaseTree
}
