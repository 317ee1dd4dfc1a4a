package cmd

import (
	"fmt"

	"github.com/lucent-lang/erasure/ir"
)

// The wire* types below are the on-disk JSON representation of a whole program: the elaborator
// that produces erasure's input is an external collaborator (spec §1), so this package owns the
// one place that bridges an external encoding to the read-only ir model.

type wireName struct {
	Namespace string `json:"namespace,omitempty"`
	Text      string `json:"text"`
	Machine   bool   `json:"machine,omitempty"`
	Tag       int    `json:"tag,omitempty"`
}

func (w wireName) toName() ir.Name {
	if w.Machine {
		return ir.MachineName(w.Tag, w.Text)
	}
	return ir.UserName(w.Namespace, w.Text)
}

type wireTerm struct {
	Type string `json:"type"`

	// ref
	Name *wireName `json:"name,omitempty"`
	// boundVar
	Index *int `json:"index,omitempty"`
	// bind
	BinderKind string    `json:"binderKind,omitempty"`
	BindName   *wireName `json:"bindName,omitempty"`
	Value      *wireTerm `json:"value,omitempty"`
	Body       *wireTerm `json:"body,omitempty"`
	// app
	Head *wireTerm  `json:"head,omitempty"`
	Args []wireTerm `json:"args,omitempty"`
	// proj
	Target *wireTerm `json:"target,omitempty"`
	Field  *int      `json:"field,omitempty"`
	// const
	Repr string `json:"repr,omitempty"`
}

func (w *wireTerm) toTerm() (ir.Term, error) {
	if w == nil {
		return nil, fmt.Errorf("nil term")
	}
	switch w.Type {
	case "ref":
		if w.Name == nil {
			return nil, fmt.Errorf("ref term missing name")
		}
		return ir.Ref{Name: w.Name.toName()}, nil
	case "boundVar":
		if w.Index == nil {
			return nil, fmt.Errorf("boundVar term missing index")
		}
		return ir.BoundVar{Index: *w.Index}, nil
	case "bind":
		kind, err := binderKind(w.BinderKind)
		if err != nil {
			return nil, err
		}
		body, err := w.Body.toTerm()
		if err != nil {
			return nil, fmt.Errorf("bind body: %w", err)
		}
		var value ir.Term
		if w.Value != nil {
			value, err = w.Value.toTerm()
			if err != nil {
				return nil, fmt.Errorf("bind value: %w", err)
			}
		}
		var name ir.Name
		if w.BindName != nil {
			name = w.BindName.toName()
		}
		return ir.Bind{Kind: kind, Name: name, Value: value, Body: body}, nil
	case "app":
		head, err := w.Head.toTerm()
		if err != nil {
			return nil, fmt.Errorf("app head: %w", err)
		}
		args := make([]ir.Term, len(w.Args))
		for i := range w.Args {
			a, err := w.Args[i].toTerm()
			if err != nil {
				return nil, fmt.Errorf("app arg %d: %w", i, err)
			}
			args[i] = a
		}
		return ir.App{Head: head, Args: args}, nil
	case "proj":
		target, err := w.Target.toTerm()
		if err != nil {
			return nil, fmt.Errorf("proj target: %w", err)
		}
		if w.Field == nil {
			return nil, fmt.Errorf("proj term missing field")
		}
		return ir.Proj{Target: target, Field: *w.Field}, nil
	case "const":
		return ir.Const{Repr: w.Repr}, nil
	case "typeUniverse":
		return ir.TypeUniverse{}, nil
	case "erased":
		return ir.Erased{}, nil
	case "impossible":
		return ir.ImpossibleTerm{}, nil
	default:
		return nil, fmt.Errorf("unknown term type %q", w.Type)
	}
}

func binderKind(s string) (ir.BinderKind, error) {
	switch s {
	case "lambda":
		return ir.Lambda, nil
	case "pi":
		return ir.Pi, nil
	case "letStrict":
		return ir.LetStrict, nil
	case "letLazy":
		return ir.LetLazy, nil
	default:
		return 0, fmt.Errorf("unknown binder kind %q", s)
	}
}

type wireCaseTree struct {
	Type string `json:"type"`

	// termLeaf
	Body *wireTerm `json:"body,omitempty"`
	// caseVar
	Var  *wireName  `json:"var,omitempty"`
	Alts []wireAlt  `json:"alts,omitempty"`
}

func (w *wireCaseTree) toCaseTree() (ir.CaseTree, error) {
	if w == nil {
		return nil, fmt.Errorf("nil case tree")
	}
	switch w.Type {
	case "impossible":
		return ir.ImpossibleTree{}, nil
	case "unmatched":
		return ir.UnmatchedTree{}, nil
	case "termLeaf":
		body, err := w.Body.toTerm()
		if err != nil {
			return nil, fmt.Errorf("term leaf: %w", err)
		}
		return ir.TermLeaf{Body: body}, nil
	case "caseVar":
		if w.Var == nil {
			return nil, fmt.Errorf("caseVar missing var")
		}
		alts := make([]ir.Alt, len(w.Alts))
		for i := range w.Alts {
			a, err := w.Alts[i].toAlt()
			if err != nil {
				return nil, fmt.Errorf("alt %d: %w", i, err)
			}
			alts[i] = a
		}
		return ir.CaseVar{Var: w.Var.toName(), Alts: alts}, nil
	case "projectionCase":
		return ir.ProjectionCase{}, nil
	default:
		return nil, fmt.Errorf("unknown case-tree type %q", w.Type)
	}
}

type wireAlt struct {
	Kind string       `json:"kind"`
	Ctor *wireName    `json:"ctor,omitempty"`
	Vars []wireName   `json:"vars,omitempty"`
	Body wireCaseTree `json:"body"`
}

func (w wireAlt) toAlt() (ir.Alt, error) {
	var kind ir.AltKind
	switch w.Kind {
	case "const":
		kind = ir.AltConst
	case "default":
		kind = ir.AltDefault
	case "succ":
		kind = ir.AltSucc
	case "constructor":
		kind = ir.AltConstructor
	case "function":
		kind = ir.AltFunction
	default:
		return ir.Alt{}, fmt.Errorf("unknown alt kind %q", w.Kind)
	}
	vars := make([]ir.Name, len(w.Vars))
	for i := range w.Vars {
		vars[i] = w.Vars[i].toName()
	}
	var ctor ir.Name
	if w.Ctor != nil {
		ctor = w.Ctor.toName()
	}
	body, err := w.Body.toCaseTree()
	if err != nil {
		return ir.Alt{}, err
	}
	return ir.Alt{Kind: kind, Ctor: ctor, Vars: vars, Body: body}, nil
}

type wireCaseOp struct {
	Arity       int          `json:"arity"`
	BoundParams []wireName   `json:"boundParams,omitempty"`
	Tree        wireCaseTree `json:"tree"`
}

type wireDef struct {
	Name      wireName    `json:"name"`
	Kind      string      `json:"kind"`
	DataArity int         `json:"dataArity,omitempty"`
	CaseOp    *wireCaseOp `json:"caseOp,omitempty"`
}

func (w wireDef) toDef() (ir.Name, ir.Def, error) {
	var kind ir.DefKind
	switch w.Kind {
	case "tyDecl":
		kind = ir.KindTyDecl
	case "operator":
		kind = ir.KindOperator
	case "function":
		kind = ir.KindFunction
	case "caseOp":
		kind = ir.KindCaseOp
	case "typeConstructor":
		kind = ir.KindTypeConstructor
	case "dataConstructor":
		kind = ir.KindDataConstructor
	default:
		return ir.Name{}, ir.Def{}, fmt.Errorf("unknown definition kind %q", w.Kind)
	}

	def := ir.Def{Kind: kind, DataArity: w.DataArity}
	if kind == ir.KindCaseOp {
		if w.CaseOp == nil {
			return ir.Name{}, ir.Def{}, fmt.Errorf("caseOp definition missing caseOp body")
		}
		tree, err := w.CaseOp.Tree.toCaseTree()
		if err != nil {
			return ir.Name{}, ir.Def{}, fmt.Errorf("caseOp tree: %w", err)
		}
		params := make([]ir.Name, len(w.CaseOp.BoundParams))
		for i := range w.CaseOp.BoundParams {
			params[i] = w.CaseOp.BoundParams[i].toName()
		}
		def.CaseOp = &ir.CaseOp{Arity: w.CaseOp.Arity, BoundParams: params, Tree: tree}
	}
	return w.Name.toName(), def, nil
}

type wireClassEntry struct {
	Class wireName `json:"class"`
	Ctor  wireName `json:"ctor"`
}

type wirePrimitive struct {
	Name  wireName `json:"name"`
	Arity int      `json:"arity"`
}

type wireInaccessible struct {
	Name    wireName `json:"name"`
	Indices []int    `json:"indices"`
}

// wireProgram is the top-level document a caller feeds the CLI: the whole symbol table plus the
// auxiliary tables spec §6 lists as inputs.
type wireProgram struct {
	Entry        wireName           `json:"entry"`
	Definitions  []wireDef          `json:"definitions"`
	Classes      []wireClassEntry   `json:"classes,omitempty"`
	Primitives   []wirePrimitive    `json:"primitives,omitempty"`
	Inaccessible []wireInaccessible `json:"inaccessible,omitempty"`
}

// decoded is the program, converted into the ir types erasure.Analyze consumes.
type decoded struct {
	ctx          *ir.Context
	entry        ir.Name
	classes      ir.ClassTable
	primitives   ir.PrimitiveTable
	inaccessible ir.OptimizationAnnotations
	callGraph    ir.CallGraphTable
}

func (p wireProgram) decode() (decoded, error) {
	ctx := ir.NewContext()
	for i, wd := range p.Definitions {
		name, def, err := wd.toDef()
		if err != nil {
			return decoded{}, fmt.Errorf("definition %d: %w", i, err)
		}
		ctx.Declare(name, def)
	}

	classes := make(ir.ClassTable, len(p.Classes))
	for _, c := range p.Classes {
		classes[c.Class.toName()] = c.Ctor.toName()
	}

	primitives := make(ir.PrimitiveTable, len(p.Primitives))
	for _, prim := range p.Primitives {
		primitives[prim.Name.toName()] = prim.Arity
	}

	inaccessible := make(ir.OptimizationAnnotations, len(p.Inaccessible))
	for _, in := range p.Inaccessible {
		inaccessible[in.Name.toName()] = in.Indices
	}

	return decoded{
		ctx:          ctx,
		entry:        p.Entry.toName(),
		classes:      classes,
		primitives:   primitives,
		inaccessible: inaccessible,
		callGraph:    make(ir.CallGraphTable),
	}, nil
}
