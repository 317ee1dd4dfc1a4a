package graph

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/lucent-lang/erasure/diagnostic"
	"github.com/lucent-lang/erasure/freshname"
	"github.com/lucent-lang/erasure/ir"
)

// Builder performs the whole-program traversal of spec §4.2, "Entry": starting from the entry
// symbol, it walks every reachable definition's case tree and accumulates the conditional
// dependency edges produced along the way into one global Deps.
type Builder struct {
	ctx         *ir.Context
	classes     ir.ClassTable
	fresh       *freshname.Generator
	concurrency int
}

// Option configures a Builder constructed by NewBuilder.
type Option func(*Builder)

// WithConcurrency sets the number of definitions Build analyzes concurrently. Values <= 1 leave
// the default single-threaded traversal in place (spec §5: parallelism across independent
// definitions is a permissible optimization, never required).
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 1 {
			b.concurrency = n
		}
	}
}

// NewBuilder creates a Builder over ctx (the whole-program symbol table) and classes (the
// class-dictionary table), single-threaded by default.
func NewBuilder(ctx *ir.Context, classes ir.ClassTable, opts ...Option) *Builder {
	b := &Builder{ctx: ctx, classes: classes, fresh: freshname.NewGenerator(), concurrency: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks every name reachable from entry, returning the accumulated Deps together with the
// set of every name visited along the way (entry included) — the latter is what the postulate
// injector consults to decide which optional primitives actually appear in the program (spec
// §4.1).
func (b *Builder) Build(entry ir.Name) (*Deps, map[ir.Name]bool, error) {
	global := NewDeps()
	visited := make(map[ir.Name]bool)
	frontier := []ir.Name{entry}

	for len(frontier) > 0 {
		batch := dedupUnvisited(frontier, visited)
		frontier = nil
		if len(batch) == 0 {
			continue
		}

		results, err := b.analyzeBatch(batch)
		if err != nil {
			return nil, nil, err
		}

		for i, name := range batch {
			visited[name] = true
			global.Merge(results[i])
			frontier = append(frontier, newNamesIn(results[i], visited)...)
		}
	}

	return global, visited, nil
}

// analyzeBatch computes getDeps for every name in batch, concurrently when the Builder was
// configured with a concurrency greater than one.
func (b *Builder) analyzeBatch(batch []ir.Name) ([]*Deps, error) {
	if b.concurrency <= 1 || len(batch) == 1 {
		out := make([]*Deps, len(batch))
		for i, name := range batch {
			d, err := b.getDeps(name)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	}
	return b.analyzeBatchConcurrent(batch)
}

// definitionResult is one goroutine's outcome, threaded back through a channel the way the
// teacher's function analyzer reports per-function results (assertion/function/analyzer.go).
type definitionResult struct {
	index int
	deps  *Deps
	err   error
}

// analyzeBatchConcurrent runs getDeps for every name in batch across up to b.concurrency
// goroutines, bounded by a semaphore, and returns each name's Deps at that name's index in batch;
// Build then merges them by key-wise union as spec §5 permits. A panic inside any one goroutine is
// recovered and reported as an internal error rather than crashing the whole build.
func (b *Builder) analyzeBatchConcurrent(batch []ir.Name) ([]*Deps, error) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, b.concurrency)
	resultChan := make(chan definitionResult)

	for i, name := range batch {
		wg.Add(1)
		go b.analyzeOne(i, name, sem, resultChan, &wg)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	out := make([]*Deps, len(batch))
	var firstErr error
	for r := range resultChan {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		out[r.index] = r.deps
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// analyzeOne is the goroutine body dispatched per definition, bounded by sem and reporting back
// through resultChan.
func (b *Builder) analyzeOne(index int, name ir.Name, sem chan struct{}, resultChan chan definitionResult, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			resultChan <- definitionResult{index: index, err: diagnostic.InternalPanic(fmt.Sprintf("%v\n%s", r, debug.Stack()))}
		}
	}()

	sem <- struct{}{}
	defer func() { <-sem }()

	d, err := b.getDeps(name)
	resultChan <- definitionResult{index: index, deps: d, err: err}
}

// getDeps is the per-definition dispatch of spec §4.2: getDeps : Name → Deps.
func (b *Builder) getDeps(n ir.Name) (*Deps, error) {
	def, res := b.ctx.Resolve(n)
	switch res {
	case ir.Unknown:
		return nil, diagnostic.Unknown(n)
	case ir.Ambiguous:
		return nil, diagnostic.AmbiguousRef(n)
	}

	switch def.Kind {
	case ir.KindTyDecl, ir.KindOperator, ir.KindTypeConstructor, ir.KindDataConstructor:
		return NewDeps(), nil
	case ir.KindFunction:
		return nil, diagnostic.Unsupported(n, "function body not yet compiled to a case tree")
	case ir.KindCaseOp:
		return b.getDepsCaseOp(n, def.CaseOp)
	default:
		return nil, diagnostic.Unsupported(n, fmt.Sprintf("unknown definition kind %d", def.Kind))
	}
}

// getDepsCaseOp performs eta expansion and then runs case-tree analysis over op (spec §4.2, "Eta
// expansion" and "Case-tree analysis").
func (b *Builder) getDepsCaseOp(n ir.Name, op *ir.CaseOp) (*Deps, error) {
	vs := NewVars()
	for i, p := range op.BoundParams {
		vs = vs.WithParam(n, i, p)
	}

	es := make([]ir.Name, 0, op.Arity-len(op.BoundParams))
	for i := len(op.BoundParams); i < op.Arity; i++ {
		eta := b.fresh.Eta(n, i)
		vs = vs.WithParam(n, i, eta)
		es = append(es, eta)
	}

	w := &walker{ctx: b.ctx, classes: b.classes, fn: n, es: es}
	return w.sc(vs, op.Tree)
}

// dedupUnvisited filters names down to those not already in visited, also removing duplicates
// within names itself, preserving first-occurrence order.
func dedupUnvisited(names []ir.Name, visited map[ir.Name]bool) []ir.Name {
	seen := make(map[ir.Name]bool, len(names))
	out := make([]ir.Name, 0, len(names))
	for _, n := range names {
		if visited[n] || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// newNamesIn scans every Cond and conclusion NodeSet in d for symbols not yet in visited, per
// spec §4.2: "enqueues every new name that appears anywhere in the new edges (either in the
// condition or the conclusion)".
func newNamesIn(d *Deps, visited map[ir.Name]bool) []ir.Name {
	var out []ir.Name
	collect := func(ns NodeSet) {
		for _, node := range ns.Items() {
			if !visited[node.Sym] {
				out = append(out, node.Sym)
			}
		}
	}
	d.Range(func(cond Cond, nodes NodeSet) bool {
		collect(cond)
		collect(nodes)
		return true
	})
	return out
}
