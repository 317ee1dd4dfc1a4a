package graph

import "sort"

// bucket pairs a Cond with the NodeSet of conclusions currently recorded under it.
type bucket struct {
	cond  Cond
	nodes NodeSet
}

// Deps is the conditional edge set accumulated by the builder (spec §3, "Conditional edge set"):
// a mapping from Cond to a set of Nodes, where multiple entries sharing a key are combined by set
// union. It is keyed internally by each Cond's order-independent canonical key (see
// util/nodeset.Set.CanonicalKey), since a Cond itself (containing a slice) cannot be a Go map key.
type Deps struct {
	buckets map[string]*bucket
	// order records canonical keys in first-insertion order, purely so that iteration through
	// Conds and Range is deterministic and reproducible across runs.
	order []string
}

// NewDeps creates an empty Deps.
func NewDeps() *Deps {
	return &Deps{buckets: make(map[string]*bucket)}
}

// Add records that, under cond, every node in nodes is used — unioning into any existing entry
// for the same condition (spec §3: "Multiple entries with the same key are combined by set
// union").
func (d *Deps) Add(cond Cond, nodes NodeSet) {
	if nodes.Len() == 0 {
		return
	}
	key := cond.CanonicalKey()
	b, ok := d.buckets[key]
	if !ok {
		d.buckets[key] = &bucket{cond: cond, nodes: nodes}
		d.order = append(d.order, key)
		return
	}
	b.nodes = b.nodes.Union(nodes)
}

// AddNode is a convenience for the common case of a single-node conclusion.
func (d *Deps) AddNode(cond Cond, node Node) {
	d.Add(cond, NodesOf(node))
}

// Get returns the NodeSet recorded for cond, if any.
func (d *Deps) Get(cond Cond) (NodeSet, bool) {
	b, ok := d.buckets[cond.CanonicalKey()]
	if !ok {
		return NodeSet{}, false
	}
	return b.nodes, true
}

// Delete removes the entry for cond entirely.
func (d *Deps) Delete(cond Cond) {
	key := cond.CanonicalKey()
	if _, ok := d.buckets[key]; !ok {
		return
	}
	delete(d.buckets, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct conditions currently recorded.
func (d *Deps) Len() int { return len(d.buckets) }

// Conds returns every recorded Cond, in first-insertion order.
func (d *Deps) Conds() []Cond {
	conds := make([]Cond, 0, len(d.order))
	for _, key := range d.order {
		conds = append(conds, d.buckets[key].cond)
	}
	return conds
}

// Range calls f for every (Cond, NodeSet) entry in first-insertion order. It stops early if f
// returns false.
func (d *Deps) Range(f func(cond Cond, nodes NodeSet) bool) {
	for _, key := range d.order {
		b := d.buckets[key]
		if !f(b.cond, b.nodes) {
			return
		}
	}
}

// Merge unions other into d in place, combining conclusions for any Cond present in both (used
// both by the whole-program builder, which merges one definition's Deps into the global
// accumulator, and by concurrent analysis of independent definitions, per spec §5).
func (d *Deps) Merge(other *Deps) {
	other.Range(func(cond Cond, nodes NodeSet) bool {
		d.Add(cond, nodes)
		return true
	})
}

// Clone returns a deep-enough copy of d that mutating the copy (as the solver does) cannot affect
// d. NodeSet and Cond values themselves are immutable by convention (util/nodeset.Set never
// mutates in place), so only the bucket map and order slice need copying.
func (d *Deps) Clone() *Deps {
	out := &Deps{
		buckets: make(map[string]*bucket, len(d.buckets)),
		order:   append([]string(nil), d.order...),
	}
	for k, b := range d.buckets {
		out.buckets[k] = &bucket{cond: b.cond, nodes: b.nodes}
	}
	return out
}

// SortedConds returns every recorded Cond sorted by condition size then by canonical key, for
// output that does not depend on insertion order (erasure's level-5 residual log uses it); Conds
// and Range iterate in insertion order instead.
func (d *Deps) SortedConds() []Cond {
	keys := append([]string(nil), d.order...)
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := d.buckets[keys[i]], d.buckets[keys[j]]
		if bi.cond.Len() != bj.cond.Len() {
			return bi.cond.Len() < bj.cond.Len()
		}
		return keys[i] < keys[j]
	})
	conds := make([]Cond, 0, len(keys))
	for _, k := range keys {
		conds = append(conds, d.buckets[k].cond)
	}
	return conds
}
