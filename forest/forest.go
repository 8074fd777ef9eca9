/*
Package forest implements a concrete parse forest: the external
collaborator the runtime driver mutates via ForestAddChoice/ForestAddSplit,
and that traversal code queries once a parse has finished.

A gll.ForestNode is already a value-typed (kind, range) pair, so allocating
one is free and automatically deduplicating — two calls to Node with equal
arguments yield equal nodes. What Forest adds is the bookkeeping around
ambiguity: which choice indices and which splits have been witnessed for a
given node, accumulated across however many threads reach it.

This mirrors gorgo's lr/sppf package (a Shared Packed Parse Forest keyed by
symbol/span) generalized from gorgo's pointer-interned SymbolNode graph to
value-typed gll.ForestNode keys, since dedup by value removes the need for
gorgo's own search-tree-based interning.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package forest

import (
	"github.com/npillmayer/gll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.forest'.
func tracer() tracing.Trace {
	return tracing.Select("gll.forest")
}

// Forest is a concrete gll.Forest implementation.
type Forest struct {
	choices map[gll.ForestNode]map[int]bool
	splits  map[gll.ForestNode][]gll.ForestNode
}

var _ gll.Forest = (*Forest)(nil)

// New creates an empty Forest.
func New() *Forest {
	return &Forest{
		choices: make(map[gll.ForestNode]map[int]bool),
		splits:  make(map[gll.ForestNode][]gll.ForestNode),
	}
}

// Node returns the node for (kind, span). Because ForestNode is a plain
// value, this never needs to search or allocate: equal arguments produce
// an equal, already-shared node.
func (f *Forest) Node(kind gll.NodeKind, span gll.Range) gll.ForestNode {
	return gll.ForestNode{Kind: kind, Range: span}
}

// AddChoice records choice as one of the witnessed alternatives for node.
func (f *Forest) AddChoice(node gll.ForestNode, choice int) {
	set, ok := f.choices[node]
	if !ok {
		set = make(map[int]bool)
		f.choices[node] = set
	}
	if !set[choice] {
		tracer().Debugf("%s: new choice %d", node, choice)
	}
	set[choice] = true
}

// AddSplit records left as one of the witnessed ways to split node.
func (f *Forest) AddSplit(node gll.ForestNode, left gll.ForestNode) {
	for _, existing := range f.splits[node] {
		if existing == left {
			return
		}
	}
	tracer().Debugf("%s: new split at %s", node, left.Range)
	f.splits[node] = append(f.splits[node], left)
}

// Choices returns the sorted set of choice indices witnessed for node.
func (f *Forest) Choices(node gll.ForestNode) []int {
	set, ok := f.choices[node]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	// small sets; simple insertion sort keeps this dependency-free.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Splits returns the left-hand sides of every witnessed split of node. The
// corresponding right-hand side of each is the node's own kind applied to
// the remainder of node's range.
func (f *Forest) Splits(node gll.ForestNode) []gll.ForestNode {
	return f.splits[node]
}

// OneChoice returns a representative witnessed choice index for node.
func (f *Forest) OneChoice(node gll.ForestNode) (int, bool) {
	cs := f.Choices(node)
	if len(cs) == 0 {
		return 0, false
	}
	return cs[0], true
}

// SplitPair is one witnessed (left, right) decomposition of a node.
type SplitPair struct {
	Left, Right gll.ForestNode
}

// AllSplits returns every witnessed (left, right) decomposition of node.
func (f *Forest) AllSplits(node gll.ForestNode) []SplitPair {
	lefts := f.splits[node]
	out := make([]SplitPair, 0, len(lefts))
	for _, left := range lefts {
		right := gll.ForestNode{
			Kind:  node.Kind,
			Range: gll.NewRange(node.Range.Input(), left.Range.End(), node.Range.End()),
		}
		out = append(out, SplitPair{Left: left, Right: right})
	}
	return out
}

// OneSplit returns a representative witnessed (left, right) decomposition
// of node.
func (f *Forest) OneSplit(node gll.ForestNode) (left, right gll.ForestNode, ok bool) {
	all := f.AllSplits(node)
	if len(all) == 0 {
		return gll.ForestNode{}, gll.ForestNode{}, false
	}
	return all[0].Left, all[0].Right, true
}

// UnpackOpt reports whether node stands for something (Range non-empty) or
// for an optional element that matched nothing (Range empty).
func (f *Forest) UnpackOpt(node gll.ForestNode) (gll.ForestNode, bool) {
	if node.Range.IsEmpty() {
		return gll.ForestNode{}, false
	}
	return node, true
}
