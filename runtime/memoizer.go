package runtime

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/gll"
)

// Memoizer maps a call site to the sorted set of consumed lengths it has
// been shown to accept. A nonterminal applied at a given position may
// succeed at multiple lengths (ambiguity); every such length must be kept
// so that every caller can be resumed with every valid length.
type Memoizer struct {
	lengths map[callKey]*treeset.Set
}

// NewMemoizer creates an empty Memoizer.
func NewMemoizer() *Memoizer {
	return &Memoizer{lengths: make(map[callKey]*treeset.Set)}
}

// Record inserts length into lengths[call]. It reports whether the length
// was new.
func (m *Memoizer) Record(call callKey, length int) bool {
	set, ok := m.lengths[call]
	if !ok {
		set = treeset.NewWith(utils.IntComparator)
		m.lengths[call] = set
	}
	before := set.Size()
	set.Add(length)
	return set.Size() > before
}

// ForEachLength invokes f for every accepted length of call, in ascending
// order.
func (m *Memoizer) ForEachLength(call callKey, f func(length int)) {
	set, ok := m.lengths[call]
	if !ok {
		return
	}
	for _, v := range set.Values() {
		f(v.(int))
	}
}

// Results returns the accepted sub-ranges of call.Range, one per accepted
// length, in ascending length order.
func (m *Memoizer) Results(call callKey) []gll.Range {
	set, ok := m.lengths[call]
	if !ok {
		return nil
	}
	values := set.Values()
	out := make([]gll.Range, 0, len(values))
	for _, v := range values {
		prefix, _ := call.Range.SplitAt(v.(int))
		out = append(out, prefix)
	}
	return out
}

// LongestResult returns the longest accepted sub-range of call.Range, or
// ok=false if the call never succeeded.
func (m *Memoizer) LongestResult(call callKey) (gll.Range, bool) {
	results := m.Results(call)
	if len(results) == 0 {
		return gll.Range{}, false
	}
	return results[len(results)-1], true
}
