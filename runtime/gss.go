package runtime

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
)

func continuationComparator(x, y interface{}) int {
	return compareContinuation(x.(Continuation), y.(Continuation))
}

// GraphStack is the Graph-Structured Stack: a map from an active call site
// to the set of continuations waiting to be resumed once it succeeds. It
// represents the "who should be resumed when this call succeeds" edges of
// the GSS.
type GraphStack struct {
	returns map[callKey]*treeset.Set
}

// NewGraphStack creates an empty GraphStack.
func NewGraphStack() *GraphStack {
	return &GraphStack{returns: make(map[callKey]*treeset.Set)}
}

// Link inserts next into returns[call]. It reports whether the insertion
// was new, and the set's cardinality before insertion — both of which
// drive the calling policy in Runtime.Call.
func (g *GraphStack) Link(call callKey, next Continuation) (isNew bool, priorSize int) {
	set, ok := g.returns[call]
	if !ok {
		set = treeset.NewWith(continuationComparator)
		g.returns[call] = set
	}
	priorSize = set.Size()
	set.Add(next)
	isNew = set.Size() > priorSize
	return
}

// EachReturn invokes f for every continuation registered to resume once
// call succeeds, in ascending continuation order.
func (g *GraphStack) EachReturn(call callKey, f func(Continuation)) {
	set, ok := g.returns[call]
	if !ok {
		return
	}
	for _, v := range set.Values() {
		f(v.(Continuation))
	}
}

// WriteDOT dumps the current GSS as a Graphviz digraph, for debugging. Not
// on the hot path; mirrors the reference runtime's dump_graphviz helper.
func (g *GraphStack) WriteDOT(w io.Writer) {
	fmt.Fprintln(w, "digraph gss {")
	for call, set := range g.returns {
		for _, v := range set.Values() {
			next := v.(Continuation)
			fmt.Fprintf(w, "  %q -> %q;\n", call.String(), next.String())
		}
	}
	fmt.Fprintln(w, "}")
}
