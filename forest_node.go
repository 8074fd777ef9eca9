package gll

import "fmt"

// NodeKind identifies the shape of a ForestNode (typically a grammar
// nonterminal or production tag). Node kinds are totally ordered so they
// can serve as map/set keys alongside a Range.
type NodeKind interface {
	fmt.Stringer
	Compare(other NodeKind) int
}

// ForestNode is a value-typed reference into a parse forest: the shared,
// deduplicated node standing for "this grammar shape, over this span".
// Because it is a plain (kind, range) pair rather than a pointer, two
// ForestNode values compare equal exactly when they denote the same node,
// which is what gives the forest its sharing for free.
type ForestNode struct {
	Kind  NodeKind
	Range Range
}

func (n ForestNode) String() string {
	return fmt.Sprintf("%s%s", n.Kind, n.Range)
}

// Forest is the external parse-forest collaborator the driver mutates
// during a parse and that traversal code queries afterwards. A Forest
// implementation is expected to deduplicate nodes by (kind, range); because
// ForestNode is a value type here, a map keyed on ForestNode already gives
// that for free.
type Forest interface {
	// Node returns the node for (kind, span). Call sites that want to
	// record a choice or split annotation first obtain the node this way.
	Node(kind NodeKind, span Range) ForestNode

	// AddChoice records that node is one alternative (identified by
	// choice, a grammar-defined production index) of an ambiguous
	// nonterminal sharing node's span.
	AddChoice(node ForestNode, choice int)

	// AddSplit records that node was formed by concatenating left with
	// whatever covers the remainder of node's span.
	AddSplit(node ForestNode, left ForestNode)
}

// ParseResult is the top-level outcome of a parse. On success Root and
// Forest are populated and Failed is false. On failure it carries the
// farthest point reached in the input and the patterns that were tried and
// failed there, for diagnostics.
type ParseResult struct {
	Root   ForestNode
	Forest Forest
	Failed bool

	FarthestPosition int
	Expected         []Pattern
}
