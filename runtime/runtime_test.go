package runtime_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/forest"
	"github.com/npillmayer/gll/input"
	"github.com/npillmayer/gll/runtime"
)

// --- a trivial NodeKind, shared across the scenarios below -----------------

type kind string

func (k kind) String() string { return string(k) }
func (k kind) Compare(other gll.NodeKind) int {
	o := string(other.(kind))
	switch {
	case string(k) < o:
		return -1
	case string(k) > o:
		return 1
	default:
		return 0
	}
}

// --- scenario 1: alternation success -----------------------------------
//
//	S -> 'a' | 'b'

type altLabel int

const (
	altEntry altLabel = iota
	altA
	altB
)

func (l altLabel) String() string { return [...]string{"S", "S.a", "S.b"}[l] }
func (l altLabel) Compare(o runtime.CodeLabel) int { return int(l) - int(o.(altLabel)) }
func (l altLabel) EnclosingFn() runtime.CodeLabel  { return altEntry }

func (l altLabel) Step(rt *runtime.Runtime) {
	switch l {
	case altEntry:
		rt.Spawn(altA)
		rt.Spawn(altB)
	case altA:
		if rt.InputConsumeLeft(input.Literal("a")) {
			rt.Ret()
		}
	case altB:
		if rt.InputConsumeLeft(input.Literal("b")) {
			rt.Ret()
		}
	}
}

func TestAlternationSuccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.runtime")
	defer teardown()

	for _, in := range []string{"a", "b"} {
		src := input.NewSource(in)
		result := runtime.Parse(src, altEntry, kind("S"), forest.New())
		if result.Failed {
			t.Fatalf("parse of %q failed, want success", in)
		}
		if result.Root.Range.Start() != 0 || result.Root.Range.End() != 1 {
			t.Fatalf("parse of %q matched %v, want whole input", in, result.Root.Range)
		}
	}
}

func TestPureFailureReportsDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.runtime")
	defer teardown()

	src := input.NewSource("c")
	result := runtime.Parse(src, altEntry, kind("S"), forest.New())
	if !result.Failed {
		t.Fatal("parse of \"c\" should fail: neither alternative matches")
	}
	if result.FarthestPosition != 0 {
		t.Fatalf("farthest position = %d, want 0", result.FarthestPosition)
	}
	if len(result.Expected) != 2 {
		t.Fatalf("expected patterns = %v, want exactly 2 (\"a\" and \"b\")", result.Expected)
	}
}

// --- scenario 2: direct left recursion ----------------------------------
//
//	List -> List ',' Item | Item
//	Item -> [a-z]+

type listLabel int

const (
	listEntry listLabel = iota
	listRecStart
	listAfterListRet
	listAfterItemRet
	listBaseStart
	listBaseAfterItemRet
	itemEntry
)

var listNames = [...]string{
	"List", "List.rec1", "List.rec2", "List.rec3", "List.base1", "List.base2", "Item",
}

func (l listLabel) String() string                 { return listNames[l] }
func (l listLabel) Compare(o runtime.CodeLabel) int { return int(l) - int(o.(listLabel)) }
func (l listLabel) EnclosingFn() runtime.CodeLabel {
	if l == itemEntry {
		return itemEntry
	}
	return listEntry
}

func (l listLabel) Step(rt *runtime.Runtime) {
	switch l {
	case listEntry:
		rt.Spawn(listRecStart)
		rt.Spawn(listBaseStart)
	case listRecStart:
		rt.Call(listEntry, listAfterListRet)
	case listAfterListRet:
		if rt.InputConsumeLeft(input.Literal(",")) {
			rt.Call(itemEntry, listAfterItemRet)
		}
	case listAfterItemRet:
		rt.Ret()
	case listBaseStart:
		rt.Call(itemEntry, listBaseAfterItemRet)
	case listBaseAfterItemRet:
		rt.Ret()
	case itemEntry:
		if rt.InputConsumeLeft(input.MustRegexp(`[a-z]+`)) {
			rt.Ret()
		}
	}
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.runtime")
	defer teardown()

	src := input.NewSource("x,y,z")
	result := runtime.Parse(src, listEntry, kind("List"), forest.New())
	if result.Failed {
		t.Fatal("left-recursive list parse failed")
	}
	if result.Root.Range.Start() != 0 || result.Root.Range.End() != len("x,y,z") {
		t.Fatalf("matched %v, want the whole input", result.Root.Range)
	}
}

// --- scenario 3: hidden left recursion through a nullable alternative ----
//
//	A -> B 'x'
//	B -> A | ε

type hlrLabel int

const (
	hlrA hlrLabel = iota
	hlrAAfterB
	hlrB
	hlrBViaA
	hlrBViaAReturn
	hlrBEmpty
)

var hlrNames = [...]string{"A", "A.afterB", "B", "B.viaA", "B.viaA.ret", "B.empty"}

func (l hlrLabel) String() string                 { return hlrNames[l] }
func (l hlrLabel) Compare(o runtime.CodeLabel) int { return int(l) - int(o.(hlrLabel)) }
func (l hlrLabel) EnclosingFn() runtime.CodeLabel {
	if l <= hlrAAfterB {
		return hlrA
	}
	return hlrB
}

func (l hlrLabel) Step(rt *runtime.Runtime) {
	switch l {
	case hlrA:
		rt.Call(hlrB, hlrAAfterB)
	case hlrAAfterB:
		if rt.InputConsumeLeft(input.Literal("x")) {
			rt.Ret()
		}
	case hlrB:
		rt.Spawn(hlrBViaA)
		rt.Spawn(hlrBEmpty)
	case hlrBViaA:
		rt.Call(hlrA, hlrBViaAReturn)
	case hlrBViaAReturn:
		rt.Ret()
	case hlrBEmpty:
		rt.Ret()
	}
}

func TestHiddenLeftRecursionThroughEmptyTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.runtime")
	defer teardown()

	src := input.NewSource("x")
	result := runtime.Parse(src, hlrA, kind("A"), forest.New())
	if result.Failed {
		t.Fatal("hidden-left-recursive parse of \"x\" failed")
	}
	if result.Root.Range.Start() != 0 || result.Root.Range.End() != 1 {
		t.Fatalf("matched %v, want [0,1)", result.Root.Range)
	}
}

// --- scenario 4: dedup check, two alternatives on one forest node --------
//
//	S -> 'a' | 'a'   (two alternatives accepting the same span)

type dedupLabel int

const (
	dedupEntry dedupLabel = iota
	dedupAlt1
	dedupAlt2
)

func (l dedupLabel) String() string                 { return [...]string{"S", "S.alt1", "S.alt2"}[l] }
func (l dedupLabel) Compare(o runtime.CodeLabel) int { return int(l) - int(o.(dedupLabel)) }
func (l dedupLabel) EnclosingFn() runtime.CodeLabel  { return dedupEntry }

func (l dedupLabel) Step(rt *runtime.Runtime) {
	switch l {
	case dedupEntry:
		rt.Spawn(dedupAlt1)
		rt.Spawn(dedupAlt2)
	case dedupAlt1:
		if rt.InputConsumeLeft(input.Literal("a")) {
			rt.ForestAddChoice(kind("S"), 0)
			rt.Ret()
		}
	case dedupAlt2:
		if rt.InputConsumeLeft(input.Literal("a")) {
			rt.ForestAddChoice(kind("S"), 1)
			rt.Ret()
		}
	}
}

func TestAmbiguousAlternativesShareOneForestNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.runtime")
	defer teardown()

	f := forest.New()
	src := input.NewSource("a")
	result := runtime.Parse(src, dedupEntry, kind("S"), f)
	if result.Failed {
		t.Fatal("parse of \"a\" failed")
	}
	choices := f.Choices(result.Root)
	if len(choices) != 2 || choices[0] != 0 || choices[1] != 1 {
		t.Fatalf("Choices(root) = %v, want [0 1] (both alternatives witnessed on one shared node)", choices)
	}
}
