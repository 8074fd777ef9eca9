package forest

import (
	"testing"

	"github.com/npillmayer/gll"
)

type testInput struct{ n int }

func (t testInput) Len() int                               { return t.n }
func (t testInput) MatchLeft(gll.Range, gll.Pattern) (gll.Range, bool)  { return gll.Range{}, false }
func (t testInput) MatchRight(gll.Range, gll.Pattern) (gll.Range, bool) { return gll.Range{}, false }

type testKind string

func (k testKind) String() string { return string(k) }
func (k testKind) Compare(other gll.NodeKind) int {
	o := string(other.(testKind))
	switch {
	case string(k) < o:
		return -1
	case string(k) > o:
		return 1
	default:
		return 0
	}
}

func TestNodeDedupIsByValue(t *testing.T) {
	f := New()
	in := testInput{n: 10}
	r := gll.NewRange(in, 0, 3)
	a := f.Node(testKind("X"), r)
	b := f.Node(testKind("X"), r)
	if a != b {
		t.Fatalf("two Node calls with equal arguments produced different values: %v != %v", a, b)
	}
}

func TestAddChoiceDedups(t *testing.T) {
	f := New()
	in := testInput{n: 10}
	node := f.Node(testKind("X"), gll.NewRange(in, 0, 3))
	f.AddChoice(node, 1)
	f.AddChoice(node, 1)
	f.AddChoice(node, 2)
	got := f.Choices(node)
	want := []int{1, 2}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Choices = %v, want %v", got, want)
	}
}

func TestAddSplitDedupsAndAllSplits(t *testing.T) {
	f := New()
	in := testInput{n: 10}
	whole := gll.NewRange(in, 0, 6)
	node := f.Node(testKind("X"), whole)
	left := f.Node(testKind("A"), gll.NewRange(in, 0, 2))
	f.AddSplit(node, left)
	f.AddSplit(node, left) // duplicate, must not create a second entry

	splits := f.Splits(node)
	if len(splits) != 1 {
		t.Fatalf("Splits = %v, want exactly one entry", splits)
	}

	pairs := f.AllSplits(node)
	if len(pairs) != 1 {
		t.Fatalf("AllSplits = %v, want exactly one pair", pairs)
	}
	if pairs[0].Left != left {
		t.Errorf("left = %v, want %v", pairs[0].Left, left)
	}
	if pairs[0].Right.Range.Start() != 2 || pairs[0].Right.Range.End() != 6 {
		t.Errorf("right range = %v, want [2,6)", pairs[0].Right.Range)
	}
}

func TestUnpackOpt(t *testing.T) {
	f := New()
	in := testInput{n: 10}
	present := f.Node(testKind("X"), gll.NewRange(in, 2, 4))
	if _, ok := f.UnpackOpt(present); !ok {
		t.Error("a non-empty span should unpack as present")
	}
	absent := f.Node(testKind("X"), gll.NewRange(in, 2, 2))
	if _, ok := f.UnpackOpt(absent); ok {
		t.Error("an empty span should unpack as absent")
	}
}
