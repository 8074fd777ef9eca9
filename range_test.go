package gll

import "testing"

type fixedInput struct{ n int }

func (f fixedInput) Len() int                                       { return f.n }
func (f fixedInput) MatchLeft(Range, Pattern) (Range, bool)          { return Range{}, false }
func (f fixedInput) MatchRight(Range, Pattern) (Range, bool)         { return Range{}, false }

func TestWholeInput(t *testing.T) {
	in := fixedInput{n: 10}
	w := WholeInput(in)
	if w.Start() != 0 || w.End() != 10 || w.Len() != 10 {
		t.Fatalf("WholeInput = %v, want [0,10)", w)
	}
}

func TestRangeSplitAt(t *testing.T) {
	in := fixedInput{n: 10}
	r := NewRange(in, 2, 8)
	prefix, suffix := r.SplitAt(3)
	if prefix.Start() != 2 || prefix.End() != 5 {
		t.Errorf("prefix = %v, want [2,5)", prefix)
	}
	if suffix.Start() != 5 || suffix.End() != 8 {
		t.Errorf("suffix = %v, want [5,8)", suffix)
	}
}

func TestRangeSplitAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range split")
		}
	}()
	NewRange(fixedInput{n: 10}, 2, 8).SplitAt(100)
}

func TestRangeJoin(t *testing.T) {
	in := fixedInput{n: 10}
	a := NewRange(in, 2, 5)
	b := NewRange(in, 5, 8)
	joined, ok := a.Join(b)
	if !ok || joined.Start() != 2 || joined.End() != 8 {
		t.Fatalf("Join = %v, %v, want [2,8), true", joined, ok)
	}
	c := NewRange(in, 6, 9)
	if _, ok := a.Join(c); ok {
		t.Fatal("Join of non-adjacent ranges should fail")
	}
}

func TestRangeContains(t *testing.T) {
	in := fixedInput{n: 10}
	r := NewRange(in, 2, 5)
	for _, p := range []int{2, 3, 4} {
		if !r.Contains(p) {
			t.Errorf("expected range to contain %d", p)
		}
	}
	if r.Contains(5) || r.Contains(1) {
		t.Error("range should not contain its end or a point before start")
	}
	empty := NewRange(in, 3, 3)
	if !empty.Contains(3) {
		t.Error("a degenerate range should contain its own boundary point")
	}
	if empty.Contains(4) {
		t.Error("a degenerate range should not contain any other point")
	}
}

func TestRangeFrontiers(t *testing.T) {
	in := fixedInput{n: 10}
	r := NewRange(in, 2, 8)
	left, right := r.Frontiers()
	if !left.IsEmpty() || left.Start() != 2 {
		t.Errorf("left frontier = %v, want empty at 2", left)
	}
	if !right.IsEmpty() || right.Start() != 8 {
		t.Errorf("right frontier = %v, want empty at 8", right)
	}
}

func TestRangeCompare(t *testing.T) {
	in := fixedInput{n: 10}
	a := NewRange(in, 2, 5)
	b := NewRange(in, 2, 6)
	c := NewRange(in, 3, 4)
	if a.Compare(a) != 0 {
		t.Error("a range must compare equal to itself")
	}
	if a.Compare(b) >= 0 {
		t.Error("a shorter range starting at the same point must sort first")
	}
	if a.Compare(c) >= 0 {
		t.Error("an earlier-starting range must sort first")
	}
}
