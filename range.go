package gll

import "fmt"

// Input is the source an instance of Range is drawn from. Implementations
// must be comparable (typically a pointer type) so that two Ranges can be
// compared for provenance with ==.
//
// MatchLeft/MatchRight attempt to match pat against the leading/trailing
// edge of remaining, returning the matched sub-range on success. They are
// the only way the runtime ever touches raw input; everything else operates
// on Range values.
type Input interface {
	Len() int
	MatchLeft(remaining Range, pat Pattern) (matched Range, ok bool)
	MatchRight(remaining Range, pat Pattern) (matched Range, ok bool)
}

// Pattern is an opaque matcher handed to Input.MatchLeft/MatchRight. The
// core never inspects a Pattern's structure; it only ever passes it through.
type Pattern interface {
	fmt.Stringer
}

// Range is a half-open interval [start, end) over a specific Input instance.
// Ranges are only meaningfully comparable (Join, Contains, ordering) when
// drawn from the same Input.
type Range struct {
	in         Input
	start, end int
}

// NewRange builds a Range over in, covering [start, end).
func NewRange(in Input, start, end int) Range {
	if start > end {
		panic("gll: range start after end")
	}
	return Range{in: in, start: start, end: end}
}

// WholeInput returns a Range covering the entirety of in.
func WholeInput(in Input) Range {
	return Range{in: in, start: 0, end: in.Len()}
}

// Input returns the Range's source input.
func (r Range) Input() Input { return r.in }

// Start returns the range's start offset.
func (r Range) Start() int { return r.start }

// End returns the range's end offset.
func (r Range) End() int { return r.end }

// Len returns end-start.
func (r Range) Len() int { return r.end - r.start }

// IsEmpty reports whether the range covers zero input.
func (r Range) IsEmpty() bool { return r.start == r.end }

// SplitAt splits the range into a prefix of the given length and the
// remaining suffix. Panics if length exceeds the range's length.
func (r Range) SplitAt(length int) (prefix, suffix Range) {
	if length < 0 || length > r.Len() {
		panic("gll: split_at out of range")
	}
	mid := r.start + length
	return Range{r.in, r.start, mid}, Range{r.in, mid, r.end}
}

// Join concatenates self with other, succeeding iff self.End() == other.Start().
func (r Range) Join(other Range) (Range, bool) {
	if r.end != other.start {
		return Range{}, false
	}
	return Range{r.in, r.start, other.end}, true
}

// Contains reports whether point lies within the range. A degenerate
// (empty) range contains only its single boundary point.
func (r Range) Contains(point int) bool {
	if r.IsEmpty() {
		return point == r.start
	}
	return point >= r.start && point < r.end
}

// Frontiers returns two empty ranges anchored at the interval's start and
// end respectively; these serve as the zero-length "nothing consumed yet"
// anchors used to seed continuations.
func (r Range) Frontiers() (left, right Range) {
	return Range{r.in, r.start, r.start}, Range{r.in, r.end, r.end}
}

// Compare orders ranges lexicographically on (start, end).
func (r Range) Compare(other Range) int {
	if r.start != other.start {
		if r.start < other.start {
			return -1
		}
		return 1
	}
	if r.end != other.end {
		if r.end < other.end {
			return -1
		}
		return 1
	}
	return 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%d…%d)", r.start, r.end)
}
