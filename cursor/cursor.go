/*
Package cursor implements the forest-traversal combinators the core
specifies as an external, peripheral helper: lazy, restartable objects
enumerating derivations out of a finished parse forest without
materializing them all up front.

There are four primitives, following the algebra of derivation trees:

  - Once: a single value, no alternatives.
  - FlattenIter: concatenation of inner cursors drawn one at a time from an
    outer sequence (an ambiguous choice among several shapes).
  - Either: a tagged union of two cursor shapes (an optional element).
  - Product: the Cartesian product of two cursors, with the right-hand one
    fastest-varying.

Each is implemented as an explicit object rather than a generator-style
coroutine, per the core's own design notes, for portability.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cursor

// Cursor enumerates a restartable lazy sequence of T values. Read copies
// the current value into out; Advance moves to the next value, reporting
// whether one exists. Clone produces an independent copy positioned at the
// same element, needed internally by Product to reset its right-hand side.
type Cursor[T any] interface {
	Read(out *T)
	Advance() bool
	Clone() Cursor[T]
}

// Once yields a single fixed value and never advances.
type Once[T any] struct {
	value T
}

// NewOnce creates a Cursor yielding exactly one value.
func NewOnce[T any](value T) *Once[T] {
	return &Once[T]{value: value}
}

func (o *Once[T]) Read(out *T)     { *out = o.value }
func (o *Once[T]) Advance() bool   { return false }
func (o *Once[T]) Clone() Cursor[T] { c := *o; return &c }

// FlattenIter concatenates inner cursors drawn one at a time from thunks,
// deferring construction of each inner cursor until it is reached. This
// models an ambiguous nonterminal: each thunk corresponds to one witnessed
// alternative shape.
type FlattenIter[T any] struct {
	thunks []func() Cursor[T]
	idx    int
	cur    Cursor[T]
}

// NewFlattenIter creates a FlattenIter over the given (non-empty) sequence
// of cursor constructors.
func NewFlattenIter[T any](thunks []func() Cursor[T]) *FlattenIter[T] {
	if len(thunks) == 0 {
		panic("cursor: FlattenIter requires at least one inner cursor")
	}
	return &FlattenIter[T]{thunks: thunks, idx: 0, cur: thunks[0]()}
}

func (f *FlattenIter[T]) Read(out *T) { f.cur.Read(out) }

func (f *FlattenIter[T]) Advance() bool {
	if f.cur.Advance() {
		return true
	}
	f.idx++
	if f.idx >= len(f.thunks) {
		return false
	}
	f.cur = f.thunks[f.idx]()
	return true
}

func (f *FlattenIter[T]) Clone() Cursor[T] {
	return &FlattenIter[T]{thunks: f.thunks, idx: f.idx, cur: f.cur.Clone()}
}

// Either is a tagged union of two cursor shapes, used to model an optional
// element: present (Right) or absent represented by the caller choosing
// which side to build.
type Either[T any] struct {
	left, right Cursor[T]
	onLeft      bool
}

// NewEitherLeft wraps c as the left alternative of an Either.
func NewEitherLeft[T any](c Cursor[T]) *Either[T] {
	return &Either[T]{left: c, onLeft: true}
}

// NewEitherRight wraps c as the right alternative of an Either.
func NewEitherRight[T any](c Cursor[T]) *Either[T] {
	return &Either[T]{right: c, onLeft: false}
}

func (e *Either[T]) Read(out *T) {
	if e.onLeft {
		e.left.Read(out)
		return
	}
	e.right.Read(out)
}

func (e *Either[T]) Advance() bool {
	if e.onLeft {
		return e.left.Advance()
	}
	return e.right.Advance()
}

func (e *Either[T]) Clone() Cursor[T] {
	if e.onLeft {
		return &Either[T]{left: e.left.Clone(), onLeft: true}
	}
	return &Either[T]{right: e.right.Clone(), onLeft: false}
}

// Product is the Cartesian product of a and b, with b fastest-varying:
// advancing steps b until it is exhausted, then resets b from its initial
// state and steps a once.
type Product[T any] struct {
	a  Cursor[T]
	b0 Cursor[T]
	b  Cursor[T]
}

// NewProduct creates the product cursor of a and b.
func NewProduct[T any](a, b Cursor[T]) *Product[T] {
	return &Product[T]{a: a, b0: b.Clone(), b: b}
}

func (p *Product[T]) Read(out *T) {
	// Product yields pairs; callers needing both halves should Read each
	// side's cursor directly (A(), B()) rather than through this generic
	// Read, which is kept only to satisfy Cursor[T] when T is the shared
	// element type of a and b (e.g. both sides project into the same
	// slot array, as the forest-traversal macro does).
	p.b.Read(out)
}

// A exposes the left cursor, for callers that need to read both halves of
// a pair independently.
func (p *Product[T]) A() Cursor[T] { return p.a }

// B exposes the right (fastest-varying) cursor.
func (p *Product[T]) B() Cursor[T] { return p.b }

func (p *Product[T]) Advance() bool {
	if p.b.Advance() {
		return true
	}
	if !p.a.Advance() {
		return false
	}
	p.b = p.b0.Clone()
	return true
}

func (p *Product[T]) Clone() Cursor[T] {
	return &Product[T]{a: p.a.Clone(), b0: p.b0.Clone(), b: p.b.Clone()}
}

// Collect materializes up to max values from c (max <= 0 means unbounded),
// for tests and diagnostics. This defeats the laziness the combinators are
// built for and should not be used on the hot path.
func Collect[T any](c Cursor[T], max int) []T {
	out := []T{}
	for {
		var v T
		c.Read(&v)
		out = append(out, v)
		if max > 0 && len(out) >= max {
			break
		}
		if !c.Advance() {
			break
		}
	}
	return out
}
