/*
Package runtime implements the driver side of the GLL parsing engine: the
thread scheduler, the Graph-Structured Stack, the memoizer, and the Runtime
view that a compiled grammar's step functions are invoked with.

A grammar is a set of CodeLabel values, each implementing CodeStep.Step,
generated (or hand-written) to call the handful of operations Runtime
exposes: InputConsumeLeft/Right, Save/TakeSaved, ForestAddChoice/Split,
Spawn, Call and Ret. Parse drives the scheduler to a fixed point and returns
the forest node for the longest accepted derivation of the entry call, or
failure with diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("gll.runtime")
}

// CodeLabel is the identity every compiled grammar step carries: totally
// ordered, hashable (as an interface value, provided the dynamic type is
// comparable), cheap to copy, with a query for the nonterminal step it
// belongs to.
type CodeLabel interface {
	fmt.Stringer
	Compare(other CodeLabel) int
	EnclosingFn() CodeLabel
}

// CodeStep is the execution contract: every CodeLabel a grammar compiles
// must also know how to run one contiguous fragment of the grammar's
// operational semantics, given a Runtime view of the current thread.
type CodeStep interface {
	CodeLabel
	Step(rt *Runtime)
}

// Continuation is a resume point: the next step to execute, an optional
// forest node staged by the calling step, and the span of input already
// consumed on this path. Continuations are value-copied and totally
// ordered by (Code, Saved, Result).
type Continuation struct {
	Code   CodeStep
	Saved  *gll.ForestNode
	Result gll.Range
}

func (c Continuation) String() string {
	if c.Saved == nil {
		return fmt.Sprintf("%s/%s", c.Code, c.Result)
	}
	return fmt.Sprintf("%s/%s<-%s", c.Code, c.Result, *c.Saved)
}

func compareNodePtr(a, b *gll.ForestNode) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := a.Kind.Compare(b.Kind); c != 0 {
		return c
	}
	return a.Range.Compare(b.Range)
}

func compareContinuation(a, b Continuation) int {
	if c := a.Code.Compare(b.Code); c != 0 {
		return c
	}
	if c := compareNodePtr(a.Saved, b.Saved); c != 0 {
		return c
	}
	return a.Result.Compare(b.Result)
}

// Call is a pair (callee, range): either a nonterminal awaiting work
// (T = CodeStep, used by GraphStack and Memoizer), or a pending thread
// (T = Continuation, used by Threads).
type Call[T any] struct {
	Callee T
	Range  gll.Range
}

func (c Call[T]) String() string {
	return fmt.Sprintf("%v@%s", c.Callee, c.Range)
}

// a nonterminal call, keyed by identity of the callee label and its range.
// CodeStep is an interface type (comparable whenever the label's dynamic type
// is), and gll.Range is a plain value struct, so Call[CodeStep] is usable
// directly as a Go map key — this is what lets GraphStack and Memoizer
// dedupe nodes "for free", the same way gll.ForestNode does.
type callKey = Call[CodeStep]

// Option configures a Runtime at construction time, following the
// functional-options pattern gorgo's lr/earley package uses for its parser
// (earley.GenerateTree).
type Option func(*config)

type config struct {
	traceSteps bool
}

// TraceSteps turns on a debug trace line for every dispatched step.
func TraceSteps(b bool) Option {
	return func(c *config) { c.traceSteps = b }
}

// Runtime is the per-step view handed to a CodeStep's Step method. It
// carries the thread's own (result, remaining, saved) state plus shared
// access to the scheduler, GSS, memoizer and forest for the duration of
// exactly one step; dispatch is serialized, so no locking is required.
type Runtime struct {
	threads  *Threads
	gss      *GraphStack
	memoizer *Memoizer
	forest   gll.Forest
	cfg      config

	current   CodeStep
	saved     *gll.ForestNode
	result    gll.Range
	remaining gll.Range

	diag *diagnostics
}

// diagnostics accumulates the farthest-reached position across every
// thread of one parse and the patterns that were tried and failed there,
// for ParseResult. Expected patterns are deduplicated by a structural hash
// (github.com/cnf/structhash) rather than by Go equality, since a Pattern
// implementation is not required to be comparable.
type diagnostics struct {
	farthest int
	expected map[string]gll.Pattern
}

func newDiagnostics() *diagnostics {
	return &diagnostics{expected: make(map[string]gll.Pattern)}
}

func (d *diagnostics) note(pos int, pat gll.Pattern) {
	if pos < d.farthest {
		return
	}
	if pos > d.farthest {
		d.farthest = pos
		d.expected = make(map[string]gll.Pattern)
	}
	key, err := structhash.Hash(pat, 1)
	if err != nil {
		key = pat.String()
	}
	d.expected[key] = pat
}

// Current returns the code label of the step currently executing.
func (rt *Runtime) Current() CodeStep { return rt.current }

// Result returns the span of input already consumed on this thread's path.
func (rt *Runtime) Result() gll.Range { return rt.result }

// Remaining returns the span of input not yet consumed on this path.
func (rt *Runtime) Remaining() gll.Range { return rt.remaining }

// Parse runs the GLL engine to a fixed point starting at entry, over input,
// and returns the forest node of the given kind for the longest accepted
// result of the entry call over the whole input, wrapped in f. That result
// may be a proper prefix of the input.
func Parse(input gll.Input, entry CodeStep, kind gll.NodeKind, f gll.Forest, opts ...Option) gll.ParseResult {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	whole := gll.WholeInput(input)
	left, _ := whole.Frontiers()

	threads := NewThreads()
	gss := NewGraphStack()
	mem := NewMemoizer()
	diag := newDiagnostics()

	threads.Spawn(Continuation{Code: entry, Saved: nil, Result: left}, whole)

	for {
		stolen, ok := threads.Steal()
		if !ok {
			break
		}
		if cfg.traceSteps {
			tracer().Debugf("step %s", stolen)
		}
		rt := &Runtime{
			threads: threads, gss: gss, memoizer: mem, forest: f, cfg: cfg,
			current: stolen.Callee.Code, saved: stolen.Callee.Saved,
			result: stolen.Callee.Result, remaining: stolen.Range,
			diag: diag,
		}
		rt.current.Step(rt)
	}

	entryCall := Call[CodeStep]{Callee: entry, Range: whole}
	longest, ok := mem.LongestResult(entryCall)
	if !ok {
		tracer().Debugf("parse failed: no accepted result for entry call %s", entryCall)
		expected := make([]gll.Pattern, 0, len(diag.expected))
		for _, p := range diag.expected {
			expected = append(expected, p)
		}
		return gll.ParseResult{Failed: true, FarthestPosition: diag.farthest, Expected: expected}
	}
	root := f.Node(kind, longest)
	return gll.ParseResult{Root: root, Forest: f}
}

// InputConsumeLeft attempts to match pat against the leading edge of the
// remaining range. On success it advances the accumulated result and
// shrinks remaining, and reports true. On failure it leaves the Runtime
// untouched and reports false; generated code is expected to try the next
// alternative (or dead-end silently).
func (rt *Runtime) InputConsumeLeft(pat gll.Pattern) bool {
	matched, ok := rt.remaining.Input().MatchLeft(rt.remaining, pat)
	if !ok {
		rt.noteFailure(pat)
		return false
	}
	joined, ok := rt.result.Join(matched)
	if !ok {
		panic("gll: consumed range is not adjacent to the accumulated result")
	}
	rt.result = joined
	rt.remaining = gll.NewRange(rt.remaining.Input(), matched.End(), rt.remaining.End())
	return true
}

// InputConsumeRight is the mirror of InputConsumeLeft, matching against the
// trailing edge of remaining. It shrinks remaining but does not touch
// result: a right-consumed token is not part of the contiguous left-to-
// right span result tracks. The matched span is not returned, and Runtime
// does not record it anywhere (Save stages only result).
func (rt *Runtime) InputConsumeRight(pat gll.Pattern) bool {
	matched, ok := rt.remaining.Input().MatchRight(rt.remaining, pat)
	if !ok {
		rt.noteFailure(pat)
		return false
	}
	rt.remaining = gll.NewRange(rt.remaining.Input(), rt.remaining.Start(), matched.Start())
	return true
}

func (rt *Runtime) noteFailure(pat gll.Pattern) {
	rt.diag.note(rt.remaining.Start(), pat)
}

// Save sets the thread's saved slot to a forest node (kind, result),
// clearing the accumulated result to an empty range at its current end.
// Precondition: saved is currently empty.
func (rt *Runtime) Save(kind gll.NodeKind) {
	if rt.saved != nil {
		panic("gll: save called with a saved forest node already pending")
	}
	node := gll.ForestNode{Kind: kind, Range: rt.result}
	rt.saved = &node
	_, end := rt.result.Frontiers()
	rt.result = end
}

// TakeSaved removes and returns the saved slot. Precondition: it is set.
func (rt *Runtime) TakeSaved() gll.ForestNode {
	if rt.saved == nil {
		panic("gll: take_saved called with no saved forest node")
	}
	n := *rt.saved
	rt.saved = nil
	return n
}

// ForestAddChoice annotates the node at the current completed span (rt.result)
// with an alternative index for its ambiguity group.
func (rt *Runtime) ForestAddChoice(kind gll.NodeKind, choice int) {
	node := rt.forest.Node(kind, rt.result)
	rt.forest.AddChoice(node, choice)
}

// ForestAddSplit annotates the current completed span as the concatenation
// of left followed by the remaining piece. The piece consumed since the
// matching Save was taken (rt.result) only covers the right-hand side, so
// this first rejoins left's range back in to recover the whole split span —
// and folds that back into rt.result itself, so that a following Ret sees
// the enclosing call's true consumed length rather than just the right half.
func (rt *Runtime) ForestAddSplit(kind gll.NodeKind, left gll.ForestNode) {
	whole, ok := left.Range.Join(rt.result)
	if !ok {
		panic("gll: forest_add_split: left node is not adjacent to the current result")
	}
	rt.result = whole
	node := rt.forest.Node(kind, whole)
	rt.forest.AddSplit(node, left)
}

// Spawn enqueues a thread continuing from next with the current thread's
// (saved, result, remaining), without waiting for a sub-call.
func (rt *Runtime) Spawn(next CodeStep) {
	rt.threads.Spawn(Continuation{Code: next, Saved: rt.saved, Result: rt.result}, rt.remaining)
}

// Call is the critical GSS-linking operation: it links the current thread's
// continuation to callee's call site, then either replays every length
// already memoized for that call, or — on first contact — spawns callee
// fresh. The callee is never re-spawned once explored, which is what
// guarantees termination on left recursion.
func (rt *Runtime) Call(callee CodeStep, next CodeStep) {
	call := Call[CodeStep]{Callee: callee, Range: rt.remaining}
	nextCont := Continuation{Code: next, Saved: rt.saved, Result: rt.result}

	isNew, priorSize := rt.gss.Link(call, nextCont)
	if !isNew {
		return
	}
	if priorSize >= 1 {
		rt.memoizer.ForEachLength(call, func(length int) {
			consumed, remaining := call.Range.SplitAt(length)
			joined, ok := nextCont.Result.Join(consumed)
			if !ok {
				panic("gll: memoized length does not abut continuation result")
			}
			rt.threads.Spawn(Continuation{Code: nextCont.Code, Saved: nextCont.Saved, Result: joined}, remaining)
		})
		return
	}
	left, _ := call.Range.Frontiers()
	rt.threads.Spawn(Continuation{Code: callee, Saved: nil, Result: left}, call.Range)
}

// Ret completes the enclosing nonterminal call: it records the consumed
// length in the memoizer and, if that length is new, fans the result out
// to every return continuation registered for this call.
func (rt *Runtime) Ret() {
	callResult := rt.result
	remaining := rt.remaining
	joined, ok := callResult.Join(remaining)
	if !ok {
		panic("gll: ret(): result and remaining are not adjacent")
	}
	call := Call[CodeStep]{Callee: rt.current.EnclosingFn().(CodeStep), Range: joined}
	isNewLen := rt.memoizer.Record(call, callResult.Len())
	if !isNewLen {
		return
	}
	rt.gss.EachReturn(call, func(next Continuation) {
		extended, ok := next.Result.Join(callResult)
		if !ok {
			panic("gll: ret(): continuation result does not abut call result")
		}
		rt.threads.Spawn(Continuation{Code: next.Code, Saved: next.Saved, Result: extended}, remaining)
	})
}
