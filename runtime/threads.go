package runtime

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/npillmayer/gll"
)

// priority orders Call[Continuation] values the way the scheduler needs:
// descending on range (so threads operating on later positions drain
// before earlier ones), then ascending on callee. gods' binaryheap and
// treeset are both "smallest first" structures, so a Call with *higher*
// scheduling priority must compare as *smaller* here.
func priority(a, b Call[Continuation]) int {
	if c := a.Range.Compare(b.Range); c != 0 {
		return -c // descending range
	}
	return compareContinuation(a.Callee, b.Callee)
}

func priorityComparator(x, y interface{}) int {
	return priority(x.(Call[Continuation]), y.(Call[Continuation]))
}

// Threads is the scheduler: a priority queue of pending threads paired with
// a seen-set used both to dedup spawns and to bound the seen-set's size as
// the frontier of work advances (see Steal).
type Threads struct {
	queue *binaryheap.Heap
	seen  *treeset.Set
}

// NewThreads creates an empty scheduler.
func NewThreads() *Threads {
	return &Threads{
		queue: binaryheap.NewWith(priorityComparator),
		seen:  treeset.NewWith(priorityComparator),
	}
}

// Spawn enqueues a thread. If the exact (continuation, remaining) pair is
// still in seen, the call is a no-op. A pair that Steal's garbage
// collection has dropped from seen is enqueued again.
func (t *Threads) Spawn(cont Continuation, remaining gll.Range) {
	call := Call[Continuation]{Callee: cont, Range: remaining}
	if t.seen.Contains(call) {
		return
	}
	t.seen.Add(call)
	t.queue.Push(call)
}

// Steal returns the highest-priority pending thread, or ok=false when the
// queue is empty (at which point seen is cleared: the parse is done).
//
// On each successful pop it also garbage-collects seen: it repeatedly
// inspects the lexicographically-largest remaining entry (under the same
// priority order, which makes "largest" the lowest-priority,
// smallest-range entry) and drops it as long as the stolen thread's range
// does not contain that entry's start. Entries dropped this way may still
// be waiting in the queue.
func (t *Threads) Steal() (Call[Continuation], bool) {
	v, ok := t.queue.Pop()
	if !ok {
		t.seen.Clear()
		return Call[Continuation]{}, false
	}
	stolen := v.(Call[Continuation])

	for {
		values := t.seen.Values()
		if len(values) == 0 {
			break
		}
		oldest := values[len(values)-1].(Call[Continuation])
		if stolen.Range.Contains(oldest.Range.Start()) {
			break
		}
		t.seen.Remove(oldest)
	}
	return stolen, true
}
