package engine

// PreviewSize is the number of upcoming kinds visible in the queue.
const PreviewSize = 3

// Queue is the lookahead buffer of upcoming pieces on top of the Bag.
// It always holds exactly PreviewSize kinds between calls.
type Queue struct {
	bag  *Bag
	next []Kind
}

// NewQueue creates a queue filled from bag.
func NewQueue(bag *Bag) *Queue {
	q := &Queue{
		bag:  bag,
		next: make([]Kind, 0, PreviewSize+1),
	}
	q.fill()
	return q
}

// Peek returns the n-th upcoming kind (0 = next to spawn) without consuming
// it. Out-of-range indexes return KindNone.
func (q *Queue) Peek(n int) Kind {
	if n < 0 || n >= len(q.next) {
		return KindNone
	}
	return q.next[n]
}

// Pop removes and returns the head, then refills the lookahead.
func (q *Queue) Pop() Kind {
	head := q.next[0]
	q.next = append(q.next[:0], q.next[1:]...)
	q.fill()
	return head
}

// Preview returns a copy of the visible lookahead.
func (q *Queue) Preview() [PreviewSize]Kind {
	var out [PreviewSize]Kind
	copy(out[:], q.next)
	return out
}

// Len returns the visible lookahead length.
func (q *Queue) Len() int {
	return len(q.next)
}

// Reset discards the bag and the lookahead and refills from scratch.
func (q *Queue) Reset() {
	q.bag.Reset()
	q.next = q.next[:0]
	q.fill()
}

func (q *Queue) fill() {
	for len(q.next) < PreviewSize {
		q.next = append(q.next, q.bag.Next())
	}
}

// HoldSlot stores at most one kind. Once used it stays locked until the
// active piece locks into the board.
type HoldSlot struct {
	kind Kind
	used bool
}

// Kind returns the held kind, or KindNone when empty.
func (h HoldSlot) Kind() Kind {
	return h.kind
}

// Available reports whether hold may be used for the current piece.
func (h HoldSlot) Available() bool {
	return !h.used
}
