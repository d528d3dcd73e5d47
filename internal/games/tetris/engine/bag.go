package engine

import "math/rand"

// Bag is the 7-bag randomizer. Each refill holds every kind exactly once in
// a uniformly shuffled order, so any 7 draws starting on a bag boundary are a
// permutation of all kinds.
type Bag struct {
	rng   *rand.Rand
	items []Kind
}

// NewBag creates an empty bag drawing from rng. The first Next call fills it.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng:   rng,
		items: make([]Kind, 0, NumKinds),
	}
}

// Next removes and returns the next kind, refilling the bag when empty.
func (b *Bag) Next() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	k := b.items[0]
	b.items = b.items[1:]
	return k
}

// Remaining returns how many kinds are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.items)
}

// Reset empties the bag so the next draw starts a fresh permutation.
func (b *Bag) Reset() {
	b.items = b.items[:0]
}

func (b *Bag) refill() {
	b.items = append(b.items[:0], Kinds[:]...)
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}
