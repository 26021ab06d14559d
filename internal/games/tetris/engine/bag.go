package engine

import "math/rand"

// Bag is the 7-bag randomizer. Every run of seven draws starting at a refill
// contains each kind exactly once.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag driven by rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// refill appends a freshly shuffled set of the seven kinds.
func (b *Bag) refill() {
	set := Kinds
	b.rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	b.queue = append(b.queue, set[:]...)
}

// Next removes and returns the next kind, refilling when the bag is empty.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.refill()
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// Peek returns the next n kinds without consuming them. It may refill ahead,
// which does not change the sequence Next produces.
func (b *Bag) Peek(n int) []Kind {
	if n <= 0 {
		return nil
	}
	for len(b.queue) < n {
		b.refill()
	}
	out := make([]Kind, n)
	copy(out, b.queue[:n])
	return out
}

// Len returns the number of kinds already shuffled and waiting.
func (b *Bag) Len() int {
	return len(b.queue)
}
