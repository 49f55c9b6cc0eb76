// Package voice provides a fixed-capacity voice pool for polyphonic
// synthesis. Nothing in it allocates after the pool is created.
package voice

import "iter"

// Capacity is the number of voice slots in a Pool.
const Capacity = 32

// Keyed is a voice that plays one MIDI key.
type Keyed interface {
	Key() uint8
}

// Pool holds up to Capacity voices in fixed slots. Allocation takes the
// first free slot and there is no voice stealing: when the pool is full,
// Acquire fails and the note is dropped.
type Pool[V Keyed] struct {
	slots  [Capacity]V
	active [Capacity]bool
	count  int
}

// Acquire claims the first free slot. The returned voice holds whatever
// the slot last held; callers must initialize it.
func (p *Pool[V]) Acquire() (int, *V, bool) {
	for i := range p.active {
		if !p.active[i] {
			p.active[i] = true
			p.count++
			return i, &p.slots[i], true
		}
	}
	return -1, nil, false
}

// FindKeyFunc returns the first active voice playing key for which match
// reports true.
func (p *Pool[V]) FindKeyFunc(key uint8, match func(*V) bool) (int, *V, bool) {
	for i := range p.active {
		if p.active[i] && p.slots[i].Key() == key && match(&p.slots[i]) {
			return i, &p.slots[i], true
		}
	}
	return -1, nil, false
}

// Release frees slot i. Releasing a free slot does nothing.
func (p *Pool[V]) Release(i int) {
	if i < 0 || i >= Capacity || !p.active[i] {
		return
	}
	var zero V
	p.slots[i] = zero
	p.active[i] = false
	p.count--
}

// Active reports whether slot i holds a voice.
func (p *Pool[V]) Active(i int) bool {
	return p.active[i]
}

// At returns the voice in slot i, active or not.
func (p *Pool[V]) At(i int) *V {
	return &p.slots[i]
}

// Count returns the number of active voices.
func (p *Pool[V]) Count() int {
	return p.count
}

// Full reports whether every slot is taken.
func (p *Pool[V]) Full() bool {
	return p.count == Capacity
}

// All yields the active voices with their slot index.
func (p *Pool[V]) All() iter.Seq2[int, *V] {
	return func(yield func(int, *V) bool) {
		for i := range p.active {
			if p.active[i] && !yield(i, &p.slots[i]) {
				return
			}
		}
	}
}

// Reset frees every slot.
func (p *Pool[V]) Reset() {
	*p = Pool[V]{}
}
