package grain

import "github.com/kamstrup/intmap"

// activeSet tracks the particles that may still move. Ids are kept densely in a
// slice for iteration, and an intmap gives O(1) membership and swap-removal.
// The set must not be modified while ids is being iterated.
type activeSet struct {
	ids   []ParticleId
	index *intmap.Map[ParticleId, int]
}

func newActiveSet(capacity int) *activeSet {
	return &activeSet{
		ids:   make([]ParticleId, 0, capacity),
		index: intmap.New[ParticleId, int](capacity),
	}
}

func (a *activeSet) add(id ParticleId) {
	if _, ok := a.index.Get(id); ok {
		return
	}
	a.index.Put(id, len(a.ids))
	a.ids = append(a.ids, id)
}

func (a *activeSet) remove(id ParticleId) {
	pos, ok := a.index.Get(id)
	if !ok {
		return
	}

	last := len(a.ids) - 1
	moved := a.ids[last]
	a.ids[pos] = moved
	a.index.Put(moved, pos)

	a.ids = a.ids[:last]
	a.index.Del(id)
}

func (a *activeSet) has(id ParticleId) bool {
	_, ok := a.index.Get(id)
	return ok
}

func (a *activeSet) len() int {
	return len(a.ids)
}

func (a *activeSet) reset() {
	a.ids = a.ids[:0]
	a.index.Clear()
}
