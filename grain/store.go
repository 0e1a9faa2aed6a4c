package grain

import "iter"

const (
	storeBlockSize = 64
)

// particleStore holds every particle created during a run. Particles are never
// removed (settled piles are permanent), so ids map directly to slots: id n lives
// at index n-1. Storage grows in fixed-size blocks so pointers handed out by get
// stay valid as more particles are added.
type particleStore struct {
	blocks    []*[storeBlockSize]Particle
	nextIndex int
}

// add creates a particle and returns a pointer to it.
func (ps *particleStore) add(kind Kind, anchor Cell) *Particle {
	index := ps.nextIndex
	ps.nextIndex++

	blockIdx := index / storeBlockSize
	slotIdx := index % storeBlockSize

	if blockIdx >= len(ps.blocks) {
		ps.blocks = append(ps.blocks, new([storeBlockSize]Particle))
	}

	p := &ps.blocks[blockIdx][slotIdx]
	*p = Particle{
		Id:     ParticleId(index + 1),
		Kind:   kind,
		Anchor: anchor,
	}
	return p
}

// get returns the particle with the given id, or nil if it was never issued.
func (ps *particleStore) get(id ParticleId) *Particle {
	if id == 0 {
		return nil
	}

	index := int(id) - 1
	if index >= ps.nextIndex {
		return nil
	}

	return &ps.blocks[index/storeBlockSize][index%storeBlockSize]
}

func (ps *particleStore) len() int {
	return ps.nextIndex
}

// all yields every particle in creation order.
func (ps *particleStore) all() iter.Seq[*Particle] {
	return func(yield func(*Particle) bool) {
		for i := 0; i < ps.nextIndex; i++ {
			if !yield(&ps.blocks[i/storeBlockSize][i%storeBlockSize]) {
				return
			}
		}
	}
}

// reset drops all particles but keeps the first block allocated.
func (ps *particleStore) reset() {
	if len(ps.blocks) > 1 {
		ps.blocks = ps.blocks[:1]
	}
	if len(ps.blocks) == 1 {
		*ps.blocks[0] = [storeBlockSize]Particle{}
	}
	ps.nextIndex = 0
}
