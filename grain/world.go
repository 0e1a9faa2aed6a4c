package grain

import "iter"

// World is the mutable state systems operate on: the occupancy grid, every
// particle ever created, and the set of particles that may still move.
type World struct {
	Grid *Grid

	particles particleStore
	active    *activeSet
}

func newWorld(rows, cols int) *World {
	return &World{
		Grid:   NewGrid(rows, cols),
		active: newActiveSet(rows),
	}
}

// place creates a particle of the given kind at anchor if its footprint is free,
// writes the footprint into the grid and marks the particle active. Systems
// request placements through Commands.Spawn instead.
func (w *World) place(kind Kind, anchor Cell) (*Particle, bool) {
	if !w.Grid.CanPlace(anchor, kind.Size()) {
		return nil, false
	}

	p := w.particles.add(kind, anchor)
	for cell := range p.Footprint() {
		w.Grid.Set(cell, p.Id)
	}
	w.active.add(p.Id)

	return p, true
}

// Particle returns the particle with the given id, or nil.
func (w *World) Particle(id ParticleId) *Particle {
	return w.particles.get(id)
}

// OccupancyAt returns the particle covering c, if any.
func (w *World) OccupancyAt(c Cell) (Occupant, bool) {
	p := w.Particle(w.Grid.Get(c))
	if p == nil {
		return Occupant{}, false
	}

	return Occupant{
		Id:     p.Id,
		Kind:   p.Kind,
		Anchor: p.Anchor,
		Static: p.Static,
	}, true
}

// Active yields the ids of particles that may still move.
// Structural changes must go through Commands while iterating.
func (w *World) Active() iter.Seq[ParticleId] {
	return func(yield func(ParticleId) bool) {
		for _, id := range w.active.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// ActiveCount returns the number of particles that may still move.
func (w *World) ActiveCount() int {
	return w.active.len()
}

// ParticleCount returns the number of particles created, settled or not.
func (w *World) ParticleCount() int {
	return w.particles.len()
}

func (w *World) settle(id ParticleId) {
	w.active.remove(id)
}

func (w *World) reset() {
	w.Grid.Reset()
	w.particles.reset()
	w.active.reset()
}
