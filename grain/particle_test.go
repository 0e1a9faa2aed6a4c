package grain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAt(t *testing.T, w *World, kind Kind, anchor Cell) *Particle {
	t.Helper()
	p, ok := w.place(kind, anchor)
	require.True(t, ok, "place %s at %s", kind, anchor)
	return p
}

func TestKind(t *testing.T) {
	assert.Equal(t, 1, Small.Size())
	assert.Equal(t, 2, Big.Size())
	assert.Equal(t, 0, Kind(0).Size())

	assert.Equal(t, uint8(255), Small.Color().G)
	assert.Equal(t, uint8(0), Small.Color().R)
	assert.Equal(t, uint8(255), Big.Color().R)
	assert.Equal(t, uint8(0), Big.Color().G)

	assert.Equal(t, "small", Small.String())
	assert.Equal(t, "big", Big.String())
	assert.Equal(t, byte('s'), Small.Glyph())
	assert.Equal(t, byte('B'), Big.Glyph())
}

func TestFootprint(t *testing.T) {
	small := slices.Collect(Footprint(Cell{1, 2}, Small))
	assert.Equal(t, []Cell{{1, 2}}, small)

	big := slices.Collect(Footprint(Cell{1, 2}, Big))
	assert.Equal(t, []Cell{{1, 2}, {1, 3}, {2, 2}, {2, 3}}, big)
}

func TestParticleMoveTo(t *testing.T) {
	t.Run("moves into empty cells", func(t *testing.T) {
		w := newWorld(4, 4)
		p := placeAt(t, w, Small, Cell{0, 0})

		assert.True(t, p.MoveTo(w.Grid, Cell{2, 3}))
		assert.Equal(t, Cell{2, 3}, p.Anchor)
		assert.Equal(t, ParticleId(0), w.Grid.Get(Cell{0, 0}))
		assert.Equal(t, p.Id, w.Grid.Get(Cell{2, 3}))
	})

	t.Run("big may overlap its own footprint", func(t *testing.T) {
		w := newWorld(4, 4)
		p := placeAt(t, w, Big, Cell{0, 0})

		assert.True(t, p.MoveTo(w.Grid, Cell{1, 0}))
		assert.Equal(t, Cell{1, 0}, p.Anchor)

		assert.Equal(t, ParticleId(0), w.Grid.Get(Cell{0, 0}))
		assert.Equal(t, ParticleId(0), w.Grid.Get(Cell{0, 1}))
		for cell := range p.Footprint() {
			assert.Equal(t, p.Id, w.Grid.Get(cell))
		}
		assert.Equal(t, 4, w.Grid.Occupied())
	})

	t.Run("rejected target leaves grid untouched", func(t *testing.T) {
		w := newWorld(4, 4)
		blocker := placeAt(t, w, Small, Cell{2, 1})
		p := placeAt(t, w, Big, Cell{0, 0})
		before := w.Grid.Snapshot()

		targets := []Cell{
			{1, 0},  // overlaps blocker
			{3, 0},  // leaves the bottom edge
			{0, 3},  // leaves the right edge
			{-1, 0}, // negative row
			{1, 1},  // overlaps blocker diagonally
		}
		for _, target := range targets {
			assert.False(t, p.MoveTo(w.Grid, target), "target %s", target)
			assert.Equal(t, before, w.Grid.Snapshot(), "target %s", target)
			assert.Equal(t, Cell{0, 0}, p.Anchor)
		}

		assert.Equal(t, Cell{2, 1}, blocker.Anchor)
	})
}

func TestParticleUpdate(t *testing.T) {
	t.Run("falls straight down to the floor", func(t *testing.T) {
		w := newWorld(5, 5)
		p := placeAt(t, w, Small, Cell{0, 2})

		for row := 1; row < 5; row++ {
			assert.True(t, p.Update(w.Grid))
			assert.Equal(t, Cell{row, 2}, p.Anchor)
		}

		assert.False(t, p.Update(w.Grid))
		assert.True(t, p.Static)
		assert.Equal(t, Cell{4, 2}, p.Anchor)
	})

	t.Run("prefers down over down-right", func(t *testing.T) {
		w := newWorld(3, 3)
		p := placeAt(t, w, Small, Cell{0, 0})

		assert.True(t, p.Update(w.Grid))
		assert.Equal(t, Cell{1, 0}, p.Anchor)
	})

	t.Run("slides down-right when blocked below", func(t *testing.T) {
		w := newWorld(3, 3)
		placeAt(t, w, Small, Cell{2, 0})
		p := placeAt(t, w, Small, Cell{1, 0})

		assert.True(t, p.Update(w.Grid))
		assert.Equal(t, Cell{2, 1}, p.Anchor)
	})

	t.Run("never slides down-left", func(t *testing.T) {
		w := newWorld(3, 3)
		placeAt(t, w, Small, Cell{2, 2})
		p := placeAt(t, w, Small, Cell{1, 2})

		assert.False(t, p.Update(w.Grid))
		assert.True(t, p.Static)
		assert.Equal(t, Cell{1, 2}, p.Anchor)
		assert.Equal(t, ParticleId(0), w.Grid.Get(Cell{2, 1}))
	})

	t.Run("static particle stays put", func(t *testing.T) {
		w := newWorld(3, 3)
		p := placeAt(t, w, Small, Cell{0, 0})
		p.Static = true
		before := w.Grid.Snapshot()

		assert.False(t, p.Update(w.Grid))
		assert.Equal(t, Cell{0, 0}, p.Anchor)
		assert.Equal(t, before, w.Grid.Snapshot())
	})

	t.Run("big settles when both moves are blocked", func(t *testing.T) {
		w := newWorld(4, 4)
		placeAt(t, w, Small, Cell{3, 0})
		placeAt(t, w, Small, Cell{3, 2})
		p := placeAt(t, w, Big, Cell{1, 0})

		assert.False(t, p.Update(w.Grid))
		assert.True(t, p.Static)
		assert.Equal(t, Cell{1, 0}, p.Anchor)
	})
}
