package grain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridBounds(t *testing.T) {
	g := NewGrid(3, 4)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())

	assert.True(t, g.InBounds(Cell{0, 0}))
	assert.True(t, g.InBounds(Cell{2, 3}))
	assert.False(t, g.InBounds(Cell{3, 0}))
	assert.False(t, g.InBounds(Cell{0, 4}))
	assert.False(t, g.InBounds(Cell{-1, 0}))
	assert.False(t, g.InBounds(Cell{0, -1}))
}

func TestGridGetSet(t *testing.T) {
	g := NewGrid(3, 3)

	assert.Equal(t, ParticleId(0), g.Get(Cell{1, 1}))

	g.Set(Cell{1, 1}, 7)
	assert.Equal(t, ParticleId(7), g.Get(Cell{1, 1}))
	assert.Equal(t, 1, g.Occupied())

	g.Set(Cell{1, 1}, 0)
	assert.Equal(t, ParticleId(0), g.Get(Cell{1, 1}))
	assert.Equal(t, 0, g.Occupied())

	// out of bounds reads are empty and writes are dropped
	assert.Equal(t, ParticleId(0), g.Get(Cell{5, 5}))
	before := g.Snapshot()
	g.Set(Cell{5, 5}, 9)
	g.Set(Cell{-1, 0}, 9)
	assert.Equal(t, before, g.Snapshot())
}

func TestGridCanPlace(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(Cell{2, 2}, 1)

	tests := []struct {
		name string
		cell Cell
		size int
		want bool
	}{
		{"small on empty cell", Cell{0, 0}, 1, true},
		{"small on occupied cell", Cell{2, 2}, 1, false},
		{"small in last cell", Cell{3, 3}, 1, true},
		{"big on empty block", Cell{0, 0}, 2, true},
		{"big overlapping occupant", Cell{1, 1}, 2, false},
		{"big leaving bottom edge", Cell{3, 0}, 2, false},
		{"big leaving right edge", Cell{0, 3}, 2, false},
		{"big leaving both edges", Cell{3, 3}, 2, false},
		{"big flush with corner", Cell{2, 0}, 2, true},
		{"negative anchor", Cell{-1, 0}, 1, false},
		{"zero size", Cell{0, 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CanPlace(tt.cell, tt.size))
		})
	}
}

func TestGridCanPlaceDoesNotMutate(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(Cell{0, 0}, 1)
	before := g.Snapshot()

	assert.False(t, g.CanPlace(Cell{2, 2}, 2))
	assert.False(t, g.CanPlace(Cell{0, 0}, 2))
	assert.True(t, g.CanPlace(Cell{1, 1}, 2))

	assert.Equal(t, before, g.Snapshot())
}

func TestGridFitsAllowsOwner(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(Cell{0, 0}, 4)
	g.Set(Cell{0, 1}, 4)
	g.Set(Cell{1, 0}, 4)
	g.Set(Cell{1, 1}, 4)

	assert.True(t, g.fits(Cell{1, 0}, 2, 4))
	assert.False(t, g.fits(Cell{1, 0}, 2, 5))
	assert.False(t, g.CanPlace(Cell{1, 0}, 2))
}

func TestGridReset(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(Cell{0, 0}, 1)
	g.Set(Cell{1, 1}, 2)

	g.Reset()

	assert.Equal(t, 0, g.Occupied())
	assert.Equal(t, []ParticleId{0, 0, 0, 0}, g.Snapshot())
}

func TestGridDump(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(Cell{0, 1}, 1)
	g.Set(Cell{1, 2}, 2)

	got := g.dump(func(id ParticleId) byte { return byte('0' + id) })
	assert.Equal(t, ".1.\n..2\n", got)
}
