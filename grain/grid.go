package grain

import (
	"slices"
	"strings"
)

// Grid is the authoritative occupancy map over a fixed rows x cols domain.
// Slots are stored densely, index = row*cols + col.
type Grid struct {
	rows  int
	cols  int
	slots []ParticleId
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		slots: make([]ParticleId, rows*cols),
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < g.rows && c.Col < g.cols
}

// Get returns the occupant of c, or 0 if c is empty or out of bounds.
func (g *Grid) Get(c Cell) ParticleId {
	if !g.InBounds(c) {
		return 0
	}
	return g.slots[c.Row*g.cols+c.Col]
}

// Set writes id into c unconditionally. Writes outside the grid are dropped.
func (g *Grid) Set(c Cell, id ParticleId) {
	if !g.InBounds(c) {
		return
	}
	g.slots[c.Row*g.cols+c.Col] = id
}

// CanPlace reports whether a size x size block anchored at c is in bounds and empty.
func (g *Grid) CanPlace(c Cell, size int) bool {
	return g.fits(c, size, 0)
}

// fits checks a size x size block anchored at c for bounds and for occupants
// other than owner. An owner of 0 requires every cell to be empty.
func (g *Grid) fits(c Cell, size int, owner ParticleId) bool {
	if size <= 0 {
		return false
	}

	for dr := range size {
		for dc := range size {
			cell := c.Offset(dr, dc)
			if !g.InBounds(cell) {
				return false
			}

			occupant := g.slots[cell.Row*g.cols+cell.Col]
			if occupant != 0 && occupant != owner {
				return false
			}
		}
	}

	return true
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	count := 0
	for _, id := range g.slots {
		if id != 0 {
			count++
		}
	}
	return count
}

// Snapshot returns a copy of the slot array, row-major.
func (g *Grid) Snapshot() []ParticleId {
	return slices.Clone(g.slots)
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.slots)
}

// dump renders one line per row, using glyph to pick the character for an occupant.
func (g *Grid) dump(glyph func(ParticleId) byte) string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))

	for row := range g.rows {
		for col := range g.cols {
			id := g.slots[row*g.cols+col]
			if id == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(glyph(id))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
