package grain

import (
	"image/color"
	"iter"
)

// ParticleId identifies a particle for the lifetime of a simulation.
// Ids are issued from 1; the zero value marks an empty grid slot.
type ParticleId uint32

// Kind selects the footprint and color of a particle.
type Kind uint8

const (
	Small Kind = iota + 1
	Big
)

// Size returns the edge length of the square footprint.
func (k Kind) Size() int {
	switch k {
	case Big:
		return 2
	case Small:
		return 1
	default:
		return 0
	}
}

// Color returns the render color of the kind.
func (k Kind) Color() color.RGBA {
	switch k {
	case Big:
		return color.RGBA{R: 255, A: 255}
	case Small:
		return color.RGBA{G: 255, A: 255}
	default:
		return color.RGBA{}
	}
}

func (k Kind) String() string {
	switch k {
	case Big:
		return "big"
	case Small:
		return "small"
	default:
		return "unknown"
	}
}

// Glyph is the single character used for text dumps of the grid.
func (k Kind) Glyph() byte {
	switch k {
	case Big:
		return 'B'
	case Small:
		return 's'
	default:
		return '?'
	}
}

// Particle is a falling grain anchored at the top-left cell of its footprint.
// A particle is either active or static; static is terminal.
type Particle struct {
	Id     ParticleId
	Kind   Kind
	Anchor Cell
	Static bool
}

// Footprint yields every cell covered by a particle of kind k anchored at a.
func Footprint(a Cell, k Kind) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		size := k.Size()
		for dr := range size {
			for dc := range size {
				if !yield(a.Offset(dr, dc)) {
					return
				}
			}
		}
	}
}

// Footprint yields the cells currently covered by p.
func (p *Particle) Footprint() iter.Seq[Cell] {
	return Footprint(p.Anchor, p.Kind)
}

// Update advances p by one step: straight down if possible, otherwise down-right,
// otherwise p becomes static. Returns false once p can no longer move.
func (p *Particle) Update(g *Grid) bool {
	if p.Static {
		return false
	}

	if p.MoveTo(g, p.Anchor.Down()) {
		return true
	}

	if p.MoveTo(g, p.Anchor.DownRight()) {
		return true
	}

	p.Static = true
	return false
}

// MoveTo relocates p so its anchor is target. The target footprint must be in
// bounds and hold nothing but p itself; otherwise the grid is left untouched and
// MoveTo returns false.
func (p *Particle) MoveTo(g *Grid, target Cell) bool {
	if !g.fits(target, p.Kind.Size(), p.Id) {
		return false
	}

	for cell := range p.Footprint() {
		g.Set(cell, 0)
	}

	for cell := range Footprint(target, p.Kind) {
		g.Set(cell, p.Id)
	}

	p.Anchor = target
	return true
}
