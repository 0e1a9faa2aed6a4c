// Package grain simulates falling granular material on a grid. Particles of two
// sizes drop in at a drop column, fall straight down or down-right, and settle
// into permanent piles. Drivers call Advance once per frame and read occupancy
// back for drawing.
package grain

import (
	"context"
	"fmt"
	"image/color"
	"iter"
	"math/rand/v2"
	"time"
)

// Occupant describes the particle covering a cell.
type Occupant struct {
	Id     ParticleId
	Kind   Kind
	Anchor Cell
	Static bool
}

func (o Occupant) Color() color.RGBA { return o.Kind.Color() }
func (o Occupant) Size() int { return o.Kind.Size() }

// Stats is a point-in-time summary of a simulation.
type Stats struct {
	Tick       int
	DropColumn int
	Running    bool
	Particles  int
	Active     int
	Settled    int
	Occupied   int
	Scheduler  *SchedulerStats
}

// Option configures a Simulation at construction.
type Option func(*Simulation)

// WithRand replaces the default random source.
func WithRand(r Rand) Option {
	return func(s *Simulation) {
		s.rand = r
	}
}

// WithSystem registers an extra system that runs after the built-in settle and
// spawn systems on every tick. Its commands are flushed with theirs.
func WithSystem(system System) Option {
	return func(s *Simulation) {
		s.extra = append(s.extra, system)
	}
}

// Simulation owns the world and drives it one tick per Advance call.
// It is not safe for concurrent use.
type Simulation struct {
	config    Config
	rand      Rand
	world     *World
	scheduler *Scheduler
	settle    *SettleSystem
	spawn     *SpawnSystem
	extra     []System
	tick      int
	running   bool
}

// New validates cfg and returns a simulation with an empty grid.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("grain: invalid config: %w", err)
	}

	s := &Simulation{
		config:  cfg,
		world:   newWorld(cfg.Rows(), cfg.Cols()),
		running: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		s.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s.settle = &SettleSystem{Delay: cfg.UpdateDelay}
	s.spawn = &SpawnSystem{
		Delay:          cfg.NewDelay,
		BigProbability: cfg.BigProbability,
		Rand:           s.rand,
	}

	s.scheduler = NewScheduler(s.world)
	s.scheduler.Register(s.settle)
	s.scheduler.Register(s.spawn)
	for _, system := range s.extra {
		s.scheduler.Register(system)
	}

	return s, nil
}

// Advance performs exactly one tick: update active particles if due, spawn if due,
// then advance the tick counter. Once the drop column has moved past the last
// column the simulation stops and Advance does nothing.
func (s *Simulation) Advance() {
	if !s.running {
		return
	}

	s.scheduler.Once(s.tick)
	s.tick++

	if s.spawn.DropColumn >= s.world.Grid.Cols() {
		s.running = false
	}
}

// Run calls Advance every interval until ctx is cancelled or the simulation stops.
// A non-positive interval advances as fast as possible.
func (s *Simulation) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		for s.running {
			select {
			case <-ctx.Done():
				return
			default:
				s.Advance()
			}
		}
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.running {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance()
		}
	}
}

// Reset empties the grid and restarts the run with the same configuration.
// The random source keeps its state.
func (s *Simulation) Reset() {
	s.world.reset()
	s.scheduler.ResetStats()

	*s.settle = SettleSystem{Delay: s.config.UpdateDelay}
	*s.spawn = SpawnSystem{
		Delay:          s.config.NewDelay,
		BigProbability: s.config.BigProbability,
		Rand:           s.rand,
	}

	s.tick = 0
	s.running = true
}

// Place drops a particle of the given kind at anchor outside the regular spawn
// schedule. It returns false when the footprint is out of bounds or occupied,
// and once the simulation has stopped, since a stopped simulation never
// updates particles again.
func (s *Simulation) Place(kind Kind, anchor Cell) (ParticleId, bool) {
	if !s.running {
		return 0, false
	}
	p, ok := s.world.place(kind, anchor)
	if !ok {
		return 0, false
	}
	return p.Id, true
}

// CanPlace reports whether a particle of the given kind fits at anchor.
func (s *Simulation) CanPlace(kind Kind, anchor Cell) bool {
	return s.world.Grid.CanPlace(anchor, kind.Size())
}

// OccupancyAt returns the particle covering c, if any.
func (s *Simulation) OccupancyAt(c Cell) (Occupant, bool) {
	return s.world.OccupancyAt(c)
}

// Particle returns a copy of the particle with the given id.
func (s *Simulation) Particle(id ParticleId) (Particle, bool) {
	p := s.world.Particle(id)
	if p == nil {
		return Particle{}, false
	}
	return *p, true
}

// Particles yields a copy of every particle in creation order.
func (s *Simulation) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for p := range s.world.particles.all() {
			if !yield(*p) {
				return
			}
		}
	}
}

// IsActive reports whether the particle may still move.
func (s *Simulation) IsActive(id ParticleId) bool {
	return s.world.active.has(id)
}

func (s *Simulation) IsRunning() bool { return s.running }
func (s *Simulation) Tick() int { return s.tick }
func (s *Simulation) DropColumn() int { return s.spawn.DropColumn }
func (s *Simulation) Rows() int { return s.world.Grid.Rows() }
func (s *Simulation) Cols() int { return s.world.Grid.Cols() }
func (s *Simulation) Config() Config { return s.config }

// ActiveCount returns the number of particles that may still move.
func (s *Simulation) ActiveCount() int {
	return s.world.ActiveCount()
}

// Stats returns counters for the current state and per-system timings.
func (s *Simulation) Stats() Stats {
	particles := s.world.ParticleCount()
	active := s.world.ActiveCount()

	return Stats{
		Tick:       s.tick,
		DropColumn: s.spawn.DropColumn,
		Running:    s.running,
		Particles:  particles,
		Active:     active,
		Settled:    particles - active,
		Occupied:   s.world.Grid.Occupied(),
		Scheduler:  s.scheduler.GetStats(),
	}
}

// String renders the grid one row per line: '.' for empty cells, 's' for small
// and 'B' for big particles.
func (s *Simulation) String() string {
	return s.world.Grid.dump(func(id ParticleId) byte {
		if p := s.world.Particle(id); p != nil {
			return p.Kind.Glyph()
		}
		return '?'
	})
}
