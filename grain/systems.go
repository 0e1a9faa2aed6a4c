package grain

// SettleSystem updates every active particle once every Delay ticks and queues
// removal of the ones that became static.
type SettleSystem struct {
	Delay int

	lastUpdate int
}

func (s *SettleSystem) Execute(frame *UpdateFrame) {
	if frame.Tick < s.lastUpdate+s.Delay {
		return
	}
	s.lastUpdate = frame.Tick

	world := frame.World
	for id := range world.Active() {
		p := world.Particle(id)
		if !p.Update(world.Grid) {
			frame.Commands.Settle(id)
		}
	}
}

// LastUpdate returns the tick of the most recent update pass.
func (s *SettleSystem) LastUpdate() int {
	return s.lastUpdate
}

// Rand is the random source used to choose between big and small particles.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// SpawnSystem drops a new particle at the top of DropColumn once every Delay ticks.
// When the particle does not fit, nothing is spawned and the drop column moves one
// step to the right instead.
type SpawnSystem struct {
	Delay          int
	BigProbability float64
	Rand           Rand
	DropColumn     int

	lastSpawn int
}

func (s *SpawnSystem) Execute(frame *UpdateFrame) {
	if frame.Tick < s.lastSpawn+s.Delay {
		return
	}
	s.lastSpawn = frame.Tick

	kind := Small
	if s.Rand.Float64() < s.BigProbability {
		kind = Big
	}

	anchor := Cell{Row: 0, Col: s.DropColumn}
	if !frame.World.Grid.CanPlace(anchor, kind.Size()) {
		s.DropColumn++
		return
	}

	frame.Commands.Spawn(kind, anchor)
}

// LastSpawn returns the tick of the most recent spawn attempt.
func (s *SpawnSystem) LastSpawn() int {
	return s.lastSpawn
}
