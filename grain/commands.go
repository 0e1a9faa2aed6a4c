package grain

// Commands buffers structural changes to the World that are applied at the end of a
// tick. Systems iterate the active set directly, so removals and placements made
// while iterating must be queued here.
type Commands struct {
	settles []ParticleId
	spawns  []spawnCommand
	defers  []func()
}

type spawnCommand struct {
	kind   Kind
	anchor Cell
}

func newCommands() *Commands {
	return &Commands{}
}

// Settle queues removal of a particle from the active set.
func (c *Commands) Settle(id ParticleId) {
	c.settles = append(c.settles, id)
}

// Spawn queues placement of a new particle. Spawns are applied after settles;
// one whose footprint is no longer free at that point is dropped.
func (c *Commands) Spawn(kind Kind, anchor Cell) {
	c.spawns = append(c.spawns, spawnCommand{kind: kind, anchor: anchor})
}

// Defer queues a function to run after settles and spawns were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether any command is queued.
func (c *Commands) Pending() bool {
	return len(c.settles) > 0 || len(c.spawns) > 0 || len(c.defers) > 0
}

// Flush applies all queued commands to w in order (settles, spawns, defers)
// and resets the buffers.
func (c *Commands) Flush(w *World) {
	for _, id := range c.settles {
		w.settle(id)
	}

	for _, cmd := range c.spawns {
		w.place(cmd.kind, cmd.anchor)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.settles = c.settles[:0]
	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]
}
