package grain

import (
	"reflect"
	"time"
)

// System is one stage of a tick. Systems may keep their own state between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during a tick.
type UpdateFrame struct {
	Tick     int
	World    *World
	Commands *Commands
}

// SchedulerStats holds per-system timings in registration order.
type SchedulerStats struct {
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats describes how often a system ran and how long it took.
// AvgDuration is derived from TotalDuration when the stats are read.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

func (st *SystemStats) observe(d time.Duration) {
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.LastDuration = d
	st.TotalDuration += d
	st.ExecutionCount++
}

// Scheduler runs systems in registration order and flushes queued commands
// once all of them have executed.
type Scheduler struct {
	world   *World
	frame   *UpdateFrame
	systems []System
	stats   []SystemStats
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world: world,
		frame: &UpdateFrame{
			World:    world,
			Commands: newCommands(),
		},
		systems: make([]System, 0),
	}
}

// Register appends a system to the execution order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	s.stats = append(s.stats, SystemStats{
		Name: reflect.Indirect(reflect.ValueOf(system)).Type().Name(),
	})
}

// Once executes every system for the given tick, then flushes the command buffer.
func (s *Scheduler) Once(tick int) {
	s.frame.Tick = tick

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(s.frame)
		s.stats[i].observe(time.Since(start))
	}

	s.frame.Commands.Flush(s.world)
}

// ResetStats clears the execution statistics of every system.
func (s *Scheduler) ResetStats() {
	for i := range s.stats {
		s.stats[i] = SystemStats{Name: s.stats[i].Name}
	}
}

// GetStats returns a snapshot of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{Systems: make([]SystemStats, len(s.stats))}

	for i, st := range s.stats {
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}

	return stats
}
