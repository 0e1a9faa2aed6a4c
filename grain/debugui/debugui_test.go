package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/grainfall/grain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T) *grain.Simulation {
	t.Helper()
	sim, err := grain.New(grain.Config{Width: 6, Height: 6, BlockSize: 1, NewDelay: 100})
	require.NoError(t, err)

	for _, place := range []struct {
		kind   grain.Kind
		anchor grain.Cell
	}{
		{grain.Small, grain.Cell{Row: 5, Col: 0}},
		{grain.Big, grain.Cell{Row: 0, Col: 2}},
		{grain.Small, grain.Cell{Row: 0, Col: 5}},
	} {
		_, ok := sim.Place(place.kind, place.anchor)
		require.True(t, ok)
	}
	sim.Advance()
	return sim
}

func TestParticleBrowserCache(t *testing.T) {
	sim := newTestSim(t)
	pb := NewParticleBrowser(2)

	pb.rebuildCacheIfNeeded(sim)
	require.Len(t, pb.cache.particles, 3)
	assert.Equal(t, grain.ParticleId(1), pb.cache.particles[0].ID)
	assert.True(t, pb.cache.particles[0].Static)
	assert.Equal(t, grain.Cell{Row: 1, Col: 2}, pb.cache.particles[1].Anchor)

	cached := pb.cache.particles
	pb.rebuildCacheIfNeeded(sim)
	assert.Same(t, &cached[0], &pb.cache.particles[0], "cache is kept while the tick is unchanged")

	sim.Advance()
	pb.rebuildCacheIfNeeded(sim)
	assert.Equal(t, grain.Cell{Row: 2, Col: 2}, pb.cache.particles[1].Anchor)
}

func TestParticleBrowserFilter(t *testing.T) {
	sim := newTestSim(t)
	pb := NewParticleBrowser(10)
	pb.rebuildCacheIfNeeded(sim)

	assert.Len(t, pb.filtered(), 3)

	pb.setKindFilter(grain.Big)
	filtered := pb.filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, grain.Big, filtered[0].Kind)

	pb.filterKind = nil
	pb.filterText = "static"
	filtered = pb.filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, grain.ParticleId(1), filtered[0].ID)

	pb.filterText = "(1,"
	assert.Len(t, pb.filtered(), 2)
}

func TestParticleBrowserSort(t *testing.T) {
	sim := newTestSim(t)
	pb := NewParticleBrowser(10)
	pb.rebuildCacheIfNeeded(sim)

	ids := func() []grain.ParticleId {
		var out []grain.ParticleId
		for _, p := range pb.cache.particles {
			out = append(out, p.ID)
		}
		return out
	}

	pb.cache.sortColumn = columnKind
	pb.sortParticles()
	assert.Equal(t, []grain.ParticleId{1, 3, 2}, ids())

	pb.cache.sortAscending = false
	pb.sortParticles()
	assert.Equal(t, []grain.ParticleId{2, 3, 1}, ids())

	pb.cache.sortColumn = columnAnchor
	pb.cache.sortAscending = true
	pb.sortParticles()
	assert.Equal(t, []grain.ParticleId{2, 3, 1}, ids())
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		page, perPage, total int
		start, end           int
	}{
		{0, 10, 25, 0, 10},
		{2, 10, 25, 20, 25},
		{5, 10, 25, 25, 25},
		{0, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := pageBounds(tt.page, tt.perPage, tt.total)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

func TestDescribe(t *testing.T) {
	rows := describe(grain.Particle{
		Id:     7,
		Kind:   grain.Big,
		Anchor: grain.Cell{Row: 3, Col: 4},
		Static: true,
	})

	assert.Equal(t, []fieldRow{
		{Name: "Id", Value: "7"},
		{Name: "Kind", Value: "big"},
		{Name: "Anchor", Value: "(3,4)"},
		{Name: "Static", Value: "true"},
	}, rows)

	assert.Nil(t, describe((*grain.Particle)(nil)))

	type nested struct {
		Inner struct{ A, B int }
		Ptr   *int
		skip  int
	}
	rows = describe(nested{skip: 1})
	assert.Equal(t, []fieldRow{
		{Name: "Inner"},
		{Name: "A", Value: "0", Depth: 1},
		{Name: "B", Value: "0", Depth: 1},
		{Name: "Ptr", Value: "nil"},
	}, rows)
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Zero(t, ps.averageFrameTime())

	ps.record(0.010)
	ps.record(0.020)
	assert.InDelta(t, 15.0, ps.averageFrameTime(), 0.001)

	for range 6 {
		ps.record(0.005)
	}
	assert.InDelta(t, 5.0, ps.averageFrameTime(), 0.001)
	assert.Equal(t, 4, ps.recorded)
}

func TestFieldCache(t *testing.T) {
	var cache fieldCache

	fields := cache.get(reflect.TypeFor[grain.Particle]())
	require.Len(t, fields, 4)
	assert.Equal(t, "Anchor", fields[2].Name)
	assert.True(t, fields[2].IsStringer)
	assert.True(t, fields[2].IsStruct)
	assert.False(t, fields[3].IsStringer)

	again := cache.get(reflect.TypeFor[grain.Particle]())
	assert.Same(t, &fields[0], &again[0])

	assert.Nil(t, cache.get(reflect.TypeFor[int]()))
}
