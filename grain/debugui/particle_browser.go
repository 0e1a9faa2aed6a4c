package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grainfall/grain"
)

type ParticleInfo struct {
	ID     grain.ParticleId
	Kind   grain.Kind
	Anchor grain.Cell
	Static bool
}

const (
	columnID = iota
	columnKind
	columnAnchor
	columnState
)

type particleBrowserCache struct {
	particles     []ParticleInfo
	lastTick      int
	lastCount     int
	sortColumn    int
	sortAscending bool
}

// ParticleBrowser lists every particle in a paged, sortable table. Typing in
// the search box filters by id, kind, anchor or state.
type ParticleBrowser struct {
	cache               *particleBrowserCache
	selectedParticleId  grain.ParticleId
	filterText          string
	filterKind          *grain.Kind
	maxParticlesPerPage int
	currentPage         int
}

func NewParticleBrowser(maxParticlesPerPage int) *ParticleBrowser {
	return &ParticleBrowser{
		cache: &particleBrowserCache{
			lastTick:      -1,
			sortColumn:    columnID,
			sortAscending: true,
		},
		maxParticlesPerPage: maxParticlesPerPage,
	}
}

func (pb *ParticleBrowser) Render(sim *grain.Simulation) {
	if !imgui.BeginV("Particle Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pb.rebuildCacheIfNeeded(sim)

	imgui.InputTextWithHint("##search", "Search...", &pb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Small") {
		pb.setKindFilter(grain.Small)
	}
	imgui.SameLine()
	if imgui.Button("Big") {
		pb.setKindFilter(grain.Big)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		pb.filterText = ""
		pb.filterKind = nil
	}

	filtered := pb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ParticleTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Particle ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Anchor")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			pb.cache.sortColumn = int(spec.ColumnIndex())
			pb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			pb.sortParticles()
			sortSpecs.SetSpecsDirty(false)
			filtered = pb.filtered()
		}

		startIdx, endIdx := pageBounds(pb.currentPage, pb.maxParticlesPerPage, len(filtered))
		for _, particle := range filtered[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := pb.selectedParticleId == particle.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", particle.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				pb.selectedParticleId = particle.ID
			}

			imgui.TableNextColumn()
			imgui.Text(particle.Kind.String())

			imgui.TableNextColumn()
			imgui.Text(particle.Anchor.String())

			imgui.TableNextColumn()
			imgui.Text(stateLabel(particle.Static))
		}

		imgui.EndTable()
	}

	if len(filtered) > pb.maxParticlesPerPage {
		totalPages := (len(filtered) + pb.maxParticlesPerPage - 1) / pb.maxParticlesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d particles)", pb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && pb.currentPage > 0 {
			pb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && pb.currentPage < totalPages-1 {
			pb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d particles", len(filtered)))
	}

	imgui.End()
}

// Selected returns the id picked in the table, or 0.
func (pb *ParticleBrowser) Selected() grain.ParticleId {
	return pb.selectedParticleId
}

func (pb *ParticleBrowser) setKindFilter(kind grain.Kind) {
	pb.filterKind = &kind
	pb.currentPage = 0
}

func (pb *ParticleBrowser) rebuildCacheIfNeeded(sim *grain.Simulation) {
	stats := sim.Stats()
	if pb.cache.lastTick != stats.Tick || pb.cache.lastCount != stats.Particles {
		pb.cache.particles = nil
		pb.cache.lastTick = stats.Tick
		pb.cache.lastCount = stats.Particles
	}

	if pb.cache.particles == nil {
		pb.rebuildCache(sim)
	}
}

func (pb *ParticleBrowser) rebuildCache(sim *grain.Simulation) {
	pb.cache.particles = make([]ParticleInfo, 0, pb.cache.lastCount)

	for p := range sim.Particles() {
		pb.cache.particles = append(pb.cache.particles, ParticleInfo{
			ID:     p.Id,
			Kind:   p.Kind,
			Anchor: p.Anchor,
			Static: p.Static,
		})
	}

	pb.sortParticles()
}

func (pb *ParticleBrowser) sortParticles() {
	slices.SortStableFunc(pb.cache.particles, func(a, b ParticleInfo) int {
		var c int

		switch pb.cache.sortColumn {
		case columnKind:
			c = cmp.Compare(a.Kind, b.Kind)
		case columnAnchor:
			c = cmp.Or(cmp.Compare(a.Anchor.Row, b.Anchor.Row), cmp.Compare(a.Anchor.Col, b.Anchor.Col))
		case columnState:
			c = cmp.Compare(stateLabel(a.Static), stateLabel(b.Static))
		}
		c = cmp.Or(c, cmp.Compare(a.ID, b.ID))

		if !pb.cache.sortAscending {
			return -c
		}
		return c
	})
}

func (pb *ParticleBrowser) filtered() []ParticleInfo {
	if pb.filterText == "" && pb.filterKind == nil {
		return pb.cache.particles
	}

	filtered := make([]ParticleInfo, 0, len(pb.cache.particles))
	filterLower := strings.ToLower(pb.filterText)

	for _, particle := range pb.cache.particles {
		if pb.filterKind != nil && particle.Kind != *pb.filterKind {
			continue
		}

		if filterLower != "" {
			idStr := fmt.Sprintf("%d", particle.ID)
			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(particle.Kind.String(), filterLower) &&
				!strings.Contains(particle.Anchor.String(), filterLower) &&
				!strings.Contains(stateLabel(particle.Static), filterLower) {
				continue
			}
		}

		filtered = append(filtered, particle)
	}

	return filtered
}

func pageBounds(page, perPage, total int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}

func stateLabel(static bool) string {
	if static {
		return "static"
	}
	return "active"
}
