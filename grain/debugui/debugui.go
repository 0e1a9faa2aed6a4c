// Package debugui provides a Dear ImGui overlay for inspecting a running grain
// simulation: frame timings, a particle browser and a particle inspector.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grainfall/grain"
)

// ImguiItem holds a Dear ImGui render function called once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Drivers check it before acting on clicks and key presses.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the debug windows for one simulation.
type Overlay struct {
	sim   *grain.Simulation
	items []ImguiItem
	input ImguiInputState
	timer *FrameTimer

	Performance *PerformanceStats
	Browser     *ParticleBrowser
	Inspector   *ParticleInspector

	hovered    grain.Cell
	hasHovered bool
}

// NewOverlay creates the standard set of debug windows for sim.
func NewOverlay(sim *grain.Simulation) *Overlay {
	o := &Overlay{
		sim:         sim,
		timer:       NewFrameTimer(),
		Performance: NewPerformanceStats(120),
		Browser:     NewParticleBrowser(100),
		Inspector:   NewParticleInspector(),
	}

	o.Add(ImguiItem{Render: func() {
		o.Performance.Render(o.sim, o.timer.GetDeltaTime())
	}})
	o.Add(ImguiItem{Render: func() {
		o.Browser.Render(o.sim)
	}})
	o.Add(ImguiItem{Render: func() {
		var hovered *grain.Cell
		if o.hasHovered {
			hovered = &o.hovered
		}
		o.Inspector.Render(o.sim, o.Browser.Selected(), hovered)
	}})

	return o
}

// Add appends a custom window rendered after the built-in ones.
func (o *Overlay) Add(item ImguiItem) {
	o.items = append(o.items, item)
}

// SetHovered records the cell under the cursor for the inspector.
func (o *Overlay) SetHovered(c grain.Cell, ok bool) {
	o.hovered = c
	o.hasHovered = ok
}

// Render updates the input state and renders every window. It must be called
// between the backend's BeginFrame and EndFrame.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

// Input returns the capture state recorded by the last Render.
func (o *Overlay) Input() ImguiInputState {
	return o.input
}
