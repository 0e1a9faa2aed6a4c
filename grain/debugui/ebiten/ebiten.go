// Package ebiten connects the grain debug overlay to the Ebiten game engine
// through the Dear ImGui Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/grainfall/grain/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend and renders an
// overlay once per frame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend

	Overlay *debugui.Overlay
}

// NewImguiBackend creates the backend window and attaches overlay to it.
// Window settings are not persisted to imgui.ini.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
	}
}

// RenderOverlay renders the overlay windows into a new ImGui frame. Call it from the
// game's Update.
func (b *ImguiBackend) RenderOverlay() {
	b.BeginFrame()
	b.Overlay.Render()
	b.EndFrame()
}

// Input returns whether ImGui captured the mouse or keyboard in the last frame.
func (b *ImguiBackend) Input() debugui.ImguiInputState {
	return b.Overlay.Input()
}

// DrawOverlay draws the ImGui frame on top of screen. Call it last in Draw.
func (b *ImguiBackend) DrawOverlay(screen *ebiten.Image) {
	b.Draw(screen)
}
