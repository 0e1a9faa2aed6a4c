package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/grainfall/grain"
	debugui_ebiten "github.com/plus3/grainfall/grain/debugui/ebiten"
)

// stoppedTPS paces the loop once the grid is full.
const stoppedTPS = 10

var background = color.RGBA{0, 0, 0, 255}

// Game drives a simulation from Ebiten's update loop. Each Update is one tick.
type Game struct {
	sim       *grain.Simulation
	blockSize int
	hud       bool
	paused    bool
	stopped   bool

	imgui *debugui_ebiten.ImguiBackend
}

func newGame(sim *grain.Simulation, hud bool) *Game {
	g := &Game{
		sim:       sim,
		blockSize: sim.Config().BlockSize,
		hud:       hud,
	}
	g.applyTPS()
	return g
}

func (g *Game) applyTPS() {
	switch {
	case g.stopped:
		ebiten.SetTPS(stoppedTPS)
	case g.sim.Config().FPS > 0:
		ebiten.SetTPS(g.sim.Config().FPS)
	default:
		ebiten.SetVsyncEnabled(false)
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
}

// cellAt maps a window position to a grid cell. Columns run along x.
func (g *Game) cellAt(x, y int) (grain.Cell, bool) {
	if x < 0 || y < 0 {
		return grain.Cell{}, false
	}
	c := grain.Cell{Row: y / g.blockSize, Col: x / g.blockSize}
	return c, c.Row < g.sim.Rows() && c.Col < g.sim.Cols()
}

func (g *Game) Update() error {
	captureMouse, captureKeyboard := false, false
	if g.imgui != nil {
		g.imgui.Overlay.SetHovered(g.cellAt(ebiten.CursorPosition()))
		g.imgui.RenderOverlay()
		input := g.imgui.Input()
		captureMouse, captureKeyboard = input.WantCaptureMouse, input.WantCaptureKeyboard
	}

	if !captureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.paused = !g.paused
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.sim.Reset()
			g.paused = false
		}
	}

	if !captureMouse {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.placeAtCursor(grain.Small)
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.placeAtCursor(grain.Big)
		}
	}

	if !g.paused {
		g.sim.Advance()
	}

	if stopped := !g.sim.IsRunning(); stopped != g.stopped {
		g.stopped = stopped
		g.applyTPS()
	}

	return nil
}

func (g *Game) placeAtCursor(kind grain.Kind) {
	if !g.sim.IsRunning() {
		return
	}
	c, ok := g.cellAt(ebiten.CursorPosition())
	if !ok || !g.sim.CanPlace(kind, c) {
		return
	}
	g.sim.Place(kind, c)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	size := float32(g.blockSize)
	for row := range g.sim.Rows() {
		for col := range g.sim.Cols() {
			occ, ok := g.sim.OccupancyAt(grain.Cell{Row: row, Col: col})
			if !ok {
				continue
			}
			vector.DrawFilledRect(screen, float32(col)*size, float32(row)*size, size, size, occ.Color(), false)
		}
	}

	if g.hud {
		stats := g.sim.Stats()
		status := "running"
		switch {
		case g.paused:
			status = "paused"
		case !stats.Running:
			status = "stopped"
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("tick %d  particles %d  active %d  %s\nTPS %.0f  FPS %.0f",
			stats.Tick, stats.Particles, stats.Active, status, ebiten.ActualTPS(), ebiten.ActualFPS()))
	}

	if g.imgui != nil {
		g.imgui.DrawOverlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	cfg := g.sim.Config()
	return cfg.Width, cfg.Height
}
