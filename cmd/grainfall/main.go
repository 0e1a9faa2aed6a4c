// Command grainfall opens a window and runs the falling grain simulation.
//
// Usage:
//
//	grainfall [flags] [width [height [block_size]]]
//
// Esc or Q quits, Space pauses, R restarts. Left click drops a small particle
// at the cursor and right click a big one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/grainfall/grain"
	"github.com/plus3/grainfall/grain/debugui"
	debugui_ebiten "github.com/plus3/grainfall/grain/debugui/ebiten"
	"github.com/plus3/grainfall/internal/cliconfig"
)

const windowTitle = "Granular physics"

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] %s\n", fs.Name(), cliconfig.Usage)
		fs.PrintDefaults()
	}
	flags := cliconfig.Register(fs)
	debug := fs.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	hud := fs.Bool("hud", false, "Print tick and particle counts in the corner.")
	fs.Parse(os.Args[1:])

	cfg, err := flags.Config()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sim, err := grain.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	log.Printf("Starting %dx%d grid (block %d px, update every %d, new every %d, big %.2f)\n",
		sim.Rows(), sim.Cols(), cfg.BlockSize, cfg.UpdateDelay, cfg.NewDelay, cfg.BigProbability)

	game := newGame(sim, *hud)

	if *debug {
		game.imgui = debugui_ebiten.NewImguiBackend(windowTitle, cfg.Width, cfg.Height, debugui.NewOverlay(sim))
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(windowTitle)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game loop failed: %v", err)
	}

	log.Printf("Exited after %d ticks with %d particles\n", sim.Tick(), sim.Stats().Particles)
}
