// Command grainfall-tui runs the falling grain simulation in the terminal.
//
// Usage:
//
//	grainfall-tui [flags] [width [height [block_size]]]
//
// Each cell is drawn as two columns, so a 40x40 grid needs an 80 column
// terminal. q quits, space pauses, r restarts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/grainfall/grain"
	"github.com/plus3/grainfall/internal/cliconfig"
)

// defaultTickRate is used when no frame rate cap is given.
const defaultTickRate = 30

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] %s\n", fs.Name(), cliconfig.Usage)
		fs.PrintDefaults()
	}
	cfg, err := cliconfig.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sim, err := grain.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	tickRate := cfg.FPS
	if tickRate == 0 {
		tickRate = defaultTickRate
	}

	final, err := tea.NewProgram(newModel(sim, tickRate), tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatalf("Terminal UI failed: %v", err)
	}

	if m, ok := final.(model); ok {
		stats := m.sim.Stats()
		log.Printf("Exited after %d ticks with %d particles\n", stats.Tick, stats.Particles)
	}
}
