// Command grainfall-record runs the falling grain simulation without a window
// and writes it to an MJPEG AVI file.
//
// Usage:
//
//	grainfall-record [flags] [width [height [block_size]]]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/icza/mjpeg"
	"github.com/plus3/grainfall/grain"
	"github.com/plus3/grainfall/internal/cliconfig"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] %s\n", fs.Name(), cliconfig.Usage)
		fs.PrintDefaults()
	}
	flags := cliconfig.Register(fs)
	out := fs.String("out", "grainfall.avi", "Output video file.")
	maxTicks := fs.Int("max-ticks", 0, "Stop after this many ticks even if the grid is not full. 0 runs until full.")
	every := fs.Int("every", 1, "Record every n-th tick.")
	videoFPS := fs.Int("video-fps", 30, "Frame rate stored in the video.")
	quality := fs.Int("quality", 90, "JPEG quality, 1 to 100.")
	fs.Parse(os.Args[1:])

	cfg, err := flags.Config()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *every < 1 {
		log.Fatalf("Invalid configuration: every=%d: must be positive", *every)
	}

	writer, err := mjpeg.New(*out, int32(cfg.Width), int32(cfg.Height), int32(*videoFPS))
	if err != nil {
		log.Fatalf("Failed to create MJPEG writer: %v", err)
	}

	rec := newRecorder(writer, cfg.Width, cfg.Height, cfg.BlockSize, *quality)
	sim, err := grain.New(cfg, grain.WithSystem(&captureSystem{Every: *every, Recorder: rec}))
	if err != nil {
		rec.Close()
		log.Fatalf("Failed to create simulation: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Recording %dx%d grid to %s (every %d ticks)\n", sim.Rows(), sim.Cols(), *out, *every)

	for sim.IsRunning() && ctx.Err() == nil && rec.Err() == nil {
		if *maxTicks > 0 && sim.Tick() >= *maxTicks {
			break
		}
		sim.Advance()
	}

	// always end on the final state
	rec.Capture(sim.Tick(), sim.Rows(), sim.Cols(), sim.OccupancyAt)

	if err := rec.Close(); err != nil {
		log.Fatalf("Failed to record %s: %v", *out, err)
	}

	stats := sim.Stats()
	log.Printf("Wrote %d frames covering %d ticks, %d particles\n", rec.Frames(), stats.Tick, stats.Particles)
}
