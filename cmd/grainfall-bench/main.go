// Command grainfall-bench runs the falling grain simulation headless for a
// fixed duration, restarting whenever the grid fills up, and prints a timing
// report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/grainfall/grain"
	"github.com/plus3/grainfall/internal/cliconfig"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := cliconfig.Register(fs)
	duration := fs.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	chartPath := fs.String("chart", "", "Write a PNG chart of how the first run fills the grid.")
	sampleEvery := fs.Int("sample-every", 10, "Ticks between chart samples.")
	fs.Parse(os.Args[1:])

	cfg, err := flags.Config()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *sampleEvery < 1 {
		log.Fatalf("Invalid configuration: sample-every=%d: must be positive", *sampleEvery)
	}

	sim, err := grain.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	log.Println("Starting grainfall stress test...")

	report := &Report{
		Duration: *duration,
		Config:   cfg,
		Rows:     sim.Rows(),
		Cols:     sim.Cols(),
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	var curve *fillCurve
	if *chartPath != "" {
		curve = &fillCurve{}
	}
	cells := float64(sim.Rows() * sim.Cols())

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if !sim.IsRunning() {
				report.CompletedRuns++
				report.MergeSystems(sim.Stats().Scheduler)
				if curve != nil && report.CompletedRuns == 1 {
					stats := sim.Stats()
					curve.Add(stats.Tick, float64(stats.Occupied)/cells*100, stats.Active)
				}
				sim.Reset()
			}

			tickStart := time.Now()
			sim.Advance()
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++

			if curve != nil && report.CompletedRuns == 0 && sim.Tick()%*sampleEvery == 0 {
				stats := sim.Stats()
				curve.Add(stats.Tick, float64(stats.Occupied)/cells*100, stats.Active)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.MergeSystems(sim.Stats().Scheduler)
	report.Particles = sim.Stats().Particles
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	if curve != nil {
		if err := writeChart(*chartPath, curve); err != nil {
			log.Printf("Failed to write chart: %v", err)
		} else {
			log.Printf("Wrote fill chart to %s\n", *chartPath)
		}
	}

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func writeChart(path string, curve *fillCurve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := curve.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
