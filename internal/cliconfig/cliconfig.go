// Package cliconfig binds the simulation settings shared by every grainfall
// command to a flag.FlagSet.
//
// The area is given positionally as [width [height [block_size]]]; the pacing
// flags have a long and a short spelling:
//
//	-update, -u           delay between particle updates in ticks
//	-new, -n              delay between new particles in ticks
//	-big-probability, -p  chance of a big particle, 0.0 to 1.0
//	-cap-fps, -f          frame rate cap, 0 for uncapped
//	-seed                 random seed, 0 for a random one
package cliconfig

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/plus3/grainfall/grain"
)

// Usage describes the positional arguments.
const Usage = "[width [height [block_size]]]"

// Flags holds the values bound to a FlagSet until Config is called.
type Flags struct {
	fs  *flag.FlagSet
	cfg grain.Config
}

// Register adds the shared flags to fs with defaults from grain.DefaultConfig.
// Driver specific flags can be added to fs before it is parsed.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, cfg: grain.DefaultConfig()}

	for _, name := range []string{"update", "u"} {
		fs.IntVar(&f.cfg.UpdateDelay, name, f.cfg.UpdateDelay, "Delay between particle updates in ticks.")
	}
	for _, name := range []string{"new", "n"} {
		fs.IntVar(&f.cfg.NewDelay, name, f.cfg.NewDelay, "Delay between creation of new particles in ticks.")
	}
	for _, name := range []string{"big-probability", "p"} {
		fs.Float64Var(&f.cfg.BigProbability, name, f.cfg.BigProbability, "Probability of creating a big particle [0.0, 1.0].")
	}
	for _, name := range []string{"cap-fps", "f"} {
		fs.IntVar(&f.cfg.FPS, name, f.cfg.FPS, "Cap the frame rate. Uncapped when 0.")
	}
	fs.Uint64Var(&f.cfg.Seed, "seed", f.cfg.Seed, "Random seed. A random one is picked when 0.")

	return f
}

// Config reads the positional arguments left after parsing and returns the
// validated configuration.
func (f *Flags) Config() (grain.Config, error) {
	cfg := f.cfg

	args := f.fs.Args()
	if len(args) > 3 {
		return grain.Config{}, fmt.Errorf("too many arguments: %q, want %s", args[3:], Usage)
	}

	targets := []struct {
		name string
		dst  *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
		{"block_size", &cfg.BlockSize},
	}
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return grain.Config{}, fmt.Errorf("invalid %s %q: %w", targets[i].name, arg, err)
		}
		*targets[i].dst = v
	}

	if err := cfg.Validate(); err != nil {
		return grain.Config{}, err
	}

	return cfg, nil
}

// Parse is Register, fs.Parse and Config in one call for commands without
// flags of their own.
func Parse(fs *flag.FlagSet, args []string) (grain.Config, error) {
	f := Register(fs)
	if err := fs.Parse(args); err != nil {
		return grain.Config{}, err
	}
	return f.Config()
}
