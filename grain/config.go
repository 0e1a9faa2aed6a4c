package grain

import "math"

// Config describes the simulated area and the pacing of updates and spawns.
// Width, Height and BlockSize are in pixels; delays are in ticks.
type Config struct {
	Width     int
	Height    int
	BlockSize int

	UpdateDelay    int
	NewDelay       int
	BigProbability float64

	// FPS caps the frame rate of drivers. Zero means uncapped.
	FPS int
	// Seed initializes the default random source. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns an 800x800 area of 10 pixel blocks, updating every tick
// and spawning every third tick with a 20% chance of a big particle.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         800,
		BlockSize:      10,
		UpdateDelay:    0,
		NewDelay:       3,
		BigProbability: 0.2,
		FPS:            0,
	}
}

// Rows is the number of grid rows. It is derived from Width, not Height.
func (c Config) Rows() int {
	if c.BlockSize <= 0 {
		return 0
	}
	return c.Width / c.BlockSize
}

// Cols is the number of grid columns. It is derived from Height, not Width.
func (c Config) Cols() int {
	if c.BlockSize <= 0 {
		return 0
	}
	return c.Height / c.BlockSize
}

// Validate returns a *ConfigError describing the first invalid field, or nil.
func (c Config) Validate() error {
	switch {
	case c.BlockSize <= 0:
		return &ConfigError{Field: "block_size", Value: c.BlockSize, Reason: "must be positive"}
	case c.Width <= 0:
		return &ConfigError{Field: "width", Value: c.Width, Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "height", Value: c.Height, Reason: "must be positive"}
	case c.Width%c.BlockSize != 0:
		return &ConfigError{Field: "width", Value: c.Width, Reason: "must be divisible by block size"}
	case c.Height%c.BlockSize != 0:
		return &ConfigError{Field: "height", Value: c.Height, Reason: "must be divisible by block size"}
	case c.UpdateDelay < 0:
		return &ConfigError{Field: "update_delay", Value: c.UpdateDelay, Reason: "must not be negative"}
	case c.UpdateDelay >= c.NewDelay:
		return &ConfigError{Field: "new_delay", Value: c.NewDelay, Reason: "must be bigger than update delay"}
	case c.UpdateDelay != 0 && c.NewDelay%c.UpdateDelay != 0:
		return &ConfigError{Field: "new_delay", Value: c.NewDelay, Reason: "must be divisible by update delay"}
	case math.IsNaN(c.BigProbability) || c.BigProbability < 0 || c.BigProbability > 1:
		return &ConfigError{Field: "big_probability", Value: c.BigProbability, Reason: "must be between 0.0 and 1.0"}
	case c.FPS < 0:
		return &ConfigError{Field: "fps", Value: c.FPS, Reason: "must not be negative"}
	}
	return nil
}
