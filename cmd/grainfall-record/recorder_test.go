package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/plus3/grainfall/grain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	frames   [][]byte
	err      error
	closed   bool
	closeErr error
}

func (w *memoryWriter) AddFrame(data []byte) error {
	if w.err != nil {
		return w.err
	}
	w.frames = append(w.frames, bytes.Clone(data))
	return nil
}

func (w *memoryWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func TestRenderFrame(t *testing.T) {
	sim, err := grain.New(grain.Config{Width: 40, Height: 30, BlockSize: 10, NewDelay: 100})
	require.NoError(t, err)

	_, ok := sim.Place(grain.Small, grain.Cell{Row: 0, Col: 2})
	require.True(t, ok)
	_, ok = sim.Place(grain.Big, grain.Cell{Row: 2, Col: 0})
	require.True(t, ok)

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	renderFrame(img, sim.Rows(), sim.Cols(), 10, sim.OccupancyAt)

	assert.Equal(t, grain.Small.Color(), img.RGBAAt(25, 5), "small at column 2 row 0")
	assert.Equal(t, grain.Big.Color(), img.RGBAAt(5, 25))
	assert.Equal(t, grain.Big.Color(), img.RGBAAt(15, 29))
	assert.Equal(t, background, img.RGBAAt(5, 5))
	assert.Equal(t, background, img.RGBAAt(35, 15))
}

func TestCaptureSystem(t *testing.T) {
	w := &memoryWriter{}
	rec := newRecorder(w, 30, 30, 10, 80)

	cfg := grain.Config{Width: 30, Height: 30, BlockSize: 10, NewDelay: 1, BigProbability: 0}
	sim, err := grain.New(cfg, grain.WithSystem(&captureSystem{Every: 2, Recorder: rec}))
	require.NoError(t, err)

	for range 5 {
		sim.Advance()
	}
	require.NoError(t, rec.Err())

	// ticks 0, 2 and 4 are captured
	assert.Equal(t, 3, rec.Frames())
	require.Len(t, w.frames, 3)

	frame, err := jpeg.Decode(bytes.NewReader(w.frames[0]))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 30), frame.Bounds())

	// the final state after tick 4 was already captured
	rec.Capture(sim.Tick(), sim.Rows(), sim.Cols(), sim.OccupancyAt)
	assert.Equal(t, 3, rec.Frames())

	sim.Advance()
	rec.Capture(sim.Tick(), sim.Rows(), sim.Cols(), sim.OccupancyAt)
	assert.Equal(t, 4, rec.Frames())
}

func TestRecorderStopsOnError(t *testing.T) {
	w := &memoryWriter{err: errors.New("disk full")}
	rec := newRecorder(w, 10, 10, 1, 80)

	empty := func(grain.Cell) (grain.Occupant, bool) { return grain.Occupant{}, false }
	rec.Capture(1, 10, 10, empty)
	require.ErrorContains(t, rec.Err(), "disk full")

	w.err = nil
	rec.Capture(2, 10, 10, empty)
	assert.Empty(t, w.frames)
	assert.Equal(t, 0, rec.Frames())

	err := rec.Close()
	assert.True(t, w.closed, "video is finalized after a failed frame")
	assert.ErrorContains(t, err, "disk full")
}

func TestRecorderClose(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		w := &memoryWriter{}
		rec := newRecorder(w, 10, 10, 1, 80)
		require.NoError(t, rec.Close())
		assert.True(t, w.closed)
	})

	t.Run("close error", func(t *testing.T) {
		w := &memoryWriter{closeErr: errors.New("bad index")}
		rec := newRecorder(w, 10, 10, 1, 80)
		err := rec.Close()
		assert.True(t, w.closed)
		assert.ErrorContains(t, err, "finalize video: bad index")
	})
}

func TestAddLabel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 20))
	addLabel(img, 2, 13, "tick 1", color.RGBA{255, 255, 255, 255})

	lit := 0
	for y := range 20 {
		for x := range 60 {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
}
