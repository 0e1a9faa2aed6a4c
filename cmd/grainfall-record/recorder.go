package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/plus3/grainfall/grain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	background = color.RGBA{0, 0, 0, 255}
	labelColor = color.RGBA{255, 255, 255, 255}
)

// frameWriter receives encoded JPEG frames. mjpeg.AviWriter satisfies it.
type frameWriter interface {
	AddFrame(jpegData []byte) error
	Close() error
}

// occupancyFunc looks up the particle covering a cell.
type occupancyFunc func(grain.Cell) (grain.Occupant, bool)

// recorder renders grid states into JPEG frames. The first error stops
// further recording and is reported by Err.
type recorder struct {
	writer    frameWriter
	img       *image.RGBA
	blockSize int
	options   *jpeg.Options
	buf       bytes.Buffer

	frames   int
	lastTick int
	err      error
}

func newRecorder(writer frameWriter, width, height, blockSize, quality int) *recorder {
	return &recorder{
		writer:    writer,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		blockSize: blockSize,
		options:   &jpeg.Options{Quality: quality},
		lastTick:  -1,
	}
}

// Capture renders and writes one frame. A tick already captured is skipped.
func (r *recorder) Capture(tick, rows, cols int, at occupancyFunc) {
	if r.err != nil || tick == r.lastTick {
		return
	}
	r.lastTick = tick

	renderFrame(r.img, rows, cols, r.blockSize, at)
	addLabel(r.img, 4, 13, fmt.Sprintf("tick %d", tick), labelColor)

	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.img, r.options); err != nil {
		r.err = fmt.Errorf("encode tick %d: %w", tick, err)
		return
	}
	if err := r.writer.AddFrame(r.buf.Bytes()); err != nil {
		r.err = fmt.Errorf("add frame for tick %d: %w", tick, err)
		return
	}
	r.frames++
}

func (r *recorder) Frames() int { return r.frames }
func (r *recorder) Err() error { return r.err }

// Close finalizes the video even after a failed capture, so the frames
// written so far stay playable. It returns the capture error, if any, joined
// with the close error.
func (r *recorder) Close() error {
	var closeErr error
	if err := r.writer.Close(); err != nil {
		closeErr = fmt.Errorf("finalize video: %w", err)
	}
	return errors.Join(r.err, closeErr)
}

// renderFrame paints every occupied cell as a block of its particle color.
// Columns run along x and rows along y; cells outside img are clipped.
func renderFrame(img *image.RGBA, rows, cols, blockSize int, at occupancyFunc) {
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for row := range rows {
		for col := range cols {
			occ, ok := at(grain.Cell{Row: row, Col: col})
			if !ok {
				continue
			}
			rect := image.Rect(col*blockSize, row*blockSize, (col+1)*blockSize, (row+1)*blockSize)
			draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(occ.Color()), image.Point{}, draw.Src)
		}
	}
}

// addLabel draws text with its baseline at (x, y).
func addLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

// captureSystem queues a capture every Every ticks. The capture is deferred
// until the tick's spawns and settles have been applied and is labelled with
// the number of completed ticks.
type captureSystem struct {
	Every    int
	Recorder *recorder
}

func (c *captureSystem) Execute(frame *grain.UpdateFrame) {
	if frame.Tick%c.Every != 0 {
		return
	}

	tick, world := frame.Tick+1, frame.World
	frame.Commands.Defer(func() {
		c.Recorder.Capture(tick, world.Grid.Rows(), world.Grid.Cols(), world.OccupancyAt)
	})
}
