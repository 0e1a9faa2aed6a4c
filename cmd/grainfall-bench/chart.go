package main

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// fillCurve samples how a single run fills the grid.
type fillCurve struct {
	Ticks    []float64
	Occupied []float64 // percent of cells
	Active   []float64
}

func (c *fillCurve) Add(tick int, occupiedPercent float64, active int) {
	c.Ticks = append(c.Ticks, float64(tick))
	c.Occupied = append(c.Occupied, occupiedPercent)
	c.Active = append(c.Active, float64(active))
}

// Render writes the curve as a PNG line chart: occupancy on the left axis and
// active particles on the right one.
func (c *fillCurve) Render(w io.Writer) error {
	if len(c.Ticks) < 2 {
		return fmt.Errorf("fill curve needs at least 2 samples, got %d", len(c.Ticks))
	}

	graph := chart.Chart{
		Width:  960,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "tick",
			Style: chart.Style{
				FontSize: 10.0,
			},
			ValueFormatter: func(v any) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name: "occupied %",
			Style: chart.Style{
				FontSize: 10.0,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		YAxisSecondary: chart.YAxis{
			Name: "active",
			Style: chart.Style{
				FontSize: 10.0,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Occupied cells",
				XValues: c.Ticks,
				YValues: c.Occupied,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "Active particles",
				YAxis:   chart.YAxisSecondary,
				XValues: c.Ticks,
				YValues: c.Active,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 255, G: 0, B: 0, A: 255},
					StrokeWidth: 2.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
