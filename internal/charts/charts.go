// Package charts renders the report's two PNG charts from an evaluated
// measurement table.
package charts

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"reportengine.dev/internal/dataset"
)

const histogramBins = 10

const (
	chartWidth  = 1024
	chartHeight = 512
)

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func limitLineStyle() chart.Style {
	return chart.Style{
		StrokeWidth:     1.5,
		StrokeColor:     drawing.ColorRed,
		StrokeDashArray: []float64{5.0, 5.0},
	}
}

// WriteHistogram renders a fixed 10-bin distribution of the value column and
// writes it as a PNG to path.
func WriteHistogram(t dataset.Table, path string) error {
	if len(t) == 0 {
		return fmt.Errorf("render histogram: empty table")
	}

	min, max := t[0].Value, t[0].Value
	for _, row := range t {
		if row.Value < min {
			min = row.Value
		}
		if row.Value > max {
			max = row.Value
		}
	}
	width := (max - min) / histogramBins
	if width == 0 {
		// All values identical; spread a unit-wide span so bins stay distinct.
		min -= 0.5
		width = 1.0 / histogramBins
	}

	counts := make([]float64, histogramBins)
	for _, row := range t {
		bin := int((row.Value - min) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	centers := make([]float64, histogramBins)
	for i := range centers {
		centers[i] = min + width*(float64(i)+0.5)
	}

	ch := chart.Chart{
		Title:  "Measurement Distribution",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Value"},
		YAxis:  chart.YAxis{Name: "Count"},
		Series: []chart.Series{
			chart.HistogramSeries{
				InnerSeries: chart.ContinuousSeries{
					XValues: centers,
					YValues: counts,
				},
			},
		},
	}

	return renderPNG(ch, path)
}

// WriteScatter renders value against row order with sample_id tick labels and
// dashed horizontal reference lines at the first row's limits, then writes it
// as a PNG to path.
//
// Known limitation carried over from the report's original layout: the limit
// lines come from the first row only, so datasets with per-row limits show a
// single shared band.
func WriteScatter(t dataset.Table, path string) error {
	if len(t) == 0 {
		return fmt.Errorf("render scatter: empty table")
	}

	xs := make([]float64, len(t))
	ys := make([]float64, len(t))
	ticks := make([]chart.Tick, 0, len(t))
	for i, row := range t {
		xs[i] = float64(i)
		ys[i] = row.Value
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: row.SampleID})
	}

	xRange := &chart.ContinuousRange{Min: -0.5, Max: float64(len(t)) - 0.5}
	lower := t[0].LowerLimit
	upper := t[0].UpperLimit

	ch := chart.Chart{
		Title:  "Value vs Sample ID",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:      "Sample ID",
			Ticks:     ticks,
			Range:     xRange,
			TickStyle: chart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: chart.YAxis{Name: "Value"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Value",
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(drawing.ColorBlue),
			},
			chart.ContinuousSeries{
				Name:    "Lower Limit",
				XValues: []float64{xRange.Min, xRange.Max},
				YValues: []float64{lower, lower},
				Style:   limitLineStyle(),
			},
			chart.ContinuousSeries{
				Name:    "Upper Limit",
				XValues: []float64{xRange.Min, xRange.Max},
				YValues: []float64{upper, upper},
				Style:   limitLineStyle(),
			},
		},
	}

	return renderPNG(ch, path)
}

func renderPNG(ch chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := ch.Render(chart.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}
