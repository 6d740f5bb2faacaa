// Package chart renders the recent-readings trend as a PNG bar chart,
// one bar per reading, colored by that reading's classification.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/coreybb/glucolog/guidance"
	"github.com/coreybb/glucolog/models"
	wchart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when fewer than MinPoints readings are
// available; a trend needs at least two entries to mean anything.
var ErrNotEnoughData = errors.New("not enough history to draw a trend")

// MinPoints is the minimum number of readings required to render a trend.
const MinPoints = 2

const (
	defaultWidth  = 900
	defaultHeight = 400
	barLabelTime  = "Jan 2 15:04"
)

// Bar colors by classification severity.
var (
	colorNormal     = drawing.Color{R: 44, G: 160, B: 44, A: 255}
	colorBorderline = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	colorOutOfRange = drawing.Color{R: 214, G: 39, B: 40, A: 255}
)

// TrendRenderer draws the blood sugar trend chart.
type TrendRenderer struct {
	width  int
	height int
}

// NewTrendRenderer creates a TrendRenderer with the default dimensions.
func NewTrendRenderer() *TrendRenderer {
	return &TrendRenderer{width: defaultWidth, height: defaultHeight}
}

// Render writes a PNG bar chart of the given readings, in chronological
// order, to w. It returns ErrNotEnoughData when fewer than MinPoints
// readings are provided.
func (t *TrendRenderer) Render(readings []models.Reading, w io.Writer) error {
	if len(readings) < MinPoints {
		return ErrNotEnoughData
	}

	bars := make([]wchart.Value, 0, len(readings))
	maxValue := 0.0
	for _, r := range readings {
		c := statusColor(guidance.ClassifyReading(r))
		bars = append(bars, wchart.Value{
			Value: r.Value,
			Label: r.Timestamp.Format(barLabelTime),
			Style: wchart.Style{
				FillColor:   c,
				StrokeColor: c,
				StrokeWidth: 1,
			},
		})
		if r.Value > maxValue {
			maxValue = r.Value
		}
	}

	graph := wchart.BarChart{
		Title:    "Blood Sugar Levels Trend",
		Width:    t.width,
		Height:   t.height,
		BarWidth: 60,
		Background: wchart.Style{
			Padding: wchart.Box{Top: 40},
		},
		YAxis: wchart.YAxis{
			Name: "Sugar Level (mg/dL)",
			Range: &wchart.ContinuousRange{
				Min: 0,
				Max: yAxisMax(maxValue),
			},
		},
		Bars: bars,
	}

	if err := graph.Render(wchart.PNG, w); err != nil {
		return fmt.Errorf("failed to render trend chart: %w", err)
	}
	return nil
}

// statusColor maps a classification to its bar color: green for normal,
// orange for borderline, red for anything out of range.
func statusColor(status guidance.Status) drawing.Color {
	switch status {
	case guidance.StatusNormal:
		return colorNormal
	case guidance.StatusBorderline:
		return colorBorderline
	default:
		return colorOutOfRange
	}
}

// yAxisMax gives the chart headroom above the tallest bar while keeping
// the normal band visually stable across renders.
func yAxisMax(maxValue float64) float64 {
	const floor = 200.0
	if maxValue*1.15 > floor {
		return maxValue * 1.15
	}
	return floor
}
