package output

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []string{
	"2563eb", // blue-600
	"9ca3af", // gray-400
	"16a34a", // green-600
}

// RenderChart renders the document's series as a PNG line chart.
// Solid series are drawn first; dashed series are reference lines.
func RenderChart(doc *Document) ([]byte, error) {
	if len(doc.Series) == 0 {
		return nil, fmt.Errorf("%s has no chart series", doc.Title)
	}

	series := make([]chart.Series, 0, len(doc.Series))
	for i, s := range doc.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q has %d x values and %d y values", s.Name, len(s.X), len(s.Y))
		}
		if len(s.X) < 2 {
			return nil, fmt.Errorf("need at least 2 data points, got %d", len(s.X))
		}
		style := chart.Style{
			StrokeColor: drawing.ColorFromHex(seriesColors[i%len(seriesColors)]),
			StrokeWidth: 2.5,
		}
		if s.Dashed {
			style.StrokeWidth = 1.5
			style.StrokeDashArray = []float64{5.0, 3.0}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: s.X,
			YValues: s.Y,
		})
	}

	graph := chart.Chart{
		Title:  doc.Title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           doc.XLabel,
			ValueFormatter: xFormatter(doc.XLabels),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: series,
	}
	if len(doc.XLabels) > 0 {
		ticks := make([]chart.Tick, len(doc.XLabels))
		for i, label := range doc.XLabels {
			ticks[i] = chart.Tick{Value: float64(i), Label: label}
		}
		graph.XAxis.Ticks = ticks
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// xFormatter prints whole x values, or the matching label when the axis is
// categorical.
func xFormatter(labels []string) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		i := int(math.Round(f))
		if len(labels) > 0 {
			if i >= 0 && i < len(labels) {
				return labels[i]
			}
			return ""
		}
		return fmt.Sprintf("%d", i)
	}
}
