package performance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// RenderGrowthChart renders a PNG line chart of the estimated growth curve.
func RenderGrowthChart(points []models.GrowthPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	valueY := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Date
		valueY[i] = p.Value
	}

	valueSeries := chart.TimeSeries{
		Name: "Estimated Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: valueY,
	}

	return renderTimeChart("Portfolio Growth (estimated)", []chart.Series{valueSeries}, func(f float64) string {
		return fmt.Sprintf("%.0fk", f/1000)
	})
}

// RenderDrawdownChart renders a PNG of the drawdown series in percent.
func RenderDrawdownChart(points []models.SeriesPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	ddY := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Date
		ddY[i] = p.Value
	}

	ddSeries := chart.TimeSeries{
		Name: "Drawdown",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("dc2626"), // red-600
			FillColor:   drawing.ColorFromHex("fecaca"), // red-200
			StrokeWidth: 1.5,
		},
		XValues: xValues,
		YValues: ddY,
	}

	return renderTimeChart("Drawdown from Peak", []chart.Series{ddSeries}, func(f float64) string {
		return fmt.Sprintf("%.0f%%", f)
	})
}

func renderTimeChart(title string, series []chart.Series, yFormat func(float64) string) ([]byte, error) {
	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return yFormat(f)
				}
				return ""
			},
		},
		Series: series,
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
