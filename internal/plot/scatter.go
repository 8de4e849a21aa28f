// Package plot renders metric pairs as PNG scatter plots with their fitted line.
package plot

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/cfbstats/internal/analysis"
)

// Figure describes one scatter plot.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Sample analysis.Sample
	Fit    analysis.FitResult

	// Width and Height in pixels; zero selects 800x600.
	Width  int
	Height int
	// Decimals used for the r annotation.
	Decimals int
}

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// pointStyle renders markers only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Scatter renders fig as a PNG image.
func Scatter(fig Figure) ([]byte, error) {
	s := fig.Sample
	if s.Len() == 0 || len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("scatter: need a non-empty sample with matching lengths, got %d/%d", len(s.X), len(s.Y))
	}
	w, h := fig.Width, fig.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	xLo, xHi := analysis.Bounds(s.X)
	yLo, yHi := analysis.Bounds(s.Y)
	lineY := []float64{fig.Fit.Predict(xLo), fig.Fit.Predict(xHi)}
	for _, v := range lineY {
		yLo = math.Min(yLo, v)
		yHi = math.Max(yHi, v)
	}
	xr := padRange(xLo, xHi)
	yr := padRange(yLo, yHi)

	label := fig.Fit.RLabel(fig.Decimals)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Teams",
			XValues: s.X,
			YValues: s.Y,
			Style:   pointStyle(chart.ColorBlue),
		},
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("Line of Best Fit (r=%.*f)", fig.Decimals, fig.Fit.R),
			XValues: []float64{xLo, xHi},
			YValues: lineY,
			Style: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
		},
		chart.AnnotationSeries{
			Annotations: []chart.Value2{{XValue: xHi, YValue: lineY[1], Label: label}},
		},
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: &chart.ContinuousRange{Min: xr[0], Max: xr[1]},
			Ticks: niceTicks(xr[0], xr[1], 6),
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel,
			Range: &chart.ContinuousRange{Min: yr[0], Max: yr[1]},
			Ticks: niceTicks(yr[0], yr[1], 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// padRange widens [lo, hi] by 5% on each side; a degenerate range gets unit padding.
func padRange(lo, hi float64) [2]float64 {
	span := hi - lo
	if span <= 0 {
		return [2]float64{lo - 1, hi + 1}
	}
	pad := span * 0.05
	return [2]float64{lo - pad, hi + pad}
}

// niceTicks generates up to n tick marks between [min, max] using 1/2/2.5/5 increments.
// Ticks outside the range are dropped so the axis range stays as given.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	var ticks []chart.Tick
	for v := math.Ceil(min/bestStep) * bestStep; v <= max; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, bestStep)})
		if len(ticks) > n+2 {
			break
		}
	}
	if len(ticks) < 2 {
		return nil
	}
	return ticks
}

func formatTick(v, step float64) string {
	if math.Abs(v) < step/1e6 {
		return "0"
	}
	if step >= 1 {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	prec := int(math.Ceil(-math.Log10(step)))
	if step*math.Pow(10, float64(prec)) != math.Round(step*math.Pow(10, float64(prec))) {
		prec++
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
