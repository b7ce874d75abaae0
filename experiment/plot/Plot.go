// Package plot renders learning curves as interactive HTML charts
package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/mbrl/experiment/trackers"
)

// DefaultWindow is the default smoothing window of plotted curves
const DefaultWindow = 5

// Smooth returns the centred moving average of y. Each point is the
// mean of the points at most window/2 positions away from it, so near
// the ends fewer points are averaged.
func Smooth(y []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("smooth: window must be > 0, have %d", window)
	}

	half := window / 2
	smoothed := make([]float64, len(y))
	for i := range y {
		lo, hi := i-half, i+half+1
		if lo < 0 {
			lo = 0
		}
		if hi > len(y) {
			hi = len(y)
		}
		smoothed[i] = stat.Mean(y[lo:hi], nil)
	}
	return smoothed, nil
}

// LearningCurves returns a line chart with one smoothed series per
// curve. All curves must share the same evaluation times.
func LearningCurves(title string, window int,
	curves ...trackers.Curve) (*charts.Line, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("learningCurves: no curves to plot")
	}

	times := curves[0].Times
	for _, curve := range curves[1:] {
		if len(curve.Times) != len(times) {
			return nil, fmt.Errorf("learningCurves: curve %q has %d "+
				"points, want %d", curve.Label, len(curve.Times), len(times))
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Timestep",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Mean return",
		}),
	)

	steps := make([]string, len(times))
	for i, t := range times {
		steps[i] = strconv.Itoa(t)
	}
	line = line.SetXAxis(steps)

	for _, curve := range curves {
		if len(curve.Returns) != len(times) {
			return nil, fmt.Errorf("learningCurves: curve %q has %d "+
				"returns for %d times", curve.Label, len(curve.Returns),
				len(times))
		}

		smoothed, err := Smooth(curve.Returns, window)
		if err != nil {
			return nil, fmt.Errorf("learningCurves: %w", err)
		}

		items := make([]opts.LineData, len(smoothed))
		for i, v := range smoothed {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(curve.Label, items)
	}

	return line, nil
}

// Render writes a page holding every chart in lines to w
func Render(w io.Writer, lines ...*charts.Line) error {
	page := components.NewPage()
	for _, line := range lines {
		page.AddCharts(line)
	}
	return page.Render(w)
}
