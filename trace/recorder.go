// Package trace is a development-time aid for inspecting a simulation
// run: it records (t, V) samples during an Integrator's advance and
// renders them to a PNG line chart, mirroring the teacher's
// charts.Record/Charts.Render pair but built on gonum's plotting
// stack rather than an HTML-dashboard library, since only gonum is a
// direct dependency of this module.
package trace

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Recorder accumulates one sample per traced CV per call to Sample.
type Recorder struct {
	labels []string
	times  []float64
	series [][]float64 // series[cv][sampleIndex]
}

// NewRecorder returns a Recorder for the named CVs. labels is used
// only for the chart legend; its length fixes the number of series
// Sample expects.
func NewRecorder(labels []string) *Recorder {
	return &Recorder{
		labels: append([]string(nil), labels...),
		series: make([][]float64, len(labels)),
	}
}

// Sample appends one (t, v) row. v must have the same length as the
// labels passed to NewRecorder.
func (r *Recorder) Sample(t float64, v []float64) error {
	if len(v) != len(r.series) {
		return fmt.Errorf("trace: sample width %d does not match recorder width %d", len(v), len(r.series))
	}
	r.times = append(r.times, t)
	for i, x := range v {
		r.series[i] = append(r.series[i], x)
	}
	return nil
}

// Reset drops every recorded sample without discarding the label set.
func (r *Recorder) Reset() {
	r.times = r.times[:0]
	for i := range r.series {
		r.series[i] = r.series[i][:0]
	}
}

// RenderPNG writes a voltage-vs-time line chart to path.
func (r *Recorder) RenderPNG(path, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t (ms)"
	p.Y.Label.Text = "V (mV)"

	for i, label := range r.labels {
		pts := make(plotter.XYs, len(r.times))
		for j, t := range r.times {
			pts[j].X = t
			pts[j].Y = r.series[i][j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("trace: building line for %s: %w", label, err)
		}
		p.Add(line)
		p.Legend.Add(label, line)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
