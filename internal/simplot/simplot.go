// Package simplot renders PNG diagnostics for simulated curve batches:
// spaghetti plots of the curve family and a histogram of per-curve minimum
// proportions for parameter-sensitivity checks.
package simplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/growthcurve/internal/logistic"
)

// legendMax caps the legend size; larger families render without one.
const legendMax = 12

// CurveFamily plots every curve in the batch as one line over time and
// saves the result as a PNG. Non-finite proportions (degenerate scale
// draws) are skipped point-wise rather than breaking the whole plot.
func CurveFamily(b logistic.Batch, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time"
	p.Y.Label.Text = "proportion"

	colors := generateColors(len(b.Curves))

	for i, c := range b.Curves {
		pts := make(plotter.XYs, 0, len(c.Points))
		for _, s := range c.Points {
			if math.IsNaN(s.Proportion) || math.IsInf(s.Proportion, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: s.Time, Y: s.Proportion})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("curve %d: %w", c.Sim, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		if len(b.Curves) <= legendMax {
			p.Legend.Add(fmt.Sprintf("sim %d", c.Sim), line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save curve family plot: %w", err)
	}
	return nil
}

// MinHistogram plots the distribution of per-curve minimum proportions.
func MinHistogram(b logistic.Batch, title, path string) error {
	vals := make(plotter.Values, 0, len(b.Curves))
	for _, v := range b.MinProportions() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return fmt.Errorf("no finite minimum proportions to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "min proportion"
	p.Y.Label.Text = "count"

	bins := 16
	if len(vals) < bins {
		bins = len(vals)
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	p.Add(h)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save min proportion histogram: %w", err)
	}
	return nil
}

// generateColors creates a palette of distinct colors for curve lines.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
