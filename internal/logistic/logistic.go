// Package logistic evaluates three-parameter logistic growth curves.
//
// The model describes a proportion as a sigmoidal function of time:
//
//	proportion(t) = asymptote / (1 + exp((mid - t) / scale))
//
// The output is not clamped to [0,1]; parameter draws outside the usual
// ranges produce values outside that interval, and degenerate parameters
// (scale = 0) produce the corresponding IEEE-754 results, including NaN.
package logistic

import "math"

// Params is one resolved parameter triple. It is immutable for the
// lifetime of a curve evaluation.
type Params struct {
	Mid       float64 // time of steepest change
	Asymptote float64 // ceiling as t -> +inf
	Scale     float64 // steepness; sign controls direction
}

// Point is one evaluated sample. Each point carries copies of its owning
// curve's parameters and the per-curve minimum proportion so the flat
// point table is self-describing for downstream plotting and export.
type Point struct {
	Sim           int     `json:"sim"`
	Time          float64 `json:"time"`
	Proportion    float64 `json:"proportion"`
	Asymptote     float64 `json:"asymptote"`
	Scale         float64 `json:"scale"`
	Mid           float64 `json:"mid"`
	MinProportion float64 `json:"min_proportion"`
}

// Curve is the ordered evaluation of one parameter triple over one time
// grid. Sim is 0 for a standalone curve and 1-based inside a batch.
type Curve struct {
	Sim    int
	Params Params
	Points []Point
}

// Batch is an ordered collection of independently generated curves.
type Batch struct {
	Curves []Curve
}

// Proportion evaluates the logistic formula at a single time value.
// No clamping and no special cases: scale = 0 drives the exponent to
// +/-Inf (or NaN when t == mid exactly) per IEEE-754 division rules.
func Proportion(p Params, t float64) float64 {
	return p.Asymptote / (1 + math.Exp((p.Mid-t)/p.Scale))
}

// Evaluate produces the ordered point sequence for one resolved triple.
// MinProportion is computed over the whole curve and copied into every
// point; a NaN proportion anywhere makes the minimum NaN as well.
func Evaluate(p Params, times []float64) Curve {
	pts := make([]Point, len(times))
	min := math.Inf(1)
	for i, t := range times {
		v := Proportion(p, t)
		min = math.Min(min, v)
		pts[i] = Point{
			Time:       t,
			Proportion: v,
			Asymptote:  p.Asymptote,
			Scale:      p.Scale,
			Mid:        p.Mid,
		}
	}
	for i := range pts {
		pts[i].MinProportion = min
	}
	return Curve{Params: p, Points: pts}
}

// DefaultTimes returns the reference time grid: integers -10 through 10.
func DefaultTimes() []float64 {
	times := make([]float64, 0, 21)
	for t := -10; t <= 10; t++ {
		times = append(times, float64(t))
	}
	return times
}

// Points flattens the batch into one point table, preserving repetition
// order and, within each repetition, time order.
func (b Batch) Points() []Point {
	n := 0
	for _, c := range b.Curves {
		n += len(c.Points)
	}
	pts := make([]Point, 0, n)
	for _, c := range b.Curves {
		pts = append(pts, c.Points...)
	}
	return pts
}

// MinProportions returns the per-curve minimum proportion in batch order,
// the summary used to diagnose parameter sensitivity.
func (b Batch) MinProportions() []float64 {
	mins := make([]float64, len(b.Curves))
	for i, c := range b.Curves {
		if len(c.Points) > 0 {
			mins[i] = c.Points[0].MinProportion
		} else {
			mins[i] = math.NaN()
		}
	}
	return mins
}
