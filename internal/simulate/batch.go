package simulate

import (
	"fmt"

	"github.com/banshee-data/growthcurve/internal/logistic"
)

// Batch generates n independent curves under the same specs and time grid.
// Draws are consumed in curve order (curve 1's mid/asymptote/scale, then
// curve 2's, and so on), sharing the resolver's single advancing source.
// Each curve is tagged with a 1-based sim identifier. Any single curve's
// resolution failure fails the whole call; there is no partial batch.
func (r *Resolver) Batch(n int, times []float64, specs Specs) (logistic.Batch, error) {
	if n < 1 {
		return logistic.Batch{}, fmt.Errorf("batch count must be a positive integer, got %d", n)
	}
	curves := make([]logistic.Curve, 0, n)
	for sim := 1; sim <= n; sim++ {
		p, err := r.Resolve(specs)
		if err != nil {
			return logistic.Batch{}, fmt.Errorf("curve %d: %w", sim, err)
		}
		c := logistic.Evaluate(p, times)
		c.Sim = sim
		for i := range c.Points {
			c.Points[i].Sim = sim
		}
		curves = append(curves, c)
	}
	return logistic.Batch{Curves: curves}, nil
}
