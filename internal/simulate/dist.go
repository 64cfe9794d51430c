package simulate

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Family names a supported distribution family.
type Family string

const (
	FamilyNormal Family = "normal"
	FamilyBeta   Family = "beta"
)

// Dist describes one probability distribution to sample a parameter from.
// Mu/Sigma apply to the normal family, Alpha/Beta to the beta family.
type Dist struct {
	Family Family

	Mu    float64
	Sigma float64

	Alpha float64
	Beta  float64
}

// Normal returns a normal distribution descriptor.
func Normal(mu, sigma float64) Dist {
	return Dist{Family: FamilyNormal, Mu: mu, Sigma: sigma}
}

// Beta returns a beta distribution descriptor.
func Beta(alpha, beta float64) Dist {
	return Dist{Family: FamilyBeta, Alpha: alpha, Beta: beta}
}

// Default distributions for parameters without an explicit spec. These are
// the published reference configuration and must not drift.
var (
	DefaultMid       = Normal(0, 3)
	DefaultAsymptote = Beta(2, 1)
	DefaultScale     = Normal(2, 0.5)
)

// Validate reports invalid distribution parameters before any sampling
// happens, so a bad configuration surfaces as an error rather than a
// panic inside gonum.
func (d Dist) Validate() error {
	switch d.Family {
	case FamilyNormal:
		if d.Sigma < 0 {
			return fmt.Errorf("normal: standard deviation must be non-negative, got %g", d.Sigma)
		}
	case FamilyBeta:
		if d.Alpha <= 0 || d.Beta <= 0 {
			return fmt.Errorf("beta: shape parameters must be positive, got alpha=%g beta=%g", d.Alpha, d.Beta)
		}
	default:
		return fmt.Errorf("unknown distribution family %q", d.Family)
	}
	return nil
}

// rander builds the gonum sampler for this descriptor, drawing from src.
// A nil src falls through to the process-global generator.
func (d Dist) rander(src rand.Source) (distuv.Rander, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch d.Family {
	case FamilyNormal:
		return distuv.Normal{Mu: d.Mu, Sigma: d.Sigma, Src: src}, nil
	case FamilyBeta:
		return distuv.Beta{Alpha: d.Alpha, Beta: d.Beta, Src: src}, nil
	}
	return nil, fmt.Errorf("unknown distribution family %q", d.Family)
}
