// Package scenario loads and validates simulation run configurations from
// JSON or YAML files. Fields omitted from a file keep their defaults, so
// partial configs are safe: an unset parameter block means "draw from that
// parameter's default distribution".
package scenario

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/growthcurve/internal/logistic"
	"github.com/banshee-data/growthcurve/internal/simulate"
)

// maxFileSize caps scenario files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// DistConfig describes a distribution in a scenario file. Mean/SD apply to
// the normal family, Alpha/Beta to the beta family; the fields required by
// the named family must all be present.
type DistConfig struct {
	Family string   `json:"family" yaml:"family"`
	Mean   *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	SD     *float64 `json:"sd,omitempty" yaml:"sd,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta   *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
}

// ParamConfig configures one model parameter: exactly one of Fixed or Dist
// may be set. A nil ParamConfig (or one with neither field) selects the
// default distribution.
type ParamConfig struct {
	Fixed *float64    `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Dist  *DistConfig `json:"dist,omitempty" yaml:"dist,omitempty"`
}

// TimeGrid selects the evaluation times: either an explicit list of values
// or a From/To range with optional Step (default 1). Nil means the
// reference grid of integers -10..10.
type TimeGrid struct {
	From   *float64  `json:"from,omitempty" yaml:"from,omitempty"`
	To     *float64  `json:"to,omitempty" yaml:"to,omitempty"`
	Step   *float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// Scenario is one batch-simulation configuration.
type Scenario struct {
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	N    int     `json:"n" yaml:"n"`
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	Times *TimeGrid `json:"times,omitempty" yaml:"times,omitempty"`

	Mid       *ParamConfig `json:"mid,omitempty" yaml:"mid,omitempty"`
	Asymptote *ParamConfig `json:"asymptote,omitempty" yaml:"asymptote,omitempty"`
	Scale     *ParamConfig `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Load reads a scenario from a .json, .yaml, or .yml file and validates it.
func Load(path string) (*Scenario, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch ext := filepath.Ext(cleanPath); ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("scenario file must be .json, .yaml, or .yml, got %q", ext)
	}
}

// ParseJSON decodes and validates a JSON scenario document.
func ParseJSON(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseYAML decodes and validates a YAML scenario document.
func ParseYAML(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks structural constraints: positive n, a coherent time grid,
// and at most one of fixed/dist per parameter with complete distribution
// parameters for the named family.
func (s *Scenario) Validate() error {
	if s.N < 1 {
		return fmt.Errorf("n must be a positive integer, got %d", s.N)
	}
	if s.Times != nil {
		if err := s.Times.validate(); err != nil {
			return fmt.Errorf("times: %w", err)
		}
	}
	for _, pc := range []struct {
		name string
		cfg  *ParamConfig
	}{
		{"mid", s.Mid},
		{"asymptote", s.Asymptote},
		{"scale", s.Scale},
	} {
		if pc.cfg == nil {
			continue
		}
		if err := pc.cfg.validate(); err != nil {
			return fmt.Errorf("%s: %w", pc.name, err)
		}
	}
	return nil
}

func (g *TimeGrid) validate() error {
	if len(g.Values) > 0 {
		if g.From != nil || g.To != nil || g.Step != nil {
			return fmt.Errorf("values and from/to/step are mutually exclusive")
		}
		return nil
	}
	if g.From == nil || g.To == nil {
		return fmt.Errorf("both from and to are required when values is empty")
	}
	if *g.From > *g.To {
		return fmt.Errorf("from (%g) must not exceed to (%g)", *g.From, *g.To)
	}
	if g.Step != nil && *g.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", *g.Step)
	}
	return nil
}

func (p *ParamConfig) validate() error {
	if p.Fixed != nil && p.Dist != nil {
		return fmt.Errorf("fixed and dist are mutually exclusive")
	}
	if p.Dist == nil {
		return nil
	}
	switch simulate.Family(p.Dist.Family) {
	case simulate.FamilyNormal:
		if p.Dist.Mean == nil || p.Dist.SD == nil {
			return fmt.Errorf("normal distribution requires mean and sd")
		}
	case simulate.FamilyBeta:
		if p.Dist.Alpha == nil || p.Dist.Beta == nil {
			return fmt.Errorf("beta distribution requires alpha and beta")
		}
	default:
		return fmt.Errorf("unknown distribution family %q", p.Dist.Family)
	}
	return nil
}

// Specs converts the scenario's parameter blocks into resolver specs.
// Validate must have passed first.
func (s *Scenario) Specs() simulate.Specs {
	return simulate.Specs{
		Mid:       paramSpec(s.Mid),
		Asymptote: paramSpec(s.Asymptote),
		Scale:     paramSpec(s.Scale),
	}
}

func paramSpec(p *ParamConfig) simulate.ParamSpec {
	if p == nil {
		return simulate.ParamSpec{}
	}
	if p.Fixed != nil {
		return simulate.Fixed(*p.Fixed)
	}
	if p.Dist == nil {
		return simulate.ParamSpec{}
	}
	switch simulate.Family(p.Dist.Family) {
	case simulate.FamilyBeta:
		return simulate.Draw(simulate.Beta(*p.Dist.Alpha, *p.Dist.Beta))
	default:
		return simulate.Draw(simulate.Normal(*p.Dist.Mean, *p.Dist.SD))
	}
}

// TimeValues materialises the scenario's time grid, defaulting to the
// reference integers -10..10 when no grid is configured.
func (s *Scenario) TimeValues() []float64 {
	if s.Times == nil {
		return logistic.DefaultTimes()
	}
	if len(s.Times.Values) > 0 {
		out := make([]float64, len(s.Times.Values))
		copy(out, s.Times.Values)
		return out
	}
	from, to := *s.Times.From, *s.Times.To
	step := 1.0
	if s.Times.Step != nil {
		step = *s.Times.Step
	}
	// Compute the count up front so accumulated float error cannot drop
	// the final grid point.
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, from+float64(i)*step)
	}
	return out
}

// Resolver builds the resolver for this scenario: seeded when a seed is
// configured, otherwise non-reproducible.
func (s *Scenario) Resolver() *simulate.Resolver {
	if s.Seed != nil {
		return simulate.NewSeededResolver(*s.Seed)
	}
	return simulate.NewResolver(nil)
}
