package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "run.json", `{
		"name": "fixed asymptote sweep",
		"n": 50,
		"seed": 2026,
		"asymptote": {"fixed": 0.7},
		"mid": {"dist": {"family": "normal", "mean": 0, "sd": 3}}
	}`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.N != 50 || sc.Name != "fixed asymptote sweep" {
		t.Errorf("unexpected scenario: %+v", sc)
	}
	if sc.Seed == nil || *sc.Seed != 2026 {
		t.Errorf("seed = %v, want 2026", sc.Seed)
	}
	if sc.Asymptote == nil || sc.Asymptote.Fixed == nil || *sc.Asymptote.Fixed != 0.7 {
		t.Errorf("asymptote = %+v, want fixed 0.7", sc.Asymptote)
	}
	if !sc.Specs().Asymptote.IsFixed() {
		t.Error("asymptote spec should be fixed")
	}
	if sc.Specs().Scale.IsFixed() {
		t.Error("unset scale spec should not be fixed")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "run.yaml", `
name: beta ceiling
n: 40
scale:
  dist:
    family: beta
    alpha: 2
    beta: 1
times:
  from: -5
  to: 5
`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.N != 40 {
		t.Errorf("n = %d, want 40", sc.N)
	}
	want := []float64{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5}
	if diff := cmp.Diff(want, sc.TimeValues()); diff != "" {
		t.Errorf("TimeValues mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeTemp(t, "run.toml", `n = 4`)
	if _, err := Load(path); err == nil {
		t.Error("Load succeeded for .toml, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"minimal", `{"n": 1}`, false},
		{"zero n", `{"n": 0}`, true},
		{"negative n", `{"n": -3}`, true},
		{"fixed and dist", `{"n": 1, "mid": {"fixed": 1, "dist": {"family": "normal", "mean": 0, "sd": 1}}}`, true},
		{"normal missing sd", `{"n": 1, "mid": {"dist": {"family": "normal", "mean": 0}}}`, true},
		{"beta missing alpha", `{"n": 1, "asymptote": {"dist": {"family": "beta", "beta": 1}}}`, true},
		{"unknown family", `{"n": 1, "scale": {"dist": {"family": "gamma", "mean": 1, "sd": 1}}}`, true},
		{"times from after to", `{"n": 1, "times": {"from": 5, "to": -5}}`, true},
		{"times bad step", `{"n": 1, "times": {"from": 0, "to": 5, "step": 0}}`, true},
		{"times values and range", `{"n": 1, "times": {"values": [1, 2], "from": 0, "to": 5}}`, true},
		{"times missing to", `{"n": 1, "times": {"from": 0}}`, true},
		{"explicit values", `{"n": 1, "times": {"values": [0, 0.5, 1]}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseJSON error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeValuesDefaults(t *testing.T) {
	sc := &Scenario{N: 1}
	got := sc.TimeValues()
	if len(got) != 21 || got[0] != -10 || got[20] != 10 {
		t.Errorf("default times = %v", got)
	}
}

func TestTimeValuesStep(t *testing.T) {
	from, to, step := 0.0, 1.0, 0.25
	sc := &Scenario{N: 1, Times: &TimeGrid{From: &from, To: &to, Step: &step}}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if diff := cmp.Diff(want, sc.TimeValues()); diff != "" {
		t.Errorf("TimeValues mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverSeeded(t *testing.T) {
	seed := uint64(77)
	sc := &Scenario{N: 3, Seed: &seed}

	a, err := sc.Resolver().Batch(sc.N, sc.TimeValues(), sc.Specs())
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	b, err := sc.Resolver().Batch(sc.N, sc.TimeValues(), sc.Specs())
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}

	for i := range a.Curves {
		if a.Curves[i].Params != b.Curves[i].Params {
			t.Errorf("curve %d triples differ under the same seed", i)
		}
	}
}
