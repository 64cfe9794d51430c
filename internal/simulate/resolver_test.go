package simulate

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestResolveAllFixed(t *testing.T) {
	r := NewSeededResolver(1)
	specs := Specs{
		Mid:       Fixed(-1.5),
		Asymptote: Fixed(0.7),
		Scale:     Fixed(2),
	}

	p, err := r.Resolve(specs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Mid != -1.5 || p.Asymptote != 0.7 || p.Scale != 2 {
		t.Errorf("resolved %+v, want {-1.5 0.7 2}", p)
	}
}

func TestResolveFixedSkipsSource(t *testing.T) {
	// resolving all-fixed specs must not advance the source: the next
	// draw equals the first draw of a freshly seeded resolver
	const seed = 42
	r := NewSeededResolver(seed)
	if _, err := r.Resolve(Specs{Mid: Fixed(0), Asymptote: Fixed(1), Scale: Fixed(1)}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	next, err := r.Resolve(Specs{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	fresh, err := NewSeededResolver(seed).Resolve(Specs{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if next != fresh {
		t.Errorf("fixed resolution consumed randomness: %+v vs %+v", next, fresh)
	}
}

func TestResolveDrawOrder(t *testing.T) {
	// draws are consumed mid, asymptote, scale against one shared source
	const seed = 7
	r := NewSeededResolver(seed)
	p, err := r.Resolve(Specs{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	src := rand.NewPCG(seed, seed)
	wantMid := distuv.Normal{Mu: 0, Sigma: 3, Src: src}.Rand()
	wantAsym := distuv.Beta{Alpha: 2, Beta: 1, Src: src}.Rand()
	wantScale := distuv.Normal{Mu: 2, Sigma: 0.5, Src: src}.Rand()

	if p.Mid != wantMid || p.Asymptote != wantAsym || p.Scale != wantScale {
		t.Errorf("resolved %+v, want {%v %v %v}", p, wantMid, wantAsym, wantScale)
	}
}

func TestResolveDefaultAsymptoteRange(t *testing.T) {
	// the default Beta(2,1) draw is a proper proportion
	r := NewSeededResolver(99)
	for i := 0; i < 200; i++ {
		p, err := r.Resolve(Specs{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if p.Asymptote < 0 || p.Asymptote > 1 {
			t.Fatalf("draw %d: asymptote %v outside [0,1]", i, p.Asymptote)
		}
	}
}

func TestResolveReproducible(t *testing.T) {
	a := NewSeededResolver(1234)
	b := NewSeededResolver(1234)
	for i := 0; i < 100; i++ {
		pa, err := a.Resolve(Specs{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		pb, err := b.Resolve(Specs{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if pa != pb {
			t.Fatalf("draw %d diverged: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestResolveInvalidDistributions(t *testing.T) {
	tests := []struct {
		name  string
		specs Specs
	}{
		{"negative sd", Specs{Mid: Draw(Normal(0, -1))}},
		{"zero alpha", Specs{Asymptote: Draw(Beta(0, 1))}},
		{"negative beta", Specs{Asymptote: Draw(Beta(2, -3))}},
		{"unknown family", Specs{Scale: Draw(Dist{Family: "cauchy"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSeededResolver(1).Resolve(tt.specs); err == nil {
				t.Error("Resolve succeeded, want error")
			}
		})
	}
}

func TestDistValidate(t *testing.T) {
	tests := []struct {
		name    string
		dist    Dist
		wantErr bool
	}{
		{"normal ok", Normal(0, 3), false},
		{"normal zero sd", Normal(5, 0), false},
		{"normal negative sd", Normal(0, -0.5), true},
		{"beta ok", Beta(2, 1), false},
		{"beta zero alpha", Beta(0, 1), true},
		{"beta negative beta", Beta(1, -1), true},
		{"empty family", Dist{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dist.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
