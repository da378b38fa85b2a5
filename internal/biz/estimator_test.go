package biz

import (
	"math"
	"testing"

	"antithetic/internal/rng"

	"github.com/yola1107/kratos/v2/errors"
)

// seqSampler replays vals cyclically and counts draws.
type seqSampler struct {
	vals  []float64
	draws int
}

func (s *seqSampler) Float64() float64 {
	v := s.vals[s.draws%len(s.vals)]
	s.draws++
	return v
}

func identity(x float64) float64 { return x }

func TestPlainKnownValues(t *testing.T) {
	s := &seqSampler{vals: []float64{0, 0.5}}
	got, err := Plain(identity, 2, s)
	if err != nil {
		t.Fatal(err)
	}
	want := Estimate{Mean: 0.25, StdErr: 0.25}
	if got != want {
		t.Fatalf("Plain = %+v, want %+v", got, want)
	}
}

func TestAntitheticKnownValues(t *testing.T) {
	// For f(x)=x every antithetic pair averages to exactly 1/2.
	s := &seqSampler{vals: []float64{0, 0.25, 0.5, 0.75}}
	got, err := Antithetic(identity, 4, s)
	if err != nil {
		t.Fatal(err)
	}
	want := Estimate{Mean: 0.5, StdErr: 0}
	if got != want {
		t.Fatalf("Antithetic = %+v, want %+v", got, want)
	}
}

func TestDrawCounts(t *testing.T) {
	tests := []struct {
		name  string
		run   func(Integrand, int, Sampler) (Estimate, error)
		count int
		evals int
	}{
		{"plain", Plain, 3000, 3000},
		{"antithetic", Antithetic, 1500, 3000},
		{"plain minimum", Plain, 2, 2},
		{"antithetic minimum", Antithetic, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &seqSampler{vals: []float64{0.1, 0.7, 0.3}}
			evals := 0
			f := func(x float64) float64 {
				evals++
				return Reciprocal(x)
			}
			if _, err := tt.run(f, tt.count, s); err != nil {
				t.Fatal(err)
			}
			if s.draws != tt.count {
				t.Errorf("draws = %d, want %d", s.draws, tt.count)
			}
			if evals != tt.evals {
				t.Errorf("evaluations = %d, want %d", evals, tt.evals)
			}
		})
	}
}

func TestAntitheticEvaluatesMirror(t *testing.T) {
	s := &seqSampler{vals: []float64{0.125, 0.375}}
	var points []float64
	f := func(x float64) float64 {
		points = append(points, x)
		return x
	}
	if _, err := Antithetic(f, 2, s); err != nil {
		t.Fatal(err)
	}
	want := []float64{0.125, 0.875, 0.375, 0.625}
	if len(points) != len(want) {
		t.Fatalf("points = %v, want %v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("points = %v, want %v", points, want)
		}
	}
}

func TestInvalidSampleCount(t *testing.T) {
	estimators := map[string]func(Integrand, int, Sampler) (Estimate, error){
		"plain":      Plain,
		"antithetic": Antithetic,
	}
	for name, run := range estimators {
		for _, n := range []int{1, 0, -5} {
			s := &seqSampler{vals: []float64{0.5}}
			_, err := run(Reciprocal, n, s)
			if !errors.Is(err, ErrInvalidSampleCount) {
				t.Fatalf("%s(%d): err = %v, want ErrInvalidSampleCount", name, n, err)
			}
			if !errors.IsBadRequest(err) {
				t.Fatalf("%s(%d): err = %v, want bad request", name, n, err)
			}
			if got := errors.Reason(err); got != ReasonInvalidSampleCount {
				t.Fatalf("%s(%d): reason = %q", name, n, got)
			}
			if s.draws != 0 {
				t.Fatalf("%s(%d): consumed %d draws", name, n, s.draws)
			}
		}
	}
}

func TestMinimumCountIsFinite(t *testing.T) {
	eng := rng.NewUniform(rng.NewMT19937(rng.DefaultSeed))
	for _, run := range []func(Integrand, int, Sampler) (Estimate, error){Plain, Antithetic} {
		e, err := run(Reciprocal, MinSamples, eng)
		if err != nil {
			t.Fatal(err)
		}
		if math.IsNaN(e.StdErr) || math.IsInf(e.StdErr, 0) || e.StdErr < 0 {
			t.Fatalf("StdErr = %v, want finite and non-negative", e.StdErr)
		}
		if math.IsNaN(e.Mean) || math.IsInf(e.Mean, 0) {
			t.Fatalf("Mean = %v, want finite", e.Mean)
		}
	}
}

func TestConstantIntegrandClampsVariance(t *testing.T) {
	constant := func(float64) float64 { return 0.1 }
	eng := rng.NewUniform(rng.NewMT19937(7))
	for _, n := range []int{2, 3, 10, 999, 3000} {
		for _, run := range []func(Integrand, int, Sampler) (Estimate, error){Plain, Antithetic} {
			e, err := run(constant, n, eng)
			if err != nil {
				t.Fatal(err)
			}
			if math.IsNaN(e.StdErr) || e.StdErr < 0 || e.StdErr > 1e-8 {
				t.Fatalf("n=%d: StdErr = %v, want ~0", n, e.StdErr)
			}
		}
	}
}

func TestEstimatorsConvergeToLn2(t *testing.T) {
	s := rng.NewUniform(rng.NewMT19937(DefaultSeed))
	plain, err := Plain(Reciprocal, DefaultSamples, s)
	if err != nil {
		t.Fatal(err)
	}
	anti, err := Antithetic(Reciprocal, DefaultSamples/2, s)
	if err != nil {
		t.Fatal(err)
	}
	for name, e := range map[string]Estimate{"plain": plain, "antithetic": anti} {
		if e.StdErr <= 0 {
			t.Fatalf("%s: StdErr = %v, want > 0", name, e.StdErr)
		}
		if d := math.Abs(e.Mean - math.Ln2); d > 5*e.StdErr {
			t.Fatalf("%s: |%v - ln2| = %v exceeds 5*%v", name, e.Mean, d, e.StdErr)
		}
	}
	if anti.StdErr > plain.StdErr {
		t.Fatalf("antithetic StdErr %v > plain StdErr %v", anti.StdErr, plain.StdErr)
	}
}

func TestEstimatorsDeterministic(t *testing.T) {
	run := func() (Estimate, Estimate) {
		s := rng.NewUniform(rng.NewMT19937(99))
		p, _ := Plain(Reciprocal, 500, s)
		a, _ := Antithetic(Reciprocal, 250, s)
		return p, a
	}
	p1, a1 := run()
	p2, a2 := run()
	if p1 != p2 || a1 != a2 {
		t.Fatalf("runs differ: %+v %+v vs %+v %+v", p1, a1, p2, a2)
	}
}
