package biz

import (
	"math"
	"strconv"

	"github.com/yola1107/kratos/v2/errors"
)

const (
	// ReasonInvalidSampleCount is the error reason for a sample or pair count below MinSamples.
	ReasonInvalidSampleCount = "INVALID_SAMPLE_COUNT"

	// MinSamples is the smallest count with a defined standard error.
	MinSamples = 2
)

// ErrInvalidSampleCount is returned when an estimator is asked for fewer than MinSamples values.
var ErrInvalidSampleCount = errors.BadRequest(ReasonInvalidSampleCount, "sample count must be at least 2")

// Integrand is a deterministic function on [0,1]. It must be finite there;
// NaN or Inf results propagate into the estimate unchecked.
type Integrand func(x float64) float64

// Reciprocal is 1/(1+x), whose integral over [0,1] is ln 2.
func Reciprocal(x float64) float64 {
	return 1.0 / (1.0 + x)
}

// Sampler yields independent draws from Uniform[0,1).
type Sampler interface {
	Float64() float64
}

// Estimate is a Monte Carlo estimate of an integral with its standard error.
type Estimate struct {
	Mean   float64
	StdErr float64
}

// Plain estimates the integral of f from n draws of s.
func Plain(f Integrand, n int, s Sampler) (Estimate, error) {
	if err := checkCount(n); err != nil {
		return Estimate{}, err
	}
	var acc moments
	for k := 0; k < n; k++ {
		acc.add(f(s.Float64()))
	}
	return acc.estimate(n), nil
}

// Antithetic estimates the integral of f from m draws of s, pairing every draw u
// with 1-u. Each pair costs one draw and two evaluations of f.
func Antithetic(f Integrand, m int, s Sampler) (Estimate, error) {
	if err := checkCount(m); err != nil {
		return Estimate{}, err
	}
	var acc moments
	for k := 0; k < m; k++ {
		u := s.Float64()
		acc.add(0.5 * (f(u) + f(1.0-u)))
	}
	return acc.estimate(m), nil
}

func checkCount(n int) error {
	if n < MinSamples {
		return ErrInvalidSampleCount.WithMetadata(map[string]string{
			"count": strconv.Itoa(n),
		})
	}
	return nil
}

// moments accumulates Σv and Σv². Products are rounded explicitly before
// summing so no FMA contraction changes results between architectures.
type moments struct {
	sum   float64
	sumSq float64
}

func (a *moments) add(v float64) {
	a.sum += v
	a.sumSq += float64(v * v)
}

func (a *moments) estimate(n int) Estimate {
	count := float64(n)
	mean := a.sum / count
	// Σv²/n - mean² can go slightly negative through cancellation.
	variance := math.Max(0, a.sumSq/count-float64(mean*mean))
	return Estimate{
		Mean:   mean,
		StdErr: math.Sqrt(variance / float64(n-1)),
	}
}
