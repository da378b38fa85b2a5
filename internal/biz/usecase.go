package biz

import (
	"context"

	"antithetic/internal/rng"

	"github.com/yola1107/kratos/v2/log"
)

const (
	// DefaultSamples is the plain estimator's sample budget when none is given.
	DefaultSamples = 3000
	// DefaultSeed seeds the engine when none is given.
	DefaultSeed uint32 = 123456789
)

// EchoRepo is the trailing-input collaborator of a run.
type EchoRepo interface {
	// ReadValue returns the next token verbatim. ok is false at end of input.
	ReadValue(ctx context.Context) (value string, ok bool, err error)
}

// Params selects one comparison run.
type Params struct {
	Samples int
	Seed    uint32
}

// Comparison holds the plain and antithetic estimates of one run.
type Comparison struct {
	Seed    uint32
	Samples int
	Pairs   int
	// Draws is the number of uniform draws both estimators consumed together.
	Draws      uint64
	Plain      Estimate
	Antithetic Estimate
}

// EstimatorUsecase drives the estimators over the default integrand.
type EstimatorUsecase struct {
	repo EchoRepo
	log  *log.Helper

	integrand Integrand
}

// NewEstimatorUsecase new an EstimatorUsecase.
func NewEstimatorUsecase(repo EchoRepo, logger log.Logger) *EstimatorUsecase {
	return &EstimatorUsecase{
		repo:      repo,
		log:       log.NewHelper(log.With(logger, "module", "biz/estimator")),
		integrand: Reciprocal,
	}
}

// Compare seeds one engine, runs the plain estimator with p.Samples draws and then
// the antithetic estimator with p.Samples/2 pairs on the same, continuing engine.
// For odd p.Samples the pair count truncates.
func (uc *EstimatorUsecase) Compare(ctx context.Context, p Params) (*Comparison, error) {
	c, err := compare(uc.integrand, p)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("compare samples=%d seed=%d: %v", p.Samples, p.Seed, err)
		return nil, err
	}
	uc.log.WithContext(ctx).Debugf("compare seed=%d samples=%d pairs=%d draws=%d plain=%+v antithetic=%+v",
		c.Seed, c.Samples, c.Pairs, c.Draws, c.Plain, c.Antithetic)
	return c, nil
}

// Echo reads the trailing value from the input collaborator.
func (uc *EstimatorUsecase) Echo(ctx context.Context) (string, bool, error) {
	v, ok, err := uc.repo.ReadValue(ctx)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("read trailing value: %v", err)
		return "", false, err
	}
	if !ok {
		uc.log.WithContext(ctx).Debug("no trailing value")
	}
	return v, ok, nil
}

func compare(f Integrand, p Params) (*Comparison, error) {
	pairs := p.Samples / 2
	if err := checkCount(p.Samples); err != nil {
		return nil, err
	}
	if err := checkCount(pairs); err != nil {
		return nil, err
	}

	s := rng.NewUniform(rng.NewMT19937(p.Seed))
	plain, err := Plain(f, p.Samples, s)
	if err != nil {
		return nil, err
	}
	anti, err := Antithetic(f, pairs, s)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Seed:       p.Seed,
		Samples:    p.Samples,
		Pairs:      pairs,
		Draws:      s.Draws(),
		Plain:      plain,
		Antithetic: anti,
	}, nil
}
