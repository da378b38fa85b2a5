package biz

import (
	"context"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/yola1107/kratos/v2/errors"
)

const (
	// ReasonInvalidTrialCount is the error reason for a study with no trials.
	ReasonInvalidTrialCount = "INVALID_TRIAL_COUNT"
	// ReasonSeedRangeOverflow is the error reason for a study whose seeds pass 2^32-1.
	ReasonSeedRangeOverflow = "SEED_RANGE_OVERFLOW"
)

var (
	// ErrInvalidTrialCount is returned when a study is asked for fewer than one trial.
	ErrInvalidTrialCount = errors.BadRequest(ReasonInvalidTrialCount, "trial count must be at least 1")
	// ErrSeedRangeOverflow is returned when FirstSeed+Trials-1 does not fit a uint32 seed.
	ErrSeedRangeOverflow = errors.BadRequest(ReasonSeedRangeOverflow, "last seed of the study exceeds 4294967295")
)

// StudyParams selects a run of comparisons over consecutive seeds.
type StudyParams struct {
	Samples   int
	FirstSeed uint32
	Trials    int
}

// StudyReport summarises how often antithetic sampling beat plain sampling.
type StudyReport struct {
	Samples   int
	Pairs     int
	FirstSeed uint32
	Trials    int

	// Wins counts trials whose antithetic standard error is not above the plain one.
	Wins    int
	WinRate decimal.Decimal // percent, two places

	// MeanErrRatio is the mean of antithetic/plain standard error.
	MeanErrRatio float64
	// MeanReduction is the mean of plain/antithetic variance of the mean.
	MeanReduction float64

	MeanPlain      float64
	MeanAntithetic float64
}

// Study repeats Compare for p.Trials consecutive seeds starting at p.FirstSeed.
func (uc *EstimatorUsecase) Study(ctx context.Context, p StudyParams) (*StudyReport, error) {
	if p.Trials < 1 {
		return nil, ErrInvalidTrialCount
	}
	if last := uint64(p.FirstSeed) + uint64(p.Trials) - 1; last > math.MaxUint32 {
		return nil, ErrSeedRangeOverflow.WithMetadata(map[string]string{
			"first_seed": strconv.FormatUint(uint64(p.FirstSeed), 10),
			"last_seed":  strconv.FormatUint(last, 10),
		})
	}

	r := &StudyReport{
		Samples:   p.Samples,
		Pairs:     p.Samples / 2,
		FirstSeed: p.FirstSeed,
		Trials:    p.Trials,
	}
	var ratioSum, reductionSum, plainSum, antiSum float64
	reductions := 0
	for i := 0; i < p.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := compare(uc.integrand, Params{Samples: p.Samples, Seed: p.FirstSeed + uint32(i)})
		if err != nil {
			return nil, err
		}
		if c.Antithetic.StdErr <= c.Plain.StdErr {
			r.Wins++
		}
		if c.Plain.StdErr > 0 {
			ratioSum += c.Antithetic.StdErr / c.Plain.StdErr
		}
		if c.Antithetic.StdErr > 0 {
			q := c.Plain.StdErr / c.Antithetic.StdErr
			reductionSum += q * q
			reductions++
		}
		plainSum += c.Plain.Mean
		antiSum += c.Antithetic.Mean
	}

	trials := float64(p.Trials)
	r.WinRate = decimal.NewFromInt(int64(r.Wins) * 100).Div(decimal.NewFromInt(int64(p.Trials))).Round(2)
	r.MeanErrRatio = ratioSum / trials
	if reductions > 0 {
		r.MeanReduction = reductionSum / float64(reductions)
	}
	r.MeanPlain = plainSum / trials
	r.MeanAntithetic = antiSum / trials

	uc.log.WithContext(ctx).Infof("study samples=%d seeds=[%d,%d] wins=%d/%d rate=%s%% reduction=%.2f",
		p.Samples, p.FirstSeed, uint64(p.FirstSeed)+uint64(p.Trials)-1, r.Wins, r.Trials, r.WinRate, r.MeanReduction)
	return r, nil
}
