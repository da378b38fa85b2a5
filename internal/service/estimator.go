package service

import (
	"context"
	"strconv"

	"antithetic/internal/biz"
	"antithetic/internal/conf"

	"github.com/shopspring/decimal"
)

// CompareRequest selects a comparison run. Zero Samples and nil Seed take the configured values.
type CompareRequest struct {
	Samples int     `json:"samples,omitempty"`
	Seed    *uint32 `json:"seed,omitempty"`
}

// EstimateReply is one estimator's result.
type EstimateReply struct {
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"std_err"`
}

// CompareReply is the result of a comparison run.
type CompareReply struct {
	Seed       uint32         `json:"seed"`
	Samples    int            `json:"samples"`
	Pairs      int            `json:"pairs"`
	Plain      *EstimateReply `json:"plain"`
	Antithetic *EstimateReply `json:"antithetic"`
}

// StudyRequest selects a study. Zero fields and nil Seed take the configured values.
type StudyRequest struct {
	Samples int     `json:"samples,omitempty"`
	Seed    *uint32 `json:"seed,omitempty"`
	Trials  int     `json:"trials,omitempty"`
}

// StudyReply is the summary of a study.
type StudyReply struct {
	Samples        int             `json:"samples"`
	Pairs          int             `json:"pairs"`
	FirstSeed      uint32          `json:"first_seed"`
	Trials         int             `json:"trials"`
	Wins           int             `json:"wins"`
	WinRate        decimal.Decimal `json:"win_rate"`
	MeanErrRatio   float64         `json:"mean_err_ratio"`
	MeanReduction  float64         `json:"mean_reduction"`
	MeanPlain      float64         `json:"mean_plain"`
	MeanAntithetic float64         `json:"mean_antithetic"`
}

// EstimatorService is the estimator service.
type EstimatorService struct {
	uc  *biz.EstimatorUsecase
	cfg *conf.Estimator
}

// NewEstimatorService new an estimator service.
func NewEstimatorService(c *conf.Estimator, uc *biz.EstimatorUsecase) *EstimatorService {
	return &EstimatorService{uc: uc, cfg: c}
}

// Compare runs the plain and antithetic estimators on one continuing engine.
func (s *EstimatorService) Compare(ctx context.Context, in *CompareRequest) (*CompareReply, error) {
	samples, err := s.samples(in.Samples)
	if err != nil {
		return nil, err
	}
	c, err := s.uc.Compare(ctx, biz.Params{
		Samples: samples,
		Seed:    s.seed(in.Seed),
	})
	if err != nil {
		return nil, err
	}
	return &CompareReply{
		Seed:       c.Seed,
		Samples:    c.Samples,
		Pairs:      c.Pairs,
		Plain:      &EstimateReply{Mean: c.Plain.Mean, StdErr: c.Plain.StdErr},
		Antithetic: &EstimateReply{Mean: c.Antithetic.Mean, StdErr: c.Antithetic.StdErr},
	}, nil
}

// Study repeats Compare over consecutive seeds.
func (s *EstimatorService) Study(ctx context.Context, in *StudyRequest) (*StudyReply, error) {
	samples, err := s.samples(in.Samples)
	if err != nil {
		return nil, err
	}
	trials := in.Trials
	if trials == 0 {
		trials = s.cfg.Trials
	}
	if s.cfg.MaxTrials > 0 && trials > s.cfg.MaxTrials {
		return nil, biz.ErrInvalidTrialCount.WithMetadata(map[string]string{
			"count": strconv.Itoa(trials),
			"max":   strconv.Itoa(s.cfg.MaxTrials),
		})
	}
	r, err := s.uc.Study(ctx, biz.StudyParams{
		Samples:   samples,
		FirstSeed: s.seed(in.Seed),
		Trials:    trials,
	})
	if err != nil {
		return nil, err
	}
	return &StudyReply{
		Samples:        r.Samples,
		Pairs:          r.Pairs,
		FirstSeed:      r.FirstSeed,
		Trials:         r.Trials,
		Wins:           r.Wins,
		WinRate:        r.WinRate,
		MeanErrRatio:   r.MeanErrRatio,
		MeanReduction:  r.MeanReduction,
		MeanPlain:      r.MeanPlain,
		MeanAntithetic: r.MeanAntithetic,
	}, nil
}

// Echo returns the trailing input value, if any.
func (s *EstimatorService) Echo(ctx context.Context) (string, bool, error) {
	return s.uc.Echo(ctx)
}

// samples resolves the requested sample count against the configured default and bound.
func (s *EstimatorService) samples(n int) (int, error) {
	if n == 0 {
		n = s.cfg.Samples
	}
	if s.cfg.MaxSamples > 0 && n > s.cfg.MaxSamples {
		return 0, biz.ErrInvalidSampleCount.WithMetadata(map[string]string{
			"count": strconv.Itoa(n),
			"max":   strconv.Itoa(s.cfg.MaxSamples),
		})
	}
	return n, nil
}

func (s *EstimatorService) seed(seed *uint32) uint32 {
	if seed == nil {
		return s.cfg.Seed
	}
	return *seed
}
