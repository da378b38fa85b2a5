package service

import (
	"context"
	"io"
	"math"
	"testing"

	"antithetic/internal/biz"
	"antithetic/internal/conf"

	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/log"
)

type stubEchoRepo struct{}

func (stubEchoRepo) ReadValue(context.Context) (string, bool, error) { return "7", true, nil }

func newTestService(c *conf.Estimator) *EstimatorService {
	logger := log.NewStdLogger(io.Discard)
	return NewEstimatorService(c, biz.NewEstimatorUsecase(stubEchoRepo{}, logger))
}

func TestCompareUsesConfiguredDefaults(t *testing.T) {
	s := newTestService(conf.Default().Estimator)
	reply, err := s.Compare(context.Background(), &CompareRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Samples != 3000 || reply.Pairs != 1500 || reply.Seed != 123456789 {
		t.Fatalf("reply = %+v", reply)
	}
	if math.Abs(reply.Plain.Mean-math.Ln2) > 5*reply.Plain.StdErr {
		t.Fatalf("plain = %+v", reply.Plain)
	}
	if reply.Antithetic.StdErr > reply.Plain.StdErr {
		t.Fatalf("antithetic %+v worse than plain %+v", reply.Antithetic, reply.Plain)
	}
}

func TestCompareExplicitZeroSeed(t *testing.T) {
	s := newTestService(conf.Default().Estimator)
	zero := uint32(0)
	a, err := s.Compare(context.Background(), &CompareRequest{Samples: 100, Seed: &zero})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Compare(context.Background(), &CompareRequest{Samples: 100})
	if err != nil {
		t.Fatal(err)
	}
	if a.Seed != 0 || b.Seed != 123456789 {
		t.Fatalf("seeds = %d, %d", a.Seed, b.Seed)
	}
	if *a.Plain == *b.Plain {
		t.Fatal("different seeds produced the same estimate")
	}
}

func TestCompareInvalidSamples(t *testing.T) {
	c := conf.Default().Estimator
	c.Samples = 1
	s := newTestService(c)
	_, err := s.Compare(context.Background(), &CompareRequest{})
	if !errors.Is(err, biz.ErrInvalidSampleCount) {
		t.Fatalf("err = %v", err)
	}
}

func TestStudyDefaults(t *testing.T) {
	c := conf.Default().Estimator
	c.Trials = 5
	s := newTestService(c)
	reply, err := s.Study(context.Background(), &StudyRequest{Samples: 400})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Trials != 5 || reply.Samples != 400 || reply.FirstSeed != 123456789 {
		t.Fatalf("reply = %+v", reply)
	}
	if reply.Wins > reply.Trials {
		t.Fatalf("wins %d > trials %d", reply.Wins, reply.Trials)
	}
}

func TestEcho(t *testing.T) {
	s := newTestService(conf.Default().Estimator)
	v, ok, err := s.Echo(context.Background())
	if err != nil || !ok || v != "7" {
		t.Fatalf("Echo = %q, %v, %v", v, ok, err)
	}
}

func TestRequestBounds(t *testing.T) {
	c := conf.Default().Estimator
	c.MaxSamples = 5000
	c.MaxTrials = 3
	s := newTestService(c)

	if _, err := s.Compare(context.Background(), &CompareRequest{Samples: 5000}); err != nil {
		t.Fatalf("samples at bound: %v", err)
	}
	_, err := s.Compare(context.Background(), &CompareRequest{Samples: 5001})
	if !errors.Is(err, biz.ErrInvalidSampleCount) {
		t.Fatalf("samples above bound: err = %v", err)
	}
	if md := errors.FromError(err).Metadata; md["max"] != "5000" || md["count"] != "5001" {
		t.Fatalf("metadata = %v", md)
	}
	_, err = s.Study(context.Background(), &StudyRequest{Samples: 100, Trials: 4})
	if !errors.Is(err, biz.ErrInvalidTrialCount) {
		t.Fatalf("trials above bound: err = %v", err)
	}
	_, err = s.Study(context.Background(), &StudyRequest{Samples: 6000, Trials: 1})
	if !errors.Is(err, biz.ErrInvalidSampleCount) {
		t.Fatalf("study samples above bound: err = %v", err)
	}

	c.MaxSamples = 0
	if _, err := s.Compare(context.Background(), &CompareRequest{Samples: 6000}); err != nil {
		t.Fatalf("unbounded: %v", err)
	}
}
