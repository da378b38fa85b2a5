package main

import (
	"context"
	"fmt"
	"io"

	"antithetic/encoding"
	"antithetic/internal/conf"
	"antithetic/internal/service"
)

// run performs one comparison (or a study) and writes the result to w.
func run(ctx context.Context, w io.Writer, svc *service.EstimatorService, c *conf.Estimator, study bool) error {
	if study {
		reply, err := svc.Study(ctx, &service.StudyRequest{Samples: c.Samples, Seed: &c.Seed, Trials: c.Trials})
		if err != nil {
			return err
		}
		if c.Format == "json" {
			_, err = fmt.Fprintln(w, encoding.ToJson(reply))
			return err
		}
		return writeStudy(w, reply)
	}

	reply, err := svc.Compare(ctx, &service.CompareRequest{Samples: c.Samples, Seed: &c.Seed})
	if err != nil {
		return err
	}
	if c.Format == "json" {
		_, err = fmt.Fprintln(w, encoding.ToJson(reply))
	} else {
		_, err = fmt.Fprintf(w, "%s\n%s\n",
			encoding.FormatPair(reply.Plain.Mean, reply.Plain.StdErr),
			encoding.FormatPair(reply.Antithetic.Mean, reply.Antithetic.StdErr))
	}
	if err != nil || !c.Echo {
		return err
	}

	v, ok, err := svc.Echo(ctx)
	if err != nil || !ok {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

func writeStudy(w io.Writer, r *service.StudyReply) error {
	_, err := fmt.Fprintf(w,
		"samples=%d pairs=%d seeds=%d..%d\n"+
			"antithetic stderr <= plain: %d/%d (%s%%)\n"+
			"mean stderr ratio (antithetic/plain): %s\n"+
			"mean variance reduction: %s\n"+
			"mean estimate: plain=%s antithetic=%s\n",
		r.Samples, r.Pairs, r.FirstSeed, uint64(r.FirstSeed)+uint64(r.Trials)-1,
		r.Wins, r.Trials, r.WinRate,
		encoding.FormatFloat(r.MeanErrRatio),
		encoding.FormatFloat(r.MeanReduction),
		encoding.FormatFloat(r.MeanPlain), encoding.FormatFloat(r.MeanAntithetic),
	)
	return err
}
