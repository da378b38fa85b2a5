package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/transport/http"
)

const (
	OperationEstimatorCompare = "/antithetic.v1.Estimator/Compare"
	OperationEstimatorStudy   = "/antithetic.v1.Estimator/Study"

	// ReasonInvalidQuery is returned for query parameters that do not parse.
	ReasonInvalidQuery = "INVALID_QUERY"
)

// EstimatorHTTPServer is the HTTP surface of the estimator service.
type EstimatorHTTPServer interface {
	Compare(context.Context, *CompareRequest) (*CompareReply, error)
	Study(context.Context, *StudyRequest) (*StudyReply, error)
}

// RegisterEstimatorHTTPServer mounts the estimator routes on s.
func RegisterEstimatorHTTPServer(s *http.Server, srv EstimatorHTTPServer) {
	r := s.Route("/")
	r.GET("/v1/estimate", _Estimator_Compare0_HTTP_Handler(srv))
	r.GET("/v1/study", _Estimator_Study0_HTTP_Handler(srv))
}

func _Estimator_Compare0_HTTP_Handler(srv EstimatorHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CompareRequest
		q := ctx.Query()
		var err error
		if in.Samples, err = queryInt(q, "samples"); err != nil {
			return err
		}
		if in.Seed, err = querySeed(q, "seed"); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationEstimatorCompare)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Compare(ctx, req.(*CompareRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*CompareReply)
		return ctx.Result(200, reply)
	}
}

func _Estimator_Study0_HTTP_Handler(srv EstimatorHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in StudyRequest
		q := ctx.Query()
		var err error
		if in.Samples, err = queryInt(q, "samples"); err != nil {
			return err
		}
		if in.Seed, err = querySeed(q, "seed"); err != nil {
			return err
		}
		if in.Trials, err = queryInt(q, "trials"); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationEstimatorStudy)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Study(ctx, req.(*StudyRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*StudyReply)
		return ctx.Result(200, reply)
	}
}

func queryInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.BadRequest(ReasonInvalidQuery, key+": "+err.Error())
	}
	return n, nil
}

func querySeed(q url.Values, key string) (*uint32, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, errors.BadRequest(ReasonInvalidQuery, key+": "+err.Error())
	}
	seed := uint32(n)
	return &seed, nil
}
