package server

import (
	"antithetic/internal/conf"
	"antithetic/internal/service"

	"github.com/yola1107/kratos/v2/log"
	"github.com/yola1107/kratos/v2/middleware/recovery"
	"github.com/yola1107/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, estimator *service.EstimatorService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Network != "" {
		opts = append(opts, http.Network(c.Http.Network))
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout.Duration > 0 {
		opts = append(opts, http.Timeout(c.Http.Timeout.Duration))
	}
	srv := http.NewServer(opts...)
	service.RegisterEstimatorHTTPServer(srv, estimator)
	return srv
}
