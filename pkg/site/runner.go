package site

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/smartnav/pkg/server"
)

// Run serves the site until ctx is canceled. Pages are served from "/",
// metrics from /metrics and health from /healthz.
func (s *Site) Run(ctx context.Context, opt ...server.Option) error {
	slog.Info("starting site", "title", s.Title, "items", len(s.Menu))

	reg := prometheus.NewRegistry()

	opt = append([]server.Option{
		server.WithHandler("/", s.Handler(reg)),
		server.WithMetrics(reg),
		server.WithSimpleHealth(),
	}, opt...)

	return server.New(opt...).Serve(ctx)
}
