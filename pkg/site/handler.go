package site

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/smartnav/pkg/host"
	"github.com/mchmarny/smartnav/pkg/metric"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>{{ .Title }}</title>
  </head>
  <body>
    <nav>{{ .Navigation }}</nav>
    <main>
      <h1>{{ .Title }}</h1>
      {{- with .Description }}
      <p>{{ . }}</p>
      {{- end }}
      <p>{{ .Path }}</p>
    </main>
  </body>
</html>
`))

type pageData struct {
	Title       string
	Description string
	Path        string
	Navigation  template.HTML
}

// Handler returns an HTTP handler rendering a page with the site navigation
// for every request path. Render counts and latency are registered on reg.
func (s *Site) Handler(reg prometheus.Registerer) http.Handler {
	renders := metric.NewCounter(reg, "menu_renders_total", "Number of menu renders by status.", "status")
	latency := metric.NewHistogram(reg, "menu_render_duration_seconds", "Menu render latency.", "status")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		nav, err := s.Navigation(host.FromRequest(r, s.Funcs))
		if err != nil {
			renders.Increment(statusError)
			latency.Observe(time.Since(start), statusError)
			slog.Error("failed to render menu",
				"url", r.URL.Path,
				"error", err,
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		renders.Increment(statusOK)
		latency.Observe(time.Since(start), statusOK)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)

		if err := page.Execute(w, pageData{
			Title:       s.Title,
			Description: s.Description,
			Path:        r.URL.Path,
			Navigation:  nav,
		}); err != nil {
			slog.Error("failed to write page", "url", r.URL.Path, "error", err)
			return
		}

		slog.Debug("page rendered",
			"url", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
