package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/ncexporter/ncexporter/exporter/internal/convert"
	"github.com/ncexporter/ncexporter/exporter/internal/replace"
	"github.com/ncexporter/ncexporter/exporter/internal/scraper"
)

// Fetcher retrieves the raw status document.
type Fetcher interface {
	Fetch(ctx context.Context) (*scraper.Page, error)
}

// TableSource supplies the replacement table in effect.
type TableSource interface {
	Current() *replace.Table
}

// Handler is the HTTP handler for all exporter endpoints.
type Handler struct {
	fetcher Fetcher
	tables  TableSource
	counter *RequestCounter
	metrics *selfMetrics
	router  chi.Router
}

// New creates a Handler that fetches with f and converts with the tables
// from ts, and registers all routes.
func New(f Fetcher, ts TableSource) *Handler {
	h := &Handler{
		fetcher: f,
		tables:  ts,
		counter: &RequestCounter{},
	}
	h.metrics = newSelfMetrics(h.counter)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.status)
	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Counter returns the shared request counters.
func (h *Handler) Counter() *RequestCounter { return h.counter }

// status returns GET /, the converted status page behind the exporter block.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.counter.begin()

	// A scrape abandoned by the client still runs to completion.
	ctx := context.WithoutCancel(r.Context())

	page, err := h.fetcher.Fetch(ctx)
	load := time.Since(start)
	h.metrics.fetchDuration.Observe(load.Seconds())
	if err != nil {
		h.metrics.fetchFailures.Inc()
		slog.Warn("api: status page fetch failed",
			"request_id", middleware.GetReqID(r.Context()), "err", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if !page.CertNotAfter.IsZero() {
		h.metrics.certExpiry.Set(float64(page.CertNotAfter.Unix()))
	}

	res := convert.Convert(bytes.NewReader(page.Body), h.tables.Current(), blockNames...)
	total := time.Since(start)
	h.metrics.observeConversion(res, total-load)
	completed := h.counter.end()

	block, err := exporterBlock(timings{load: load, parse: total - load, total: total}, h.counter.Started(), completed)
	if err != nil {
		// The converted metrics are still worth serving without the block.
		slog.Error("api: render exporter block", "err", err)
		block = ""
	}

	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.Render(block)+"\n")
}

// health returns GET /health.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// requestLogger logs every request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("api: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
