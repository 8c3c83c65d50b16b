package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobmarket_http_requests_total",
		Help: "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobmarket_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobmarket_http_cache_lookups_total",
		Help: "Report cache lookups by outcome.",
	}, []string{"result"})
)

// accessLog logs one line per request and records route metrics
func accessLog(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)

			httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())

			log.Info("http",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"dur_ms", elapsed.Milliseconds(),
			)
		})
	}
}

// cached serves GET responses from c when present and stores 200 responses
// not marked no-store.
// A nil cache disables the middleware.
func cached(c cache.Cache, ttl time.Duration, log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "http:" + r.URL.Path + "?" + r.URL.Query().Encode()

			var body string
			err := c.Get(r.Context(), key, &body)
			switch {
			case err == nil:
				cacheLookups.WithLabelValues("hit").Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(body))
				return
			case errors.Is(err, cache.ErrNotFound):
				cacheLookups.WithLabelValues("miss").Inc()
			default:
				cacheLookups.WithLabelValues("error").Inc()
				log.Warn("cache lookup failed", "key", key, "error", err)
			}

			rec := &recorder{ResponseWriter: w}
			w.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && w.Header().Get("Cache-Control") != "no-store" {
				if err := c.Set(r.Context(), key, rec.buf.String(), ttl); err != nil {
					log.Warn("cache store failed", "key", key, "error", err)
				}
			}
		})
	}
}

// recorder tees the response body so it can be cached
type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (rec *recorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	rec.buf.Write(b)
	return rec.ResponseWriter.Write(b)
}
