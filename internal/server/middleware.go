package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type middleware func(http.Handler) http.Handler

// recoverer converts a handler panic into a generic apology response; panic
// details go to the log, never to the client.
func recoverer(log *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic in handler",
						"path", r.URL.Path, "reason", rec)
					http.Error(w, "Something went wrong on our side. Please reload and try again.",
						http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestID ensures every request carries an X-Request-Id, generating one
// when the client did not send it.
func requestID() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// statusWriter records the response status and size for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.count += n
	return n, err
}

// logging writes one access-log line per request.
func logging(log *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			log.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"dur", time.Since(start),
				"bytes", sw.count,
				"request_id", r.Header.Get("X-Request-Id"),
			)
		})
	}
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "techtimes_http_requests_total",
		Help: "HTTP requests by method and status.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "techtimes_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// metrics records per-request counters for the /metrics listener.
func metrics() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			requestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
			requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
