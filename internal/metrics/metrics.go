package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "gateway"

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	uploadPreprocessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_preprocess_total",
			Help:      "Number of preprocessed uploads",
		},
		[]string{"status", "format"},
	)

	uploadPreprocessDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_preprocess_duration_seconds",
			Help:      "Upload preprocessing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status", "format"},
	)

	generationStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_streams_total",
			Help:      "Generation streams by mode and terminal status",
		},
		[]string{"mode", "status"},
	)

	excelProxyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "excel_proxy_total",
			Help:      "Excel proxy calls by upstream outcome",
		},
		[]string{"code"},
	)
)

func HttpRequestsTotal(method, path, code string) {
	httpRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"code":   code,
	}).Inc()
}

func HttpRequestDuration(method, path string, duration time.Duration) {
	httpRequestDuration.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Observe(duration.Seconds())
}

func UploadPreprocessTotal(status, format string) {
	uploadPreprocessTotal.With(prometheus.Labels{
		"status": status,
		"format": format,
	}).Inc()
}

func UploadPreprocessDuration(status, format string, duration time.Duration) {
	uploadPreprocessDuration.With(prometheus.Labels{
		"status": status,
		"format": format,
	}).Observe(duration.Seconds())
}

func GenerationStreamsTotal(mode, status string) {
	generationStreamsTotal.With(prometheus.Labels{
		"mode":   mode,
		"status": status,
	}).Inc()
}

func ExcelProxyTotal(code string) {
	excelProxyTotal.With(prometheus.Labels{
		"code": code,
	}).Inc()
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		HttpRequestsTotal(r.Method, r.URL.Path, strconv.Itoa(ww.status))
		HttpRequestDuration(r.Method, r.URL.Path, duration)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.NewResponseController reach the underlying Flusher,
// which the SSE handler depends on.
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
