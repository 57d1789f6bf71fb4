package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	VideoPublishes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "videos_published_total",
		Help: "Videos published since start",
	})
)

func Init() {
	prometheus.MustRegister(HTTPRequests, VideoPublishes)
}

// Serve exposes /metrics on its own listener so the scrape path stays off the
// public API port. Blocks; run in a goroutine.
func Serve(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", zap.Error(err))
	}
}
