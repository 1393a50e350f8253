package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "torny_http_requests_total", Help: "Total HTTP requests by route, method and status"},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "torny_http_request_duration_seconds", Help: "HTTP request duration", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "torny_uploads_total", Help: "External uploads by kind and result"},
		[]string{"kind", "result"},
	)
	EntriesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "torny_entries_created_total", Help: "Tournament entries created by category"},
		[]string{"category"},
	)
	VideosRefreshed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "torny_videos_refreshed_total", Help: "Pending videos re-checked by resulting status"},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, Uploads, EntriesCreated, VideosRefreshed)
	})
}
