package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wonderscape_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wonderscape_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wonderscape_uploads_total",
		Help: "Blob uploads by outcome",
	}, []string{"outcome"}) // outcome=success|rejected|failure

	uploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wonderscape_upload_bytes_total",
		Help: "Bytes accepted by the upload endpoint",
	})

	uploadSlotsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wonderscape_upload_slots_issued_total",
		Help: "Upload slots handed to clients",
	})

	videosCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wonderscape_videos_created_total",
		Help: "Video records created",
	})

	viewIncrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wonderscape_view_increments_total",
		Help: "View count increments by outcome",
	}, []string{"outcome"}) // outcome=applied|missing
)

func RecordHTTPRequest(method, route, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordUpload(outcome string, bytes int64) {
	uploadsTotal.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		uploadBytes.Add(float64(bytes))
	}
}

func RecordUploadSlot() {
	uploadSlotsIssued.Inc()
}

func RecordVideoCreated() {
	videosCreated.Inc()
}

// RecordViewIncrement counts view bumps; applied=false means the id did not match a video.
func RecordViewIncrement(applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "missing"
	}
	viewIncrements.WithLabelValues(outcome).Inc()
}
