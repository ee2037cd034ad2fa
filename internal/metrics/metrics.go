package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	roomFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tussenuur_room_fetch_total",
		Help: "Room schedule fetches by outcome.",
	}, []string{"outcome"})

	roomFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tussenuur_room_fetch_duration_seconds",
		Help:    "Duration of room schedule fetch and parse.",
		Buckets: prometheus.DefBuckets,
	})

	uploadResolutionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tussenuur_upload_resolution_total",
		Help: "Uploaded timetable resolutions by outcome.",
	}, []string{"outcome"})

	sourceUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tussenuur_timetable_source_up",
		Help: "Whether the timetable reporting service answered the last probe.",
	})
)

// ObserveRoomFetch records one fetch attempt and its duration.
func ObserveRoomFetch(d time.Duration, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "degraded"
	}
	roomFetchTotal.WithLabelValues(outcome).Inc()
	roomFetchDuration.Observe(d.Seconds())
}

// CountUploadResolution records the outcome label of one uploaded-timetable
// resolution ("ok", "no_events", "gap", "unmatched", ...).
func CountUploadResolution(outcome string) {
	uploadResolutionTotal.WithLabelValues(outcome).Inc()
}

// SetSourceUp publishes the latest upstream probe result.
func SetSourceUp(up bool) {
	if up {
		sourceUp.Set(1)
	} else {
		sourceUp.Set(0)
	}
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
