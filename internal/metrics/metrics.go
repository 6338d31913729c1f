package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks the latency of API requests by route and
	// status class.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamlane_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"route", "status"},
	)

	// BuildShortfall observes how far allocation plans fall short of their
	// campaign goals, as a fraction of the goal. A spike here means the
	// candidate pool is too thin for what sales is committing to.
	BuildShortfall = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streamlane_build_shortfall_ratio",
			Help:    "Unmet share of the stream goal per campaign build",
			Buckets: []float64{0, 0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0},
		},
	)

	// SweptCampaigns counts campaigns auto-completed by the status sweeper.
	SweptCampaigns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streamlane_swept_campaigns_total",
			Help: "Campaigns transitioned to completed by the sweeper",
		},
	)
)

// RecordBuildShortfall records the unmet share of one campaign build.
func RecordBuildShortfall(goal, shortfall int64) {
	if goal <= 0 {
		return
	}
	BuildShortfall.Observe(float64(shortfall) / float64(goal))
}
