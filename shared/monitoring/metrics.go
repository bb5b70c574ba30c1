package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargoboard_runs_total",
			Help: "Total number of pipeline runs by outcome.",
		},
		[]string{"outcome"},
	)

	runDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cargoboard_run_duration_seconds",
			Help:    "Duration of completed pipeline runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	feedFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargoboard_feed_fetches_total",
			Help: "Total number of feed fetch attempts by feed and result.",
		},
		[]string{"feed", "result"},
	)

	cargoFlightsRendered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cargoboard_cargo_flights",
			Help: "Number of cargo flights on the most recently rendered board.",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(runDurationSeconds)
	prometheus.MustRegister(feedFetchesTotal)
	prometheus.MustRegister(cargoFlightsRendered)
}

// RecordFeedFetch counts one fetch attempt against a named feed.
func RecordFeedFetch(feed string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	feedFetchesTotal.WithLabelValues(feed, result).Inc()
}

// RecordBoardSize publishes the row count of the latest rendered board.
func RecordBoardSize(n int) {
	cargoFlightsRendered.Set(float64(n))
}
