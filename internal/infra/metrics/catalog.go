package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		catalogSize,
		searchResults,
		repostsTotal,
		feedbackTotal,
		botInfo,
	)
}

var (
	// botInfo is always 1; the labels carry the release.
	botInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movie_bot_info",
			Help: "Release of the running bot.",
		},
		[]string{"version", "commit", "go_version"},
	)

	catalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movie records loaded into the catalog.",
		},
	)

	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Distribution of result counts per search, by query kind.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"kind"},
	)

	repostsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_reposts_total",
			Help: "Channel repost attempts by result (published/not_found/error).",
		},
		[]string{"result"},
	)

	feedbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_received_total",
			Help: "Feedback messages submitted via /feedback.",
		},
	)
)

func SetCatalogSize(n int) {
	catalogSize.Set(float64(n))
}

func ObserveSearch(kind string, results int) {
	searchResults.WithLabelValues(norm(kind)).Observe(float64(results))
}

func IncRepost(result string) {
	repostsTotal.WithLabelValues(norm(result)).Inc()
}

func IncFeedback() {
	feedbackTotal.Inc()
}

func SetBuildInfo(version, commit string) {
	botInfo.Reset()
	botInfo.WithLabelValues(version, commit, runtime.Version()).Set(1)
}
