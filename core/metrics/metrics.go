package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idcheck_lookups_total",
		Help: "Total membership lookups by result",
	}, []string{"result"})
	ReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idcheck_reloads_total",
		Help: "Total reload requests by outcome (success, failure, busy)",
	}, []string{"outcome"})
	SkippedTokensTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idcheck_skipped_tokens_total",
		Help: "Total tokens dropped because they were not unsigned integers",
	})
	SnapshotIdentifiers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "idcheck_snapshot_identifiers",
		Help: "Number of identifiers in the active snapshot",
	})
	LoadDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "idcheck_load_duration_seconds",
		Help:    "Time spent reading, parsing and sorting a snapshot",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
	})
)

// Pre-bound children for the request path.
var (
	LookupHits   = LookupsTotal.WithLabelValues("hit")
	LookupMisses = LookupsTotal.WithLabelValues("miss")
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(ReloadsTotal)
	prometheus.MustRegister(SkippedTokensTotal)
	prometheus.MustRegister(SnapshotIdentifiers)
	prometheus.MustRegister(LoadDurationSeconds)
}

// WatchLiveHandles exports the number of snapshot handles not yet released.
// Registering twice keeps the first function.
func WatchLiveHandles(live func() int64) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "idcheck_live_handles",
		Help: "Snapshot handles acquired and not yet released",
	}, func() float64 { return float64(live()) })

	err := prometheus.Register(g)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}

// Handler returns the Prometheus scrape handler for all registered metrics.
func Handler() http.Handler { return promhttp.Handler() }
