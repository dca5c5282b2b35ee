// internal/httpserver/metrics.go
//
// Prometheus metrics for the bowling server, served on /metrics.
// Counts started/finished games and accepted/rejected throws, records final
// scores, and reports how many sessions are live in the session store.

package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/bowling/internal/store"
)

// metrics are registered on a per-server registry so tests can build many
// servers in one process.
type metrics struct {
	reg           *prometheus.Registry
	gamesStarted  prometheus.Counter
	gamesFinished prometheus.Counter
	throws        *prometheus.CounterVec
	finalScores   prometheus.Histogram
}

func newMetrics(st store.Store) *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	m := &metrics{
		reg: reg,
		gamesStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bowling",
			Name:      "games_started_total",
			Help:      "Games created through the API.",
		}),
		gamesFinished: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bowling",
			Name:      "games_finished_total",
			Help:      "Games whose tenth turn closed.",
		}),
		throws: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bowling",
			Name:      "throws_total",
			Help:      "Throws received, by outcome.",
		}, []string{"outcome"}),
		finalScores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bowling",
			Name:      "final_score",
			Help:      "Final scores of finished games.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
	}
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "bowling",
		Name:      "live_sessions",
		Help:      "Sessions held in memory.",
	}, func() float64 { return float64(st.Len()) })
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
