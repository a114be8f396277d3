// Package metrics holds the Prometheus collectors of the wallet.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	explorerAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tfwallet",
		Subsystem: "explorer",
		Name:      "attempts_total",
		Help:      "Count of explorer HTTP attempts by outcome.",
	}, []string{"method", "network", "status"})
	explorerAttemptDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tfwallet",
		Subsystem: "explorer",
		Name:      "attempt_duration_seconds",
		Help:      "Duration of explorer HTTP attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "network", "status"})
	explorerFailoversTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tfwallet",
		Subsystem: "explorer",
		Name:      "failovers_total",
		Help:      "Count of explorer URLs marked unavailable.",
	}, []string{"network"})
	explorerUnavailableURLs = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tfwallet",
		Subsystem: "explorer",
		Name:      "unavailable_urls",
		Help:      "Number of explorer URLs currently excluded from selection.",
	}, []string{"network"})
)

// Attempt outcomes.
const (
	StatusSuccess      = "success"
	StatusRetry        = "retry"
	StatusUnrecognized = "unrecognized"
	StatusRejected     = "rejected"
)

// Explorer tracks metrics for explorer requests of one network.
// A nil *Explorer records nothing.
type Explorer struct {
	network string
}

// NewExplorer constructs a metrics collector for explorer requests.
func NewExplorer(network string) *Explorer {
	if network == "" {
		network = "unknown"
	}
	return &Explorer{network: network}
}

// ObserveAttempt records a single HTTP attempt outcome and duration.
func (m *Explorer) ObserveAttempt(method, status string, started time.Time) {
	if m == nil {
		return
	}
	explorerAttemptsTotal.WithLabelValues(method, m.network, status).Inc()
	explorerAttemptDuration.WithLabelValues(method, m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveFailover records a URL being marked unavailable and the size of
// the unavailable set afterwards.
func (m *Explorer) ObserveFailover(unavailable int) {
	if m == nil {
		return
	}
	explorerFailoversTotal.WithLabelValues(m.network).Inc()
	explorerUnavailableURLs.WithLabelValues(m.network).Set(float64(unavailable))
}

// ObserveReset records the unavailable set being cleared.
func (m *Explorer) ObserveReset() {
	if m == nil {
		return
	}
	explorerUnavailableURLs.WithLabelValues(m.network).Set(0)
}
