package outbox

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	PublishedTotal *prometheus.CounterVec
	FailedTotal    *prometheus.CounterVec
	PendingCount   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PublishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "outbox_published_total", Help: "Published outbox messages."},
			[]string{"event_type"},
		),
		FailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "outbox_failed_total", Help: "Failed outbox delivery attempts."},
			[]string{"event_type"},
		),
		PendingCount: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "outbox_pending_count", Help: "Pending outbox messages seen by the last tick."},
		),
	}
	reg.MustRegister(m.PublishedTotal, m.FailedTotal, m.PendingCount)
	return m
}
