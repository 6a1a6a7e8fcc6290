package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "Count of webhook deliveries by event and outcome.",
	}, []string{"event", "outcome"})
	webhookDeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "delivery_duration_seconds",
		Help:      "Duration of webhook delivery handling.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"event", "outcome"})
)

// Webhook tracks inbound deliveries.
type Webhook struct{}

// NewWebhook constructs a Webhook collector.
func NewWebhook() *Webhook {
	return &Webhook{}
}

// ObserveDelivery records a delivery. event is empty when the body could not
// be decoded.
func (m Webhook) ObserveDelivery(event, outcome string, started time.Time) {
	if event == "" {
		event = "unknown"
	}
	webhookDeliveriesTotal.WithLabelValues(event, outcome).Inc()
	webhookDeliveryDuration.WithLabelValues(event, outcome).Observe(time.Since(started).Seconds())
}
