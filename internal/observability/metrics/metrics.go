package metrics

import "github.com/prometheus/client_golang/prometheus"

// InferenceMetrics exposes counters/histograms for module analysis flows.
type InferenceMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	attachmentBytes prometheus.Histogram
}

func NewInferenceMetrics(reg prometheus.Registerer) *InferenceMetrics {
	m := &InferenceMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carecompass",
			Subsystem: "inference",
			Name:      "requests_total",
			Help:      "Total inference requests per module and outcome",
		}, []string{"module", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carecompass",
			Subsystem: "inference",
			Name:      "request_latency_seconds",
			Help:      "Latency of inference round trips",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"module"}),
		attachmentBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carecompass",
			Subsystem: "inference",
			Name:      "attachment_bytes",
			Help:      "Size of inlined media attachments",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.attachmentBytes)
	return m
}

func (m *InferenceMetrics) ObserveRequest(module, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(module, status).Inc()
}

func (m *InferenceMetrics) ObserveLatency(module string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(module).Observe(seconds)
}

func (m *InferenceMetrics) ObserveAttachment(bytes int) {
	if m == nil {
		return
	}
	m.attachmentBytes.Observe(float64(bytes))
}
