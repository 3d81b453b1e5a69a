package contact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation triggers recorded by Metrics.
const (
	TriggerBlur   = "blur"
	TriggerSubmit = "submit"
)

// MetricsConfig configures the form metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "site").
	Namespace string

	// Subsystem is the metrics subsystem (default: "contact").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the form metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "site",
		Subsystem: "contact",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts validation activity. A nil *Metrics records nothing.
//
// Metrics collected:
//   - site_contact_validations_total: validation passes by trigger
//   - site_contact_field_failures_total: failing fields by field and trigger
//   - site_contact_submissions_total: submit attempts by outcome
type Metrics struct {
	validations   *prometheus.CounterVec
	fieldFailures *prometheus.CounterVec
	submissions   *prometheus.CounterVec
}

// NewMetrics registers the form metrics with the configured registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "validations_total",
			Help:        "Total number of contact form validation passes",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		fieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_failures_total",
			Help:        "Total number of failing fields found by validation passes",
			ConstLabels: config.ConstLabels,
		}, []string{"field", "trigger"}),

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submissions_total",
			Help:        "Total number of contact form submit attempts",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),
	}
}

func (m *Metrics) recordBlur(id FieldID, failed bool) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(TriggerBlur).Inc()
	if failed {
		m.fieldFailures.WithLabelValues(string(id), TriggerBlur).Inc()
	}
}

func (m *Metrics) recordSubmit(res Result) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(TriggerSubmit).Inc()
	for _, id := range res.Fields() {
		m.fieldFailures.WithLabelValues(string(id), TriggerSubmit).Inc()
	}
	m.submissions.WithLabelValues(outcome(res)).Inc()
}

func outcome(res Result) string {
	if res.Valid() {
		return "accepted"
	}
	return "rejected"
}
