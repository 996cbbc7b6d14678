package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the tenant data layer. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Provisioning    *prometheus.CounterVec
	StoreOperations *prometheus.CounterVec
	StoreRetries    *prometheus.CounterVec
	TenantDenials   prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Provisioning: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenant_admin",
			Subsystem: "tenant",
			Name:      "provisioning_total",
			Help:      "Tenant table provisioning attempts by result.",
		}, []string{"result"}), // result: ok, already_exists, failed
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenant_admin",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by operation and result class.",
		}, []string{"op", "result"}),
		StoreRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenant_admin",
			Subsystem: "store",
			Name:      "retries_total",
			Help:      "Store statement retries by reason.",
		}, []string{"reason"}), // reason: transient, missing_table
		TenantDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tenant_admin",
			Subsystem: "access",
			Name:      "tenant_denials_total",
			Help:      "Requests denied by the tenant access gate.",
		}),
	}

	m.registry.MustRegister(
		m.Provisioning,
		m.StoreOperations,
		m.StoreRetries,
		m.TenantDenials,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Register adds an extra collector, such as the pool statistics collector
func (m *Metrics) Register(c prometheus.Collector) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(c)
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProvisioning counts one provisioning outcome
func (m *Metrics) ObserveProvisioning(result string) {
	if m == nil {
		return
	}
	m.Provisioning.WithLabelValues(result).Inc()
}

// ObserveOperation counts one store operation outcome
func (m *Metrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	m.StoreOperations.WithLabelValues(op, result).Inc()
}

// ObserveRetry counts one retried statement
func (m *Metrics) ObserveRetry(reason string) {
	if m == nil {
		return
	}
	m.StoreRetries.WithLabelValues(reason).Inc()
}

// ObserveDenial counts one gate denial
func (m *Metrics) ObserveDenial() {
	if m == nil {
		return
	}
	m.TenantDenials.Inc()
}
