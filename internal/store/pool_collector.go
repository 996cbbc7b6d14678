package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports pgxpool statistics as Prometheus gauges
type PoolCollector struct {
	pool *pgxpool.Pool

	acquired     *prometheus.Desc
	idle         *prometheus.Desc
	total        *prometheus.Desc
	max          *prometheus.Desc
	emptyAcquire *prometheus.Desc
}

// NewPoolCollector creates a collector for pool
func NewPoolCollector(pool *pgxpool.Pool) *PoolCollector {
	return &PoolCollector{
		pool:         pool,
		acquired:     prometheus.NewDesc("tenant_admin_pool_acquired_conns", "Connections currently checked out.", nil, nil),
		idle:         prometheus.NewDesc("tenant_admin_pool_idle_conns", "Idle connections in the pool.", nil, nil),
		total:        prometheus.NewDesc("tenant_admin_pool_total_conns", "Total connections in the pool.", nil, nil),
		max:          prometheus.NewDesc("tenant_admin_pool_max_conns", "Configured maximum pool size.", nil, nil),
		emptyAcquire: prometheus.NewDesc("tenant_admin_pool_empty_acquire_total", "Acquires that had to wait for a connection.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.emptyAcquire
}

// Collect implements prometheus.Collector
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(stat.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.emptyAcquire, prometheus.CounterValue, float64(stat.EmptyAcquireCount()))
}
