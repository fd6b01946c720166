package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "seeder_db_query_duration_seconds",
		Help:    "Duration of traced database operations",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	},
	[]string{"operation", "status"},
)

// PoolStatsCollector exports pgxpool connection statistics. The stat source
// is a function so tests can run without a live pool.
type PoolStatsCollector struct {
	stat    func() *pgxpool.Stat
	service string

	acquiredConns *prometheus.Desc
	totalConns    *prometheus.Desc
	acquireCount  *prometheus.Desc
	newConnsCount *prometheus.Desc
}

// NewPoolStatsCollector creates a collector reading statistics from pool.
func NewPoolStatsCollector(pool *pgxpool.Pool, service string) *PoolStatsCollector {
	return newPoolStatsCollector(pool.Stat, service)
}

func newPoolStatsCollector(stat func() *pgxpool.Stat, service string) *PoolStatsCollector {
	labels := []string{"service"}
	return &PoolStatsCollector{
		stat:    stat,
		service: service,
		acquiredConns: prometheus.NewDesc(
			"seeder_db_pool_acquired_connections",
			"Number of currently acquired connections",
			labels, nil,
		),
		totalConns: prometheus.NewDesc(
			"seeder_db_pool_total_connections",
			"Total number of connections in the pool",
			labels, nil,
		),
		acquireCount: prometheus.NewDesc(
			"seeder_db_pool_acquire_count_total",
			"Total number of connection acquires",
			labels, nil,
		),
		newConnsCount: prometheus.NewDesc(
			"seeder_db_pool_new_connections_total",
			"Total number of new connections created",
			labels, nil,
		),
	}
}

// Describe sends the descriptors of all metrics to the provided channel.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredConns
	ch <- c.totalConns
	ch <- c.acquireCount
	ch <- c.newConnsCount
}

// Collect reads current pool statistics and sends them as Prometheus metrics.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.stat()
	ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(stat.AcquiredConns()), c.service)
	ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(stat.TotalConns()), c.service)
	ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.CounterValue, float64(stat.AcquireCount()), c.service)
	ch <- prometheus.MustNewConstMetric(c.newConnsCount, prometheus.CounterValue, float64(stat.NewConnsCount()), c.service)
}

// RegisterPoolMetrics registers a pool collector with reg.
func RegisterPoolMetrics(reg prometheus.Registerer, pool *pgxpool.Pool, service string) error {
	return reg.Register(NewPoolStatsCollector(pool, service))
}
