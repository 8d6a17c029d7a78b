package metric

import "github.com/prometheus/client_golang/prometheus"

// KeyspaceSizer is satisfied by internal/store.Store. It is defined here,
// not imported from store, so this package stays free of a dependency on
// the store's package (metric is lower in the dependency graph and is
// imported by store's callers, not the other way around).
type KeyspaceSizer interface {
	DBSize() int64
}

var keyspaceKeysDesc = prometheus.NewDesc(
	namespace+"_keyspace_keys_live",
	"Number of non-expired keys in the store, sampled on every scrape.",
	nil, nil,
)

// Collector is a pull-based prometheus.Collector: rather than pushing
// KeyspaceKeys on every SET/DEL, it samples store.DBSize() each time
// Prometheus scrapes /metrics. Register it alongside the pushed counters
// in Registry via RegisterCollector.
type Collector struct {
	store KeyspaceSizer
}

// NewCollector creates a collector that samples store on every scrape.
func NewCollector(store KeyspaceSizer) *Collector {
	return &Collector{store: store}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keyspaceKeysDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(keyspaceKeysDesc, prometheus.GaugeValue, float64(c.store.DBSize()))
}
