package collector

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/technitium-tools/technitium-exporter/internal/config"
	"github.com/technitium-tools/technitium-exporter/internal/technitium"
)

var (
	upDesc = prometheus.NewDesc(
		"technitium_up",
		"Technitium API reachable",
		[]string{"server"}, nil,
	)

	scrapeDurationDesc = prometheus.NewDesc(
		"technitium_scrape_duration_seconds",
		"Exporter scrape duration",
		[]string{"server"}, nil,
	)
)

// Collector translates Technitium management API state into Prometheus
// metrics on every scrape. It holds no mutable state; the shared API client
// is safe for concurrent use, so concurrent scrapes need no locking.
type Collector struct {
	client     *technitium.Client
	server     string // value of the "server" label on every sample
	statsRange string
	topLimit   int
}

// New builds a Collector bound to the given API client and configuration.
func New(client *technitium.Client, cfg *config.Config) *Collector {
	return &Collector{
		client:     client,
		server:     cfg.ServerLabel,
		statsRange: cfg.StatsRange,
		topLimit:   cfg.TopLimit,
	}
}

// Describe sends the descriptor of every metric family this collector can
// emit. Conditional families are still described; they just produce no
// samples on scrapes where their upstream data is empty.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	for _, g := range statGauges {
		ch <- g.desc
	}
	ch <- queriesDesc
	for _, g := range chartGauges {
		ch <- g.desc
	}
	ch <- zoneInfoDesc
	ch <- dhcpLeasesDesc
	for _, q := range topQueries {
		ch <- q.desc
	}
	ch <- scrapeDurationDesc
}

// Collect runs one scrape cycle: a fixed sequence of independent upstream
// queries, each translated into zero or more const metrics. A failed query
// yields no samples for its families and never aborts the rest of the cycle.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	start := time.Now()
	ctx := context.Background()

	dashboard := c.fetchDashboard(ctx)

	up := 0.0
	if dashboard != nil && len(dashboard.Stats) > 0 {
		up = 1.0
	}
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, up, c.server)

	if up == 1.0 {
		c.collectStats(ch, dashboard.Stats)
		c.collectCharts(ch, dashboard)
	}

	c.collectZones(ctx, ch)
	c.collectLeases(ctx, ch)
	c.collectTop(ctx, ch)

	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue,
		time.Since(start).Seconds(), c.server)
}
