package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
)

// dashboardResponse is the response payload of /api/dashboard/stats/get.
// Stats is kept generic: the counter set varies across Technitium versions
// and any non-numeric or absent field simply reads as zero.
type dashboardResponse struct {
	Stats                  map[string]any `json:"stats"`
	QueryResponseChartData chartData      `json:"queryResponseChartData"`
	QueryTypeChartData     chartData      `json:"queryTypeChartData"`
	ProtocolTypeChartData  chartData      `json:"protocolTypeChartData"`
}

// chartData mirrors the dashboard's chart.js-shaped objects: a labels array
// paired positionally with datasets[0].data.
type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Data []float64 `json:"data"`
}

// statGauge maps one dashboard counter to one single-sample gauge family.
type statGauge struct {
	desc  *prometheus.Desc
	field string
}

func statDesc(name, field string) *prometheus.Desc {
	return prometheus.NewDesc(name, "From Dashboard Stats: "+field, []string{"server"}, nil)
}

var statGauges = []statGauge{
	{statDesc("technitium_dns_clients_window", "totalClients"), "totalClients"},
	{statDesc("technitium_dns_zones", "zones"), "zones"},
	{statDesc("technitium_dns_cached_entries", "cachedEntries"), "cachedEntries"},
	{statDesc("technitium_dns_allowed_zones", "allowedZones"), "allowedZones"},
	{statDesc("technitium_dns_blocked_zones", "blockedZones"), "blockedZones"},
	{statDesc("technitium_dns_allowlist_zones", "allowListZones"), "allowListZones"},
	{statDesc("technitium_dns_blocklist_zones", "blockListZones"), "blockListZones"},
}

var queriesDesc = prometheus.NewDesc(
	"technitium_dns_queries_window",
	"Queries by result category in the current stats window",
	[]string{"server", "category"}, nil,
)

// queryCategories maps upstream counters to category label values. All ten
// categories are emitted on every scrape with non-empty stats, absent
// counters included, so dashboards see a stable label set.
var queryCategories = []struct{ field, category string }{
	{"totalQueries", "all"},
	{"totalNoError", "no_error"},
	{"totalServerFailure", "servfail"},
	{"totalNxDomain", "nxdomain"},
	{"totalRefused", "refused"},
	{"totalAuthoritative", "authoritative"},
	{"totalRecursive", "recursive"},
	{"totalCached", "cached"},
	{"totalBlocked", "blocked"},
	{"totalDropped", "dropped"},
}

var chartGauges = []struct {
	desc  *prometheus.Desc
	chart func(*dashboardResponse) chartData
}{
	{
		desc: prometheus.NewDesc("technitium_dns_response_type_total",
			"Response types in the current stats window",
			[]string{"server", "type"}, nil),
		chart: func(d *dashboardResponse) chartData { return d.QueryResponseChartData },
	},
	{
		desc: prometheus.NewDesc("technitium_dns_query_type_total",
			"DNS query types in the current stats window",
			[]string{"server", "qtype"}, nil),
		chart: func(d *dashboardResponse) chartData { return d.QueryTypeChartData },
	},
	{
		desc: prometheus.NewDesc("technitium_dns_protocol_queries",
			"Queries by protocol in the current stats window",
			[]string{"server", "protocol"}, nil),
		chart: func(d *dashboardResponse) chartData { return d.ProtocolTypeChartData },
	},
}

// fetchDashboard queries the dashboard stats endpoint for the configured
// range. Returns nil when the query failed or the payload did not decode.
func (c *Collector) fetchDashboard(ctx context.Context) *dashboardResponse {
	raw := c.client.Call(ctx, "/api/dashboard/stats/get", url.Values{
		"type": {c.statsRange},
		"utc":  {"true"},
	})
	if raw == nil {
		return nil
	}

	var d dashboardResponse
	if err := json.Unmarshal(raw, &d); err != nil {
		slog.Error("collector: decoding dashboard stats", "err", err)
		return nil
	}
	return &d
}

func (c *Collector) collectStats(ch chan<- prometheus.Metric, stats map[string]any) {
	for _, g := range statGauges {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue,
			statValue(stats, g.field), c.server)
	}
	for _, q := range queryCategories {
		ch <- prometheus.MustNewConstMetric(queriesDesc, prometheus.GaugeValue,
			statValue(stats, q.field), c.server, q.category)
	}
}

func (c *Collector) collectCharts(ch chan<- prometheus.Metric, d *dashboardResponse) {
	for _, g := range chartGauges {
		chart := g.chart(d)
		if len(chart.Datasets) == 0 {
			continue
		}
		data := chart.Datasets[0].Data
		// Labels and data are zipped positionally; on a length mismatch the
		// extra entries on either side are dropped.
		n := min(len(chart.Labels), len(data))
		for i := 0; i < n; i++ {
			ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue,
				data[i], c.server, chart.Labels[i])
		}
	}
}

// statValue reads one counter from the stats object, defaulting to 0 when the
// field is absent or not numeric.
func statValue(stats map[string]any, field string) float64 {
	n, ok := stats[field].(float64)
	if !ok {
		return 0
	}
	return n
}
