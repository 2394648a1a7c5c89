package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// topQuery describes one getTop stats query and the family it feeds.
type topQuery struct {
	statsType string // statsType query parameter
	key       string // response field holding the item list
	desc      *prometheus.Desc
	clients   bool // TopClients items carry a resolved name next to the IP
}

var topQueries = []topQuery{
	{
		statsType: "TopClients",
		key:       "topClients",
		desc: prometheus.NewDesc("technitium_dns_top_client_hits",
			"Hits for TopClients",
			[]string{"server", "client_ip", "client_name"}, nil),
		clients: true,
	},
	{
		statsType: "TopDomains",
		key:       "topDomains",
		desc: prometheus.NewDesc("technitium_dns_top_domain_hits",
			"Hits for TopDomains",
			[]string{"server", "domain"}, nil),
	},
	{
		statsType: "TopBlockedDomains",
		key:       "topBlockedDomains",
		desc: prometheus.NewDesc("technitium_dns_top_blocked_domain_hits",
			"Hits for TopBlockedDomains",
			[]string{"server", "domain"}, nil),
	},
}

type topItem struct {
	Name   string  `json:"name"`
	Domain string  `json:"domain"`
	Hits   float64 `json:"hits"`
}

// collectTop issues the three getTop queries independently. A failure in one
// is logged by the client and skips only that family; the remaining queries
// still run.
func (c *Collector) collectTop(ctx context.Context, ch chan<- prometheus.Metric) {
	limit := strconv.Itoa(c.topLimit)

	for _, q := range topQueries {
		raw := c.client.Call(ctx, "/api/dashboard/stats/getTop", url.Values{
			"statsType": {q.statsType},
			"limit":     {limit},
		})
		if raw == nil {
			continue
		}

		var lists map[string][]topItem
		if err := json.Unmarshal(raw, &lists); err != nil {
			slog.Error("collector: decoding top stats",
				"stats_type", q.statsType, "err", err)
			continue
		}

		for _, item := range lists[q.key] {
			if q.clients {
				ch <- prometheus.MustNewConstMetric(q.desc, prometheus.GaugeValue,
					item.Hits, c.server, item.Name, item.Domain)
			} else {
				ch <- prometheus.MustNewConstMetric(q.desc, prometheus.GaugeValue,
					item.Hits, c.server, item.Name)
			}
		}
	}
}
