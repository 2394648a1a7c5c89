package collector

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

var dhcpLeasesDesc = prometheus.NewDesc(
	"technitium_dhcp_leases_total",
	"Number of DHCP leases by scope and type",
	[]string{"server", "scope", "type"}, nil,
)

type leasesResponse struct {
	Leases []lease `json:"leases"`
}

// lease carries the two fields the exporter groups by. Also used directly as
// the grouping key.
type lease struct {
	Scope string `json:"scope"`
	Type  string `json:"type"`
}

// collectLeases lists all DHCP leases and emits one count per (scope, type)
// group. The family is absent when the query fails or there are no leases.
func (c *Collector) collectLeases(ctx context.Context, ch chan<- prometheus.Metric) {
	raw := c.client.Call(ctx, "/api/dhcp/leases/list", nil)
	if raw == nil {
		return
	}

	var lr leasesResponse
	if err := json.Unmarshal(raw, &lr); err != nil {
		slog.Error("collector: decoding dhcp leases", "err", err)
		return
	}

	counts := make(map[lease]int)
	for _, l := range lr.Leases {
		if l.Scope == "" {
			l.Scope = "unknown"
		}
		if l.Type == "" {
			l.Type = "Unknown"
		}
		counts[l]++
	}

	for key, n := range counts {
		ch <- prometheus.MustNewConstMetric(dhcpLeasesDesc, prometheus.GaugeValue,
			float64(n), c.server, key.Scope, key.Type)
	}
}
