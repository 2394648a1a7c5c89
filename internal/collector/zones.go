package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var zoneInfoDesc = prometheus.NewDesc(
	"technitium_zone_info",
	"Zone detailed information",
	[]string{"server", "zone", "type", "disabled", "internal", "serial"}, nil,
)

type zonesResponse struct {
	Zones []zone `json:"zones"`
}

type zone struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Disabled  bool   `json:"disabled"`
	Internal  bool   `json:"internal"`
	SoaSerial int64  `json:"soaSerial"`
}

// collectZones lists up to 1000 zones and emits one info sample per zone.
// The family is absent when the query fails or the server has no zones.
func (c *Collector) collectZones(ctx context.Context, ch chan<- prometheus.Metric) {
	raw := c.client.Call(ctx, "/api/zones/list", url.Values{
		"pageNumber": {"1"},
		"pageSize":   {"1000"},
	})
	if raw == nil {
		return
	}

	var zr zonesResponse
	if err := json.Unmarshal(raw, &zr); err != nil {
		slog.Error("collector: decoding zone list", "err", err)
		return
	}

	for _, z := range zr.Zones {
		name := z.Name
		if name == "" {
			name = "unknown"
		}
		ztype := z.Type
		if ztype == "" {
			ztype = "unknown"
		}
		ch <- prometheus.MustNewConstMetric(zoneInfoDesc, prometheus.GaugeValue, 1,
			c.server, name, ztype,
			strconv.FormatBool(z.Disabled),
			strconv.FormatBool(z.Internal),
			strconv.FormatInt(z.SoaSerial, 10),
		)
	}
}
