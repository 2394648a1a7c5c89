// Package collector implements the Prometheus collector for Technitium DNS.
//
// One Collect call is one scrape cycle: dashboard stats (reachability, scalar
// gauges, query categories, chart breakdowns), zone info, DHCP lease counts,
// the three top-N hit lists, and finally the scrape duration. Metrics are
// produced on demand as const metrics rather than pre-registered vectors, so
// the exposed state is always exactly what the upstream API reported for this
// scrape and stale series disappear on their own.
//
// The translation mapping lives in declarative tables (statGauges,
// queryCategories, chartGauges, topQueries); the collect functions just walk
// them. Each upstream query is best-effort: a failure drops that query's
// families from the scrape and leaves everything else intact, with
// technitium_up and technitium_scrape_duration_seconds always present.
package collector
