// Package metrics registers the Prometheus collectors of the filter and exposes
// the scrape handler mounted at /metrics.
package metrics
