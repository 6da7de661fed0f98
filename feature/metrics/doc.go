// Package metrics serves the Prometheus scrape endpoint at GET /metrics.
package metrics
