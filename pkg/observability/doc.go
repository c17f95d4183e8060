/*
Package observability turns executor lifecycle events into structured logs
and Prometheus metrics.

Metrics live in a private registry. A one-shot CLI has nothing to scrape, so
the registry is written to a node_exporter textfile when the run ends.
*/
package observability
