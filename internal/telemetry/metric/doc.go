// Package metric exposes Prometheus metrics for rustbucket.
//
// The registry covers the connection lifecycle, per-command throughput and
// latency, and the keyspace size. The /metrics endpoint is optional and
// served on its own address so the data port stays pure RESP.
package metric
