// Package main provides the entry point for rustbucket-server.
//
// The server is a single-node in-memory key/value store that speaks the
// Redis RESP2 protocol over TCP:
//
//   - Wire-compatible with standard Redis clients
//   - Sharded keyspace for multi-core scalability
//   - Batched pipeline execution (one flush per request burst)
//   - Optional Prometheus metrics endpoint
//
// Usage:
//
//	rustbucket-server [flags]
//	rustbucket-server --config /path/to/config.yaml
//	rustbucket-server --addr 0.0.0.0:6379 --log-level debug
//
// The server loads configuration, binds the RESP listener, and serves
// until SIGINT or SIGTERM.
package main
