// Package redisserver provides the RESP2 protocol server for rustbucket.
//
// The listener hands each accepted socket to its own goroutine running the
// connection pipeline: read a chunk into the parse buffer, decode every
// complete frame, dispatch each as a command against the sharded store,
// and flush all accumulated replies in a single write. Batching the
// replies is what makes pipelined clients fast; there are exactly two
// blocking points per iteration, the socket read and the socket write.
//
// Command handlers are registered per data type (string.go, list.go,
// hash.go, set.go, zset.go, json.go, keyspace.go, admin.go) into a single
// dispatch table with arity validation.
package redisserver
