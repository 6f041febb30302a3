// Package cmap provides a concurrent sharded map keyed by byte strings.
//
// The keyspace is partitioned into a fixed power-of-two number of shards,
// each guarded by its own RWMutex. The shard for a key is chosen by a
// murmur3 hash of the key bytes masked to the shard count, so a given key
// always lands on the same shard and no operation ever touches more than
// one shard lock at a time.
//
// Beyond the usual Get/Set/Delete surface, the map exposes closure-scoped
// access (WithRead, WithWrite) so callers can perform multi-step
// read-modify-write sequences against a single key's shard without the
// shard's map escaping the lock.
package cmap
