// Package store implements the in-memory keyspace.
//
// Keys map to polymorphic objects (string, list, hash, set, sorted set,
// JSON document) held in a 64-way sharded map. Access is closure-scoped:
// WithRead runs under the owning shard's read lock, WithWrite under its
// write lock. No operation holds more than one shard lock at a time, and
// no command crosses shard boundaries, so deadlock is structurally
// impossible.
//
// Objects are tagged variants, not interfaces: commands match on the tag
// and reject mismatches with WRONGTYPE at the dispatch layer.
package store
