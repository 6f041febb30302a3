package store

import (
	"github.com/rahulkeshervani/rustbucket/pkg/cmap"
)

// ShardCount is the number of keyspace partitions.
const ShardCount = 64

// Store is the sharded keyspace. It is safe for concurrent use; no
// operation holds more than one shard lock at a time.
type Store struct {
	m *cmap.Map[*Object]
}

// New returns an empty store.
func New() *Store {
	return &Store{m: cmap.NewWithShards[*Object](ShardCount)}
}

// WithRead runs fn under the read lock of key's shard. obj is nil when the
// key is absent. fn must not mutate the object or retain it past the call.
func (s *Store) WithRead(key string, fn func(obj *Object)) {
	s.m.WithRead(key, func(items map[string]*Object) {
		fn(items[key])
	})
}

// WithWrite runs fn under the write lock of key's shard. obj is nil when
// the key is absent. fn returns the object to store and whether to apply:
// (obj, true) stores obj, (nil, true) deletes the key, (_, false) leaves
// the entry untouched. In-place mutations of obj are visible regardless.
func (s *Store) WithWrite(key string, fn func(obj *Object) (*Object, bool)) {
	s.m.WithWrite(key, func(items map[string]*Object) {
		next, apply := fn(items[key])
		if !apply {
			return
		}
		if next == nil {
			delete(items, key)
			return
		}
		items[key] = next
	})
}

// Delete removes key, reporting whether it was present.
func (s *Store) Delete(key string) bool {
	return s.m.Delete(key)
}

// Exists reports whether key is present.
func (s *Store) Exists(key string) bool {
	return s.m.Has(key)
}

// TypeOf returns the variant tag for key, or KindNone when absent.
func (s *Store) TypeOf(key string) Kind {
	obj, ok := s.m.Get(key)
	if !ok {
		return KindNone
	}
	return obj.Kind()
}

// Count returns the number of keys. Shards are sampled independently, so
// the result is a lower-bound estimate under concurrent mutation.
func (s *Store) Count() int {
	return s.m.Count()
}

// FlushAll removes every key, clearing shards in index order.
func (s *Store) FlushAll() {
	s.m.Clear()
}

// Keys feeds every key matching pattern to sink, iterating shards in turn
// under their read locks. The view across shards is not a snapshot.
func (s *Store) Keys(pattern string, sink func(key string)) {
	all := pattern == "*"
	s.m.Range(func(key string, _ *Object) bool {
		if all || MatchGlob(pattern, key) {
			sink(key)
		}
		return true
	})
}
