// Package registry implements the reactor's fd -> connection state mapping.
// Readiness events carry an fd, not a reference, so that a fd closed by one
// worker cannot leave another worker holding a dangling pointer; resolving
// the fd through the registry is always safe because removal and lookup
// share the same lock.
//
// Sharded by fd so that unrelated connections on different workers rarely
// contend on the same lock, the same trade the teacher's memory backend
// makes for byte ranges (see backend/mem.go's shardRange), applied here to
// descriptors instead of byte offsets.
package registry

import "sync"

const shardCount = 64

// Registry maps an open client fd to whatever opaque state the caller
// associated with it (typically an iface.State, but the type stays generic
// here to avoid an import this package does not need).
type Registry struct {
	shards [shardCount]shard
}

type shard struct {
	mu sync.RWMutex
	m  map[int]any
}

// New returns an empty Registry.
func New() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i].m = make(map[int]any)
	}
	return r
}

func (r *Registry) shardFor(fd int) *shard {
	return &r.shards[fd%shardCount]
}

// Store associates fd with state, overwriting any previous entry.
func (r *Registry) Store(fd int, state any) {
	s := r.shardFor(fd)
	s.mu.Lock()
	s.m[fd] = state
	s.mu.Unlock()
}

// Load returns the state associated with fd, if any.
func (r *Registry) Load(fd int) (any, bool) {
	s := r.shardFor(fd)
	s.mu.RLock()
	v, ok := s.m[fd]
	s.mu.RUnlock()
	return v, ok
}

// Delete removes fd's entry, if present. Idempotent: deleting an fd that
// is not present is a no-op.
func (r *Registry) Delete(fd int) {
	s := r.shardFor(fd)
	s.mu.Lock()
	delete(s.m, fd)
	s.mu.Unlock()
}

// Len returns the total number of entries across all shards. Intended for
// tests and shutdown assertions, not the hot path.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		r.shards[i].mu.RLock()
		n += len(r.shards[i].m)
		r.shards[i].mu.RUnlock()
	}
	return n
}

// Range calls f for every entry in the registry. Each shard's entries are
// copied under its read lock, and f runs after that lock is released, so f
// may call Store/Delete on the same registry; it sees a per-shard snapshot,
// not one consistent view across the whole call.
func (r *Registry) Range(f func(fd int, state any) bool) {
	for i := range r.shards {
		r.shards[i].mu.RLock()
		entries := make(map[int]any, len(r.shards[i].m))
		for k, v := range r.shards[i].m {
			entries[k] = v
		}
		r.shards[i].mu.RUnlock()
		for fd, state := range entries {
			if !f(fd, state) {
				return
			}
		}
	}
}
