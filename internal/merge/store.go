package merge

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DedupStore records which dedup keys have already been seen across the
// atlases being merged. Global id assignment is done by the merger itself,
// not by the store.
type DedupStore interface {
	// MarkIfNew reports whether key has not been seen before, and marks it
	// seen either way. Concurrent calls need not be supported; the merger
	// streams inputs sequentially.
	MarkIfNew(key string) (bool, error)
}

// MemoryStore is the default DedupStore: an in-process set, adequate for
// merges whose combined key count fits comfortably in memory (the common
// case — continent-sized atlases, not the full planet).
type MemoryStore struct {
	seen map[string]bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]bool)}
}

// MarkIfNew implements DedupStore.
func (m *MemoryStore) MarkIfNew(key string) (bool, error) {
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

// RedisStore backs the dedup set with Redis, for merges whose key set is
// too large to hold in a single process's memory.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

// NewRedisStore returns a RedisStore keying every dedup entry under prefix
// (typically a per-run UUID, see cmd/cosmogony/merge.go) to avoid collisions
// between concurrent merge runs sharing one Redis instance.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, ctx: context.Background(), prefix: prefix}
}

// MarkIfNew implements DedupStore using SETNX for atomic first-wins
// semantics.
func (r *RedisStore) MarkIfNew(key string) (bool, error) {
	ok, err := r.client.SetNX(r.ctx, r.prefix+":"+key, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("merge: redis SETNX: %w", err)
	}
	return ok, nil
}
