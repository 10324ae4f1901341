// Package sync serializes work per resource key without a global lock.
package sync

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 64

// KeyedMutex spreads keys over a fixed set of mutexes. Two calls with the
// same key never run concurrently; calls with different keys only contend
// when their keys land on the same shard.
type KeyedMutex struct {
	shards []sync.Mutex
}

// NewKeyedMutex returns a KeyedMutex with n shards, or the default when n <= 0.
func NewKeyedMutex(n int) *KeyedMutex {
	if n <= 0 {
		n = defaultShards
	}
	return &KeyedMutex{shards: make([]sync.Mutex, n)}
}

// Lock acquires the shard for key. Empty keys use shard 0.
func (m *KeyedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

// Unlock releases the shard for key.
func (m *KeyedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

// WithLock runs fn while holding the shard for key.
func (m *KeyedMutex) WithLock(key string, fn func() error) error {
	m.Lock(key)
	defer m.Unlock(key)
	return fn()
}

func (m *KeyedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(m.shards)))
}
