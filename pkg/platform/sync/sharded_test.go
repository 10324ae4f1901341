package sync

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_LockUnlock(t *testing.T) {
	m := NewKeyedMutex(0)
	m.Lock("101050")
	m.Unlock("101050")

	m.Lock("")
	m.Unlock("")
	assert.Len(t, m.shards, defaultShards)
}

func TestKeyedMutex_SameKeySerializes(t *testing.T) {
	m := NewKeyedMutex(8)

	var inFlight, maxInFlight int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithLock("101050", func() error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					cur := atomic.LoadInt32(&maxInFlight)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight)
}

func TestKeyedMutex_WithLockReturnsError(t *testing.T) {
	m := NewKeyedMutex(4)
	sentinel := errors.New("boom")

	err := m.WithLock("k", func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)

	// lock must be released after fn returns an error
	done := make(chan struct{})
	go func() {
		m.Lock("k")
		m.Unlock("k")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released")
	}
}

func TestKeyedMutex_ShardForIsStable(t *testing.T) {
	m := NewKeyedMutex(16)
	assert.Equal(t, m.shardFor("2000001"), m.shardFor("2000001"))
	assert.Equal(t, 0, m.shardFor(""))
}
