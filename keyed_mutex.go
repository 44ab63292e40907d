package dbal

import (
	"errors"
	"sync"
)

// Mutex defines key-based mutual exclusion. QueryCached uses it to
// single-flight cache misses; distributed setups can plug in a shared
// lock implementation through Config.Mutex.
type Mutex interface {
	// Lock acquires the lock for key, blocking until available.
	Lock(key string) error

	// Unlock releases the lock for key. Unlocking a key that is not
	// locked is an error.
	Unlock(key string) error
}

// entry is a reference-counted mutex for one key. When refs drops to zero
// the entry returns to the pool.
type entry struct {
	m    sync.Mutex
	refs int32
}

// KeyedMutex provides process-local per-key mutual exclusion, reusing
// entries through a sync.Pool to keep allocation pressure low.
type KeyedMutex struct {
	mu   sync.Mutex
	m    map[string]*entry
	pool sync.Pool
}

// NewMutex creates a ready-to-use KeyedMutex.
func NewMutex() *KeyedMutex {
	return &KeyedMutex{
		m: make(map[string]*entry),
		pool: sync.Pool{
			New: func() any {
				return &entry{}
			},
		},
	}
}

// Lock acquires the mutex for key. Concurrent callers on the same key are
// serialized; different keys do not contend.
func (k *KeyedMutex) Lock(key string) error {
	k.mu.Lock()
	e, exists := k.m[key]
	if !exists {
		e = k.pool.Get().(*entry)
		e.refs = 1
		k.m[key] = e
	} else {
		e.refs++
	}
	k.mu.Unlock()

	e.m.Lock()
	return nil
}

// Unlock releases the mutex for key. Must be called once per Lock.
func (k *KeyedMutex) Unlock(key string) error {
	k.mu.Lock()
	e, exists := k.m[key]
	if !exists {
		k.mu.Unlock()
		return errors.New("keyedmutex: unlock of unlocked key")
	}

	e.m.Unlock()
	e.refs--
	if e.refs <= 0 {
		delete(k.m, key)
		e.refs = 0
		k.pool.Put(e)
	}
	k.mu.Unlock()
	return nil
}
