package dbal

import (
	"errors"
	"sync"
	"time"
)

// Storage defines the key-value store behind QueryCached. Implementations
// can be in-memory, Redis-backed, or anything else that honors expiry.
type Storage interface {
	// Get retrieves a value by key. Returns an error if the key does not
	// exist or has expired.
	Get(key string) ([]byte, error)

	// Set stores a key-value pair. An exp of 0 means the entry never
	// expires.
	Set(key string, val []byte, exp time.Duration) error

	// Delete removes a key-value pair.
	Delete(key string) error

	// Reset clears all entries.
	Reset() error

	// Close releases resources held by the storage. The storage must not
	// be used afterwards.
	Close() error
}

// InMemoryStorage is the default thread-safe in-memory Storage. Expired
// entries are dropped lazily on Get and swept periodically by a janitor
// goroutine that runs until Close.
type InMemoryStorage struct {
	mu    sync.RWMutex
	cache map[string]cacheEntry
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	value   []byte
	expires time.Time
}

// NewInMemoryStorage creates a store whose janitor sweeps expired entries
// every ttlCheck. A non-positive ttlCheck defaults to five minutes.
func NewInMemoryStorage(ttlCheck time.Duration) *InMemoryStorage {
	if ttlCheck <= 0 {
		ttlCheck = 5 * time.Minute
	}
	st := &InMemoryStorage{
		cache: make(map[string]cacheEntry),
		stop:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(ttlCheck)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.cleanUp()
			case <-st.stop:
				return
			}
		}
	}()

	return st
}

// Get retrieves the value for key, expiring it on the spot if stale.
func (i *InMemoryStorage) Get(key string) ([]byte, error) {
	i.mu.RLock()
	entry, ok := i.cache[key]
	i.mu.RUnlock()

	if !ok {
		return nil, errors.New("key not found")
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		i.mu.Lock()
		delete(i.cache, key)
		i.mu.Unlock()
		return nil, errors.New("key is expired")
	}
	return entry.value, nil
}

// Set stores a key-value pair with the given expiration.
func (i *InMemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	entry := cacheEntry{value: val}
	if exp > 0 {
		entry.expires = time.Now().Add(exp)
	}

	i.mu.Lock()
	i.cache[key] = entry
	i.mu.Unlock()
	return nil
}

// Delete removes a key-value pair.
func (i *InMemoryStorage) Delete(key string) error {
	i.mu.Lock()
	delete(i.cache, key)
	i.mu.Unlock()
	return nil
}

// Reset replaces the cache with an empty one.
func (i *InMemoryStorage) Reset() error {
	i.mu.Lock()
	i.cache = make(map[string]cacheEntry)
	i.mu.Unlock()
	return nil
}

// Close stops the janitor. Safe to call more than once.
func (i *InMemoryStorage) Close() error {
	i.once.Do(func() { close(i.stop) })
	return nil
}

func (i *InMemoryStorage) cleanUp() {
	now := time.Now()
	i.mu.Lock()
	for key, entry := range i.cache {
		if !entry.expires.IsZero() && now.After(entry.expires) {
			delete(i.cache, key)
		}
	}
	i.mu.Unlock()
}
