package dbal

import (
	"fmt"
	"sync"
)

// Builder constructs a backend Adapter from a configuration whose defaults
// have already been filled in.
type Builder func(Config) (Adapter, error)

var (
	buildersMu sync.RWMutex
	builders   = map[string]Builder{
		"mysql":  newMySQLAdapter,
		"sqlite": newSQLiteAdapter,
	}
)

// Register makes a backend available to New under the given type name.
// It panics if the name is empty, the builder is nil, or the name is
// already taken, mirroring database/sql.Register.
func Register(name string, builder Builder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	if name == "" || builder == nil {
		panic("dbal: Register with empty name or nil builder")
	}
	if _, dup := builders[name]; dup {
		panic("dbal: Register called twice for backend " + name)
	}
	builders[name] = builder
}

// New dispatches on cfg.Type and constructs the matching backend Adapter.
// A missing type fails with ErrMissingType, an unregistered one with
// ErrUnsupportedType; both are hard failures, no Adapter is returned.
// New holds no state between calls; each call opens an independent
// connection.
func New(cfg Config) (Adapter, error) {
	if cfg.Type == "" {
		return nil, ErrMissingType
	}
	buildersMu.RLock()
	builder, ok := builders[cfg.Type]
	buildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, cfg.Type)
	}
	return builder(withDefaults(cfg))
}
