package dbal

import (
	"errors"
	"testing"
	"time"
)

type stubAdapter struct{ cfg Config }

func (s *stubAdapter) Prepare(query string) (Statement, error)                 { return nil, nil }
func (s *stubAdapter) Query(query string) (Statement, error)                   { return nil, nil }
func (s *stubAdapter) Exec(query string) (int64, error)                        { return 0, nil }
func (s *stubAdapter) QueryCached(q string, ttl time.Duration) ([]Row, error)  { return nil, nil }
func (s *stubAdapter) BeginTransaction() error                                 { return nil }
func (s *stubAdapter) Commit() error                                           { return nil }
func (s *stubAdapter) Rollback() error                                         { return nil }
func (s *stubAdapter) LastInsertID(sequence ...string) (int64, bool)           { return 0, false }
func (s *stubAdapter) LastError() string                                       { return "" }
func (s *stubAdapter) Close() error                                            { return nil }

func TestNew_MissingType(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(Config{Type: "postgres"})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	// The two configuration error kinds must stay distinguishable.
	if errors.Is(err, ErrMissingType) {
		t.Fatalf("unsupported type must not match ErrMissingType")
	}
}

func TestRegister_DispatchesToCustomBackend(t *testing.T) {
	Register("stubdb", func(cfg Config) (Adapter, error) {
		return &stubAdapter{cfg: cfg}, nil
	})

	a, err := New(Config{Type: "stubdb", Host: "h"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	stub, ok := a.(*stubAdapter)
	if !ok {
		t.Fatalf("expected stub adapter, got %T", a)
	}
	// Builders receive the config with defaults already merged.
	if stub.cfg.Port != 3306 {
		t.Fatalf("expected defaulted port, got %d", stub.cfg.Port)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	Register("dupdb", func(cfg Config) (Adapter, error) { return nil, nil })
	Register("dupdb", func(cfg Config) (Adapter, error) { return nil, nil })
}

func TestRegister_NilBuilderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil builder")
		}
	}()
	Register("nilb", nil)
}
