package dbal

import (
	"sync"
	"testing"
)

func TestKeyedMutex_LockUnlock(t *testing.T) {
	m := NewMutex()
	if err := m.Lock("a"); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if err := m.Unlock("a"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}

func TestKeyedMutex_UnlockUnlocked(t *testing.T) {
	m := NewMutex()
	if err := m.Unlock("nope"); err == nil {
		t.Fatalf("expected error unlocking an unlocked key")
	}
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Lock("counter"); err != nil {
				t.Errorf("Lock failed: %v", err)
				return
			}
			counter++
			if err := m.Unlock("counter"); err != nil {
				t.Errorf("Unlock failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if counter != 64 {
		t.Fatalf("expected 64 increments, got %d", counter)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	m := NewMutex()
	if err := m.Lock("a"); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	// A different key must not block.
	done := make(chan struct{})
	go func() {
		_ = m.Lock("b")
		_ = m.Unlock("b")
		close(done)
	}()
	<-done
	if err := m.Unlock("a"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}
