package dbal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"type": "mysql",
		"host": "db.internal",
		"port": "3307",
		"user": "app",
		"pass": "secret",
		"name": "orders",
	})
	assert.Equal(t, "mysql", cfg.Type)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "secret", cfg.Pass)
	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "", cfg.Path)
}

func TestFromMap_MissingKeysDefaultEmpty(t *testing.T) {
	cfg := FromMap(map[string]string{"type": "sqlite", "path": ":memory:"})
	assert.Equal(t, "sqlite", cfg.Type)
	assert.Equal(t, ":memory:", cfg.Path)
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, "", cfg.User)
	assert.Equal(t, 0, cfg.Port)

	// Unparseable port stays zero, deferring the failure to connect time.
	cfg = FromMap(map[string]string{"type": "mysql", "port": "nope"})
	assert.Equal(t, 0, cfg.Port)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"type":"mysql","host":"h","port":3306,"user":"u","pass":"p","name":"n"}`))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	assert.Equal(t, "mysql", cfg.Type)
	assert.Equal(t, "h", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)

	if _, err := FromJSON([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := withDefaults(Config{Type: "mysql"})
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "utf8mb4", cfg.Charset)
	assert.Equal(t, "utf8mb4_unicode_ci", cfg.Collation)
	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, 30, cfg.ReadTimeout)
	assert.Equal(t, 30, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLCheck)

	// Explicit values survive the merge.
	cfg = withDefaults(Config{Type: "mysql", Host: "h", Port: 3307, Charset: "latin1"})
	assert.Equal(t, "h", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "latin1", cfg.Charset)
}
