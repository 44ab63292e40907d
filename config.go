package dbal

import (
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Config describes the backend to connect to. Type is the discriminator
// consumed by New; the remaining fields are read only by the backend they
// belong to, unknown fields are ignored. Missing fields stay at their zero
// value so a bad descriptor fails at connection time, not at dispatch time.
type Config struct {
	// Type selects the backend: "mysql", "sqlite", or a name added via
	// Register. Required.
	Type string `json:"type"`

	// Networked engines.
	Host string `json:"host"` // Server hostname or IP (default: "localhost")
	Port int    `json:"port"` // TCP port (default: 3306)
	User string `json:"user"` // Authentication username
	Pass string `json:"pass"` // Authentication password
	Name string `json:"name"` // Database name

	// File-based engines.
	Path string `json:"path"` // Database file path, ":memory:" for transient

	// Character set configuration (MySQL).
	Charset   string `json:"charset"`   // Connection charset (default: "utf8mb4")
	Collation string `json:"collation"` // Connection collation (default: "utf8mb4_unicode_ci")

	// Timeout settings in seconds, applied through the driver DSN. The
	// layer itself exposes no cancellation API.
	Timeout      int `json:"timeout"`       // Connect timeout (default: 30)
	ReadTimeout  int `json:"read_timeout"`  // Read timeout (default: 30)
	WriteTimeout int `json:"write_timeout"` // Write timeout (default: 30)

	// Cached query support.
	CacheEnabled  bool          `json:"cache_enabled"`   // Enable QueryCached storage (default: false)
	CacheTTLCheck time.Duration `json:"cache_ttl_check"` // Expired entry sweep interval (default: 5 minutes)

	// Pluggable collaborators; nil selects the built-in defaults
	// (in-memory storage, msgpack codec, process-local keyed mutex).
	Cache Storage `json:"-"`
	Mutex Mutex   `json:"-"`
	Codec Codec   `json:"-"`
}

// FromMap builds a Config from a loosely-typed string mapping, the shape
// configuration descriptors usually arrive in. Recognized keys are "type",
// "host", "port", "user", "pass", "name" and "path"; anything else is
// ignored and absent keys default to the empty string.
func FromMap(m map[string]string) Config {
	cfg := Config{
		Type: m["type"],
		Host: m["host"],
		User: m["user"],
		Pass: m["pass"],
		Name: m["name"],
		Path: m["path"],
	}
	if p, err := strconv.Atoi(m["port"]); err == nil {
		cfg.Port = p
	}
	return cfg
}

// FromJSON decodes a JSON configuration descriptor.
func FromJSON(data []byte) (Config, error) {
	var cfg Config
	if err := jsoniter.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults fills in the defaults for fields the caller left at their
// zero value. Credentials and names are deliberately not defaulted; a bad
// descriptor should fail at the engine, with its own message.
func withDefaults(cfg Config) Config {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 3306
	}
	if cfg.Charset == "" {
		cfg.Charset = "utf8mb4"
	}
	if cfg.Collation == "" {
		cfg.Collation = "utf8mb4_unicode_ci"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30
	}
	if cfg.CacheTTLCheck == 0 {
		cfg.CacheTTLCheck = 5 * time.Minute
	}
	return cfg
}
