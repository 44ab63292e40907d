package dbal

import (
	"strings"

	_ "modernc.org/sqlite"
)

// newSQLiteAdapter opens an embedded SQLite database at cfg.Path.
// ":memory:" yields a transient database that lives exactly as long as
// the adapter. The driver is CGO-free (modernc.org/sqlite).
func newSQLiteAdapter(cfg Config) (Adapter, error) {
	db, err := sqlOpen("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}

	// A single connection both satisfies the one-adapter-one-connection
	// contract and keeps an in-memory database alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	c, err := newConn("sqlite", db, cfg)
	if err != nil {
		return nil, err
	}

	if isFileBacked(cfg.Path) {
		// WAL lets concurrent readers (other adapters on the same file)
		// proceed during writes.
		if _, err := c.Exec("PRAGMA journal_mode=WAL"); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func isFileBacked(path string) bool {
	return path != "" && path != ":memory:" && !strings.Contains(path, "mode=memory")
}
