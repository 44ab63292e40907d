package dbal

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// conn is the shared adapter core. Backends differ only in how the
// *sql.DB is opened and configured; everything past construction runs
// through here on a single pinned session, so transaction state and
// last-insert-id stay scoped to one native connection.
type conn struct {
	backend string
	db      *sql.DB
	sess    *sql.Conn

	inTx       bool
	lastErr    string
	lastInsert int64
	hasInsert  bool

	// Open cursors on the pinned session. database/sql will not release
	// the session while a Rows is live, so Close drains this set first;
	// otherwise teardown would block on any undrained statement.
	cmx     sync.Mutex
	cursors map[*sql.Rows]struct{}

	cacheEnabled bool
	cache        Storage
	ownCache     bool
	mutex        Mutex
	codec        Codec
}

// newConn pins one connection out of the freshly opened pool and wires the
// cache collaborators. Backends cap the pool at a single connection, so
// the pinned session is the only one that will ever exist.
func newConn(backend string, db *sql.DB, cfg Config) (*conn, error) {
	sess, err := db.Conn(context.Background())
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &conn{
		backend:      backend,
		db:           db,
		sess:         sess,
		cursors:      make(map[*sql.Rows]struct{}),
		cacheEnabled: cfg.CacheEnabled,
	}

	if cfg.Codec != nil {
		c.codec = cfg.Codec
	} else {
		c.codec = MsgpackCodec{}
	}

	if cfg.Mutex != nil {
		c.mutex = cfg.Mutex
	} else {
		c.mutex = NewMutex()
	}

	if cfg.Cache != nil {
		c.cache = cfg.Cache
	} else if cfg.CacheEnabled {
		c.cache = NewInMemoryStorage(cfg.CacheTTLCheck)
		c.ownCache = true
	}

	return c, nil
}

// fail records the engine message for LastError and passes the error
// through verbatim.
func (c *conn) fail(err error) error {
	c.lastErr = err.Error()
	return err
}

func (c *conn) trackCursor(r *sql.Rows) {
	c.cmx.Lock()
	c.cursors[r] = struct{}{}
	c.cmx.Unlock()
}

func (c *conn) untrackCursor(r *sql.Rows) {
	c.cmx.Lock()
	delete(c.cursors, r)
	c.cmx.Unlock()
}

// closeCursors releases every cursor still open on the session.
// Statements observe a closed cursor as an exhausted result set.
func (c *conn) closeCursors() {
	c.cmx.Lock()
	for r := range c.cursors {
		_ = r.Close()
	}
	c.cursors = make(map[*sql.Rows]struct{})
	c.cmx.Unlock()
}

// noteResult captures the auto-generated id of a write, if the engine
// reported one.
func (c *conn) noteResult(res sql.Result) {
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		c.lastInsert = id
		c.hasInsert = true
	}
}

func (c *conn) Prepare(query string) (Statement, error) {
	text, names, err := rewritePlaceholders(query)
	if err != nil {
		return nil, c.fail(err)
	}
	stmt, err := c.sess.PrepareContext(context.Background(), text)
	if err != nil {
		return nil, c.fail(err)
	}
	c.lastErr = ""
	return &statement{
		conn:    c,
		stmt:    stmt,
		names:   names,
		isQuery: returnsRows(text),
		bound:   make(map[string]Value),
	}, nil
}

func (c *conn) Query(query string) (Statement, error) {
	st, err := c.Prepare(query)
	if err != nil {
		return nil, err
	}
	if err := st.Execute(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func (c *conn) Exec(query string) (int64, error) {
	res, err := c.sess.ExecContext(context.Background(), query)
	if err != nil {
		return 0, c.fail(err)
	}
	c.noteResult(res)
	c.lastErr = ""
	n, err := res.RowsAffected()
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func (c *conn) BeginTransaction() error {
	if c.inTx {
		return c.fail(ErrTransactionActive)
	}
	if _, err := c.sess.ExecContext(context.Background(), "BEGIN"); err != nil {
		return c.fail(err)
	}
	c.inTx = true
	c.lastErr = ""
	return nil
}

func (c *conn) Commit() error {
	if !c.inTx {
		return c.fail(ErrNoTransaction)
	}
	if _, err := c.sess.ExecContext(context.Background(), "COMMIT"); err != nil {
		return c.fail(err)
	}
	c.inTx = false
	c.lastErr = ""
	return nil
}

func (c *conn) Rollback() error {
	if !c.inTx {
		return c.fail(ErrNoTransaction)
	}
	if _, err := c.sess.ExecContext(context.Background(), "ROLLBACK"); err != nil {
		return c.fail(err)
	}
	c.inTx = false
	c.lastErr = ""
	return nil
}

func (c *conn) LastInsertID(sequence ...string) (int64, bool) {
	// Neither built-in backend supports multiple sequences; the name is
	// accepted and ignored.
	_ = sequence
	if !c.hasInsert {
		return 0, false
	}
	return c.lastInsert, true
}

func (c *conn) LastError() string {
	return c.lastErr
}

func (c *conn) QueryCached(query string, ttl time.Duration) ([]Row, error) {
	if !c.cacheEnabled || c.cache == nil || ttl <= 0 {
		return c.drain(query)
	}

	key := CreateKey(query)
	if rows, ok := c.cacheLookup(key); ok {
		return rows, nil
	}

	// Single-flight: queries racing on the same key wait for the first
	// one to fill the cache.
	mutexKey := "dbal_" + key
	if err := c.mutex.Lock(mutexKey); err != nil {
		return c.drain(query)
	}
	defer c.mutex.Unlock(mutexKey)

	if rows, ok := c.cacheLookup(key); ok {
		return rows, nil
	}

	rows, err := c.drain(query)
	if err != nil {
		return nil, err
	}
	if data, err := c.codec.Marshal(rows); err == nil {
		_ = c.cache.Set(key, data, ttl)
	}
	return rows, nil
}

// drain runs a parameterless read and collects every row.
func (c *conn) drain(query string) ([]Row, error) {
	st, err := c.Query(query)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.FetchAll()
}

func (c *conn) cacheLookup(key string) ([]Row, bool) {
	data, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var rows []Row
	if err := c.codec.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *conn) Close() error {
	c.closeCursors()
	if c.inTx {
		_, _ = c.sess.ExecContext(context.Background(), "ROLLBACK")
		c.inTx = false
	}
	if c.ownCache {
		_ = c.cache.Close()
	}
	err := c.sess.Close()
	if cerr := c.db.Close(); err == nil {
		err = cerr
	}
	return err
}
