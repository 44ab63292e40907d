// Package dbal provides a uniform access layer over multiple SQL engines.
// Each Adapter wraps exactly one live connection to a backend (MySQL over
// the network, SQLite on a local file) and hands out Statements that bind
// typed parameters, execute, and fetch rows in a backend-independent shape.
// SQL text is passed through to the native driver untouched; the package
// performs no dialect translation.
package dbal

import "time"

// FetchMode selects the shape of rows returned by Fetch and FetchAll.
type FetchMode int

const (
	// FetchAssoc keys each row by column name. This is the default.
	FetchAssoc FetchMode = iota

	// FetchNum keys each row by the zero-based column position rendered
	// as a decimal string ("0", "1", ...). Useful when a result set has
	// duplicate or anonymous column names.
	FetchNum
)

// Row is a single result row. Values carry the driver's native Go types:
// modernc.org/sqlite yields string/int64/float64/[]byte, go-sql-driver
// yields []byte for text columns. No coercion is applied.
type Row map[string]any

// Statement is one prepared SQL command bound to the connection of the
// Adapter that produced it. A Statement is independently lifetimed after
// creation; the Adapter does not track it. Not safe for concurrent use.
type Statement interface {
	// BindValue associates a value with a placeholder. The key is the
	// placeholder name for ":name" style SQL, or the 1-based position
	// rendered as a string for "?" style SQL. A leading colon in the key
	// is accepted and ignored. Rebinding a key overwrites the previous
	// binding. Binding a key the SQL text does not contain is an error.
	BindValue(key string, value Value) error

	// Execute runs the statement. An optional inline parameter mapping
	// overlays previously bound values for this execution only.
	// Failures are reported through the returned error and mirrored into
	// the owning Adapter's LastError.
	Execute(params ...map[string]Value) error

	// Fetch advances the cursor one row. It returns (row, true, nil) on
	// a row, (nil, false, nil) once the result set is exhausted, and a
	// non-nil error on a failed fetch or when the statement has not been
	// executed yet.
	Fetch(mode ...FetchMode) (Row, bool, error)

	// FetchAll drains the remaining rows eagerly. An empty result set
	// yields an empty slice, not an error.
	FetchAll(mode ...FetchMode) ([]Row, error)

	// RowCount reports the number of rows affected by the most recent
	// execution of a write statement. For result-set statements it is 0;
	// drivers do not reliably report counts for reads.
	RowCount() int64

	// CloseCursor releases the pending result set so the statement can
	// be executed again without re-preparing. Idempotent.
	CloseCursor() error

	// Close releases the cursor and the prepared handle.
	Close() error
}

// Adapter wraps one live database connection. Adapters are produced by
// New from a Config and are not safe for concurrent use; open one adapter
// per goroutine or guard it externally.
type Adapter interface {
	// Prepare compiles the SQL text and returns a bindable, reusable
	// Statement. Placeholders use ":name" or "?" style, not both.
	Prepare(query string) (Statement, error)

	// Query prepares and immediately executes a statement with no
	// parameters, returning it positioned before the first row. SQL text
	// with untrusted values must go through Prepare and BindValue.
	Query(query string) (Statement, error)

	// Exec runs SQL with no result set expected and returns the number
	// of affected rows, or -1 when the engine cannot report one.
	Exec(query string) (int64, error)

	// QueryCached executes a parameterless read and caches the drained
	// rows for ttl. Subsequent calls with the same SQL text are served
	// from the cache until the entry expires. When caching is disabled
	// in the Config the call degrades to an uncached read.
	QueryCached(query string, ttl time.Duration) ([]Row, error)

	// BeginTransaction opens a transaction on the connection. A second
	// begin without an intervening Commit or Rollback fails with
	// ErrTransactionActive; the engines used here do not nest.
	BeginTransaction() error

	// Commit resolves the open transaction. Without one it fails with
	// ErrNoTransaction.
	Commit() error

	// Rollback discards the open transaction. Without one it fails with
	// ErrNoTransaction.
	Rollback() error

	// LastInsertID reports the auto-generated id from the most recent
	// insert on this connection. The optional sequence name selects a
	// sequence on engines that have several; both built-in backends
	// ignore it. The second return is false when no insert has produced
	// an id yet.
	LastInsertID(sequence ...string) (int64, bool)

	// LastError returns the engine-reported message of the most recent
	// failed operation, or an empty string after a successful one. It is
	// a diagnostic for logging, not a value to branch on: message
	// formats differ per backend.
	LastError() string

	// Close releases the connection and any cache resources the adapter
	// owns. An open transaction is rolled back.
	Close() error
}
