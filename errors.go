package dbal

import "errors"

// Configuration errors reported by New. The two kinds are distinct so
// callers can tell a descriptor without a discriminator apart from one
// naming a backend this build does not know.
var (
	// ErrMissingType indicates the configuration has no "type" field.
	ErrMissingType = errors.New("dbal: configuration is missing the backend type")

	// ErrUnsupportedType indicates the "type" field names a backend that
	// is not registered. New wraps it with the offending value.
	ErrUnsupportedType = errors.New("dbal: unsupported backend type")
)

// Transaction boundary errors.
var (
	// ErrTransactionActive is returned by BeginTransaction while a
	// transaction is already open on the connection.
	ErrTransactionActive = errors.New("dbal: transaction already active")

	// ErrNoTransaction is returned by Commit or Rollback when no
	// transaction is open.
	ErrNoTransaction = errors.New("dbal: no active transaction")
)

// Statement errors.
var (
	// ErrNotExecuted is returned by Fetch and FetchAll before a
	// successful Execute.
	ErrNotExecuted = errors.New("dbal: statement has not been executed")

	// ErrUnknownParameter is returned by BindValue for a key the SQL
	// text does not contain.
	ErrUnknownParameter = errors.New("dbal: unknown statement parameter")

	// ErrParameterUnbound is returned by Execute when a placeholder has
	// neither a bound nor an inline value.
	ErrParameterUnbound = errors.New("dbal: statement parameter not bound")

	// ErrMixedPlaceholders is returned by Prepare when SQL text mixes
	// ":name" and "?" placeholder styles.
	ErrMixedPlaceholders = errors.New("dbal: cannot mix named and positional placeholders")
)
