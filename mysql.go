package dbal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// sqlOpen is swapped out in tests to fail opens or inject mock databases.
var sqlOpen = sql.Open

// newMySQLAdapter connects to a MySQL server. Connection failure is a hard
// failure: no adapter is returned. The DSN carries credentials, so callers
// logging a failed connect should log their own config, not the error's
// surroundings.
func newMySQLAdapter(cfg Config) (Adapter, error) {
	db, err := sqlOpen("mysql", mysqlDSN(cfg))
	if err != nil {
		return nil, err
	}

	// One adapter owns exactly one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return newConn("mysql", db, cfg)
}

// mysqlDSN constructs the MySQL connection string from the configuration.
func mysqlDSN(cfg Config) string {
	// Format: user:pass@tcp(host:port)/name?parseTime=true
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)

	if cfg.Charset != "" {
		dsn += "&charset=" + cfg.Charset
	}
	if cfg.Collation != "" {
		dsn += "&collation=" + cfg.Collation
	}
	if cfg.Timeout > 0 {
		dsn += fmt.Sprintf("&timeout=%ds", cfg.Timeout)
	}
	if cfg.ReadTimeout > 0 {
		dsn += fmt.Sprintf("&readTimeout=%ds", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout > 0 {
		dsn += fmt.Sprintf("&writeTimeout=%ds", cfg.WriteTimeout)
	}
	return dsn
}
