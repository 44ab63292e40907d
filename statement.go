package dbal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// statement implements Statement on top of a prepared *sql.Stmt pinned to
// the owning adapter's session.
type statement struct {
	conn    *conn
	stmt    *sql.Stmt
	names   []string // placeholder keys in SQL order
	isQuery bool     // routed through QueryContext when true
	bound   map[string]Value

	executed bool
	rows     *sql.Rows
	cols     []string
	affected int64
}

func (s *statement) BindValue(key string, value Value) error {
	key = strings.TrimPrefix(key, ":")
	if !s.hasParam(key) {
		return s.conn.fail(fmt.Errorf("%w: %q", ErrUnknownParameter, key))
	}
	s.bound[key] = value
	s.conn.lastErr = ""
	return nil
}

func (s *statement) hasParam(key string) bool {
	for _, name := range s.names {
		if name == key {
			return true
		}
	}
	return false
}

func (s *statement) Execute(params ...map[string]Value) error {
	// Drop any pending cursor so the statement can be re-run.
	if err := s.CloseCursor(); err != nil {
		return s.conn.fail(err)
	}

	args := make([]any, len(s.names))
	for i, name := range s.names {
		v, ok := s.lookup(name, params)
		if !ok {
			return s.conn.fail(fmt.Errorf("%w: %q", ErrParameterUnbound, name))
		}
		args[i] = v.arg()
	}

	ctx := context.Background()
	if s.isQuery {
		rows, err := s.stmt.QueryContext(ctx, args...)
		if err != nil {
			return s.conn.fail(err)
		}
		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return s.conn.fail(err)
		}
		s.rows = rows
		s.cols = cols
		s.affected = 0
		s.conn.trackCursor(rows)
	} else {
		res, err := s.stmt.ExecContext(ctx, args...)
		if err != nil {
			return s.conn.fail(err)
		}
		s.conn.noteResult(res)
		if n, err := res.RowsAffected(); err == nil {
			s.affected = n
		} else {
			s.affected = -1
		}
	}

	s.executed = true
	s.conn.lastErr = ""
	return nil
}

// lookup resolves one placeholder, inline parameters taking precedence
// over previously bound values.
func (s *statement) lookup(name string, params []map[string]Value) (Value, bool) {
	if len(params) > 0 {
		if v, ok := params[0][name]; ok {
			return v, true
		}
	}
	v, ok := s.bound[name]
	return v, ok
}

func (s *statement) Fetch(mode ...FetchMode) (Row, bool, error) {
	if !s.executed {
		return nil, false, s.conn.fail(ErrNotExecuted)
	}
	if s.rows == nil {
		// Write statement or closed cursor: nothing to fetch.
		return nil, false, nil
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, false, s.conn.fail(err)
		}
		s.conn.lastErr = ""
		return nil, false, nil
	}

	vals := make([]any, len(s.cols))
	ptrs := make([]any, len(s.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, false, s.conn.fail(err)
	}

	row := make(Row, len(s.cols))
	if fetchMode(mode) == FetchNum {
		for i := range vals {
			row[strconv.Itoa(i)] = vals[i]
		}
	} else {
		for i, col := range s.cols {
			row[col] = vals[i]
		}
	}
	s.conn.lastErr = ""
	return row, true, nil
}

func (s *statement) FetchAll(mode ...FetchMode) ([]Row, error) {
	out := make([]Row, 0, 8)
	for {
		row, ok, err := s.Fetch(mode...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, row)
	}
}

func (s *statement) RowCount() int64 {
	return s.affected
}

func (s *statement) CloseCursor() error {
	if s.rows == nil {
		return nil
	}
	s.conn.untrackCursor(s.rows)
	err := s.rows.Close()
	s.rows = nil
	s.cols = nil
	return err
}

func (s *statement) Close() error {
	err := s.CloseCursor()
	if cerr := s.stmt.Close(); err == nil {
		err = cerr
	}
	return err
}

func fetchMode(mode []FetchMode) FetchMode {
	if len(mode) > 0 {
		return mode[0]
	}
	return FetchAssoc
}

// rewritePlaceholders converts ":name" placeholders to the "?" form every
// driver here understands and records the key of each placeholder in SQL
// order. Positional "?" placeholders get 1-based decimal keys. Quoted
// literals and comments are copied through untouched. Mixing the two
// placeholder styles in one statement is an error.
func rewritePlaceholders(query string) (string, []string, error) {
	var out strings.Builder
	out.Grow(len(query))

	var names []string
	named, positional := false, false

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch ch {
		case '\'', '"', '`':
			out.WriteByte(ch)
			for i++; i < len(query); i++ {
				out.WriteByte(query[i])
				// MySQL string literals escape quotes with a
				// backslash; identifiers in backticks do not.
				if query[i] == '\\' && ch != '`' && i+1 < len(query) {
					i++
					out.WriteByte(query[i])
					continue
				}
				if query[i] == ch {
					break
				}
			}
		case '-':
			if i+1 < len(query) && query[i+1] == '-' {
				for ; i < len(query) && query[i] != '\n'; i++ {
					out.WriteByte(query[i])
				}
				if i < len(query) {
					out.WriteByte('\n')
				}
			} else {
				out.WriteByte(ch)
			}
		case '/':
			if i+1 < len(query) && query[i+1] == '*' {
				out.WriteString("/*")
				for i += 2; i < len(query); i++ {
					out.WriteByte(query[i])
					if query[i] == '/' && query[i-1] == '*' {
						break
					}
				}
			} else {
				out.WriteByte(ch)
			}
		case ':':
			if i+1 < len(query) && isIdentStart(query[i+1]) {
				j := i + 1
				for j < len(query) && isIdentPart(query[j]) {
					j++
				}
				names = append(names, query[i+1:j])
				out.WriteByte('?')
				named = true
				i = j - 1
			} else {
				out.WriteByte(ch)
			}
		case '?':
			names = append(names, "")
			positional = true
			out.WriteByte(ch)
		default:
			out.WriteByte(ch)
		}
	}

	if named && positional {
		return "", nil, ErrMixedPlaceholders
	}
	if positional {
		for i := range names {
			names[i] = strconv.Itoa(i + 1)
		}
	}
	return out.String(), names, nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// returnsRows reports whether the statement's leading keyword opens a
// result set, deciding whether Execute routes through QueryContext or
// ExecContext. Leading whitespace and comments are skipped.
func returnsRows(query string) bool {
	i := 0
	for i < len(query) {
		switch {
		case query[i] == ' ' || query[i] == '\t' || query[i] == '\n' || query[i] == '\r':
			i++
		case strings.HasPrefix(query[i:], "--"):
			for i < len(query) && query[i] != '\n' {
				i++
			}
		case strings.HasPrefix(query[i:], "/*"):
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 4
		default:
			j := i
			for j < len(query) && isIdentPart(query[j]) {
				j++
			}
			switch strings.ToUpper(query[i:j]) {
			case "SELECT", "SHOW", "PRAGMA", "EXPLAIN", "DESCRIBE", "DESC", "WITH", "VALUES", "TABLE":
				return true
			}
			return false
		}
	}
	return false
}
