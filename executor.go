package composer

import (
	"context"
	"database/sql"
)

// Row is one result row keyed by column name. Relation resolution
// attaches loaded relations as extra entries under the relation name.
type Row map[string]any

// Executor is the single I/O boundary of the package. Everything above
// it composes queries; only implementations of Execute touch a
// connection. Errors are returned exactly as the driver produced them.
type Executor interface {
	Execute(ctx context.Context, q Query) ([]Row, error)
}

// SQLExecutor runs queries against a database/sql pool. By default it
// rewrites ? placeholders to PostgreSQL's $N form before executing.
type SQLExecutor struct {
	db         *sql.DB
	resolver   *DBResolver
	bindDollar bool
}

// ExecutorOption configures a SQLExecutor.
type ExecutorOption func(*SQLExecutor)

// WithQuestionPlaceholders keeps ? placeholders as-is, for backends
// that bind them natively (sqlite in tests).
func WithQuestionPlaceholders() ExecutorOption {
	return func(e *SQLExecutor) {
		e.bindDollar = false
	}
}

// WithReadResolver routes queries through the resolver's replica
// selection instead of the primary pool.
func WithReadResolver(r *DBResolver) ExecutorOption {
	return func(e *SQLExecutor) {
		e.resolver = r
	}
}

// NewSQLExecutor wraps a connection pool in an Executor.
func NewSQLExecutor(db *sql.DB, opts ...ExecutorOption) *SQLExecutor {
	e := &SQLExecutor{db: db, bindDollar: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the query and scans every result row into a Row map.
// Driver errors propagate unwrapped.
func (e *SQLExecutor) Execute(ctx context.Context, q Query) ([]Row, error) {
	text := q.Text
	if e.bindDollar {
		text = rebind(text)
	}

	rows, err := e.conn().QueryContext(ctx, text, q.Values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// conn picks the pool a read goes to. Everything this package issues is
// a read, so a configured resolver always routes to a replica.
func (e *SQLExecutor) conn() *sql.DB {
	if e.resolver != nil {
		if db := e.resolver.Replica(); db != nil {
			return db
		}
	}
	return e.db
}

// scanRows drains a result set into Row maps without knowing the
// column set up front.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
