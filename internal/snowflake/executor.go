package snowflake

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/meridian-data/snowkit/internal/logging"
)

// DefaultRetries is the retry budget for statement execution: one
// immediate re-execution after a retryable failure.
const DefaultRetries = 1

// Row is a single result row keyed by column name.
type Row map[string]any

// Executor runs SQL statements against the pool with bounded retry.
type Executor struct {
	pool    *Pool
	retries int
}

// NewExecutor creates an executor with the default retry budget.
func NewExecutor(pool *Pool) *Executor {
	return &Executor{pool: pool, retries: DefaultRetries}
}

// WithRetries sets the retry budget. Zero means any failure propagates
// after exactly one attempt.
func (e *Executor) WithRetries(n int) *Executor {
	e.retries = n
	return e
}

// Pool returns the underlying connection pool.
func (e *Executor) Pool() *Pool {
	return e.pool
}

// Query executes a statement and returns all rows. A successful query
// with no matching rows returns an empty, non-nil slice.
func (e *Executor) Query(ctx context.Context, stmt string) ([]Row, error) {
	return e.query(ctx, stmt, e.retries)
}

// Exec executes a statement and discards the result rows. Snowflake
// returns a status row even for DDL, so this shares the Query path.
func (e *Executor) Exec(ctx context.Context, stmt string) error {
	_, err := e.query(ctx, stmt, e.retries)
	return err
}

func (e *Executor) query(ctx context.Context, stmt string, budget int) ([]Row, error) {
	qid := uuid.NewString()
	logging.Debug("executing statement", "qid", qid, "budget", budget)

	db, err := e.pool.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		kind := Classify(err)
		if budget > 0 && kind != KindOther {
			logging.Warn("retrying statement after retryable failure",
				"qid", qid, "kind", kind.String(), "error", err)
			e.pool.Invalidate()
			return e.query(ctx, stmt, budget-1)
		}
		logging.Error("statement failed", "qid", qid, "kind", kind.String(), "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// scanRows materializes a result set into rows keyed by column name.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			v := values[i]
			// Drivers hand back []byte for text columns; strings are
			// friendlier for display and JSON output.
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
