package spcs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/snowflake"
)

// Querier is the statement execution surface the client needs.
// *snowflake.Executor satisfies it.
type Querier interface {
	Query(ctx context.Context, stmt string) ([]snowflake.Row, error)
	Exec(ctx context.Context, stmt string) error
}

// Client executes SPCS control-plane operations.
type Client struct {
	q Querier
}

// NewClient creates a client over the given statement executor.
func NewClient(q Querier) *Client {
	return &Client{q: q}
}

// ident validates a Snowflake object name for safe inlining.
func ident(name string) (string, error) {
	if err := config.ValidateObjectName(name); err != nil {
		return "", err
	}
	return name, nil
}

// sqlString quotes a value as a SQL string literal.
func sqlString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// equalFoldIdent compares object names the way Snowflake resolves
// unquoted identifiers: case-insensitively.
func equalFoldIdent(a, b string) bool {
	return strings.EqualFold(a, b)
}

// rowString extracts a string column from a SHOW result row, trying the
// lowercase name first (SHOW output) and the uppercase form second.
func rowString(row snowflake.Row, key string) string {
	for _, k := range []string{key, strings.ToUpper(key)} {
		if v, ok := row[k]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// rowInt extracts an integer column from a SHOW result row.
func rowInt(row snowflake.Row, key string) int {
	for _, k := range []string{key, strings.ToUpper(key)} {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int64:
			return int(n)
		case float64:
			return int(n)
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed
			}
		}
	}
	return 0
}
