package snowflake

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/snowflakedb/gosnowflake"

	"github.com/meridian-data/snowkit/internal/system"
)

func expiredTokenErr() error {
	return &gosnowflake.SnowflakeError{
		Number:  390318,
		Message: "OAuth access token expired.",
	}
}

func newTestExecutor(t *testing.T, script *fakeScript) (*Executor, *int) {
	t.Helper()
	cfg := testConfig()
	fs := system.NewMockFileSystem()
	fs.AddFile(cfg.TokenPath, []byte("tok-1"))
	pool, opens := newFakePool(cfg, &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}, script)
	return NewExecutor(pool), opens
}

func TestQueryRetriesOnceOnExpiredToken(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: expiredTokenErr()})
	script.push(fakeResponse{
		cols: []string{"REGION", "TOTAL"},
		rows: [][]driver.Value{{"EMEA", int64(42)}},
	})

	exec, opens := newTestExecutor(t, script)

	rows, err := exec.Query(context.Background(), "SELECT region, total FROM sales")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if script.attempts() != 2 {
		t.Errorf("attempts = %d, want 2", script.attempts())
	}
	// The cache was cleared before the retry, so a second handle was opened.
	if *opens != 2 {
		t.Errorf("opened %d handles, want 2", *opens)
	}
	if len(rows) != 1 || rows[0]["REGION"] != "EMEA" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestQueryRetriesAtMostOnce(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: expiredTokenErr()})
	script.push(fakeResponse{err: expiredTokenErr()})
	script.push(fakeResponse{cols: []string{"X"}})

	exec, _ := newTestExecutor(t, script)

	_, err := exec.Query(context.Background(), "SELECT 1")
	if err == nil {
		t.Fatal("expected the second failure to propagate")
	}
	if script.attempts() != 2 {
		t.Errorf("attempts = %d, want 2", script.attempts())
	}

	var sfErr *gosnowflake.SnowflakeError
	if !errors.As(err, &sfErr) || sfErr.Number != 390318 {
		t.Errorf("error not propagated unchanged: %v", err)
	}
}

func TestQueryDoesNotRetryOtherErrors(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: fmt.Errorf("SQL compilation error: invalid identifier 'FOO'")})

	exec, _ := newTestExecutor(t, script)

	_, err := exec.Query(context.Background(), "SELECT foo")
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if script.attempts() != 1 {
		t.Errorf("attempts = %d, want 1", script.attempts())
	}
}

func TestQueryZeroBudgetPropagatesRetryableErrors(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: expiredTokenErr()})

	exec, _ := newTestExecutor(t, script)
	exec.WithRetries(0)

	_, err := exec.Query(context.Background(), "SELECT 1")
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if script.attempts() != 1 {
		t.Errorf("attempts = %d, want 1", script.attempts())
	}
}

func TestQueryRetriesOnMessageFallback(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: fmt.Errorf("request failed: OAuth access token expired")})
	script.push(fakeResponse{cols: []string{"X"}})

	exec, _ := newTestExecutor(t, script)

	if _, err := exec.Query(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if script.attempts() != 2 {
		t.Errorf("attempts = %d, want 2", script.attempts())
	}
}

func TestQueryEmptyResultIsNonNil(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{cols: []string{"REGION", "TOTAL"}})

	exec, _ := newTestExecutor(t, script)

	rows, err := exec.Query(context.Background(), "SELECT region, total FROM sales WHERE 1=0")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if rows == nil {
		t.Fatal("rows must be an empty slice, not nil")
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestQueryConvertsByteColumnsToString(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{
		cols: []string{"NAME"},
		rows: [][]driver.Value{{[]byte("Freezing Point")}},
	})

	exec, _ := newTestExecutor(t, script)

	rows, err := exec.Query(context.Background(), "SELECT name FROM brands")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if rows[0]["NAME"] != "Freezing Point" {
		t.Errorf("NAME = %v (%T), want string", rows[0]["NAME"], rows[0]["NAME"])
	}
}

func TestExecSharesRetryPath(t *testing.T) {
	script := &fakeScript{}
	script.push(fakeResponse{err: expiredTokenErr()})
	script.push(fakeResponse{cols: []string{"status"}, rows: [][]driver.Value{{"Statement executed successfully."}}})

	exec, _ := newTestExecutor(t, script)

	if err := exec.Exec(context.Background(), "CREATE COMPUTE POOL dashboard_pool"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if script.attempts() != 2 {
		t.Errorf("attempts = %d, want 2", script.attempts())
	}
}
