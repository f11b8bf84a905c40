package spcs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/meridian-data/snowkit/internal/snowflake"
)

// fakeQuerier records statements and returns scripted rows keyed by a
// statement prefix.
type fakeQuerier struct {
	mu    sync.Mutex
	stmts []string
	rows  map[string][]snowflake.Row
	errs  map[string]error
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		rows: make(map[string][]snowflake.Row),
		errs: make(map[string]error),
	}
}

func (f *fakeQuerier) Query(ctx context.Context, stmt string) ([]snowflake.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stmts = append(f.stmts, stmt)
	for prefix, err := range f.errs {
		if strings.HasPrefix(stmt, prefix) {
			return nil, err
		}
	}
	for prefix, rows := range f.rows {
		if strings.HasPrefix(stmt, prefix) {
			return rows, nil
		}
	}
	return []snowflake.Row{}, nil
}

func (f *fakeQuerier) Exec(ctx context.Context, stmt string) error {
	_, err := f.Query(ctx, stmt)
	return err
}

func (f *fakeQuerier) lastStmt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stmts) == 0 {
		return ""
	}
	return f.stmts[len(f.stmts)-1]
}

func TestEnsureComputePoolStatement(t *testing.T) {
	q := newFakeQuerier()
	c := NewClient(q)

	err := c.EnsureComputePool(context.Background(), CreatePoolOptions{
		Name:           "dashboard_pool",
		MinNodes:       1,
		MaxNodes:       2,
		InstanceFamily: "CPU_X64_XS",
	})
	if err != nil {
		t.Fatalf("EnsureComputePool: %v", err)
	}

	want := "CREATE COMPUTE POOL IF NOT EXISTS dashboard_pool MIN_NODES = 1 MAX_NODES = 2 INSTANCE_FAMILY = CPU_X64_XS"
	if q.lastStmt() != want {
		t.Errorf("stmt = %q, want %q", q.lastStmt(), want)
	}
}

func TestEnsureComputePoolDefaultsNodes(t *testing.T) {
	q := newFakeQuerier()
	c := NewClient(q)

	if err := c.EnsureComputePool(context.Background(), CreatePoolOptions{
		Name:           "p1",
		InstanceFamily: "CPU_X64_XS",
	}); err != nil {
		t.Fatalf("EnsureComputePool: %v", err)
	}

	if !strings.Contains(q.lastStmt(), "MIN_NODES = 1 MAX_NODES = 1") {
		t.Errorf("stmt = %q", q.lastStmt())
	}
}

func TestEnsureComputePoolRejectsBadName(t *testing.T) {
	c := NewClient(newFakeQuerier())

	err := c.EnsureComputePool(context.Background(), CreatePoolOptions{
		Name:           "bad pool; drop table",
		InstanceFamily: "CPU_X64_XS",
	})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestListComputePools(t *testing.T) {
	q := newFakeQuerier()
	q.rows["SHOW COMPUTE POOLS"] = []snowflake.Row{
		{
			"name":            "DASHBOARD_POOL",
			"state":           "ACTIVE",
			"min_nodes":       int64(1),
			"max_nodes":       int64(2),
			"instance_family": "CPU_X64_XS",
			"num_services":    "1",
		},
	}
	c := NewClient(q)

	pools, err := c.ListComputePools(context.Background())
	if err != nil {
		t.Fatalf("ListComputePools: %v", err)
	}
	if len(pools) != 1 {
		t.Fatalf("got %d pools, want 1", len(pools))
	}

	p := pools[0]
	if p.Name != "DASHBOARD_POOL" || p.State != "ACTIVE" {
		t.Errorf("pool = %+v", p)
	}
	if p.MinNodes != 1 || p.MaxNodes != 2 || p.NumServices != 1 {
		t.Errorf("node counts = %+v", p)
	}
}

func TestRepositoryURL(t *testing.T) {
	q := newFakeQuerier()
	q.rows["SHOW IMAGE REPOSITORIES"] = []snowflake.Row{
		{"name": "DASHBOARD_REPO", "repository_url": "myorg-myacct.registry.snowflakecomputing.com/tasty_bytes/public/dashboard_repo"},
	}
	c := NewClient(q)

	// Unquoted identifiers resolve case-insensitively.
	url, err := c.RepositoryURL(context.Background(), "dashboard_repo")
	if err != nil {
		t.Fatalf("RepositoryURL: %v", err)
	}
	if !strings.HasSuffix(url, "/dashboard_repo") {
		t.Errorf("url = %q", url)
	}

	if _, err := c.RepositoryURL(context.Background(), "missing_repo"); err == nil {
		t.Error("expected error for unknown repository")
	}
}

func TestRepositoryURLPropagatesQueryError(t *testing.T) {
	q := newFakeQuerier()
	q.errs["SHOW IMAGE REPOSITORIES"] = fmt.Errorf("insufficient privileges")
	c := NewClient(q)

	if _, err := c.RepositoryURL(context.Background(), "repo"); err == nil {
		t.Error("expected query error to propagate")
	}
}
