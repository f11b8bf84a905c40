package snowflake

// In-memory database/sql driver with scripted responses. Each query
// consumes the next scripted response, regardless of which handle issued
// it, so reconnects can be observed across handles.

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"

	"github.com/meridian-data/snowkit/internal/config"
)

type fakeResponse struct {
	cols []string
	rows [][]driver.Value
	err  error
}

type fakeScript struct {
	mu        sync.Mutex
	responses []fakeResponse
	queries   []string
}

func (s *fakeScript) push(r fakeResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
}

func (s *fakeScript) next(query string) (driver.Rows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if len(s.responses) == 0 {
		return &fakeRows{}, nil
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &fakeRows{cols: r.cols, rows: r.rows}, nil
}

func (s *fakeScript) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) {
	return nil, driver.ErrSkip
}

type fakeConnector struct {
	script *fakeScript
}

func (c *fakeConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return &fakeConn{script: c.script}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeConn struct {
	script *fakeScript
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, driver.ErrSkip
}

func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, driver.ErrSkip }

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return c.script.next(query)
}

type fakeRows struct {
	cols []string
	rows [][]driver.Value
	pos  int
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

// newFakePool wires a pool to the scripted driver and counts opens.
func newFakePool(cfg *config.Config, auth Authenticator, script *fakeScript) (*Pool, *int) {
	opens := 0
	opener := func(dsn string) (*sql.DB, error) {
		opens++
		return sql.OpenDB(&fakeConnector{script: script}), nil
	}
	return NewPool(cfg, auth, WithOpener(opener)), &opens
}
