package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/snowflakedb/gosnowflake"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/logging"
)

// OpenFunc opens a database handle from a driver DSN. Injectable for tests.
type OpenFunc func(dsn string) (*sql.DB, error)

func defaultOpen(dsn string) (*sql.DB, error) {
	return sql.Open("snowflake", dsn)
}

// Pool owns the single cached connection handle. At most one handle is
// live at a time; it is discarded and recreated whenever the current
// authentication token differs from the one that produced it.
type Pool struct {
	mu    sync.Mutex
	cfg   *config.Config
	auth  Authenticator
	open  OpenFunc
	db    *sql.DB
	token string
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithOpener overrides how database handles are opened.
func WithOpener(open OpenFunc) PoolOption {
	return func(p *Pool) {
		p.open = open
	}
}

// NewPool creates a connection pool with the given authentication strategy.
func NewPool(cfg *config.Config, auth Authenticator, opts ...PoolOption) *Pool {
	p := &Pool{
		cfg:  cfg,
		auth: auth,
		open: defaultOpen,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthMode returns the authentication mode in effect.
func (p *Pool) AuthMode() string {
	return p.auth.Mode()
}

// Get returns a usable database handle, reusing the cached one when the
// authentication token has not changed and reconnecting when it has.
func (p *Pool) Get(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	driverCfg := p.driverConfig()
	token, err := p.auth.Apply(&driverCfg)
	if err != nil {
		return nil, err
	}

	// Reuse the existing handle unless the token rotated. Modes without
	// a token (password, browser) always reuse.
	if p.db != nil && (token == "" || token == p.token) {
		return p.db, nil
	}

	if p.db != nil {
		logging.Debug("token rotated, recycling connection")
		_ = p.db.Close()
		p.db = nil
	}

	dsn, err := gosnowflake.DSN(&driverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	db, err := p.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	// One cached handle is the whole pool; cap the driver accordingly.
	db.SetMaxOpenConns(1)

	p.db = db
	p.token = token
	logging.Debug("connection established", "auth", p.auth.Mode(), "account", p.cfg.Account)
	return p.db, nil
}

// Invalidate discards the cached handle so the next Get reconnects.
// Close errors are ignored; the handle is already suspect.
func (p *Pool) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		_ = p.db.Close()
		p.db = nil
		p.token = ""
	}
}

// Close releases the cached handle. Safe to call multiple times.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.token = ""
	return err
}

// driverConfig builds the non-auth portion of the driver configuration.
func (p *Pool) driverConfig() gosnowflake.Config {
	cfg := gosnowflake.Config{
		Account:     p.cfg.Account,
		User:        p.cfg.User,
		Database:    p.cfg.Database,
		Schema:      p.cfg.Schema,
		Warehouse:   p.cfg.Warehouse,
		Role:        p.cfg.Role,
		Application: "snowkit",
	}

	// Inside SPCS the host and port are injected and differ from the
	// public account URL.
	if p.cfg.Host != "" {
		cfg.Host = p.cfg.Host
		cfg.Protocol = "https"
	}
	if p.cfg.Port != 0 {
		cfg.Port = p.cfg.Port
	}

	return cfg
}
