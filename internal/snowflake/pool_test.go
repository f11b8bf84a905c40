package snowflake

import (
	"context"
	"testing"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/system"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Account = "myorg-myacct"
	cfg.User = "dashboard_svc"
	cfg.Database = "TASTY_BYTES"
	cfg.Warehouse = "QUERY_WH"
	return cfg
}

func TestDetectAuthenticatorPrefersTokenFile(t *testing.T) {
	cfg := testConfig()
	fs := system.NewMockFileSystem()
	fs.AddFile(cfg.TokenPath, []byte("tok-1"))

	auth := DetectAuthenticator(cfg, fs)
	if auth.Mode() != "oauth-token" {
		t.Errorf("Mode = %q, want oauth-token", auth.Mode())
	}
}

func TestDetectAuthenticatorFallsBackToPassword(t *testing.T) {
	cfg := testConfig()
	cfg.Password = "hunter2"

	auth := DetectAuthenticator(cfg, system.NewMockFileSystem())
	if auth.Mode() != "password" {
		t.Errorf("Mode = %q, want password", auth.Mode())
	}
}

func TestDetectAuthenticatorFallsBackToBrowser(t *testing.T) {
	auth := DetectAuthenticator(testConfig(), system.NewMockFileSystem())
	if auth.Mode() != "externalbrowser" {
		t.Errorf("Mode = %q, want externalbrowser", auth.Mode())
	}
}

func TestPoolReusesHandleWhenTokenUnchanged(t *testing.T) {
	cfg := testConfig()
	fs := system.NewMockFileSystem()
	fs.AddFile(cfg.TokenPath, []byte("tok-1"))

	pool, opens := newFakePool(cfg, &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}, &fakeScript{})

	first, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if first != second {
		t.Error("expected the same handle for an unchanged token")
	}
	if *opens != 1 {
		t.Errorf("opened %d handles, want 1", *opens)
	}
}

func TestPoolReconnectsOnTokenRotation(t *testing.T) {
	cfg := testConfig()
	fs := system.NewMockFileSystem()
	fs.AddFile(cfg.TokenPath, []byte("tok-1"))

	pool, opens := newFakePool(cfg, &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}, &fakeScript{})

	first, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	fs.AddFile(cfg.TokenPath, []byte("tok-2"))

	second, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if first == second {
		t.Error("expected a new handle after token rotation")
	}
	if *opens != 2 {
		t.Errorf("opened %d handles, want 2", *opens)
	}
}

func TestPoolReusesHandleWithoutTokenMode(t *testing.T) {
	cfg := testConfig()
	cfg.Password = "hunter2"

	pool, opens := newFakePool(cfg, &PasswordAuthenticator{Password: cfg.Password}, &fakeScript{})

	first, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if first != second {
		t.Error("expected handle reuse for password auth")
	}
	if *opens != 1 {
		t.Errorf("opened %d handles, want 1", *opens)
	}
}

func TestPoolGetFailsWhenTokenFileUnreadable(t *testing.T) {
	cfg := testConfig()
	fs := system.NewMockFileSystem()

	pool, opens := newFakePool(cfg, &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}, &fakeScript{})

	if _, err := pool.Get(context.Background()); err == nil {
		t.Error("expected error when the token file is missing")
	}
	if *opens != 0 {
		t.Errorf("opened %d handles, want 0", *opens)
	}
}

func TestPoolGetFailsOnEmptyTokenFile(t *testing.T) {
	cfg := testConfig()
	fs := system.NewMockFileSystem()
	fs.AddFile(cfg.TokenPath, []byte("  \n"))

	pool, _ := newFakePool(cfg, &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}, &fakeScript{})

	if _, err := pool.Get(context.Background()); err == nil {
		t.Error("expected error for an empty token file")
	}
}

func TestPoolInvalidateForcesReconnect(t *testing.T) {
	cfg := testConfig()
	cfg.Password = "hunter2"

	pool, opens := newFakePool(cfg, &PasswordAuthenticator{Password: cfg.Password}, &fakeScript{})

	if _, err := pool.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}

	pool.Invalidate()

	if _, err := pool.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *opens != 2 {
		t.Errorf("opened %d handles, want 2", *opens)
	}
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.Password = "hunter2"

	pool, _ := newFakePool(cfg, &PasswordAuthenticator{Password: cfg.Password}, &fakeScript{})

	if _, err := pool.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
