package snowflake

import (
	"fmt"
	"strings"

	"github.com/snowflakedb/gosnowflake"

	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/system"
)

// Authenticator selects and applies an authentication mode for new
// connections. Apply sets the relevant fields on the driver config and
// returns the token in effect, or "" for modes without a rotating token.
type Authenticator interface {
	// Mode returns a short identifier for the authentication mode.
	Mode() string

	// Apply configures authentication on the driver config. The returned
	// token is compared across acquires to detect rotation.
	Apply(cfg *gosnowflake.Config) (token string, err error)
}

// TokenFileAuthenticator authenticates with the short-lived OAuth token
// that SPCS injects at a well-known path. The file is re-read on every
// Apply so that token rotation is observed.
type TokenFileAuthenticator struct {
	Path string
	FS   system.FileSystem
}

// Mode returns "oauth-token".
func (a *TokenFileAuthenticator) Mode() string { return "oauth-token" }

// Apply reads the token file and configures OAuth authentication.
func (a *TokenFileAuthenticator) Apply(cfg *gosnowflake.Config) (string, error) {
	data, err := a.FS.ReadFile(a.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", a.Path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", a.Path)
	}

	cfg.Authenticator = gosnowflake.AuthTypeOAuth
	cfg.Token = token
	return token, nil
}

// PasswordAuthenticator authenticates with a username/password pair from
// the environment. Intended for service users in CI; no token rotation.
type PasswordAuthenticator struct {
	Password string
}

// Mode returns "password".
func (a *PasswordAuthenticator) Mode() string { return "password" }

// Apply configures standard password authentication.
func (a *PasswordAuthenticator) Apply(cfg *gosnowflake.Config) (string, error) {
	if a.Password == "" {
		return "", fmt.Errorf("password authentication selected but SNOWFLAKE_PASSWORD is empty")
	}
	cfg.Authenticator = gosnowflake.AuthTypeSnowflake
	cfg.Password = a.Password
	return "", nil
}

// BrowserAuthenticator authenticates interactively through the system
// browser (SSO). Used for human-present sessions on a workstation.
type BrowserAuthenticator struct{}

// Mode returns "externalbrowser".
func (a *BrowserAuthenticator) Mode() string { return "externalbrowser" }

// Apply configures external-browser authentication.
func (a *BrowserAuthenticator) Apply(cfg *gosnowflake.Config) (string, error) {
	cfg.Authenticator = gosnowflake.AuthTypeExternalBrowser
	return "", nil
}

// DetectAuthenticator picks the authentication strategy for the current
// environment: the injected token file when present and readable (we are
// running inside SPCS), otherwise password auth when configured, falling
// back to the interactive browser flow.
func DetectAuthenticator(cfg *config.Config, fs system.FileSystem) Authenticator {
	if _, err := fs.ReadFile(cfg.TokenPath); err == nil {
		logging.Debug("token file present, using oauth token auth", "path", cfg.TokenPath)
		return &TokenFileAuthenticator{Path: cfg.TokenPath, FS: fs}
	}

	if cfg.Password != "" {
		logging.Debug("using password auth", "user", cfg.User)
		return &PasswordAuthenticator{Password: cfg.Password}
	}

	logging.Debug("using external browser auth", "user", cfg.User)
	return &BrowserAuthenticator{}
}
