package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/meridian-data/snowkit/internal/system"
)

const (
	// DefaultTokenPath is the well-known path where SPCS injects the
	// short-lived OAuth token for a running container.
	DefaultTokenPath = "/snowflake/session/token"

	// ConfigFileName is the per-project configuration file.
	ConfigFileName = "snowkit.toml"
)

// objectNameRegex validates unquoted Snowflake object identifiers.
// Identifiers start with a letter or underscore, followed by letters,
// digits, underscores, or dollar signs, up to 255 characters.
var objectNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]{0,254}$`)

// ValidateObjectName checks if a name is a valid unquoted Snowflake
// identifier (used for compute pools, services, repositories, etc).
func ValidateObjectName(name string) error {
	if name == "" {
		return fmt.Errorf("object name cannot be empty")
	}

	if !objectNameRegex.MatchString(name) {
		return fmt.Errorf("invalid object name %q: must start with a letter or underscore and contain only letters, digits, underscores, or dollar signs", name)
	}

	return nil
}

// Config holds the Snowflake connection and deployment settings.
type Config struct {
	Account   string `toml:"account"`
	User      string `toml:"user"`
	Role      string `toml:"role"`
	Warehouse string `toml:"warehouse"`
	Database  string `toml:"database"`
	Schema    string `toml:"schema"`

	// Host and Port are set by SPCS inside containers; outside SPCS they
	// are derived from the account.
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// TokenPath is the well-known OAuth token file location.
	TokenPath string `toml:"token_path"`

	// Password is never read from the file, only from the environment.
	Password string `toml:"-"`

	// Deploy holds defaults for the SPCS deployment pipeline.
	Deploy DeployConfig `toml:"deploy"`
}

// DeployConfig holds deployment defaults for the deploy pipeline.
type DeployConfig struct {
	ComputePool    string `toml:"compute_pool"`
	InstanceFamily string `toml:"instance_family"`
	MinNodes       int    `toml:"min_nodes"`
	MaxNodes       int    `toml:"max_nodes"`
	Repository     string `toml:"repository"`
	ServiceName    string `toml:"service"`
	Port           int    `toml:"port"`
}

// Default returns a Config with built-in defaults applied.
func Default() *Config {
	return &Config{
		Schema:    "PUBLIC",
		TokenPath: DefaultTokenPath,
		Deploy: DeployConfig{
			InstanceFamily: "CPU_X64_XS",
			MinNodes:       1,
			MaxNodes:       1,
			Port:           3000,
		},
	}
}

// Load reads configuration from the TOML file (if present) and applies
// environment overrides. A missing file is not an error; the environment
// alone can fully configure snowkit.
func Load(dir string) (*Config, error) {
	cfg := Default()
	fs := system.DefaultFS()

	path := findConfigFile(fs, dir)
	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// findConfigFile locates the config file: project dir first, then the
// user config directory. Returns "" if neither exists.
func findConfigFile(fs system.FileSystem, dir string) string {
	local := filepath.Join(dir, ConfigFileName)
	if fs.Exists(local) {
		return local
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	user := filepath.Join(home, "snowkit", "config.toml")
	if fs.Exists(user) {
		return user
	}

	return ""
}

// applyEnv overlays SNOWFLAKE_* environment variables onto the config.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Account, "SNOWFLAKE_ACCOUNT")
	setString(&c.User, "SNOWFLAKE_USER")
	setString(&c.Password, "SNOWFLAKE_PASSWORD")
	setString(&c.Role, "SNOWFLAKE_ROLE")
	setString(&c.Warehouse, "SNOWFLAKE_WAREHOUSE")
	setString(&c.Database, "SNOWFLAKE_DATABASE")
	setString(&c.Schema, "SNOWFLAKE_SCHEMA")
	setString(&c.Host, "SNOWFLAKE_HOST")
	setString(&c.TokenPath, "SNOWFLAKE_TOKEN_PATH")

	if v := os.Getenv("SNOWFLAKE_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the settings needed for a connection are present.
func (c *Config) Validate() error {
	if c.Account == "" && c.Host == "" {
		return fmt.Errorf("account is required (set SNOWFLAKE_ACCOUNT or account in %s)", ConfigFileName)
	}

	for name, value := range map[string]string{
		"warehouse": c.Warehouse,
		"database":  c.Database,
		"schema":    c.Schema,
		"role":      c.Role,
	} {
		if value == "" {
			continue
		}
		if err := ValidateObjectName(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// RegistryHost returns the SPCS image registry host for the account.
// Accounts are written as "<org>-<account>"; the registry replaces the
// underscore form with hyphens and lives under registry.snowflakecomputing.com.
func (c *Config) RegistryHost() string {
	account := strings.ReplaceAll(strings.ToLower(c.Account), "_", "-")
	return fmt.Sprintf("%s.registry.snowflakecomputing.com", account)
}

// ImageRepoPath returns the registry path for an image repository,
// lowercased the way the registry expects: <db>/<schema>/<repo>.
func (c *Config) ImageRepoPath(repo string) string {
	return strings.ToLower(fmt.Sprintf("%s/%s/%s", c.Database, c.Schema, repo))
}

// Save writes the file-backed settings to dir/snowkit.toml.
func (c *Config) Save(dir string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := system.DefaultFS().WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
