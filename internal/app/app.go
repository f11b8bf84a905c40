package app

import (
	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/image"
	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/snowflake"
	"github.com/meridian-data/snowkit/internal/spcs"
	"github.com/meridian-data/snowkit/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// Pool owns the cached Snowflake connection
	Pool *snowflake.Pool

	// Executor runs SQL statements with retry handling
	Executor *snowflake.Executor

	// SPCS is the Snowpark Container Services client
	SPCS *spcs.Client

	// Runtime is the container engine; nil when none is installed
	Runtime image.Runtime
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithPool sets a custom connection pool
func WithPool(p *snowflake.Pool) Option {
	return func(a *App) {
		a.Pool = p
	}
}

// WithExecutor sets a custom query executor
func WithExecutor(e *snowflake.Executor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithSPCS sets a custom SPCS client
func WithSPCS(c *spcs.Client) Option {
	return func(a *App) {
		a.SPCS = c
	}
}

// WithRuntime sets a custom container runtime
func WithRuntime(r image.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// New creates a new App with the given options. Missing dependencies are
// built from configuration: the pool from the detected authenticator, the
// executor and SPCS client from the pool, and the runtime from whichever
// container engine is installed. Nothing connects to Snowflake until a
// command actually runs a statement.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.Load(".")
		if err != nil {
			logging.Debug("failed to load configuration", "error", err)
			cfg = config.Default()
		}
		app.Config = cfg
	}

	if app.Pool == nil {
		auth := snowflake.DetectAuthenticator(app.Config, system.DefaultFS())
		app.Pool = snowflake.NewPool(app.Config, auth)
	}

	if app.Executor == nil {
		app.Executor = snowflake.NewExecutor(app.Pool)
	}

	if app.SPCS == nil {
		app.SPCS = spcs.NewClient(app.Executor)
	}

	if app.Runtime == nil {
		rt, err := image.NewDockerRuntime()
		if err != nil {
			logging.Debug("no container engine available", "error", err)
		} else {
			app.Runtime = rt
		}
	}

	return app
}

// Close releases the cached Snowflake connection. Safe on a fresh App.
func (a *App) Close() error {
	if a.Pool == nil {
		return nil
	}
	return a.Pool.Close()
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
