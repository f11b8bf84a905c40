package cmd

import (
	"context"
	"fmt"

	"github.com/meridian-data/snowkit/internal/app"
	"github.com/meridian-data/snowkit/internal/config"
	"github.com/meridian-data/snowkit/internal/errors"
	"github.com/meridian-data/snowkit/internal/image"
	"github.com/meridian-data/snowkit/internal/snowflake"
	"github.com/meridian-data/snowkit/internal/spcs"
	"github.com/meridian-data/snowkit/internal/tui"
)

// getConfig returns the application configuration.
func getConfig() *config.Config {
	return app.Default.Config
}

// getExecutor returns the application's query executor.
func getExecutor() *snowflake.Executor {
	return app.Default.Executor
}

// getSPCS returns the SPCS client.
func getSPCS() *spcs.Client {
	return app.Default.SPCS
}

// getRuntime returns the container runtime or an error when none is installed.
func getRuntime() (image.Runtime, error) {
	if app.Default.Runtime == nil {
		return nil, errors.ImageError("runtime detection", fmt.Errorf("neither docker nor podman found in PATH"))
	}
	return app.Default.Runtime, nil
}

// requireConnection validates that enough configuration exists to reach
// Snowflake before a command tries to.
func requireConnection() error {
	cfg := getConfig()
	if err := cfg.Validate(); err != nil {
		return errors.ConfigError("incomplete Snowflake configuration", err)
	}
	return nil
}

// confirm is a deployment stopping point. assumeYes (--yes) skips the
// prompt; otherwise the user must explicitly approve.
func confirm(prompt string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	return tui.RunConfirm(prompt)
}

// pickComputePool lets the user choose a compute pool interactively.
func pickComputePool(ctx context.Context) (string, error) {
	pools, err := getSPCS().ListComputePools(ctx)
	if err != nil {
		return "", err
	}
	if len(pools) == 0 {
		return "", errors.ComputePoolError("selection", fmt.Errorf("no compute pools exist; create one with 'snowkit pool create'"))
	}

	items := make([]tui.Item, len(pools))
	for i, p := range pools {
		items[i] = tui.Item{
			Name:   p.Name,
			Detail: fmt.Sprintf("%s | %s | nodes %d-%d", p.State, p.InstanceFamily, p.MinNodes, p.MaxNodes),
		}
	}

	idx, err := tui.RunPicker("Select a compute pool", items)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("no compute pool selected")
	}
	return pools[idx].Name, nil
}
