package spcs

import (
	"context"
	"fmt"

	"github.com/meridian-data/snowkit/internal/logging"
)

// ComputePool describes a provisioned compute pool.
type ComputePool struct {
	Name           string
	State          string
	MinNodes       int
	MaxNodes       int
	InstanceFamily string
	NumServices    int
}

// CreatePoolOptions holds the parameters for provisioning a compute pool.
type CreatePoolOptions struct {
	Name           string
	MinNodes       int
	MaxNodes       int
	InstanceFamily string
}

// EnsureComputePool provisions a compute pool if it does not already exist.
func (c *Client) EnsureComputePool(ctx context.Context, opts CreatePoolOptions) error {
	name, err := ident(opts.Name)
	if err != nil {
		return err
	}
	family, err := ident(opts.InstanceFamily)
	if err != nil {
		return fmt.Errorf("invalid instance family: %w", err)
	}

	minNodes := opts.MinNodes
	if minNodes < 1 {
		minNodes = 1
	}
	maxNodes := opts.MaxNodes
	if maxNodes < minNodes {
		maxNodes = minNodes
	}

	stmt := fmt.Sprintf(
		"CREATE COMPUTE POOL IF NOT EXISTS %s MIN_NODES = %d MAX_NODES = %d INSTANCE_FAMILY = %s",
		name, minNodes, maxNodes, family)

	logging.Debug("ensuring compute pool", "pool", name, "family", family)
	return c.q.Exec(ctx, stmt)
}

// ListComputePools returns the account's compute pools.
func (c *Client) ListComputePools(ctx context.Context) ([]ComputePool, error) {
	rows, err := c.q.Query(ctx, "SHOW COMPUTE POOLS")
	if err != nil {
		return nil, err
	}

	pools := make([]ComputePool, 0, len(rows))
	for _, row := range rows {
		pools = append(pools, ComputePool{
			Name:           rowString(row, "name"),
			State:          rowString(row, "state"),
			MinNodes:       rowInt(row, "min_nodes"),
			MaxNodes:       rowInt(row, "max_nodes"),
			InstanceFamily: rowString(row, "instance_family"),
			NumServices:    rowInt(row, "num_services"),
		})
	}
	return pools, nil
}

// DescribeComputePool returns the state of a single compute pool.
func (c *Client) DescribeComputePool(ctx context.Context, name string) (*ComputePool, error) {
	id, err := ident(name)
	if err != nil {
		return nil, err
	}

	rows, err := c.q.Query(ctx, fmt.Sprintf("DESCRIBE COMPUTE POOL %s", id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("compute pool %s not found", name)
	}

	row := rows[0]
	return &ComputePool{
		Name:           rowString(row, "name"),
		State:          rowString(row, "state"),
		MinNodes:       rowInt(row, "min_nodes"),
		MaxNodes:       rowInt(row, "max_nodes"),
		InstanceFamily: rowString(row, "instance_family"),
		NumServices:    rowInt(row, "num_services"),
	}, nil
}

// SuspendComputePool suspends a compute pool.
func (c *Client) SuspendComputePool(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("ALTER COMPUTE POOL %s SUSPEND", id))
}

// ResumeComputePool resumes a suspended compute pool.
func (c *Client) ResumeComputePool(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("ALTER COMPUTE POOL %s RESUME", id))
}

// DropComputePool drops a compute pool. Services must be dropped first.
func (c *Client) DropComputePool(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("DROP COMPUTE POOL IF EXISTS %s", id))
}
