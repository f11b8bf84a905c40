package spcs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/spec"
)

// Service instance container statuses reported by the control plane.
const (
	StatusReady   = "READY"
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
	StatusUnknown = "UNKNOWN"
)

// ContainerStatus is one container's state from SYSTEM$GET_SERVICE_STATUS.
type ContainerStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ContainerName string `json:"containerName"`
	InstanceID    string `json:"instanceId"`
	ServiceName   string `json:"serviceName"`
	Image         string `json:"image"`
	RestartCount  int    `json:"restartCount"`
	StartTime     string `json:"startTime"`
}

// ServiceEndpoint is one row of SHOW ENDPOINTS IN SERVICE.
type ServiceEndpoint struct {
	Name       string
	Port       int
	Protocol   string
	IngressURL string
}

// CreateServiceOptions holds the parameters for creating a service.
type CreateServiceOptions struct {
	Name         string
	ComputePool  string
	Spec         *spec.Specification
	MinInstances int
	MaxInstances int
}

// specBlock renders a specification for inlining between $$ delimiters.
func specBlock(s *spec.Specification) (string, error) {
	data, err := s.Marshal()
	if err != nil {
		return "", err
	}
	yaml := string(data)
	if strings.Contains(yaml, "$$") {
		return "", fmt.Errorf("specification must not contain the $$ delimiter")
	}
	return yaml, nil
}

// CreateService creates a service in a compute pool from a specification.
func (c *Client) CreateService(ctx context.Context, opts CreateServiceOptions) error {
	name, err := ident(opts.Name)
	if err != nil {
		return err
	}
	pool, err := ident(opts.ComputePool)
	if err != nil {
		return fmt.Errorf("invalid compute pool: %w", err)
	}
	yaml, err := specBlock(opts.Spec)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SERVICE %s\n  IN COMPUTE POOL %s\n  FROM SPECIFICATION $$\n%s$$", name, pool, yaml)
	if opts.MinInstances > 0 {
		fmt.Fprintf(&b, "\n  MIN_INSTANCES = %d", opts.MinInstances)
	}
	if opts.MaxInstances > 0 {
		fmt.Fprintf(&b, "\n  MAX_INSTANCES = %d", opts.MaxInstances)
	}

	logging.Debug("creating service", "service", name, "pool", pool)
	return c.q.Exec(ctx, b.String())
}

// UpgradeService replaces a running service's specification in place.
func (c *Client) UpgradeService(ctx context.Context, name string, s *spec.Specification) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	yaml, err := specBlock(s)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("ALTER SERVICE %s FROM SPECIFICATION $$\n%s$$", id, yaml)
	logging.Debug("upgrading service", "service", id)
	return c.q.Exec(ctx, stmt)
}

// ServiceExists checks whether a service with the given name exists.
func (c *Client) ServiceExists(ctx context.Context, name string) (bool, error) {
	id, err := ident(name)
	if err != nil {
		return false, err
	}

	rows, err := c.q.Query(ctx, fmt.Sprintf("SHOW SERVICES LIKE %s", sqlString(id)))
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ServiceStatus returns per-container status for a service.
func (c *Client) ServiceStatus(ctx context.Context, name string) ([]ContainerStatus, error) {
	id, err := ident(name)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf("SELECT SYSTEM$GET_SERVICE_STATUS(%s)", sqlString(id))
	rows, err := c.q.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no status returned for service %s", name)
	}

	// The status function returns a single column holding a JSON array.
	var payload string
	for _, v := range rows[0] {
		payload = fmt.Sprintf("%v", v)
		break
	}

	var statuses []ContainerStatus
	if err := json.Unmarshal([]byte(payload), &statuses); err != nil {
		return nil, fmt.Errorf("failed to parse service status: %w", err)
	}
	return statuses, nil
}

// ServiceLogs fetches the trailing log lines of one container instance.
func (c *Client) ServiceLogs(ctx context.Context, name, instance, container string, tail int) (string, error) {
	id, err := ident(name)
	if err != nil {
		return "", err
	}
	if tail < 1 {
		tail = 100
	}

	stmt := fmt.Sprintf("SELECT SYSTEM$GET_SERVICE_LOGS(%s, %s, %s, %d)",
		sqlString(id), sqlString(instance), sqlString(container), tail)
	rows, err := c.q.Query(ctx, stmt)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	for _, v := range rows[0] {
		return fmt.Sprintf("%v", v), nil
	}
	return "", nil
}

// ServiceEndpoints lists the endpoints of a service, including public
// ingress URLs once provisioning completes.
func (c *Client) ServiceEndpoints(ctx context.Context, name string) ([]ServiceEndpoint, error) {
	id, err := ident(name)
	if err != nil {
		return nil, err
	}

	rows, err := c.q.Query(ctx, fmt.Sprintf("SHOW ENDPOINTS IN SERVICE %s", id))
	if err != nil {
		return nil, err
	}

	endpoints := make([]ServiceEndpoint, 0, len(rows))
	for _, row := range rows {
		endpoints = append(endpoints, ServiceEndpoint{
			Name:       rowString(row, "name"),
			Port:       rowInt(row, "port"),
			Protocol:   rowString(row, "protocol"),
			IngressURL: rowString(row, "ingress_url"),
		})
	}
	return endpoints, nil
}

// SuspendService suspends a running service.
func (c *Client) SuspendService(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("ALTER SERVICE %s SUSPEND", id))
}

// ResumeService resumes a suspended service.
func (c *Client) ResumeService(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("ALTER SERVICE %s RESUME", id))
}

// DropService drops a service.
func (c *Client) DropService(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("DROP SERVICE IF EXISTS %s", id))
}

// WaitReady polls service status until every container reports READY,
// any container reports FAILED, or the context expires.
func (c *Client) WaitReady(ctx context.Context, name string, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		statuses, err := c.ServiceStatus(ctx, name)
		if err != nil {
			return err
		}

		ready := len(statuses) > 0
		for _, s := range statuses {
			switch s.Status {
			case StatusFailed:
				return fmt.Errorf("container %s failed: %s", s.ContainerName, s.Message)
			case StatusReady:
				// keep checking the rest
			default:
				ready = false
			}
		}
		if ready {
			return nil
		}

		logging.Debug("service not ready yet", "service", name)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
